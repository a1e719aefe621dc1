package sbusd

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/sbus.go/pkg/sbus"
	"github.com/robotalks/sbus.go/pkg/serial"
)

func testDaemon(t *testing.T) *Daemon {
	conf := NewConfig()
	conf.ID = "test"
	conf.Port = "test-port"
	conf.MQTTBrokerURL = ""
	conf.HTTPAddr = ""
	conf.FrameTimeout = time.Second
	d, err := conf.NewDaemon()
	require.NoError(t, err)
	return d
}

func TestNewDaemon(t *testing.T) {
	d := testDaemon(t)
	require.Equal(t, "test", d.Config.ID)
	require.NotEmpty(t, d.Session)
	require.Equal(t, time.Second, d.Receiver.Timeout)

	conf := NewConfig()
	conf.Port = ""
	_, err := conf.NewDaemon()
	require.Error(t, err)
}

func TestDaemonRun(t *testing.T) {
	d := testDaemon(t)
	pr, pw := io.Pipe()
	var openedPath string
	d.OpenPort = func(path string, opts serial.PortOptions) (io.ReadCloser, error) {
		openedPath = path
		return pr, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx) }()

	f := sbus.NewFrame([]uint16{1023, 42}, 0)
	go pw.Write(f[:])

	require.Eventually(t, func() bool {
		return d.Receiver.State().IsLocked()
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, "test-port", openedPath)
	v, ok := d.Receiver.Channels().Channel(1)
	require.True(t, ok)
	require.Equal(t, uint16(42), v)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("daemon didn't stop")
	}
}

func TestDaemonRunOpenFailure(t *testing.T) {
	d := testDaemon(t)
	d.OpenPort = func(string, serial.PortOptions) (io.ReadCloser, error) {
		return nil, errors.New("no such device")
	}
	require.EqualError(t, d.Run(context.Background()), "no such device")
}

func TestDaemonHandler(t *testing.T) {
	d := testDaemon(t)
	srv := httptest.NewServer(d.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "sbus_locked 0")
}

func TestDaemonErrorLogLimit(t *testing.T) {
	d := testDaemon(t)
	for n := 0; n < errLogBurst+3; n++ {
		d.handleError(context.Background(), sbus.ErrTimeout)
	}
	require.Equal(t, 3, d.suppressed)
}
