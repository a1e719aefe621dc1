package framework

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil, nil).Aggregate())

	errA, errB := errors.New("a"), errors.New("b")
	err := errs.Add(errA, nil, errB).Aggregate()
	require.Error(t, err)
	require.Equal(t, "Multiple errors:\na\nb", err.Error())
	require.True(t, errors.Is(err, errB))
}

func TestRunnerCancelsOnFailure(t *testing.T) {
	failure := errors.New("port gone")
	stopped := make(chan struct{})
	r := NewRunner().Go(
		NamedRun("failing", RunFunc(func(ctx context.Context) error {
			return failure
		})),
		NamedRun("waiting", RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			close(stopped)
			return ctx.Err()
		})),
	)
	err := r.Wait()
	require.True(t, errors.Is(err, failure))
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("waiting runner not canceled")
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunnerWith(ctx).Go(RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	cancel()
	require.NoError(t, r.Wait())
}

type testCloser struct {
	closed chan struct{}
}

func (c *testCloser) Close() error {
	close(c.closed)
	return nil
}

func TestRunWithContextCloser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	closer := &testCloser{closed: make(chan struct{})}
	errCh := make(chan error, 1)
	go func() {
		errCh <- RunWithContextCloser(ctx, closer, func() error {
			<-closer.closed
			return errors.New("read on closed port")
		})
	}()
	cancel()
	require.Equal(t, context.Canceled, <-errCh)
}

func TestServeHTTP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0"}
	errCh := make(chan error, 1)
	go func() {
		errCh <- ServeHTTP(ctx, srv)
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("server didn't stop")
	}
}
