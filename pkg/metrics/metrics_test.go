package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/sbus.go/pkg/sbus"
)

type testSource struct {
	parser sbus.Parser
}

func (s *testSource) Channels() sbus.ChannelReader { return s.parser.Channels() }
func (s *testSource) State() sbus.SyncState        { return s.parser.State() }
func (s *testSource) Stats() sbus.Stats            { return s.parser.Stats() }

func (s *testSource) feed(f sbus.Frame) {
	for _, b := range f {
		s.parser.Parse(b)
	}
}

func TestCollector(t *testing.T) {
	src := &testSource{}
	good := sbus.NewFrame([]uint16{1023}, 0)
	bad := good
	bad[3] ^= 0x01
	src.parser.Parse(0x00)
	src.feed(good)
	src.feed(bad)
	src.feed(good)

	c := NewCollector(src)
	require.Equal(t, 6+sbus.NumChannels, testutil.CollectAndCount(c))

	expected := `
# HELP sbus_frames_total Assembled frames by validation result.
# TYPE sbus_frames_total counter
sbus_frames_total{result="checksum"} 1
sbus_frames_total{result="ok"} 2
# HELP sbus_locked 1 if the last frame was valid and recent.
# TYPE sbus_locked gauge
sbus_locked 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"sbus_frames_total", "sbus_locked"))
}

func TestHandler(t *testing.T) {
	src := &testSource{}
	src.feed(sbus.NewFrame([]uint16{1500}, 0))
	reg := NewRegistry()
	reg.MustRegister(NewCollector(src))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `sbus_channel_raw{channel="0"} 1500`)
	require.Contains(t, body, "sbus_bytes_total 25")
	require.Contains(t, body, "go_goroutines")
}
