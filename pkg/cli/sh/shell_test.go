package sh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/sbus.go/pkg/sbus"
)

func TestParseHex(t *testing.T) {
	testCases := []struct {
		args []string
		data []byte
	}{
		{[]string{"0f", "00", "ff"}, []byte{0x0f, 0x00, 0xff}},
		{[]string{"0f00ff"}, []byte{0x0f, 0x00, 0xff}},
		{[]string{"0x0f,0x1", "a:b"}, []byte{0x0f, 0x01, 0x0a, 0x0b}},
		{[]string{"0XAB"}, []byte{0xab}},
		{nil, nil},
	}
	for _, tc := range testCases {
		data, err := ParseHex(tc.args)
		require.NoError(t, err, tc.args)
		require.Equal(t, tc.data, data, tc.args)
	}

	_, err := ParseHex([]string{"0g"})
	require.Error(t, err)
}

func TestParseRaw(t *testing.T) {
	values, err := ParseRaw([]string{"1023", "0x7ff", "0"})
	require.NoError(t, err)
	require.Equal(t, []uint16{1023, 2047, 0}, values)

	_, err = ParseRaw([]string{"65536"})
	require.Error(t, err)
	_, err = ParseRaw([]string{"-1"})
	require.Error(t, err)
}

func TestFeed(t *testing.T) {
	var s Shell
	f := sbus.NewFrame([]uint16{1023}, 0)
	bad := f
	bad[sbus.ChecksumOffset] ^= 0xff

	res := s.Feed(append([]byte{0x00}, f[:10]...))
	require.Equal(t, FeedResult{Bytes: 11, State: "receiving"}, res)

	res = s.Feed(f[10:])
	require.Equal(t, 1, res.Frames)
	require.Empty(t, res.Errors)
	require.Equal(t, "locked", res.State)

	res = s.Feed(bad[:])
	require.Zero(t, res.Frames)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "checksum mismatch")
	require.Equal(t, "syncing", res.State)

	v, ok := s.Parser.Channels().Channel(0)
	require.True(t, ok)
	require.Equal(t, uint16(1023), v)
}

func TestFormat(t *testing.T) {
	require.Equal(t, "0:1000 1:2000", FormatValues([]uint16{1000, 2000}))
	f := sbus.NewFrame(nil, 0)
	require.Equal(t, "0f 00 00", FormatFrame(&f)[:8])
}
