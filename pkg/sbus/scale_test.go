package sbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	testCases := []struct {
		raw    uint16
		expect uint16
	}{
		{0, 1000},
		{1, 1000},
		{3, 1001},
		{1023, 1499},
		{1024, 1500},
		{2047, 2000},
		{2048, 2000},
		{5000, 2000},
		{0xffff, 2000},
	}
	for _, tc := range testCases {
		require.Equalf(t, tc.expect, Scale(tc.raw), "raw %d", tc.raw)
	}
}

func TestScaleMonotonic(t *testing.T) {
	prev := Scale(0)
	for raw := 1; raw <= 0xffff; raw++ {
		v := Scale(uint16(raw))
		require.True(t, v >= prev, "raw %d", raw)
		require.True(t, v >= ScaledMin && v <= ScaledMax)
		prev = v
	}
}

func TestScaleAll(t *testing.T) {
	var raw [NumChannels]uint16
	raw[0], raw[1], raw[15] = 2047, 1023, 5000
	out := ScaleAll(raw)
	require.Equal(t, uint16(2000), out[0])
	require.Equal(t, uint16(1499), out[1])
	require.Equal(t, uint16(2000), out[15])
	for i := 2; i < 15; i++ {
		require.Equal(t, ScaledMin, out[i])
	}
}
