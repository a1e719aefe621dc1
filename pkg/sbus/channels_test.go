package sbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannelsNew(t *testing.T) {
	ch := NewChannels()
	for i := 0; i < NumChannels; i++ {
		v, ok := ch.Channel(i)
		require.True(t, ok)
		require.Equal(t, uint16(0), v)
	}
	_, ok := ch.Channel(NumChannels)
	require.False(t, ok)
	_, ok = ch.Channel(-1)
	require.False(t, ok)
	require.Equal(t, [NumChannels]uint16{}, ch.Values())
}

func TestChannelsUpdate(t *testing.T) {
	ch := NewChannels()
	var values [NumChannels]uint16
	for n := range values {
		values[n] = uint16(n * 100)
	}
	ch.update(values)
	require.Equal(t, values, ch.Values())
	v, ok := ch.Channel(15)
	require.True(t, ok)
	require.Equal(t, uint16(1500), v)
}
