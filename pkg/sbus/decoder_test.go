package sbus

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDecodeChannels(t *testing.T) {
	var f Frame
	f[0] = StartByte
	for n := PayloadOffset; n < ChecksumOffset; n++ {
		f[n] = byte(n)
	}
	f[ChecksumOffset], f[TrailerOffset] = 0xee, 0xff
	ch := DecodeChannels(&f)
	for i := 0; i < PayloadChannels; i++ {
		require.Equalf(t, uint16(2*i+1)<<8|uint16(2*i+2), ch[i], "channel %d", i)
	}
}

func TestDecodeChannelsBeyondPayload(t *testing.T) {
	var f Frame
	for n := range f {
		f[n] = 0xff
	}
	ch := DecodeChannels(&f)
	for i := 0; i < PayloadChannels; i++ {
		require.Equal(t, uint16(0xffff), ch[i])
	}
	for i := PayloadChannels; i < NumChannels; i++ {
		require.Equalf(t, uint16(0), ch[i], "channel %d", i)
	}
}

func TestExtractChannels(t *testing.T) {
	values := []uint16{1023, 0, 2047, 172, 1811, 992, 1, 2, 3, 4, 5}
	f := NewFrame(values, 0)
	ch := NewChannels()
	ExtractChannels(&f, ch)
	for n, v := range values {
		got, ok := ch.Channel(n)
		require.True(t, ok)
		require.Equal(t, v, got)
	}

	var expected [NumChannels]uint16
	copy(expected[:], values)
	if diff := cmp.Diff(expected, ch.Values()); diff != "" {
		t.Errorf("channels mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractChannelsAtomic(t *testing.T) {
	a := NewFrame([]uint16{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 0)
	b := NewFrame([]uint16{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}, 0)
	ch := NewChannels()
	ExtractChannels(&a, ch)

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for n := 0; n < 1000; n++ {
			if n%2 == 0 {
				ExtractChannels(&b, ch)
			} else {
				ExtractChannels(&a, ch)
			}
		}
		close(done)
	}()
	for {
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
		values := ch.Values()
		for i := 1; i < PayloadChannels; i++ {
			require.Equal(t, values[0], values[i])
		}
	}
}
