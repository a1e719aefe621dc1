package sbus

import "sync"

// NumChannels is the number of channels in the store.
const NumChannels = 16

// ChannelReader is read-only access to decoded channels.
type ChannelReader interface {
	// Channel returns the raw magnitude of channel idx.
	// ok is false if idx is out of range.
	Channel(idx int) (val uint16, ok bool)
	// Values returns all channels as one consistent snapshot.
	Values() [NumChannels]uint16
}

// Channels keeps the last decoded channel magnitudes.
// Only the decode pipeline writes to it, readers may run concurrently.
type Channels struct {
	values [NumChannels]uint16
	lock   sync.RWMutex
}

// NewChannels creates a zeroed store.
func NewChannels() *Channels {
	return &Channels{}
}

// Channel implements ChannelReader.
func (c *Channels) Channel(idx int) (uint16, bool) {
	if idx < 0 || idx >= NumChannels {
		return 0, false
	}
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.values[idx], true
}

// Values implements ChannelReader.
func (c *Channels) Values() [NumChannels]uint16 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.values
}

func (c *Channels) update(values [NumChannels]uint16) {
	c.lock.Lock()
	c.values = values
	c.lock.Unlock()
}
