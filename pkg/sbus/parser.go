package sbus

// Parser is the decode pipeline: bytes in, validated channels out.
// It must be driven by a single goroutine. Channels are exposed read-only.
type Parser struct {
	assembler Assembler
	channels  Channels
	locked    bool
	stats     Stats
}

// Stats counts what the parser has seen.
type Stats struct {
	// Bytes is the total number of bytes parsed.
	Bytes uint64
	// Discarded is the number of bytes dropped while waiting for StartByte.
	Discarded uint64
	// Frames is the number of valid frames decoded.
	Frames uint64
	// BadFrames is the number of frames dropped on checksum mismatch.
	BadFrames uint64
	// Timeouts is the number of times the driver reported a stale stream.
	Timeouts uint64
}

// SyncState indicates the state of the byte stream.
type SyncState int

const (
	// SyncStateSyncing means the stream is not aligned, waiting for StartByte.
	SyncStateSyncing SyncState = 0
	// SyncStateLocked means the last assembled frame was valid.
	SyncStateLocked SyncState = 0x01
	// SyncStateReceiving means a partial frame is buffered.
	SyncStateReceiving SyncState = 0x02
)

// IsLocked indicates the channels reflect a recent valid frame.
func (s SyncState) IsLocked() bool {
	return s&SyncStateLocked != 0
}

// IsReceiving indicates it's in the middle of a frame.
func (s SyncState) IsReceiving() bool {
	return s&SyncStateReceiving != 0
}

// String implements fmt.Stringer.
func (s SyncState) String() string {
	switch s {
	case SyncStateSyncing:
		return "syncing"
	case SyncStateLocked:
		return "locked"
	case SyncStateReceiving:
		return "receiving"
	case SyncStateLocked | SyncStateReceiving:
		return "locked+receiving"
	}
	return "unknown"
}

// TimerAction defines what to do with the frame timer.
type TimerAction int

const (
	// TimerNoChange indicates keep the timer as-is.
	TimerNoChange TimerAction = iota
	// TimerRestart to restart the timer.
	TimerRestart
	// TimerStop to stop/cancel the timer.
	TimerStop
)

// ParseResult indicates the result after one parsing step.
type ParseResult struct {
	State SyncState
	// Ready is set when a complete frame was assembled by this step.
	Ready bool
	// Err is set when the assembled frame was discarded.
	Err error
}

// Updated indicates the channels were replaced by this step.
func (r ParseResult) Updated() bool {
	return r.Ready && r.Err == nil
}

// WhatAboutTimer decides what to do with the frame timer.
// The timer runs while a frame is in flight and while locked, so both a
// stalled partial frame and a lost link expire it.
func (r ParseResult) WhatAboutTimer() TimerAction {
	switch {
	case r.State.IsReceiving(), r.Ready && r.State.IsLocked():
		return TimerRestart
	case r.State.IsLocked():
		return TimerNoChange
	}
	return TimerStop
}

// Channels returns read-only access to decoded channels.
func (p *Parser) Channels() ChannelReader {
	return &p.channels
}

// Stats returns the counters.
func (p *Parser) Stats() Stats {
	return p.stats
}

// State gets the current sync state.
func (p *Parser) State() SyncState {
	var s SyncState
	if p.locked {
		s |= SyncStateLocked
	}
	if p.assembler.Len() > 0 {
		s |= SyncStateReceiving
	}
	return s
}

// Buffered returns the number of bytes of the partial frame.
func (p *Parser) Buffered() int {
	return p.assembler.Len()
}

// Reset drops any partial frame and the lock.
// Decoded channels are kept.
func (p *Parser) Reset() (pr ParseResult) {
	p.assembler.Reset()
	p.locked = false
	pr.State = p.State()
	return
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	p.stats.Bytes++
	if p.assembler.Len() == 0 && b != StartByte {
		p.stats.Discarded++
	}
	if p.assembler.ProcessByte(b) {
		pr.Ready = true
		pr.Err = p.frameReady()
	}
	pr.State = p.State()
	return
}

// Timeout notifies the parser the frame timer expired.
func (p *Parser) Timeout() (pr ParseResult) {
	if p.locked || p.assembler.Len() > 0 {
		p.stats.Timeouts++
		pr.Err = ErrTimeout
	}
	p.assembler.Reset()
	p.locked = false
	pr.State = p.State()
	return
}

func (p *Parser) frameReady() error {
	f, ok := p.assembler.TakeFrame()
	if !ok {
		return nil
	}
	if !ValidateChecksum(&f) {
		p.stats.BadFrames++
		p.locked = false
		return &ChecksumError{Want: Checksum(f[:ChecksumOffset]), Got: f[ChecksumOffset]}
	}
	ExtractChannels(&f, &p.channels)
	p.stats.Frames++
	p.locked = true
	return nil
}
