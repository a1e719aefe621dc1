package sbus

import (
	"context"
	"io"
	"sync"
	"time"
)

// ChannelsHandler is called when a valid frame updated the channels.
type ChannelsHandler interface {
	HandleChannels(context.Context, ChannelReader)
}

// HandleChannelsFunc is func type of ChannelsHandler.
type HandleChannelsFunc func(context.Context, ChannelReader)

// HandleChannels implements ChannelsHandler.
func (f HandleChannelsFunc) HandleChannels(ctx context.Context, ch ChannelReader) {
	f(ctx, ch)
}

// StateNotifier is called when stream state changed.
type StateNotifier interface {
	StateChanged(context.Context, SyncState)
}

// StateChangedFunc is func type of StateNotifier.
type StateChangedFunc func(context.Context, SyncState)

// StateChanged implements StateNotifier.
func (f StateChangedFunc) StateChanged(ctx context.Context, state SyncState) {
	f(ctx, state)
}

// ErrorHandler is called for a frame dropped on checksum mismatch
// and for a frame timeout.
type ErrorHandler interface {
	HandleError(context.Context, error)
}

// HandleErrorFunc is func type of ErrorHandler.
type HandleErrorFunc func(context.Context, error)

// HandleError implements ErrorHandler.
func (f HandleErrorFunc) HandleError(ctx context.Context, err error) {
	f(ctx, err)
}

// DefaultTimeout is the default frame timeout.
// SBUS sends a frame every 7 to 14 ms.
const DefaultTimeout = 100 * time.Millisecond

// Receiver reads a byte stream and keeps the decoded channels.
type Receiver struct {
	Reader   io.Reader
	Handler  ChannelsHandler
	Notifier StateNotifier
	Errors   ErrorHandler
	Timeout  time.Duration

	state SyncState
	stats Stats
	lock  sync.RWMutex

	frameTimer <-chan time.Time
	parser     Parser
}

// NewReceiver creates a Receiver.
func NewReceiver(r io.Reader) *Receiver {
	return &Receiver{
		Reader:  r,
		Timeout: DefaultTimeout,
	}
}

// State gets the state.
func (r *Receiver) State() SyncState {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.state
}

// Stats gets a copy of parser counters.
func (r *Receiver) Stats() Stats {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.stats
}

// Channels returns read-only access to decoded channels.
func (r *Receiver) Channels() ChannelReader {
	return r.parser.Channels()
}

// Run processes the stream in the background.
func (r *Receiver) Run(ctx context.Context) error {
	r.applyParseResult(ctx, r.parser.Reset())

	byteCh, errCh := make(chan byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go r.readLoop(subCtx, byteCh, errCh)
	for {
		select {
		case b := <-byteCh:
			r.applyParseResult(ctx, r.parser.Parse(b))
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return ctx.Err()
		case <-r.frameTimer:
			r.frameTimer = nil
			r.applyParseResult(ctx, r.parser.Timeout())
		}
	}
}

func (r *Receiver) readLoop(ctx context.Context, byteCh chan byte, errCh chan error) {
	buf := make([]byte, 1)
	for {
		n, err := r.Reader.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		if n == 0 {
			continue
		}
		select {
		case byteCh <- buf[0]:
		case <-ctx.Done():
			return
		}
	}
}

func (r *Receiver) applyParseResult(ctx context.Context, pr ParseResult) {
	var notifier StateNotifier
	r.lock.Lock()
	if r.state != pr.State {
		r.state = pr.State
		notifier = r.Notifier
	}
	r.stats = r.parser.Stats()
	r.lock.Unlock()

	switch pr.WhatAboutTimer() {
	case TimerRestart:
		timeout := r.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		r.frameTimer = time.After(timeout)
	case TimerStop:
		r.frameTimer = nil
	}

	if notifier != nil {
		notifier.StateChanged(ctx, pr.State)
	}
	if pr.Err != nil {
		if h := r.Errors; h != nil {
			h.HandleError(ctx, pr.Err)
		}
	}
	if pr.Updated() {
		if h := r.Handler; h != nil {
			h.HandleChannels(ctx, r.parser.Channels())
		}
	}
}
