package sbus

import (
	"errors"
	"fmt"
)

var (
	// ErrChecksum indicates an assembled frame failed checksum validation.
	ErrChecksum = errors.New("checksum mismatch")
	// ErrTimeout indicates no complete frame arrived in time.
	ErrTimeout = errors.New("frame timeout")
)

// ChecksumError describes a discarded frame.
type ChecksumError struct {
	Want byte
	Got  byte
}

// Error implements error.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: want 0x%02x, got 0x%02x", e.Want, e.Got)
}

// Unwrap makes errors.Is(err, ErrChecksum) work.
func (e *ChecksumError) Unwrap() error {
	return ErrChecksum
}
