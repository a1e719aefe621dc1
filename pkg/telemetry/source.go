// Package telemetry holds what telemetry transports share.
package telemetry

import "github.com/robotalks/sbus.go/pkg/sbus"

// Source provides the receiver state to report. sbus.Receiver implements it.
type Source interface {
	Channels() sbus.ChannelReader
	State() sbus.SyncState
	Stats() sbus.Stats
}
