// Package env provides identity of the host running a receiver.
package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID scopes the hashed machine ID to this application.
const AppID = "sbus.go"

// MachineID retrieves an ID identifying the machine.
// The raw machine ID is never exposed, it's hashed with AppID.
// Falls back to the hostname when the machine ID is unavailable.
func MachineID() string {
	id, err := machineid.ProtectedID(AppID)
	if err == nil {
		return id[:16]
	}
	glog.Warningf("machine id unavailable: %v", err)
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "unknown"
}
