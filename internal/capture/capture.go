// Package capture models microphone and camera access for recording
// voice messages and feeding the call overlay.
//
// Devices are simulated: no real hardware is touched. The interfaces are
// still shaped like real device access so denial and release semantics can
// be exercised properly.
package capture

import (
	"github.com/neochat/neochat/internal/errors"
)

// Stream is an open device stream. Close releases the device; a stream
// must be closed on every exit path once opened.
type Stream interface {
	// Read returns the next chunk of captured data.
	Read() ([]byte, error)
	// Close releases the underlying device. Safe to call more than once.
	Close() error
}

// Device is a capture source that can be opened for streaming.
type Device interface {
	// Name identifies the device, e.g. "microphone" or "camera".
	Name() string
	// Open acquires the device. Returns a KindDevice error when access
	// is denied.
	Open() (Stream, error)
}

// Denied returns the error a device reports when the user has not granted
// access to it.
func Denied(name string) error {
	return errors.DeviceDenied(name)
}
