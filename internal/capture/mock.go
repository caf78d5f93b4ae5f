package capture

import (
	"fmt"
	"sync"
)

// MockDevice is the simulated capture source used by the app. It produces
// synthetic chunks and enforces single-open semantics like real hardware.
type MockDevice struct {
	mu     sync.Mutex
	name   string
	denied bool
	open   bool
	seq    int
}

// NewMicrophone returns the simulated microphone.
func NewMicrophone() *MockDevice {
	return &MockDevice{name: "microphone"}
}

// NewCamera returns the simulated camera.
func NewCamera() *MockDevice {
	return &MockDevice{name: "camera"}
}

// SetDenied toggles whether Open fails with a denial error.
func (d *MockDevice) SetDenied(denied bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.denied = denied
}

// Name implements Device.
func (d *MockDevice) Name() string {
	return d.name
}

// Open implements Device. A device can only be held by one stream at a
// time; closing the stream releases it.
func (d *MockDevice) Open() (Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.denied {
		return nil, Denied(d.name)
	}
	if d.open {
		return nil, fmt.Errorf("%s is already in use", d.name)
	}

	d.open = true
	return &mockStream{device: d}, nil
}

// InUse reports whether a stream currently holds the device.
func (d *MockDevice) InUse() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *MockDevice) release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
}

// mockStream emits small numbered chunks until closed.
type mockStream struct {
	mu     sync.Mutex
	device *MockDevice
	closed bool
}

func (s *mockStream) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("stream is closed")
	}

	s.device.mu.Lock()
	s.device.seq++
	n := s.device.seq
	s.device.mu.Unlock()

	return []byte(fmt.Sprintf("%s-chunk-%d", s.device.name, n)), nil
}

func (s *mockStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.device.release()
	return nil
}
