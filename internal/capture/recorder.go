package capture

import (
	"bytes"
	"time"

	"github.com/neochat/neochat/internal/logger"
	"github.com/neochat/neochat/internal/media"
)

// Recorder accumulates microphone chunks into a media blob for a voice
// message. It is driven by the UI tick loop: Start opens the device, each
// Poll pulls one chunk, and Stop or Cancel closes the stream. The device
// is released on every exit path, including a failed Start.
type Recorder struct {
	registry *media.Registry
	stream   Stream
	buf      bytes.Buffer
	start    time.Time
	now      func() time.Time
}

// NewRecorder creates a recorder that stores finished recordings in the
// given registry.
func NewRecorder(registry *media.Registry) *Recorder {
	return &Recorder{
		registry: registry,
		now:      time.Now,
	}
}

// Start opens the device and begins recording. Returns the device's error
// (denial or busy) unchanged; no stream is held on failure.
func (r *Recorder) Start(device Device) error {
	stream, err := device.Open()
	if err != nil {
		logger.Debug("Recorder: Failed to open %s: %v", device.Name(), err)
		return err
	}

	r.stream = stream
	r.buf.Reset()
	r.start = r.now()
	logger.Debug("Recorder: Started recording from %s", device.Name())
	return nil
}

// Recording reports whether a recording is in progress.
func (r *Recorder) Recording() bool {
	return r.stream != nil
}

// Elapsed returns how long the current recording has been running.
func (r *Recorder) Elapsed() time.Duration {
	if r.stream == nil {
		return 0
	}
	return r.now().Sub(r.start)
}

// Poll pulls one chunk from the stream into the recording buffer. A read
// failure aborts the recording and releases the device.
func (r *Recorder) Poll() error {
	if r.stream == nil {
		return nil
	}

	chunk, err := r.stream.Read()
	if err != nil {
		logger.Debug("Recorder: Read failed, aborting: %v", err)
		r.stream.Close()
		r.stream = nil
		r.buf.Reset()
		return err
	}

	r.buf.Write(chunk)
	return nil
}

// Stop finishes the recording, releases the device, and stores the data.
// Returns the media reference and the recorded duration.
func (r *Recorder) Stop() (string, time.Duration, bool) {
	if r.stream == nil {
		return "", 0, false
	}

	r.stream.Close()
	r.stream = nil
	elapsed := r.now().Sub(r.start)

	ref := r.registry.Put(append([]byte(nil), r.buf.Bytes()...), "audio/wav")
	r.buf.Reset()

	logger.Debug("Recorder: Stopped after %v, stored %s", elapsed, ref)
	return ref, elapsed, true
}

// Cancel discards the recording and releases the device. Nothing is stored.
func (r *Recorder) Cancel() {
	if r.stream == nil {
		return
	}

	r.stream.Close()
	r.stream = nil
	r.buf.Reset()
	logger.Debug("Recorder: Cancelled")
}
