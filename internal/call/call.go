// Package call models the audio/video call overlay's state machine.
//
// A call moves strictly Ringing -> Connected -> Ended. Capture devices are
// acquired when dialing and released exactly once when the call ends, no
// matter which path ends it.
package call

import (
	"fmt"
	"time"

	"github.com/neochat/neochat/internal/capture"
	"github.com/neochat/neochat/internal/chat"
	"github.com/neochat/neochat/internal/logger"
)

// State is the call lifecycle stage.
type State int

const (
	StateRinging State = iota
	StateConnected
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateRinging:
		return "ringing"
	case StateConnected:
		return "connected"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Call is one outgoing call. Not safe for concurrent use; it lives inside
// the UI model and is only touched from Update.
type Call struct {
	contact   chat.Contact
	video     bool
	state     State
	muted     bool
	cameraOff bool
	startedAt time.Time
	endedAt   time.Time

	micStream capture.Stream
	camStream capture.Stream

	now func() time.Time
}

// Dial starts a call to the contact, acquiring the microphone and, for
// video calls, the camera. If the camera cannot be opened the microphone
// is released before returning.
func Dial(contact chat.Contact, video bool, mic, cam capture.Device) (*Call, error) {
	micStream, err := mic.Open()
	if err != nil {
		return nil, err
	}

	var camStream capture.Stream
	if video {
		camStream, err = cam.Open()
		if err != nil {
			micStream.Close()
			return nil, err
		}
	}

	logger.Debug("Call: Dialing %s (video=%v)", contact.ID, video)
	return &Call{
		contact:   contact,
		video:     video,
		state:     StateRinging,
		micStream: micStream,
		camStream: camStream,
		now:       time.Now,
	}, nil
}

// Contact returns who is being called.
func (c *Call) Contact() chat.Contact {
	return c.contact
}

// Video reports whether this is a video call.
func (c *Call) Video() bool {
	return c.video
}

// State returns the current lifecycle stage.
func (c *Call) State() State {
	return c.state
}

// Connect transitions a ringing call to connected. Connecting a call that
// is not ringing is a no-op.
func (c *Call) Connect() {
	if c.state != StateRinging {
		return
	}
	c.state = StateConnected
	c.startedAt = c.now()
	logger.Debug("Call: Connected to %s", c.contact.ID)
}

// ToggleMute flips the mute state and returns the new value.
func (c *Call) ToggleMute() bool {
	c.muted = !c.muted
	return c.muted
}

// Muted reports whether the microphone is muted.
func (c *Call) Muted() bool {
	return c.muted
}

// ToggleCamera flips the camera state for video calls and returns whether
// the camera is now off. Audio calls always report the camera off.
func (c *Call) ToggleCamera() bool {
	if !c.video {
		return true
	}
	c.cameraOff = !c.cameraOff
	return c.cameraOff
}

// CameraOff reports whether the camera is disabled.
func (c *Call) CameraOff() bool {
	return !c.video || c.cameraOff
}

// HangUp ends the call and releases all devices. Safe to call from any
// state, including repeatedly.
func (c *Call) HangUp() {
	if c.state == StateEnded {
		return
	}

	if c.micStream != nil {
		c.micStream.Close()
		c.micStream = nil
	}
	if c.camStream != nil {
		c.camStream.Close()
		c.camStream = nil
	}

	c.state = StateEnded
	c.endedAt = c.now()
	logger.Debug("Call: Hung up with %s", c.contact.ID)
}

// Duration returns how long the call has been connected. Zero while
// ringing; frozen once the call ends.
func (c *Call) Duration() time.Duration {
	switch c.state {
	case StateRinging:
		return 0
	case StateConnected:
		return c.now().Sub(c.startedAt)
	default:
		if c.startedAt.IsZero() {
			return 0
		}
		return c.endedAt.Sub(c.startedAt)
	}
}

// StatusLine returns the overlay's status text.
func (c *Call) StatusLine() string {
	switch c.state {
	case StateRinging:
		return "Ringing…"
	case StateConnected:
		d := c.Duration()
		return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return "Call ended"
	}
}
