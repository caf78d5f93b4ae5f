// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/neochat/neochat/internal/logger"
)

// notifyFunc matches beeep.Notify's signature so tests can substitute it.
type notifyFunc func(title, message string, icon any) error

var notifier notifyFunc = beeep.Notify

// SetNotifier replaces the notification backend. Used by tests.
func SetNotifier(fn notifyFunc) {
	notifier = fn
}

// ResetNotifier restores the default beeep backend.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Debug("Notification: Sending notification - title=%q, message=%q", title, message)
	// Use empty string for icon - beeep handles platform defaults
	err := notifier(title, message, "")
	if err != nil {
		logger.Debug("Notification: Failed to send notification: %v", err)
	}
	return err
}

// NewMessage sends a notification that a contact has sent a message while
// their conversation is not on screen.
func NewMessage(contactName, preview string) error {
	return Send(contactName, preview)
}

// IncomingCall sends a notification for a ringing call.
func IncomingCall(contactName string) error {
	return Send("NeoChat", contactName+" is calling")
}
