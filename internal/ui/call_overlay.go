package ui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/neochat/neochat/internal/call"
)

// RenderCallOverlay renders the active call as a centered overlay.
// Returns "" when no call is in progress.
func RenderCallOverlay(c *call.Call, screenWidth, screenHeight int) string {
	if c == nil {
		return ""
	}

	kind := "Voice call"
	if c.Video() {
		kind = "Video call"
	}

	var lines []string
	lines = append(lines, CallStatusStyle.Render(kind))
	lines = append(lines, CallNameStyle.Render(c.Contact().Name))
	lines = append(lines, CallStatusStyle.Render(c.StatusLine()))

	var toggles []string
	if c.Muted() {
		toggles = append(toggles, RecordingStyle.Render("mic off"))
	} else {
		toggles = append(toggles, CallHintStyle.Render("mic on"))
	}
	if c.Video() {
		if c.CameraOff() {
			toggles = append(toggles, RecordingStyle.Render("camera off"))
		} else {
			toggles = append(toggles, CallHintStyle.Render("camera on"))
		}
	}
	lines = append(lines, strings.Join(toggles, "  "))
	lines = append(lines, "")
	lines = append(lines, CallHintStyle.Render("m mute  c camera  h hang up"))

	box := CallBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}
