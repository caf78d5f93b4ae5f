package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Header represents the top header bar
type Header struct {
	width       int
	contactName string
	presence    string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetContact sets the active contact name to display
func (h *Header) SetContact(name string) {
	h.contactName = name
}

// SetPresence sets the presence line shown next to the contact name,
// e.g. "online" or "typing…". Empty hides it.
func (h *Header) SetPresence(presence string) {
	h.presence = presence
}

// View renders the header
func (h *Header) View() string {
	// Build the content string (without styling)
	titleText := " neochat"
	var rightText string
	if h.contactName != "" {
		rightText = h.contactName
		if h.presence != "" {
			rightText += " (" + h.presence + ")"
		}
		rightText += " "
	}

	// Calculate padding
	paddingLen := h.width - len(titleText) - len(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	// Render with gradient background
	return h.renderGradient(fullContent, h.presence)
}

// parseHexColor parses a hex color string (e.g., "#10B981") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// presence is used to identify and mute the presence portion of the text.
func (h *Header) renderGradient(content string, presence string) string {
	if len(content) == 0 {
		return ""
	}

	// Get colors from current theme
	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	// Text color from theme
	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	// Find where the presence portion starts (if present)
	presenceStart := -1
	if presence != "" {
		presenceMarker := "(" + presence + ")"
		presenceStart = strings.Index(content, presenceMarker)
	}

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		// Calculate interpolation factor (0.0 to 1.0)
		t := float64(i) / float64(width)

		// Interpolate colors
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		// Determine if this character is in the presence portion
		inPresence := presenceStart >= 0 && i >= presenceStart

		// Bold for the "neochat" title
		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < 8)

		if inPresence {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
