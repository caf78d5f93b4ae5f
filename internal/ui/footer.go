package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType categorizes flash messages for styling
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays up
const DefaultFlashDuration = 4 * time.Second

// FlashMessage is a transient message shown in place of the keybinding hints
type FlashMessage struct {
	Text     string
	Type     FlashType
	Duration time.Duration
	setAt    time.Time
}

// FlashTickMsg drives flash auto-dismissal
type FlashTickMsg time.Time

// FlashTick returns a command that checks flash expiry after a delay
func FlashTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width          int
	bindings       []KeyBinding
	hasContact     bool // Whether a conversation is open
	sidebarFocused bool // Whether sidebar has focus
	selectMode     bool // Whether chat is in message-select mode
	recording      bool // Whether a voice recording is in progress
	onCall         bool // Whether the call overlay is up
	flashMessage   *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "enter", Desc: "open chat"},
			{Key: "s", Desc: "view status"},
			{Key: "i", Desc: "contact info"},
			{Key: "ctrl+p", Desc: "profile"},
			{Key: "ctrl+e", Desc: "theme"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasContact, sidebarFocused, selectMode, recording, onCall bool) {
	f.hasContact = hasContact
	f.sidebarFocused = sidebarFocused
	f.selectMode = selectMode
	f.recording = recording
	f.onCall = onCall
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetFlash shows a transient message with the default duration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a transient message for a custom duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:     text,
		Type:     flashType,
		Duration: d,
		setAt:    time.Now(),
	}
}

// HasFlash returns whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// TickFlash expires the flash once its duration has passed.
// Returns true while the flash is still showing (keep ticking).
func (f *Footer) TickFlash(now time.Time) bool {
	if f.flashMessage == nil {
		return false
	}
	if now.Sub(f.flashMessage.setAt) >= f.flashMessage.Duration {
		f.flashMessage = nil
		return false
	}
	return true
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// flashStyle returns the style for the current flash type
func flashStyle(t FlashType) lipgloss.Style {
	switch t {
	case FlashError:
		return StatusErrorStyle
	case FlashWarning:
		return FooterFlashStyle
	case FlashSuccess:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	default:
		return lipgloss.NewStyle().Foreground(ColorInfo)
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(flashStyle(f.flashMessage.Type).Render(f.flashMessage.Text))
	}

	var active []KeyBinding

	switch {
	case f.onCall:
		active = []KeyBinding{
			{Key: "m", Desc: "mute"},
			{Key: "c", Desc: "camera"},
			{Key: "h", Desc: "hang up"},
		}
	case f.recording:
		active = []KeyBinding{
			{Key: "enter", Desc: "send recording"},
			{Key: "esc", Desc: "discard"},
		}
	case f.selectMode:
		active = []KeyBinding{
			{Key: "ctrl+↑/↓", Desc: "move"},
			{Key: "r", Desc: "reply"},
			{Key: "o", Desc: "open"},
			{Key: "c", Desc: "copy"},
			{Key: "s", Desc: "star"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "done"},
		}
	case !f.sidebarFocused && f.hasContact:
		active = []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "ctrl+a", Desc: "record"},
			{Key: "ctrl+o", Desc: "attach"},
			{Key: "ctrl+v", Desc: "call"},
			{Key: "ctrl+up", Desc: "select msg"},
			{Key: "tab", Desc: "contacts"},
		}
	default:
		for _, b := range f.bindings {
			// Skip conversation-specific bindings when nothing is open
			if (b.Key == "tab" || b.Key == "s" || b.Key == "i") && !f.hasContact {
				continue
			}
			active = append(active, b)
		}
	}

	var parts []string
	for _, b := range active {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
