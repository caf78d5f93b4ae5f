package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/neochat/neochat/internal/chat"
	"github.com/neochat/neochat/internal/keys"
)

// =============================================================================
// Modal container tests
// =============================================================================

func TestModal_ShowHide(t *testing.T) {
	m := NewModal()

	if m.IsVisible() {
		t.Error("new modal should not be visible")
	}

	m.Show(NewWelcomeState())
	if !m.IsVisible() {
		t.Error("modal should be visible after Show")
	}

	m.Hide()
	if m.IsVisible() {
		t.Error("modal should not be visible after Hide")
	}
}

func TestModal_SetError(t *testing.T) {
	m := NewModal()
	m.Show(NewLoginState(""))

	m.SetError("something went wrong")
	if m.GetError() != "something went wrong" {
		t.Errorf("unexpected error: %q", m.GetError())
	}

	// Hiding clears the error
	m.Hide()
	if m.GetError() != "" {
		t.Errorf("expected error cleared on Hide, got %q", m.GetError())
	}
}

func TestModal_View_Hidden(t *testing.T) {
	m := NewModal()
	if m.View(80, 24) != "" {
		t.Error("hidden modal should render nothing")
	}
}

func TestModal_View_ShowsTitle(t *testing.T) {
	m := NewModal()
	m.Show(NewConfirmClearState("Alice"))

	view := stripANSI(m.View(80, 24))
	if !strings.Contains(view, "Clear Conversation?") {
		t.Errorf("expected title in view, got: %s", view)
	}
	if !strings.Contains(view, "Alice") {
		t.Errorf("expected contact name in view, got: %s", view)
	}
}

// =============================================================================
// ConfirmDeleteMessageState tests
// =============================================================================

func TestConfirmDeleteMessageState_Render(t *testing.T) {
	state := NewConfirmDeleteMessageState("see you at 8?")

	body := stripANSI(state.Render())
	if !strings.Contains(body, "see you at 8?") {
		t.Errorf("expected preview in body, got: %s", body)
	}
	if !strings.Contains(body, "keep their snapshot") {
		t.Errorf("expected quote warning in body, got: %s", body)
	}
}

func TestConfirmDeleteMessageState_TruncatesLongPreview(t *testing.T) {
	long := strings.Repeat("x", 100)
	state := NewConfirmDeleteMessageState(long)

	body := stripANSI(state.Render())
	if strings.Contains(body, long) {
		t.Error("expected long preview to be truncated")
	}
	if !strings.Contains(body, "…") {
		t.Error("expected ellipsis after truncation")
	}
}

// =============================================================================
// LoginState tests
// =============================================================================

func TestLoginState_Validate(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{"valid", "me@example.com", "hunter2", ""},
		{"bad email", "not-an-email", "hunter2", "Enter a valid email address"},
		{"short password", "me@example.com", "abc", "Password must be at least 4 characters"},
		{"empty", "", "", "Enter a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewLoginState(tt.email)
			state.password = tt.password
			if got := state.Validate(); got != tt.want {
				t.Errorf("Validate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginState_GetEmail_Trims(t *testing.T) {
	state := NewLoginState("  me@example.com  ")
	if state.GetEmail() != "me@example.com" {
		t.Errorf("expected trimmed email, got %q", state.GetEmail())
	}
}

// =============================================================================
// ProfileState tests
// =============================================================================

func TestProfileState_Getters(t *testing.T) {
	state := NewProfileState("  Ada  ", "ada@example.com", " Debugging ")

	if state.GetName() != "Ada" {
		t.Errorf("expected trimmed name, got %q", state.GetName())
	}
	if state.GetEmail() != "ada@example.com" {
		t.Errorf("unexpected email: %q", state.GetEmail())
	}
	if state.GetAbout() != "Debugging" {
		t.Errorf("expected trimmed about, got %q", state.GetAbout())
	}
}

// =============================================================================
// StatusViewerState tests
// =============================================================================

func TestStatusViewerState_Render(t *testing.T) {
	contact := chat.Contact{
		Name:        "Neo",
		About:       "Out of office",
		HasStatus:   true,
		StatusImage: "sunset.jpg",
	}
	state := NewStatusViewerState(contact)

	if !strings.Contains(state.Title(), "Neo") {
		t.Errorf("expected contact name in title, got %q", state.Title())
	}

	body := stripANSI(state.Render())
	if !strings.Contains(body, "sunset.jpg") {
		t.Errorf("expected status image in body, got: %s", body)
	}
	if !strings.Contains(body, "Out of office") {
		t.Errorf("expected about caption in body, got: %s", body)
	}
}

func TestStatusViewerState_Render_NoStatus(t *testing.T) {
	state := NewStatusViewerState(chat.Contact{Name: "Ben"})

	body := stripANSI(state.Render())
	if !strings.Contains(body, "No status update right now.") {
		t.Errorf("expected empty-status placeholder, got: %s", body)
	}
}

// =============================================================================
// MediaViewerState tests
// =============================================================================

func TestMediaViewerState_Render(t *testing.T) {
	state := NewMediaViewerState("vacation.png", "image/png", 42)

	if state.Title() != "Attachment" {
		t.Errorf("unexpected title %q", state.Title())
	}

	body := stripANSI(state.Render())
	if !strings.Contains(body, "vacation.png") {
		t.Errorf("expected caption in body, got: %s", body)
	}
	if !strings.Contains(body, "image/png") {
		t.Errorf("expected media type in body, got: %s", body)
	}
	if !strings.Contains(body, "42 KB") {
		t.Errorf("expected size in body, got: %s", body)
	}
}

// =============================================================================
// ContactInfoState tests
// =============================================================================

func TestContactInfoState_Render(t *testing.T) {
	contact := chat.Contact{
		Name:  "Alice",
		Email: "alice@example.com",
		About: "Busy",
	}
	state := NewContactInfoState(contact)

	body := stripANSI(state.Render())
	for _, want := range []string{"Alice", "alice@example.com", "Busy"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body, got: %s", want, body)
		}
	}
	if strings.Contains(body, "generated by AI") {
		t.Error("AI note should not appear for a human contact")
	}
}

func TestContactInfoState_Render_AI(t *testing.T) {
	state := NewContactInfoState(chat.Contact{Name: "Neo", AI: true})

	body := stripANSI(state.Render())
	if !strings.Contains(body, "AI") {
		t.Errorf("expected AI note in body, got: %s", body)
	}
}

// =============================================================================
// AttachImageState tests
// =============================================================================

func TestAttachImageState_GetPath(t *testing.T) {
	state := NewAttachImageState()
	state.Input.SetValue("  ~/Pictures/cat.png  ")

	if state.GetPath() != "~/Pictures/cat.png" {
		t.Errorf("expected trimmed path, got %q", state.GetPath())
	}
}

func TestAttachImageState_Update_TypesIntoInput(t *testing.T) {
	state := NewAttachImageState()

	newState, _ := state.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	attach := newState.(*AttachImageState)
	if attach.GetPath() != "a" {
		t.Errorf("expected typed character in input, got %q", attach.GetPath())
	}
}

// =============================================================================
// EmojiPickerState tests
// =============================================================================

func TestEmojiPickerState_Navigation(t *testing.T) {
	state := NewEmojiPickerState()

	if state.Selected() != emojiChoices[0] {
		t.Errorf("expected first emoji selected, got %q", state.Selected())
	}

	rightMsg := tea.KeyPressMsg{Code: 0, Text: keys.Right}
	newState, _ := state.Update(rightMsg)
	state = newState.(*EmojiPickerState)
	if state.Selected() != emojiChoices[1] {
		t.Errorf("expected second emoji after right, got %q", state.Selected())
	}

	downMsg := tea.KeyPressMsg{Code: 0, Text: keys.Down}
	newState, _ = state.Update(downMsg)
	state = newState.(*EmojiPickerState)
	if state.Selected() != emojiChoices[1+emojiGridColumns] {
		t.Errorf("expected down to jump a full row, got %q", state.Selected())
	}

	upMsg := tea.KeyPressMsg{Code: 0, Text: keys.Up}
	newState, _ = state.Update(upMsg)
	state = newState.(*EmojiPickerState)
	if state.Selected() != emojiChoices[1] {
		t.Errorf("expected up to return to the first row, got %q", state.Selected())
	}
}

func TestEmojiPickerState_Navigation_Clamps(t *testing.T) {
	state := NewEmojiPickerState()

	// Left and up at the origin are no-ops
	leftMsg := tea.KeyPressMsg{Code: 0, Text: keys.Left}
	newState, _ := state.Update(leftMsg)
	state = newState.(*EmojiPickerState)
	if state.Selected() != emojiChoices[0] {
		t.Errorf("expected left at origin to stay put, got %q", state.Selected())
	}

	upMsg := tea.KeyPressMsg{Code: 0, Text: keys.Up}
	newState, _ = state.Update(upMsg)
	state = newState.(*EmojiPickerState)
	if state.Selected() != emojiChoices[0] {
		t.Errorf("expected up at origin to stay put, got %q", state.Selected())
	}

	// Right clamps at the last emoji
	rightMsg := tea.KeyPressMsg{Code: 0, Text: keys.Right}
	for range len(emojiChoices) + 5 {
		newState, _ = state.Update(rightMsg)
		state = newState.(*EmojiPickerState)
	}
	if state.Selected() != emojiChoices[len(emojiChoices)-1] {
		t.Errorf("expected right to clamp at last emoji, got %q", state.Selected())
	}
}

// =============================================================================
// ThemePickerState tests
// =============================================================================

func TestThemePickerState_StartsAtCurrentTheme(t *testing.T) {
	SetTheme(ThemeNord)
	defer SetTheme(DefaultTheme)

	state := NewThemePickerState()
	if state.Selected() != ThemeNord {
		t.Errorf("expected picker to start at active theme, got %q", state.Selected())
	}
}

func TestThemePickerState_Navigation(t *testing.T) {
	SetTheme(DefaultTheme)
	state := NewThemePickerState()
	names := ThemeNames()

	downMsg := tea.KeyPressMsg{Code: 0, Text: keys.Down}
	newState, _ := state.Update(downMsg)
	state = newState.(*ThemePickerState)
	if state.Selected() != names[1] {
		t.Errorf("expected second theme after down, got %q", state.Selected())
	}

	upMsg := tea.KeyPressMsg{Code: 0, Text: keys.Up}
	newState, _ = state.Update(upMsg)
	state = newState.(*ThemePickerState)
	if state.Selected() != names[0] {
		t.Errorf("expected first theme after up, got %q", state.Selected())
	}

	// Up at the top clamps
	newState, _ = state.Update(upMsg)
	state = newState.(*ThemePickerState)
	if state.Selected() != names[0] {
		t.Errorf("expected up at top to stay put, got %q", state.Selected())
	}
}

func TestThemePickerState_Render_MarksCurrent(t *testing.T) {
	SetTheme(DefaultTheme)
	state := NewThemePickerState()

	body := stripANSI(state.Render())
	if !strings.Contains(body, "(current)") {
		t.Errorf("expected current-theme marker, got: %s", body)
	}
}
