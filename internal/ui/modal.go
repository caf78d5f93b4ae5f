package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/neochat/neochat/internal/chat"
	"github.com/neochat/neochat/internal/keys"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()

	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// =============================================================================
// WelcomeState - State for the first-time welcome modal
// =============================================================================

type WelcomeState struct{}

func (*WelcomeState) modalState() {}

func (s *WelcomeState) Title() string { return "Welcome to NeoChat!" }

func (s *WelcomeState) Help() string {
	return "Press Enter or Esc to continue"
}

func (s *WelcomeState) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginBottom(1).
		Render(s.Title())

	intro := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(50).
		Render("NeoChat is a terminal messenger. Pick a contact, say hi, and they'll answer — Neo runs on a real language model when an API key is set.")

	gettingStarted := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Getting started:")

	shortcuts := lipgloss.NewStyle().
		Foreground(ColorText).
		Render("  ↑/↓   Browse contacts\n  Enter Open a conversation\n  Tab   Switch between panes")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		intro,
		gettingStarted,
		shortcuts,
		help,
	)
}

func (s *WelcomeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewWelcomeState creates a new WelcomeState
func NewWelcomeState() *WelcomeState {
	return &WelcomeState{}
}

// =============================================================================
// ConfirmDeleteMessageState - confirm deletion of a single message
// =============================================================================

type ConfirmDeleteMessageState struct {
	Preview string
}

func (*ConfirmDeleteMessageState) modalState() {}

func (s *ConfirmDeleteMessageState) Title() string { return "Delete Message?" }

func (s *ConfirmDeleteMessageState) Help() string {
	return "y/Enter: delete  n/Esc: cancel"
}

func (s *ConfirmDeleteMessageState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	preview := s.Preview
	if len(preview) > 60 {
		preview = preview[:60] + "…"
	}
	body := lipgloss.NewStyle().
		Foreground(ColorText).
		Render("This will remove the message for you:\n\n  " + preview)

	warning := lipgloss.NewStyle().
		Foreground(ColorWarning).
		MarginTop(1).
		Render("Replies quoting it keep their snapshot.")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, body, warning, help)
}

func (s *ConfirmDeleteMessageState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewConfirmDeleteMessageState creates a new ConfirmDeleteMessageState
func NewConfirmDeleteMessageState(preview string) *ConfirmDeleteMessageState {
	return &ConfirmDeleteMessageState{Preview: preview}
}

// =============================================================================
// ConfirmClearState - confirm clearing a whole conversation
// =============================================================================

type ConfirmClearState struct {
	ContactName string
}

func (*ConfirmClearState) modalState() {}

func (s *ConfirmClearState) Title() string { return "Clear Conversation?" }

func (s *ConfirmClearState) Help() string {
	return "y/Enter: clear  n/Esc: cancel"
}

func (s *ConfirmClearState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	body := lipgloss.NewStyle().
		Foreground(ColorText).
		Render(fmt.Sprintf("Remove every message in the conversation with %s?", s.ContactName))

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *ConfirmClearState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewConfirmClearState creates a new ConfirmClearState
func NewConfirmClearState(contactName string) *ConfirmClearState {
	return &ConfirmClearState{ContactName: contactName}
}

// =============================================================================
// ProfileState - edit your own profile (huh form)
// =============================================================================

type ProfileState struct {
	form  *huh.Form
	name  string
	email string
	about string
}

func (*ProfileState) modalState() {}

func (s *ProfileState) Title() string { return "Your Profile" }

func (s *ProfileState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *ProfileState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *ProfileState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// GetName returns the entered display name
func (s *ProfileState) GetName() string { return strings.TrimSpace(s.name) }

// GetEmail returns the entered email
func (s *ProfileState) GetEmail() string { return strings.TrimSpace(s.email) }

// GetAbout returns the entered about line
func (s *ProfileState) GetAbout() string { return strings.TrimSpace(s.about) }

// NewProfileState creates a new ProfileState pre-filled with current values
func NewProfileState(name, email, about string) *ProfileState {
	s := &ProfileState{name: name, email: email, about: about}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Placeholder("How contacts see you").
			CharLimit(ModalInputCharLimit).
			Value(&s.name),
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			CharLimit(ModalInputCharLimit).
			Value(&s.email),
		huh.NewInput().
			Title("About").
			Placeholder("Hey there! I am using NeoChat.").
			CharLimit(ModalInputCharLimit).
			Value(&s.about),
	)).WithTheme(modalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth)

	initHuhForm(s.form)
	return s
}

// =============================================================================
// LoginState - login form (huh). Validation blocks, nothing is enforced.
// =============================================================================

type LoginState struct {
	form     *huh.Form
	email    string
	password string
}

func (*LoginState) modalState() {}

func (s *LoginState) Title() string { return "Sign In" }

func (s *LoginState) Help() string {
	return "Tab: next field  Enter: sign in  Esc: skip"
}

func (s *LoginState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *LoginState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// GetEmail returns the entered email
func (s *LoginState) GetEmail() string { return strings.TrimSpace(s.email) }

// Validate checks the form inputs, returning a human-readable problem or ""
func (s *LoginState) Validate() string {
	if !strings.Contains(s.email, "@") {
		return "Enter a valid email address"
	}
	if len(s.password) < 4 {
		return "Password must be at least 4 characters"
	}
	return ""
}

// NewLoginState creates a new LoginState
func NewLoginState(email string) *LoginState {
	s := &LoginState{email: email}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			CharLimit(ModalInputCharLimit).
			Value(&s.email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			CharLimit(ModalInputCharLimit).
			Value(&s.password),
	)).WithTheme(modalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth)

	initHuhForm(s.form)
	return s
}

// =============================================================================
// StatusViewerState - full-screen-ish view of a contact's status update
// =============================================================================

type StatusViewerState struct {
	Contact chat.Contact
}

func (*StatusViewerState) modalState() {}

func (s *StatusViewerState) Title() string { return s.Contact.Name + "'s Status" }

func (s *StatusViewerState) Help() string {
	return "Press Enter or Esc to close"
}

func (s *StatusViewerState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	var body string
	if s.Contact.HasStatus {
		frame := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(1, 2).
			Render("🖼  " + s.Contact.StatusImage)
		caption := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1).
			Render(s.Contact.About)
		body = lipgloss.JoinVertical(lipgloss.Center, frame, caption)
	} else {
		body = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No status update right now.")
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *StatusViewerState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewStatusViewerState creates a new StatusViewerState
func NewStatusViewerState(contact chat.Contact) *StatusViewerState {
	return &StatusViewerState{Contact: contact}
}

// =============================================================================
// MediaViewerState - details card for an audio or image attachment
// =============================================================================

type MediaViewerState struct {
	Caption   string
	MediaType string
	SizeKB    int
}

func (*MediaViewerState) modalState() {}

func (s *MediaViewerState) Title() string { return "Attachment" }

func (s *MediaViewerState) Help() string {
	return "Press Enter or Esc to close"
}

func (s *MediaViewerState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Render(s.Caption)
	details := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render(fmt.Sprintf("%s · %d KB", s.MediaType, s.SizeKB))
	body := lipgloss.JoinVertical(lipgloss.Center, frame, details)

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *MediaViewerState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewMediaViewerState creates a new MediaViewerState
func NewMediaViewerState(caption, mediaType string, sizeKB int) *MediaViewerState {
	return &MediaViewerState{Caption: caption, MediaType: mediaType, SizeKB: sizeKB}
}

// =============================================================================
// ContactInfoState - contact profile details
// =============================================================================

type ContactInfoState struct {
	Contact chat.Contact
}

func (*ContactInfoState) modalState() {}

func (s *ContactInfoState) Title() string { return "Contact Info" }

func (s *ContactInfoState) Help() string {
	return "Press Enter or Esc to close"
}

func (s *ContactInfoState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	labelStyle := lipgloss.NewStyle().Foreground(ColorTextMuted).Width(8)
	valueStyle := lipgloss.NewStyle().Foreground(ColorText)

	rows := []string{
		labelStyle.Render("Name") + valueStyle.Render(s.Contact.Name),
		labelStyle.Render("Email") + valueStyle.Render(s.Contact.Email),
		labelStyle.Render("About") + valueStyle.Render(s.Contact.About),
	}
	if s.Contact.AI {
		rows = append(rows, labelStyle.Render("")+TypingStyle.Render("Replies generated by AI"))
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		strings.Join(rows, "\n"),
		help,
	)
}

func (s *ContactInfoState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewContactInfoState creates a new ContactInfoState
func NewContactInfoState(contact chat.Contact) *ContactInfoState {
	return &ContactInfoState{Contact: contact}
}

// =============================================================================
// AttachImageState - attach an image by file path
// =============================================================================

type AttachImageState struct {
	Input textinput.Model
}

func (*AttachImageState) modalState() {}

func (s *AttachImageState) Title() string { return "Attach Image" }

func (s *AttachImageState) Help() string {
	return "Enter: attach  Esc: cancel"
}

func (s *AttachImageState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	prompt := lipgloss.NewStyle().
		Foreground(ColorText).
		Render("Path to an image file:")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, prompt, s.Input.View(), help)
}

func (s *AttachImageState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// GetPath returns the entered file path
func (s *AttachImageState) GetPath() string {
	return strings.TrimSpace(s.Input.Value())
}

// NewAttachImageState creates a new AttachImageState
func NewAttachImageState() *AttachImageState {
	ti := textinput.New()
	ti.Placeholder = "~/Pictures/photo.png"
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.Focus()
	return &AttachImageState{Input: ti}
}

// =============================================================================
// EmojiPickerState - quick emoji grid for the composer
// =============================================================================

// emojiChoices is the fixed picker palette
var emojiChoices = []string{
	"😀", "😂", "😊", "😍", "🤔", "😅", "😎", "🥳",
	"👍", "👎", "🙏", "👏", "💪", "🤝", "✌️", "🤞",
	"❤️", "🔥", "✨", "🎉", "💯", "⚡", "🌟", "☕",
}

// emojiGridColumns is the picker grid width
const emojiGridColumns = 8

type EmojiPickerState struct {
	selectedIdx int
}

func (*EmojiPickerState) modalState() {}

func (s *EmojiPickerState) Title() string { return "Emoji" }

func (s *EmojiPickerState) Help() string {
	return "←/→/↑/↓: move  Enter: insert  Esc: cancel"
}

func (s *EmojiPickerState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	var rows []string
	for start := 0; start < len(emojiChoices); start += emojiGridColumns {
		end := start + emojiGridColumns
		if end > len(emojiChoices) {
			end = len(emojiChoices)
		}
		var cells []string
		for i := start; i < end; i++ {
			cell := " " + emojiChoices[i] + " "
			if i == s.selectedIdx {
				cell = SidebarSelectedStyle.Render(emojiChoices[i])
			}
			cells = append(cells, cell)
		}
		rows = append(rows, strings.Join(cells, ""))
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"), help)
}

func (s *EmojiPickerState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch keyMsg.String() {
	case keys.Left:
		if s.selectedIdx > 0 {
			s.selectedIdx--
		}
	case keys.Right:
		if s.selectedIdx < len(emojiChoices)-1 {
			s.selectedIdx++
		}
	case keys.Up:
		if s.selectedIdx-emojiGridColumns >= 0 {
			s.selectedIdx -= emojiGridColumns
		}
	case keys.Down:
		if s.selectedIdx+emojiGridColumns < len(emojiChoices) {
			s.selectedIdx += emojiGridColumns
		}
	}
	return s, nil
}

// Selected returns the emoji under the cursor
func (s *EmojiPickerState) Selected() string {
	return emojiChoices[s.selectedIdx]
}

// NewEmojiPickerState creates a new EmojiPickerState
func NewEmojiPickerState() *EmojiPickerState {
	return &EmojiPickerState{}
}

// =============================================================================
// ThemePickerState - choose a color theme
// =============================================================================

type ThemePickerState struct {
	names       []ThemeName
	selectedIdx int
}

func (*ThemePickerState) modalState() {}

func (s *ThemePickerState) Title() string { return "Theme" }

func (s *ThemePickerState) Help() string {
	return "↑/↓: move  Enter: apply  Esc: cancel"
}

func (s *ThemePickerState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	var rows []string
	for i, name := range s.names {
		theme := BuiltinThemes[name]
		label := theme.Name
		if name == CurrentThemeName() {
			label += " (current)"
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Primary)).Render("■ ")
		if i == s.selectedIdx {
			rows = append(rows, FooterKeyStyle.Render("> ")+swatch+ChatMessageStyle.Render(label))
		} else {
			rows = append(rows, "  "+swatch+SidebarPreviewStyle.Render(label))
		}
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"), help)
}

func (s *ThemePickerState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch keyMsg.String() {
	case keys.Up:
		if s.selectedIdx > 0 {
			s.selectedIdx--
		}
	case keys.Down:
		if s.selectedIdx < len(s.names)-1 {
			s.selectedIdx++
		}
	}
	return s, nil
}

// Selected returns the theme name under the cursor
func (s *ThemePickerState) Selected() ThemeName {
	return s.names[s.selectedIdx]
}

// NewThemePickerState creates a new ThemePickerState starting at the active theme
func NewThemePickerState() *ThemePickerState {
	s := &ThemePickerState{names: ThemeNames()}
	current := CurrentThemeName()
	for i, name := range s.names {
		if name == current {
			s.selectedIdx = i
			break
		}
	}
	return s
}
