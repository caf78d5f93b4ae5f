package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/neochat/neochat/internal/chat"
)

// TypingTickMsg advances the typing indicator animation
type TypingTickMsg time.Time

// typingFrames cycle while the contact's reply is pending
var typingFrames = []string{"·", "··", "···"}

// typingSlowAfter is how long a reply stays pending before the indicator
// starts showing the wait in seconds
const typingSlowAfter = 3 * time.Second

// Chat represents the right panel with the conversation view
type Chat struct {
	viewport    viewport.Model
	input       textarea.Model
	width       int
	height      int
	focused     bool
	hasThread   bool
	contactName string
	contactAI   bool
	presented   []chat.Presented
	typing      bool
	typingFrame int
	typingFor   time.Duration

	// Message-select mode
	selectMode  bool
	selectedIdx int

	// Reply composition context, shown above the input
	replyLabel string

	// Voice recording banner
	recording     bool
	recordElapsed time.Duration
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = MessageCharLimit
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	// Chat panel height (excluding input area which is separate)
	chatPanelHeight := height - InputTotalHeight

	innerWidth := ctx.InnerWidth(width)
	viewportHeight := ctx.InnerHeight(chatPanelHeight)

	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)

	// Input width accounts for its own border AND padding
	inputInnerWidth := ctx.InnerWidth(width) - InputPaddingWidth
	c.input.SetWidth(inputInnerWidth)

	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetThread sets the open conversation
func (c *Chat) SetThread(contact chat.Contact, presented []chat.Presented) {
	c.contactName = contact.Name
	c.contactAI = contact.AI
	c.presented = presented
	c.hasThread = true
	if c.selectedIdx >= len(presented) {
		c.selectMode = false
	}
	c.updateContent()
}

// ClearThread closes the conversation view
func (c *Chat) ClearThread() {
	c.contactName = ""
	c.contactAI = false
	c.presented = nil
	c.hasThread = false
	c.typing = false
	c.typingFor = 0
	c.selectMode = false
	c.replyLabel = ""
	c.updateContent()
}

// HasThread returns whether a conversation is open
func (c *Chat) HasThread() bool {
	return c.hasThread
}

// SetTyping toggles the typing indicator
func (c *Chat) SetTyping(typing bool) {
	c.typing = typing
	if !typing {
		c.typingFor = 0
	}
	c.updateContent()
}

// SetTypingElapsed records how long the contact has been typing. Long
// waits get a seconds counter next to the indicator.
func (c *Chat) SetTypingElapsed(elapsed time.Duration) {
	c.typingFor = elapsed
}

// IsTyping returns whether the typing indicator is showing
func (c *Chat) IsTyping() bool {
	return c.typing
}

// TypingTick returns a command that advances the typing animation
func TypingTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return TypingTickMsg(t)
	})
}

// GetInput returns the current input text
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// InsertInput appends text at the end of the input (emoji picker)
func (c *Chat) InsertInput(text string) {
	c.input.SetValue(c.input.Value() + text)
}

// SetReplyLabel shows the quoted snapshot banner above the input
func (c *Chat) SetReplyLabel(label string) {
	c.replyLabel = label
}

// ClearReplyLabel hides the reply banner
func (c *Chat) ClearReplyLabel() {
	c.replyLabel = ""
}

// SetRecording toggles the voice recording banner
func (c *Chat) SetRecording(recording bool, elapsed time.Duration) {
	c.recording = recording
	c.recordElapsed = elapsed
}

// EnterSelectMode starts message selection at the newest message
func (c *Chat) EnterSelectMode() {
	if len(c.presented) == 0 {
		return
	}
	c.selectMode = true
	c.selectedIdx = len(c.presented) - 1
	c.updateContent()
}

// ExitSelectMode leaves message selection
func (c *Chat) ExitSelectMode() {
	c.selectMode = false
	c.updateContent()
}

// InSelectMode returns whether message selection is active
func (c *Chat) InSelectMode() bool {
	return c.selectMode
}

// MoveSelection moves the selection cursor by delta, clamped to the thread
func (c *Chat) MoveSelection(delta int) {
	if !c.selectMode {
		return
	}
	c.selectedIdx += delta
	if c.selectedIdx < 0 {
		c.selectedIdx = 0
	}
	if c.selectedIdx >= len(c.presented) {
		c.selectedIdx = len(c.presented) - 1
	}
	c.updateContent()
}

// SelectedMessage returns the message under the selection cursor
func (c *Chat) SelectedMessage() (chat.Message, bool) {
	if !c.selectMode || c.selectedIdx < 0 || c.selectedIdx >= len(c.presented) {
		return chat.Message{}, false
	}
	return c.presented[c.selectedIdx].Message, true
}

// renderNoThreadMessage renders the placeholder when nothing is open
func (c *Chat) renderNoThreadMessage() string {
	return lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		Padding(1, 2).
		Render("Select a contact to start chatting.\n\nUse ↑/↓ to browse and Enter to open.")
}

// renderBody renders a single message body, kind-aware
func (c *Chat) renderBody(m chat.Message, wrapWidth int) string {
	switch m.Kind {
	case chat.KindAudio:
		return ChatMessageStyle.Render(chat.PreviewText(m.Kind, m.Body))
	case chat.KindImage:
		out := chat.PreviewText(m.Kind, m.Body)
		if m.Body != "" {
			out += "  " + m.Body
		}
		return ChatMessageStyle.Render(out)
	default:
		// AI replies may carry markdown with code fences
		if !m.FromSelf() && c.contactAI {
			return renderMarkdown(strings.TrimSpace(m.Body), wrapWidth)
		}
		return wrapText(m.Body, wrapWidth)
	}
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	if !c.hasThread {
		sb.WriteString(c.renderNoThreadMessage())
	} else if len(c.presented) == 0 && !c.typing {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No messages yet. Say hi!"))
	} else {
		for i, p := range c.presented {
			m := p.Message

			if p.ShowDateSeparator {
				if i > 0 {
					sb.WriteString("\n")
				}
				chip := DateChipStyle.Render(p.DateLabel)
				sb.WriteString(lipgloss.PlaceHorizontal(wrapWidth, lipgloss.Center, chip))
				sb.WriteString("\n")
			} else if p.FirstInGroup && i > 0 {
				sb.WriteString("\n")
			}

			if p.FirstInGroup {
				var nameStyle lipgloss.Style
				name := c.contactName
				if m.FromSelf() {
					nameStyle = ChatSelfStyle
					name = "You"
				} else {
					nameStyle = ChatCounterpartStyle
				}
				sb.WriteString(nameStyle.Render(name))
				sb.WriteString(SidebarTimeStyle.Render("  " + m.CreatedAt.Local().Format("15:04")))
				sb.WriteString("\n")
			}

			if p.ReplyPreview != "" {
				label := p.ReplyPreview
				if m.ReplyTo != nil && m.ReplyTo.SenderName != "" {
					label = m.ReplyTo.SenderName + ": " + label
				}
				sb.WriteString(ReplyBarStyle.Render(label))
				sb.WriteString("\n")
			}

			body := c.renderBody(m, wrapWidth)
			if c.selectMode && i == c.selectedIdx {
				body = ChatSelectedStyle.Render(body)
			}
			sb.WriteString(body)

			if m.Starred {
				sb.WriteString(" " + StarStyle.Render("★"))
			}
			if p.StatusGlyph != "" && p.LastInGroup {
				sb.WriteString(" " + StatusGlyphStyle.Render(p.StatusGlyph))
			}
			sb.WriteString("\n")
		}

		if c.typing {
			if len(c.presented) > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(ChatCounterpartStyle.Render(c.contactName))
			sb.WriteString("\n")
			frame := typingFrames[c.typingFrame%len(typingFrames)]
			label := "typing " + frame
			if c.typingFor >= typingSlowAfter {
				label += fmt.Sprintf(" (%ds)", int(c.typingFor.Seconds()))
			}
			sb.WriteString(TypingStyle.Render(label))
		}
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case TypingTickMsg:
		if c.typing {
			c.typingFrame++
			c.updateContent()
			cmds = append(cmds, TypingTick())
		}
		return c, tea.Batch(cmds...)
	}

	if c.focused && c.hasThread {
		// Check if this is a scroll key before sending to input
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			key := keyMsg.String()
			switch key {
			case "pgup", "pgdown", "home", "end", "ctrl+u", "ctrl+d":
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				cmds = append(cmds, cmd)
				return c, tea.Batch(cmds...)
			}
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)

		// Don't pass other key events to viewport when input is focused.
		// This prevents spacebar/arrows from scrolling while typing.
		if _, isKey := msg.(tea.KeyPressMsg); isKey {
			return c, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	if !c.hasThread {
		return panelStyle.Width(c.width - BorderSize).Height(c.height - BorderSize).Render(c.renderNoThreadMessage())
	}

	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width - BorderSize).Height(chatPanelHeight - BorderSize).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}

	var inputContent string
	switch {
	case c.recording:
		inputContent = RecordingStyle.Render("● REC ") + formatElapsed(c.recordElapsed) +
			CallHintStyle.Render("   enter to send, esc to discard")
	case c.replyLabel != "":
		banner := ReplyBarStyle.Render(c.replyLabel)
		inputContent = lipgloss.JoinVertical(lipgloss.Left, banner, c.input.View())
	default:
		inputContent = c.input.View()
	}
	inputArea := inputStyle.Width(c.width - BorderSize).Render(inputContent)

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}

// formatElapsed formats a duration as a stopwatch string (e.g., "0:07", "1:23")
func formatElapsed(d time.Duration) string {
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
