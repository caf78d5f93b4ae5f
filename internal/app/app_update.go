package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/neochat/neochat/internal/logger"
	"github.com/neochat/neochat/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case StartupModalMsg:
		return m.handleStartupModal()

	case ui.FlashTickMsg:
		if m.footer.TickFlash(time.Now()) {
			return m, ui.FlashTick()
		}
		return m, nil

	case ui.TypingTickMsg:
		if id := m.store.ActiveThread(); id != "" {
			if start, ok := m.responder.WaitStart(id); ok {
				m.chat.SetTypingElapsed(time.Since(start))
			}
		}
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case ReplyMsg:
		return m.handleReply(msg)

	case CallTickMsg:
		return m.handleCallTick()

	case RecorderTickMsg:
		return m.handleRecorderTick()

	case tea.PasteStartMsg:
		// Terminals intercept ctrl+shift+v and send paste events instead of
		// key presses; check for an image before the text reaches the composer
		return m.handlePasteStart()

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// Everything else (mouse wheel, blink ticks) goes to the chat panel
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// handleKey routes key presses by priority: modal, call overlay, recording,
// message selection, then panel-level keys.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.shutdown()
		return m, tea.Quit
	}

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// Call overlay swallows keys while up
	if m.activeCall != nil {
		return m.handleCallKey(key)
	}

	// Voice recording owns enter/esc until resolved
	if m.recorder.Recording() {
		return m.handleRecordingKey(key)
	}

	// Message selection mode
	if m.chat.InSelectMode() {
		return m.handleSelectModeKey(key)
	}

	// Drop a pending reply snapshot with esc
	if key == "esc" && m.replyTo != nil {
		m.replyTo = nil
		m.chat.ClearReplyLabel()
		return m, nil
	}

	// Global keys
	switch key {
	case "q":
		// Only quit on 'q' when sidebar is focused (so user can type 'q' in chat)
		if !m.chat.IsFocused() {
			m.shutdown()
			return m, tea.Quit
		}
	case "tab":
		m.toggleFocus()
		return m, nil
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(key)
	}
	return m.handleChatKey(key, msg)
}

func (m *Model) handleSidebarKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		m.sidebar.MoveUp()
	case "down", "j":
		m.sidebar.MoveDown()
	case "enter":
		if c, ok := m.sidebar.Selected(); ok {
			m.selectContact(c)
		}
	case "s":
		if c, ok := m.sidebar.Selected(); ok {
			m.modal.Show(ui.NewStatusViewerState(c))
		}
	case "i":
		if c, ok := m.sidebar.Selected(); ok {
			m.modal.Show(ui.NewContactInfoState(c))
		}
	case "d":
		if c, ok := m.sidebar.Selected(); ok {
			m.modal.Show(ui.NewConfirmClearState(c.Name))
		}
	case "ctrl+p":
		p := m.config.GetProfile()
		m.modal.Show(ui.NewProfileState(p.Name, p.Email, p.About))
	case "ctrl+e":
		m.modal.Show(ui.NewThemePickerState())
	}
	return m, nil
}

func (m *Model) handleChatKey(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		return m.sendMessage()
	case "ctrl+a":
		return m.startRecording()
	case "ctrl+o":
		if m.chat.HasThread() {
			m.modal.Show(ui.NewAttachImageState())
		}
		return m, nil
	case "ctrl+v":
		return m.startCall()
	case "ctrl+e":
		if m.chat.HasThread() {
			m.modal.Show(ui.NewEmojiPickerState())
		}
		return m, nil
	case "ctrl+up":
		m.chat.EnterSelectMode()
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m *Model) handleSelectModeKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+up":
		m.chat.MoveSelection(-1)
	case "ctrl+down":
		m.chat.MoveSelection(1)
	case "r":
		m.beginReply()
	case "o":
		return m.openSelectedAttachment()
	case "c":
		return m.copySelected()
	case "s":
		return m.starSelected()
	case "d":
		return m.deleteSelected()
	case "esc":
		m.chat.ExitSelectMode()
	}
	return m, nil
}

func (m *Model) handleStartupModal() (tea.Model, tea.Cmd) {
	if !m.config.HasSeenWelcome() {
		m.modal.Show(ui.NewWelcomeState())
		return m, nil
	}
	if m.config.GetProfile().Email == "" {
		m.modal.Show(ui.NewLoginState(""))
		return m, nil
	}
	logger.Debug("App: No startup modal needed")
	return m, nil
}
