package app

import (
	"mime"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"

	"github.com/neochat/neochat/internal/chat"
	"github.com/neochat/neochat/internal/logger"
	"github.com/neochat/neochat/internal/ui"
)

// handleModalKey routes modal key events to the appropriate handler based
// on which modal state is showing.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *ui.WelcomeState:
		return m.handleWelcomeModal(key)
	case *ui.LoginState:
		return m.handleLoginModal(key, msg, s)
	case *ui.ProfileState:
		return m.handleProfileModal(key, msg, s)
	case *ui.ConfirmDeleteMessageState:
		return m.handleConfirmDeleteModal(key)
	case *ui.ConfirmClearState:
		return m.handleConfirmClearModal(key, s)
	case *ui.StatusViewerState, *ui.ContactInfoState, *ui.MediaViewerState:
		// Read-only cards: any key dismisses
		m.modal.Hide()
		return m, nil
	case *ui.AttachImageState:
		return m.handleAttachImageModal(key, msg, s)
	case *ui.EmojiPickerState:
		return m.handleEmojiPickerModal(key, msg, s)
	case *ui.ThemePickerState:
		return m.handleThemePickerModal(key, msg, s)
	}

	// Unknown state: delegate so embedded inputs keep working
	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleWelcomeModal(key string) (tea.Model, tea.Cmd) {
	m.modal.Hide()
	m.config.MarkWelcomeShown()
	if err := m.config.Save(); err != nil {
		logger.Warn("App: Failed to save config: %v", err)
	}

	// Chain into sign-in when no profile exists yet
	if m.config.GetProfile().Email == "" {
		m.modal.Show(ui.NewLoginState(""))
	}
	return m, nil
}

func (m *Model) handleLoginModal(key string, msg tea.KeyPressMsg, s *ui.LoginState) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		if problem := s.Validate(); problem != "" {
			m.modal.SetError(problem)
			return m, nil
		}
		p := m.config.GetProfile()
		p.Email = s.GetEmail()
		m.config.SetProfile(p)
		if err := m.config.Save(); err != nil {
			logger.Warn("App: Failed to save config: %v", err)
		}
		m.modal.Hide()
		return m, m.ShowFlashSuccess("Signed in as " + p.Email)
	case "esc":
		// Sign-in is skippable; nothing is gated behind it
		m.modal.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleProfileModal(key string, msg tea.KeyPressMsg, s *ui.ProfileState) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		p := m.config.GetProfile()
		p.Name = s.GetName()
		p.Email = s.GetEmail()
		p.About = s.GetAbout()
		m.config.SetProfile(p)
		if err := m.config.Save(); err != nil {
			m.modal.SetError("Could not save profile: " + err.Error())
			return m, nil
		}
		m.modal.Hide()
		return m, m.ShowFlashSuccess("Profile saved")
	case "esc":
		m.modal.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmDeleteModal(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		if contact, ok := m.activeContact(); ok && m.pendingDeleteID != "" {
			m.store.DeleteMessage(contact.ID, m.pendingDeleteID)
			m.refreshChat()
			m.refreshSidebar()
		}
		m.pendingDeleteID = ""
		m.modal.Hide()
		return m, m.ShowFlashInfo("Message deleted")
	case "n", "N", "esc":
		m.pendingDeleteID = ""
		m.modal.Hide()
	}
	return m, nil
}

func (m *Model) handleConfirmClearModal(key string, s *ui.ConfirmClearState) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		if contact, ok := m.sidebar.Selected(); ok {
			m.store.ClearThread(contact.ID)
			m.refreshChat()
			m.refreshSidebar()
		}
		m.modal.Hide()
		return m, m.ShowFlashInfo("Conversation cleared")
	case "n", "N", "esc":
		m.modal.Hide()
	}
	return m, nil
}

func (m *Model) handleAttachImageModal(key string, msg tea.KeyPressMsg, s *ui.AttachImageState) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		return m.attachImage(s.GetPath())
	case "esc":
		m.modal.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// attachImage reads the file, registers it as a media blob, and sends it
// as an image message with the filename as caption.
func (m *Model) attachImage(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		m.modal.SetError("Enter a file path")
		return m, nil
	}

	contact, ok := m.activeContact()
	if !ok {
		m.modal.Hide()
		return m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		m.modal.SetError("Could not read file: " + err.Error())
		return m, nil
	}

	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	ref := m.media.Put(data, mediaType)

	if _, err := m.store.AppendMessage(contact.ID, chat.SelfID, chat.KindImage, filepath.Base(path), ref, m.replyTo); err != nil {
		m.media.Release(ref)
		m.modal.SetError(err.Error())
		return m, nil
	}

	m.replyTo = nil
	m.chat.ClearReplyLabel()
	m.modal.Hide()
	m.refreshChat()
	m.refreshSidebar()

	return m, m.triggerReply(contact)
}

func (m *Model) handleEmojiPickerModal(key string, msg tea.KeyPressMsg, s *ui.EmojiPickerState) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		m.chat.InsertInput(s.Selected())
		m.modal.Hide()
		return m, nil
	case "esc":
		m.modal.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleThemePickerModal(key string, msg tea.KeyPressMsg, s *ui.ThemePickerState) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		name := s.Selected()
		ui.SetTheme(name)
		m.config.SetTheme(string(name))
		if err := m.config.Save(); err != nil {
			logger.Warn("App: Failed to save config: %v", err)
		}
		m.modal.Hide()
		return m, m.ShowFlashSuccess("Theme: " + string(name))
	case "esc":
		m.modal.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}
