package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/neochat/neochat/internal/call"
	"github.com/neochat/neochat/internal/chat"
	"github.com/neochat/neochat/internal/clipboard"
	"github.com/neochat/neochat/internal/logger"
	"github.com/neochat/neochat/internal/notification"
	"github.com/neochat/neochat/internal/responder"
	"github.com/neochat/neochat/internal/ui"
)

// sendMessage appends the composed text to the active conversation and
// kicks off the contact's reply.
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	contact, ok := m.activeContact()
	if !ok {
		return m, nil
	}

	body := m.chat.GetInput()
	if body == "" {
		return m, nil
	}

	if _, err := m.store.AppendMessage(contact.ID, chat.SelfID, chat.KindText, body, "", m.replyTo); err != nil {
		return m, m.ShowFlashError(err.Error())
	}

	m.chat.ClearInput()
	m.replyTo = nil
	m.chat.ClearReplyLabel()
	m.refreshChat()
	m.refreshSidebar()

	return m, m.triggerReply(contact)
}

// triggerReply starts reply generation for the contact and shows the
// typing indicator. A newer send to the same conversation supersedes any
// reply still in flight.
func (m *Model) triggerReply(contact chat.Contact) tea.Cmd {
	history := m.store.Messages(contact.ID)
	run := m.responder.Trigger(m.generatorFor(contact), contact, history)

	m.sidebar.SetTyping(contact.ID, true)
	if m.store.ActiveThread() == contact.ID {
		m.chat.SetTyping(true)
	}

	generate := func() tea.Msg {
		return ReplyMsg(run())
	}
	return tea.Batch(generate, ui.TypingTick())
}

// handleReply lands a finished generation. Replies go to the conversation
// that triggered them, not whichever one is open now.
func (m *Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	res := responder.Result(msg)
	if !m.responder.Resolve(res) {
		// Superseded by a newer send; a fresher reply is still in flight
		return m, nil
	}

	m.sidebar.SetTyping(res.ContactID, false)
	if m.store.ActiveThread() == res.ContactID {
		m.chat.SetTyping(false)
	}

	if res.Err != nil {
		logger.Warn("App: Reply for %s failed: %v", res.ContactID, res.Err)
		return m, m.ShowFlashError(res.Err.Error())
	}

	if _, err := m.store.AppendMessage(res.ContactID, res.ContactID, chat.KindText, res.Text, "", nil); err != nil {
		return m, m.ShowFlashError(err.Error())
	}

	if m.store.ActiveThread() == res.ContactID {
		m.refreshChat()
	} else {
		m.store.BumpUnread(res.ContactID)
		if contact, ok := m.store.Contact(res.ContactID); ok && m.config.GetNotificationsEnabled() {
			if err := notification.NewMessage(contact.Name, res.Text); err != nil {
				logger.Debug("App: Notification failed: %v", err)
			}
		}
	}
	m.refreshSidebar()

	return m, nil
}

// ===========================================================================
// Clipboard paste
// ===========================================================================

// handlePasteStart checks the clipboard for an image when a terminal paste
// begins. Text pastes fall through to the composer untouched.
func (m *Model) handlePasteStart() (tea.Model, tea.Cmd) {
	if m.modal.IsVisible() || m.activeCall != nil || m.recorder.Recording() {
		return m, nil
	}
	if m.focus != FocusChat || !m.chat.HasThread() {
		return m, nil
	}
	return m.pasteImage()
}

// pasteImage reads an image off the clipboard and sends it as an image
// message. No image means the paste was plain text; let it through.
func (m *Model) pasteImage() (tea.Model, tea.Cmd) {
	img, err := clipboard.ReadImage()
	if err != nil {
		logger.Debug("App: Clipboard image read failed: %v", err)
		return m, nil
	}
	if img == nil {
		return m, nil
	}

	if err := img.Validate(); err != nil {
		return m, m.ShowFlashWarning(err.Error())
	}

	contact, ok := m.activeContact()
	if !ok {
		return m, nil
	}

	logger.Debug("App: Attaching pasted image: %dKB, %s", img.SizeKB(), img.MediaType)

	ref := m.media.Put(img.Data, img.MediaType)
	caption := fmt.Sprintf("Pasted image (%d KB)", img.SizeKB())
	if _, err := m.store.AppendMessage(contact.ID, chat.SelfID, chat.KindImage, caption, ref, m.replyTo); err != nil {
		m.media.Release(ref)
		return m, m.ShowFlashError(err.Error())
	}

	m.replyTo = nil
	m.chat.ClearReplyLabel()
	m.refreshChat()
	m.refreshSidebar()

	return m, m.triggerReply(contact)
}

// ===========================================================================
// Voice recording
// ===========================================================================

func (m *Model) startRecording() (tea.Model, tea.Cmd) {
	if !m.chat.HasThread() || m.recorder.Recording() {
		return m, nil
	}

	if err := m.recorder.Start(m.mic); err != nil {
		return m, m.ShowFlashError(err.Error())
	}

	m.chat.SetRecording(true, 0)
	return m, recorderTick()
}

func (m *Model) handleRecordingKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		return m.finishRecording()
	case "esc":
		m.recorder.Cancel()
		m.chat.SetRecording(false, 0)
		return m, m.ShowFlashInfo("Recording discarded")
	}
	return m, nil
}

func (m *Model) finishRecording() (tea.Model, tea.Cmd) {
	ref, elapsed, ok := m.recorder.Stop()
	m.chat.SetRecording(false, 0)
	if !ok {
		return m, nil
	}

	contact, found := m.activeContact()
	if !found {
		m.media.Release(ref)
		return m, nil
	}

	logger.Debug("App: Sending %v voice message to %s", elapsed, contact.ID)

	if _, err := m.store.AppendMessage(contact.ID, chat.SelfID, chat.KindAudio, "", ref, m.replyTo); err != nil {
		m.media.Release(ref)
		return m, m.ShowFlashError(err.Error())
	}

	m.replyTo = nil
	m.chat.ClearReplyLabel()
	m.refreshChat()
	m.refreshSidebar()

	return m, m.triggerReply(contact)
}

func (m *Model) handleRecorderTick() (tea.Model, tea.Cmd) {
	if !m.recorder.Recording() {
		return m, nil
	}

	if err := m.recorder.Poll(); err != nil {
		m.chat.SetRecording(false, 0)
		return m, m.ShowFlashError(err.Error())
	}

	m.chat.SetRecording(true, m.recorder.Elapsed())
	return m, recorderTick()
}

// ===========================================================================
// Calls
// ===========================================================================

func (m *Model) startCall() (tea.Model, tea.Cmd) {
	contact, ok := m.activeContact()
	if !ok || m.activeCall != nil {
		return m, nil
	}

	c, err := call.Dial(contact, true, m.mic, m.cam)
	if err != nil {
		return m, m.ShowFlashError(err.Error())
	}

	m.activeCall = c
	m.callRingTicks = 0
	return m, callTick()
}

func (m *Model) handleCallKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "m":
		m.activeCall.ToggleMute()
	case "c":
		m.activeCall.ToggleCamera()
	case "h", "esc":
		m.activeCall.HangUp()
		m.activeCall = nil
		return m, m.ShowFlashInfo("Call ended")
	}
	return m, nil
}

func (m *Model) handleCallTick() (tea.Model, tea.Cmd) {
	if m.activeCall == nil {
		return m, nil
	}

	switch m.activeCall.State() {
	case call.StateRinging:
		m.callRingTicks++
		if time.Duration(m.callRingTicks)*callTickInterval >= ringingDuration {
			m.activeCall.Connect()
		}
	case call.StateEnded:
		m.activeCall = nil
		return m, nil
	}

	return m, callTick()
}

// ===========================================================================
// Message actions (select mode)
// ===========================================================================

func (m *Model) beginReply() {
	selected, ok := m.chat.SelectedMessage()
	if !ok {
		return
	}

	senderName := "You"
	if !selected.FromSelf() {
		if contact, found := m.activeContact(); found {
			senderName = contact.Name
		}
	}

	m.replyTo = chat.SnapshotReply(selected, senderName)
	m.chat.SetReplyLabel(senderName + ": " + m.replyTo.Text)
	m.chat.ExitSelectMode()
}

// openSelectedAttachment shows the attachment details for a selected media
// message. No-op for text messages.
func (m *Model) openSelectedAttachment() (tea.Model, tea.Cmd) {
	selected, ok := m.chat.SelectedMessage()
	if !ok || selected.MediaRef == "" {
		return m, nil
	}

	blob, found := m.media.Get(selected.MediaRef)
	if !found {
		return m, m.ShowFlashWarning("Attachment is no longer available")
	}

	caption := selected.Body
	if caption == "" {
		caption = chat.PreviewText(selected.Kind, "")
	}

	m.chat.ExitSelectMode()
	m.modal.Show(ui.NewMediaViewerState(caption, blob.MediaType, len(blob.Data)/1024))
	return m, nil
}

func (m *Model) copySelected() (tea.Model, tea.Cmd) {
	selected, ok := m.chat.SelectedMessage()
	if !ok {
		return m, nil
	}

	text := selected.Body
	if selected.Kind != chat.KindText {
		text = chat.PreviewText(selected.Kind, selected.Body)
	}

	if err := clipboard.WriteText(text); err != nil {
		logger.Debug("App: Clipboard write failed: %v", err)
		return m, m.ShowFlashWarning("Clipboard unavailable")
	}
	return m, m.ShowFlashSuccess("Copied to clipboard")
}

func (m *Model) starSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.chat.SelectedMessage()
	if !ok {
		return m, nil
	}

	contact, found := m.activeContact()
	if !found {
		return m, nil
	}

	starred := m.store.ToggleStar(contact.ID, selected.ID)
	m.refreshChat()

	if starred {
		return m, m.ShowFlashSuccess("Starred")
	}
	return m, m.ShowFlashInfo("Star removed")
}

func (m *Model) deleteSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.chat.SelectedMessage()
	if !ok {
		return m, nil
	}

	// Only the user's own messages can be deleted
	if !selected.FromSelf() {
		return m, m.ShowFlashWarning("You can only delete your own messages")
	}

	preview := selected.Body
	if selected.Kind != chat.KindText {
		preview = chat.PreviewText(selected.Kind, selected.Body)
	}

	m.pendingDeleteID = selected.ID
	m.modal.Show(ui.NewConfirmDeleteMessageState(preview))
	return m, nil
}
