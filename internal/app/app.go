package app

import (
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/neochat/neochat/internal/ai"
	"github.com/neochat/neochat/internal/call"
	"github.com/neochat/neochat/internal/capture"
	"github.com/neochat/neochat/internal/chat"
	"github.com/neochat/neochat/internal/config"
	"github.com/neochat/neochat/internal/logger"
	"github.com/neochat/neochat/internal/media"
	"github.com/neochat/neochat/internal/persona"
	"github.com/neochat/neochat/internal/responder"
	"github.com/neochat/neochat/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)
	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	store     *chat.Store
	responder *responder.Responder
	gemini    *ai.Client
	personas  *persona.Set

	media    *media.Registry
	recorder *capture.Recorder
	mic      capture.Device
	cam      capture.Device

	activeCall    *call.Call
	callRingTicks int

	// Pending reply snapshot attached to the next send, nil when composing
	// a plain message
	replyTo *chat.ReplyRef

	// Message ID waiting for delete confirmation
	pendingDeleteID string
}

// New creates a new app model
func New(cfg *config.Config, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	store := chat.NewStore()
	chat.Seed(store)

	registry := media.NewRegistry()

	m := &Model{
		config:    cfg,
		version:   version,
		header:    ui.NewHeader(),
		footer:    ui.NewFooter(),
		sidebar:   ui.NewSidebar(),
		chat:      ui.NewChat(),
		modal:     ui.NewModal(),
		focus:     FocusSidebar,
		store:     store,
		responder: responder.New(responder.WithDelay(typingDelay)),
		gemini:    ai.NewClient(),
		personas:  persona.NewSet(loadPersonas()),
		media:     registry,
		recorder:  capture.NewRecorder(registry),
		mic:       capture.NewMicrophone(),
		cam:       capture.NewCamera(),
	}

	m.sidebar.SetContacts(store.Contacts())
	m.sidebar.SetFocused(true)

	return m
}

// typingDelay is the artificial pause before a reply lands, so contacts
// appear to type rather than answer instantly.
func typingDelay() time.Duration {
	return 800*time.Millisecond + time.Duration(rand.N(1200))*time.Millisecond
}

// loadPersonas reads personas.yaml from the config directory, falling back
// to the embedded defaults when the file is absent or unreadable.
func loadPersonas() *persona.Config {
	dir, err := config.Dir()
	if err != nil {
		return persona.DefaultConfig()
	}
	cfg, err := persona.LoadAndMerge(dir)
	if err != nil {
		logger.Warn("App: Failed to load personas: %v", err)
		return persona.DefaultConfig()
	}
	return cfg
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	// Trigger startup modal check (welcome or login)
	return func() tea.Msg {
		return StartupModalMsg{}
	}
}

// OnCall returns true while a call overlay is up
func (m *Model) OnCall() bool {
	return m.activeCall != nil
}

// activeContact returns the contact of the open conversation
func (m *Model) activeContact() (chat.Contact, bool) {
	id := m.store.ActiveThread()
	if id == "" {
		return chat.Contact{}, false
	}
	return m.store.Contact(id)
}

// toggleFocus switches between the sidebar and the chat panel
func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		if !m.chat.HasThread() {
			return
		}
		m.focus = FocusChat
	} else {
		m.focus = FocusSidebar
	}
	m.sidebar.SetFocused(m.focus == FocusSidebar)
	m.chat.SetFocused(m.focus == FocusChat)
}

// selectContact opens the contact's conversation and moves focus to it
func (m *Model) selectContact(c chat.Contact) {
	m.store.SelectThread(c.ID)
	m.replyTo = nil
	m.chat.ClearReplyLabel()
	m.refreshChat()
	m.refreshSidebar()
	m.sidebar.SelectByID(c.ID)
	m.chat.SetTyping(m.responder.Awaiting(c.ID))

	m.focus = FocusChat
	m.sidebar.SetFocused(false)
	m.chat.SetFocused(true)

	logger.Debug("App: Opened conversation with %s", c.ID)
}

// refreshChat recomputes the active thread's presentation
func (m *Model) refreshChat() {
	contact, ok := m.activeContact()
	if !ok {
		m.chat.ClearThread()
		m.header.SetContact("")
		m.header.SetPresence("")
		return
	}

	presented := chat.ComputePresentation(m.store.Messages(contact.ID), time.Now())
	m.chat.SetThread(contact, presented)

	m.header.SetContact(contact.Name)
	m.header.SetPresence(presence(contact))
}

// refreshSidebar reloads contact previews and ordering
func (m *Model) refreshSidebar() {
	m.sidebar.SetContacts(m.store.Contacts())
}

func presence(c chat.Contact) string {
	if c.Online {
		return "online"
	}
	return "offline"
}

// generatorFor picks the reply source: the Gemini client for the AI
// contact, scripted personas for everyone else.
func (m *Model) generatorFor(c chat.Contact) responder.Generator {
	if c.AI {
		return m.gemini
	}
	return m.personas
}

// shutdown releases everything that holds a device or goroutine
func (m *Model) shutdown() {
	m.responder.CancelAll()
	m.recorder.Cancel()
	if m.activeCall != nil {
		m.activeCall.HangUp()
		m.activeCall = nil
	}
}
