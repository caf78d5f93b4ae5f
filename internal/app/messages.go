package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/neochat/neochat/internal/responder"
)

// StartupModalMsg is sent on app start to trigger the welcome/login modals
type StartupModalMsg struct{}

// ReplyMsg is delivered when a contact's reply generation finishes
type ReplyMsg responder.Result

// CallTickMsg drives the call overlay's ringing timeout and duration display
type CallTickMsg struct{}

// RecorderTickMsg drives voice recording: each tick pulls a chunk from the
// microphone and refreshes the elapsed display
type RecorderTickMsg struct{}

// callTickInterval is how often the call overlay refreshes
const callTickInterval = time.Second

// ringingDuration is how long an outgoing call rings before connecting
const ringingDuration = 2 * time.Second

// recorderTickInterval is how often the recorder polls the microphone
const recorderTickInterval = 500 * time.Millisecond

func callTick() tea.Cmd {
	return tea.Tick(callTickInterval, func(time.Time) tea.Msg {
		return CallTickMsg{}
	})
}

func recorderTick() tea.Cmd {
	return tea.Tick(recorderTickInterval, func(time.Time) tea.Msg {
		return RecorderTickMsg{}
	})
}
