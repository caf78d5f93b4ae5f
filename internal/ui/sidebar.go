package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/neochat/neochat/internal/chat"
)

// typingPreview is shown in place of the last-message preview while the
// contact's reply is pending.
const typingPreview = "typing…"

// Sidebar represents the left panel with the contact list
type Sidebar struct {
	contacts     []chat.Contact
	selectedIdx  int
	width        int
	height       int
	focused      bool
	scrollOffset int
	typing       map[string]bool // contact IDs with a pending reply
	now          func() time.Time
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{
		typing: make(map[string]bool),
		now:    time.Now,
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns whether the sidebar has focus
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetContacts replaces the contact list, clamping the selection
func (s *Sidebar) SetContacts(contacts []chat.Contact) {
	s.contacts = contacts
	if s.selectedIdx >= len(contacts) {
		s.selectedIdx = len(contacts) - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// SetTyping marks or clears the typing indicator for a contact
func (s *Sidebar) SetTyping(contactID string, typing bool) {
	if typing {
		s.typing[contactID] = true
	} else {
		delete(s.typing, contactID)
	}
}

// MoveUp moves the selection up
func (s *Sidebar) MoveUp() {
	if s.selectedIdx > 0 {
		s.selectedIdx--
	}
}

// MoveDown moves the selection down
func (s *Sidebar) MoveDown() {
	if s.selectedIdx < len(s.contacts)-1 {
		s.selectedIdx++
	}
}

// Selected returns the currently selected contact
func (s *Sidebar) Selected() (chat.Contact, bool) {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.contacts) {
		return chat.Contact{}, false
	}
	return s.contacts[s.selectedIdx], true
}

// SelectByID moves the selection to the contact with the given ID
func (s *Sidebar) SelectByID(id string) {
	for i, c := range s.contacts {
		if c.ID == id {
			s.selectedIdx = i
			return
		}
	}
}

// visibleRows returns how many contact rows fit in the panel.
// Each contact takes two lines (name row + preview row) plus a separator.
func (s *Sidebar) visibleRows() int {
	inner := s.height - BorderSize - TitleHeight
	rows := inner / 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ensureVisible adjusts the scroll offset so the selection stays on screen
func (s *Sidebar) ensureVisible() {
	rows := s.visibleRows()
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	}
	if s.selectedIdx >= s.scrollOffset+rows {
		s.scrollOffset = s.selectedIdx - rows + 1
	}
}

// presenceDot returns the presence marker for a contact
func presenceDot(c chat.Contact) string {
	if c.Online {
		return OnlineDotStyle.Render("●")
	}
	return OfflineDotStyle.Render("○")
}

// avatarMarker renders the avatar slot, ringed when the contact has a
// status update to view.
func avatarMarker(c chat.Contact) string {
	if c.HasStatus {
		return StatusRingStyle.Render("◉")
	}
	return OfflineDotStyle.Render("·")
}

// relativeTime renders a compact relative timestamp for the contact row
func relativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// View renders the sidebar
func (s *Sidebar) View() string {
	s.ensureVisible()

	inner := s.width - BorderSize
	var b strings.Builder

	b.WriteString(PanelTitleStyle.Render("Chats"))
	b.WriteString("\n")

	rows := s.visibleRows()
	end := s.scrollOffset + rows
	if end > len(s.contacts) {
		end = len(s.contacts)
	}

	now := s.now()
	for i := s.scrollOffset; i < end; i++ {
		c := s.contacts[i]

		// Name row: avatar, presence, name, unread badge, time
		timeStr := relativeTime(c.LastMessageTime, now)
		badge := ""
		if c.UnreadCount > 0 {
			badge = UnreadBadgeStyle.Render(fmt.Sprintf(" %d ", c.UnreadCount))
		}

		left := avatarMarker(c) + " " + presenceDot(c) + " "
		name := c.Name

		// Truncate the name so the right-hand column always fits
		rightWidth := runewidth.StringWidth(timeStr)
		if badge != "" {
			rightWidth += runewidth.StringWidth(fmt.Sprintf(" %d ", c.UnreadCount)) + 1
		}
		nameBudget := inner - InputPaddingWidth - runewidth.StringWidth("◉ ● ") - rightWidth - 1
		if nameBudget > 0 {
			name = runewidth.Truncate(name, nameBudget, "…")
		}

		pad := inner - InputPaddingWidth - runewidth.StringWidth("◉ ● "+name) - rightWidth
		if pad < 1 {
			pad = 1
		}
		nameRow := left + name + strings.Repeat(" ", pad) + badge + SidebarTimeStyle.Render(timeStr)

		// Preview row: last message or typing indicator
		preview := c.LastMessage
		if s.typing[c.ID] {
			preview = typingPreview
		}
		previewBudget := inner - InputPaddingWidth - 4
		if previewBudget >= SidebarPreviewMin {
			preview = runewidth.Truncate(preview, previewBudget, "…")
		} else {
			preview = ""
		}
		var previewRow string
		if s.typing[c.ID] {
			previewRow = "    " + TypingStyle.Render(preview)
		} else {
			previewRow = "    " + SidebarPreviewStyle.Render(preview)
		}

		if i == s.selectedIdx && s.focused {
			b.WriteString(SidebarSelectedStyle.Width(inner).Render(nameRow))
			b.WriteString("\n")
			b.WriteString(SidebarSelectedStyle.Width(inner).Render(previewRow))
		} else {
			b.WriteString(SidebarItemStyle.Render(nameRow))
			b.WriteString("\n")
			b.WriteString(SidebarItemStyle.Render(previewRow))
		}
		b.WriteString("\n\n")
	}

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	return style.Width(inner).Height(s.height - BorderSize).Render(b.String())
}
