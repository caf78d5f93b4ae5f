package chat

import "time"

// Contact is one entry in the sidebar list.
type Contact struct {
	ID              string
	Name            string
	Email           string
	Avatar          string // opaque image reference
	About           string // short bio line, e.g. "Busy"
	LastMessage     string // preview of the most recent message
	LastMessageTime time.Time
	UnreadCount     int
	Online          bool
	AI              bool // replies route through the generation collaborator
	HasStatus       bool // renders a ring around the avatar
	StatusImage     string // only meaningful when HasStatus is true
}
