// Package chat holds the conversation data model and the in-memory store
// that owns it. UI components receive read-only copies and communicate
// intent back through Store operations.
package chat

import (
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// SelfID is the reserved sender identifier for the local user.
const SelfID = "me"

// Kind identifies the payload carried by a message.
type Kind string

const (
	KindText  Kind = "text"
	KindAudio Kind = "audio"
	KindImage Kind = "image"
)

// Status is the delivery status of a message.
type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
)

// ReplyRef is a snapshot of the message being replied to. It is a copy,
// not a live reference, so it survives deletion of the original.
type ReplyRef struct {
	ID         string
	Text       string
	SenderName string
	Kind       Kind
}

// Message is a single entry in a thread.
type Message struct {
	ID        string
	SenderID  string // SelfID or a contact ID
	Body      string // may be empty for audio payloads
	Kind      Kind
	MediaRef  string // opaque media reference, empty for plain text
	CreatedAt time.Time
	Status    Status
	ReplyTo   *ReplyRef
	Starred   bool
}

// FromSelf reports whether the message was sent by the local user.
func (m Message) FromSelf() bool {
	return m.SenderID == SelfID
}

// Preview glyphs substituted for non-text payloads in contact previews
// and reply snippets.
const (
	audioPreview = "🎵 Audio"
	imagePreview = "📷 Image"
)

// PreviewText returns the one-line preview for a message body of the given
// kind, substituting a fixed glyph+label for non-text payloads.
func PreviewText(kind Kind, body string) string {
	switch kind {
	case KindAudio:
		return audioPreview
	case KindImage:
		return imagePreview
	case KindText:
		return body
	}
	return body
}

// replyPreviewGraphemes caps the snapshot text stored in a ReplyRef.
const replyPreviewGraphemes = 80

// SnapshotReply builds the reply snapshot for a message. The text is
// truncated on grapheme boundaries so emoji are never split.
func SnapshotReply(m Message, senderName string) *ReplyRef {
	text := m.Body
	if uniseg.GraphemeClusterCount(text) > replyPreviewGraphemes {
		g := uniseg.NewGraphemes(text)
		var b strings.Builder
		for i := 0; i < replyPreviewGraphemes && g.Next(); i++ {
			b.WriteString(g.Str())
		}
		text = b.String() + "…"
	}
	return &ReplyRef{
		ID:         m.ID,
		Text:       text,
		SenderName: senderName,
		Kind:       m.Kind,
	}
}
