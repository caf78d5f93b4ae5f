package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neochat/neochat/internal/errors"
)

// Store owns all Contact and Message records for the session. It is the
// only place threads are mutated; everything else works on copies.
//
// Access is mutex-guarded because Bubble Tea commands complete on their
// own goroutines.
type Store struct {
	mu       sync.RWMutex
	contacts map[string]*Contact
	order    []string // contact display order
	threads  map[string][]Message
	activeID string

	// injectable for tests
	now   func() time.Time
	newID func() string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		contacts: make(map[string]*Contact),
		threads:  make(map[string][]Message),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// AddContact registers a contact. Threads are created implicitly on first
// selection, so this only records metadata and ordering.
func (s *Store) AddContact(c Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contacts[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	cc := c
	s.contacts[c.ID] = &cc
}

// Contacts returns the contact list in display order.
func (s *Store) Contacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Contact, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.contacts[id])
	}
	return out
}

// Contact returns a copy of the contact with the given ID.
func (s *Store) Contact(id string) (Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok {
		return Contact{}, false
	}
	return *c, true
}

// SelectThread marks the contact's thread active and resets its unread
// counter. The thread is created empty if it does not exist yet.
func (s *Store) SelectThread(contactID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeID = contactID
	if _, ok := s.threads[contactID]; !ok {
		s.threads[contactID] = []Message{}
	}
	if c, ok := s.contacts[contactID]; ok {
		c.UnreadCount = 0
	}
}

// ActiveThread returns the ID of the active thread, or "" when none is
// selected.
func (s *Store) ActiveThread() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Deselect clears the active thread.
func (s *Store) Deselect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
}

// Messages returns a copy of the contact's message sequence in stored order.
func (s *Store) Messages(contactID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.threads[contactID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// AppendMessage constructs a message with a fresh ID and the current
// timestamp, appends it to the contact's thread and updates the contact's
// preview fields. Prior messages are never reordered or mutated.
//
// Status is StatusSent when senderID is self, StatusRead otherwise
// (simulated counterparts have, by definition, seen their own messages).
func (s *Store) AppendMessage(contactID, senderID string, kind Kind, body, mediaRef string, replyTo *ReplyRef) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[contactID]
	if !ok {
		return Message{}, errors.E(errors.Op("chat.AppendMessage"), errors.KindNotFound,
			fmt.Sprintf("unknown contact %s", contactID))
	}

	status := StatusRead
	if senderID == SelfID {
		status = StatusSent
	}

	msg := Message{
		ID:        s.newID(),
		SenderID:  senderID,
		Body:      body,
		Kind:      kind,
		MediaRef:  mediaRef,
		CreatedAt: s.now(),
		Status:    status,
		ReplyTo:   replyTo,
	}

	s.threads[contactID] = append(s.threads[contactID], msg)
	c.LastMessage = PreviewText(kind, body)
	c.LastMessageTime = msg.CreatedAt
	return msg, nil
}

// DeleteMessage removes exactly one message by ID. Missing messages are a
// no-op, not an error. Reply snapshots pointing at the deleted message are
// unaffected, and the contact's preview fields are deliberately not rolled
// back.
func (s *Store) DeleteMessage(contactID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.threads[contactID]
	for i, m := range msgs {
		if m.ID == messageID {
			s.threads[contactID] = append(msgs[:i:i], msgs[i+1:]...)
			return
		}
	}
}

// ClearThread empties the contact's thread and clears the preview fields.
// Irreversible within the session; clearing an already empty thread is a
// no-op.
func (s *Store) ClearThread(contactID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.threads[contactID] = []Message{}
	if c, ok := s.contacts[contactID]; ok {
		c.LastMessage = ""
		c.LastMessageTime = time.Time{}
	}
}

// ToggleStar flips the starred flag on one message. Returns the new value,
// or false if the message was not found.
func (s *Store) ToggleStar(contactID, messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.threads[contactID]
	for i := range msgs {
		if msgs[i].ID == messageID {
			msgs[i].Starred = !msgs[i].Starred
			return msgs[i].Starred
		}
	}
	return false
}

// BumpUnread increments the unread counter for a contact. Used when a
// reply lands on a thread that is not currently displayed.
func (s *Store) BumpUnread(contactID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeID == contactID {
		return
	}
	if c, ok := s.contacts[contactID]; ok {
		c.UnreadCount++
	}
}
