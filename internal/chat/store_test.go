package chat

import (
	"fmt"
	"testing"
	"time"
)

// newTestStore returns a store with a deterministic clock and ID sequence
// plus one registered contact.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s := NewStore()
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("msg-%d", seq)
	}
	s.AddContact(Contact{ID: "alice", Name: "Alice Rivera", UnreadCount: 2})
	return s
}

func TestAppendMessageSelf(t *testing.T) {
	s := newTestStore(t)

	msg, err := s.AppendMessage("alice", SelfID, KindText, "hello", "", nil)
	if err != nil {
		t.Fatalf("AppendMessage returned error: %v", err)
	}
	if msg.Status != StatusSent {
		t.Errorf("self message status = %q, want %q", msg.Status, StatusSent)
	}
	if msg.ID == "" {
		t.Error("message has empty ID")
	}

	msgs := s.Messages("alice")
	if len(msgs) != 1 || msgs[0].ID != msg.ID {
		t.Fatalf("thread = %v, want the appended message", msgs)
	}

	c, _ := s.Contact("alice")
	if c.LastMessage != "hello" {
		t.Errorf("preview = %q, want %q", c.LastMessage, "hello")
	}
	if !c.LastMessageTime.Equal(msg.CreatedAt) {
		t.Errorf("preview time = %v, want %v", c.LastMessageTime, msg.CreatedAt)
	}
}

func TestAppendMessageCounterpartIsRead(t *testing.T) {
	s := newTestStore(t)

	msg, err := s.AppendMessage("alice", "alice", KindText, "hi there", "", nil)
	if err != nil {
		t.Fatalf("AppendMessage returned error: %v", err)
	}
	if msg.Status != StatusRead {
		t.Errorf("counterpart message status = %q, want %q", msg.Status, StatusRead)
	}
}

func TestAppendMessageUnknownContact(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AppendMessage("nobody", SelfID, KindText, "hello", "", nil); err == nil {
		t.Fatal("expected error for unknown contact")
	}
}

func TestAppendMessagePreviewGlyphs(t *testing.T) {
	tests := []struct {
		kind    Kind
		body    string
		preview string
	}{
		{KindText, "plain text", "plain text"},
		{KindAudio, "", "🎵 Audio"},
		{KindImage, "Image", "📷 Image"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			s := newTestStore(t)
			if _, err := s.AppendMessage("alice", SelfID, tt.kind, tt.body, "", nil); err != nil {
				t.Fatalf("AppendMessage returned error: %v", err)
			}
			c, _ := s.Contact("alice")
			if c.LastMessage != tt.preview {
				t.Errorf("preview = %q, want %q", c.LastMessage, tt.preview)
			}
		})
	}
}

func TestAppendNeverMutatesPriorMessages(t *testing.T) {
	s := newTestStore(t)

	first, _ := s.AppendMessage("alice", SelfID, KindText, "first", "", nil)
	before := s.Messages("alice")

	s.AppendMessage("alice", "alice", KindText, "second", "", nil)

	after := s.Messages("alice")
	if after[0] != before[0] || after[0].ID != first.ID {
		t.Errorf("prior message changed: before %+v, after %+v", before[0], after[0])
	}
}

func TestDeleteMessageRoundTrip(t *testing.T) {
	s := newTestStore(t)

	s.AppendMessage("alice", SelfID, KindText, "keep me", "", nil)
	before := s.Messages("alice")

	msg, _ := s.AppendMessage("alice", SelfID, KindText, "delete me", "", nil)
	s.DeleteMessage("alice", msg.ID)

	after := s.Messages("alice")
	if len(after) != len(before) {
		t.Fatalf("thread length = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("message %d changed: %+v != %+v", i, after[i], before[i])
		}
	}

	// The preview is deliberately NOT rolled back by deletion.
	c, _ := s.Contact("alice")
	if c.LastMessage != "delete me" {
		t.Errorf("preview = %q, want %q (deletion must not roll back previews)", c.LastMessage, "delete me")
	}
}

func TestDeleteMessageMissingIsNoop(t *testing.T) {
	s := newTestStore(t)

	s.AppendMessage("alice", SelfID, KindText, "hello", "", nil)
	s.DeleteMessage("alice", "no-such-id")

	if got := len(s.Messages("alice")); got != 1 {
		t.Errorf("thread length = %d, want 1", got)
	}
}

func TestDeleteMessageKeepsReplySnapshots(t *testing.T) {
	s := newTestStore(t)

	orig, _ := s.AppendMessage("alice", "alice", KindText, "original text", "", nil)
	reply, _ := s.AppendMessage("alice", SelfID, KindText, "replying", "", SnapshotReply(orig, "Alice Rivera"))

	s.DeleteMessage("alice", orig.ID)

	msgs := s.Messages("alice")
	if len(msgs) != 1 || msgs[0].ID != reply.ID {
		t.Fatalf("thread = %v, want only the reply", msgs)
	}
	if msgs[0].ReplyTo == nil || msgs[0].ReplyTo.Text != "original text" {
		t.Errorf("reply snapshot lost after deleting the original: %+v", msgs[0].ReplyTo)
	}
}

func TestClearThread(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		s.AppendMessage("alice", SelfID, KindText, "msg", "", nil)
	}
	s.ClearThread("alice")

	if got := len(s.Messages("alice")); got != 0 {
		t.Errorf("thread length after clear = %d, want 0", got)
	}
	c, _ := s.Contact("alice")
	if c.LastMessage != "" || !c.LastMessageTime.IsZero() {
		t.Errorf("preview not cleared: %q / %v", c.LastMessage, c.LastMessageTime)
	}

	// Clearing again is a no-op.
	s.ClearThread("alice")
	if got := len(s.Messages("alice")); got != 0 {
		t.Errorf("thread length after second clear = %d, want 0", got)
	}
}

func TestSelectThreadResetsUnread(t *testing.T) {
	s := newTestStore(t)

	s.SelectThread("alice")

	c, _ := s.Contact("alice")
	if c.UnreadCount != 0 {
		t.Errorf("unread = %d, want 0", c.UnreadCount)
	}
	if s.ActiveThread() != "alice" {
		t.Errorf("active thread = %q, want %q", s.ActiveThread(), "alice")
	}
}

func TestSelectThreadCreatesEmptyThread(t *testing.T) {
	s := NewStore()
	s.AddContact(Contact{ID: "new"})
	s.SelectThread("new")

	if msgs := s.Messages("new"); msgs == nil || len(msgs) != 0 {
		t.Errorf("expected empty thread, got %v", msgs)
	}
}

func TestBumpUnread(t *testing.T) {
	s := newTestStore(t)
	s.AddContact(Contact{ID: "ben"})

	s.SelectThread("alice")
	s.BumpUnread("ben")
	s.BumpUnread("alice") // active, must not bump

	ben, _ := s.Contact("ben")
	alice, _ := s.Contact("alice")
	if ben.UnreadCount != 1 {
		t.Errorf("ben unread = %d, want 1", ben.UnreadCount)
	}
	if alice.UnreadCount != 0 {
		t.Errorf("alice unread = %d, want 0", alice.UnreadCount)
	}
}

func TestToggleStar(t *testing.T) {
	s := newTestStore(t)

	msg, _ := s.AppendMessage("alice", SelfID, KindText, "star me", "", nil)

	if !s.ToggleStar("alice", msg.ID) {
		t.Error("first toggle = false, want true")
	}
	if s.ToggleStar("alice", msg.ID) {
		t.Error("second toggle = true, want false")
	}
	if s.ToggleStar("alice", "missing") {
		t.Error("toggle on missing message = true, want false")
	}
}

func TestSnapshotReplyTruncation(t *testing.T) {
	long := ""
	for i := 0; i < 100; i++ {
		long += "🎉"
	}
	ref := SnapshotReply(Message{ID: "m1", Body: long, Kind: KindText}, "Alice")
	// 80 graphemes plus the ellipsis, with no broken emoji.
	want := ""
	for i := 0; i < 80; i++ {
		want += "🎉"
	}
	want += "…"
	if ref.Text != want {
		t.Errorf("snapshot text = %q, want %q", ref.Text, want)
	}

	short := SnapshotReply(Message{ID: "m2", Body: "short", Kind: KindText}, "Alice")
	if short.Text != "short" {
		t.Errorf("snapshot text = %q, want %q", short.Text, "short")
	}
}
