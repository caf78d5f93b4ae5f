package responder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/neochat/neochat/internal/chat"
	"github.com/neochat/neochat/internal/errors"
)

// stubGenerator returns a fixed reply, optionally after blocking until the
// context expires.
type stubGenerator struct {
	text  string
	err   error
	block bool
}

func (g *stubGenerator) Generate(ctx context.Context, contact chat.Contact, history []chat.Message) (string, error) {
	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.text, g.err
}

func TestTriggerAndResolve(t *testing.T) {
	r := New()
	contact := chat.Contact{ID: "alice", Name: "Alice"}

	if r.Awaiting("alice") {
		t.Error("should not be awaiting before trigger")
	}

	cmd := r.Trigger(&stubGenerator{text: "hello back"}, contact, nil)

	if !r.Awaiting("alice") {
		t.Error("should be awaiting after trigger")
	}

	res := cmd()
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Text != "hello back" {
		t.Errorf("Text = %q, want %q", res.Text, "hello back")
	}
	if res.ContactID != "alice" {
		t.Errorf("ContactID = %q, want %q", res.ContactID, "alice")
	}

	if !r.Resolve(res) {
		t.Error("Resolve should accept a current result")
	}
	if r.Awaiting("alice") {
		t.Error("should not be awaiting after resolve")
	}
}

func TestResolveRejectsStaleToken(t *testing.T) {
	r := New()
	contact := chat.Contact{ID: "alice", Name: "Alice"}

	first := r.Trigger(&stubGenerator{text: "first"}, contact, nil)
	second := r.Trigger(&stubGenerator{text: "second"}, contact, nil)

	// The first generation finishes after being superseded.
	firstRes := first()
	if r.Resolve(firstRes) {
		t.Error("Resolve should reject a superseded result")
	}

	// Still awaiting the second reply.
	if !r.Awaiting("alice") {
		t.Error("should still be awaiting the current reply")
	}

	secondRes := second()
	if !r.Resolve(secondRes) {
		t.Error("Resolve should accept the current result")
	}
}

func TestResolveRejectsAfterCancel(t *testing.T) {
	r := New()
	contact := chat.Contact{ID: "ben", Name: "Ben"}

	cmd := r.Trigger(&stubGenerator{text: "reply"}, contact, nil)
	r.Cancel("ben")

	if r.Awaiting("ben") {
		t.Error("should not be awaiting after cancel")
	}

	res := cmd()
	if r.Resolve(res) {
		t.Error("Resolve should reject a cancelled reply")
	}
}

func TestTriggerTimeout(t *testing.T) {
	r := New(WithTimeout(10 * time.Millisecond))
	contact := chat.Contact{ID: "neo", Name: "Neo", AI: true}

	cmd := r.Trigger(&stubGenerator{block: true}, contact, nil)
	res := cmd()

	if res.Err == nil {
		t.Fatal("expected a timeout error")
	}
	if !errors.Is(res.Err, errors.KindTimeout) {
		t.Errorf("error kind = %v, want KindTimeout", errors.GetKind(res.Err))
	}

	// Errors still resolve so the awaiting state clears.
	if !r.Resolve(res) {
		t.Error("Resolve should accept the timeout result")
	}
	if r.Awaiting("neo") {
		t.Error("should not be awaiting after timeout resolves")
	}
}

func TestGeneratorErrorPassesThrough(t *testing.T) {
	r := New()
	contact := chat.Contact{ID: "neo", Name: "Neo", AI: true}

	genErr := errors.GenerateFailed("neo", fmt.Errorf("upstream unavailable"))
	cmd := r.Trigger(&stubGenerator{err: genErr}, contact, nil)
	res := cmd()

	if !errors.Is(res.Err, errors.KindGenerate) {
		t.Errorf("error kind = %v, want KindGenerate", errors.GetKind(res.Err))
	}
}

func TestWithDelay(t *testing.T) {
	r := New(WithDelay(func() time.Duration { return 5 * time.Millisecond }))
	contact := chat.Contact{ID: "alice", Name: "Alice"}

	start := time.Now()
	cmd := r.Trigger(&stubGenerator{text: "delayed"}, contact, nil)
	res := cmd()

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("generation finished in %v, expected at least the delay", elapsed)
	}
}

func TestWaitStart(t *testing.T) {
	r := New()
	contact := chat.Contact{ID: "alice", Name: "Alice"}

	if _, ok := r.WaitStart("alice"); ok {
		t.Error("WaitStart should report false when idle")
	}

	cmd := r.Trigger(&stubGenerator{text: "x"}, contact, nil)
	if _, ok := r.WaitStart("alice"); !ok {
		t.Error("WaitStart should report true while awaiting")
	}

	r.Resolve(cmd())
}

func TestCancelAll(t *testing.T) {
	r := New()

	r.Trigger(&stubGenerator{text: "a"}, chat.Contact{ID: "alice"}, nil)
	r.Trigger(&stubGenerator{text: "b"}, chat.Contact{ID: "ben"}, nil)

	r.CancelAll()

	if r.Awaiting("alice") || r.Awaiting("ben") {
		t.Error("no conversation should be awaiting after CancelAll")
	}
}

func TestIndependentConversations(t *testing.T) {
	r := New()

	aliceCmd := r.Trigger(&stubGenerator{text: "from alice"}, chat.Contact{ID: "alice"}, nil)
	benCmd := r.Trigger(&stubGenerator{text: "from ben"}, chat.Contact{ID: "ben"}, nil)

	// Resolving one conversation leaves the other in flight.
	if !r.Resolve(aliceCmd()) {
		t.Error("alice's reply should resolve")
	}
	if !r.Awaiting("ben") {
		t.Error("ben's reply should still be in flight")
	}
	if !r.Resolve(benCmd()) {
		t.Error("ben's reply should resolve")
	}
}
