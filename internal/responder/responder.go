// Package responder schedules simulated replies from contacts.
//
// Each conversation is either idle or awaiting exactly one reply. When a
// reply is triggered the responder hands back a closure suitable for running
// as a tea.Cmd; the closure's Result carries a token that must match the
// conversation's current token to be accepted. Results with a stale token
// (the conversation was re-triggered or cancelled in the meantime) are
// discarded, so a slow generation can never clobber a newer one.
package responder

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/neochat/neochat/internal/chat"
	"github.com/neochat/neochat/internal/errors"
	"github.com/neochat/neochat/internal/logger"
)

// DefaultTimeout bounds how long a single reply generation may take.
const DefaultTimeout = 30 * time.Second

// Generator produces the text of a contact's reply given the conversation
// history. history is ordered oldest first and includes the message being
// replied to as its last element.
type Generator interface {
	Generate(ctx context.Context, contact chat.Contact, history []chat.Message) (string, error)
}

// Result is delivered when a reply generation finishes, successfully or not.
type Result struct {
	ContactID string
	Token     uint64
	Text      string
	Err       error
}

// threadState holds per-conversation reply state.
type threadState struct {
	token  uint64
	cancel context.CancelFunc
	start  time.Time
}

// Responder tracks which conversations are awaiting a reply.
// All methods are safe for concurrent use.
type Responder struct {
	mu      sync.Mutex
	states  map[string]*threadState
	seq     uint64
	timeout time.Duration
	delay   func() time.Duration // extra pause before generating, nil for none
}

// Option configures a Responder.
type Option func(*Responder)

// WithTimeout overrides the per-reply generation timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Responder) { r.timeout = d }
}

// WithDelay adds an artificial typing pause before each generation.
func WithDelay(fn func() time.Duration) Option {
	return func(r *Responder) { r.delay = fn }
}

// New creates a Responder.
func New(opts ...Option) *Responder {
	r := &Responder{
		states:  make(map[string]*threadState),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Trigger marks the contact's conversation as awaiting a reply and returns a
// closure that produces the Result. Running the closure (typically as a
// tea.Cmd) performs the generation. Triggering again before the previous
// reply resolves supersedes it: the old token goes stale and its Result will
// be rejected by Resolve.
func (r *Responder) Trigger(gen Generator, contact chat.Contact, history []chat.Message) func() Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Supersede any in-flight generation for this conversation.
	if prev, ok := r.states[contact.ID]; ok && prev.cancel != nil {
		prev.cancel()
	}

	r.seq++
	token := r.seq
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	r.states[contact.ID] = &threadState{
		token:  token,
		cancel: cancel,
		start:  time.Now(),
	}

	logger.Debug("Responder: Triggered reply for %s (token %d)", contact.ID, token)

	delay := r.delay
	return func() Result {
		defer cancel()

		if delay != nil {
			select {
			case <-time.After(delay()):
			case <-ctx.Done():
				return Result{ContactID: contact.ID, Token: token, Err: timeoutErr(ctx, contact.ID)}
			}
		}

		text, err := gen.Generate(ctx, contact, history)
		if err != nil {
			if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
				err = errors.GenerateTimeout(contact.ID)
			}
			return Result{ContactID: contact.ID, Token: token, Err: err}
		}
		return Result{ContactID: contact.ID, Token: token, Text: text}
	}
}

func timeoutErr(ctx context.Context, contactID string) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.GenerateTimeout(contactID)
	}
	return ctx.Err()
}

// Resolve reports whether the result is current for its conversation. A true
// return clears the awaiting state; the caller should then append the reply
// (or surface the error). A false return means the result is stale and must
// be dropped on the floor.
func (r *Responder) Resolve(res Result) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.states[res.ContactID]
	if !ok || st.token != res.Token {
		logger.Debug("Responder: Discarding stale result for %s (token %d)", res.ContactID, res.Token)
		return false
	}

	if st.cancel != nil {
		st.cancel()
	}
	delete(r.states, res.ContactID)
	logger.Debug("Responder: Resolved reply for %s (token %d)", res.ContactID, res.Token)
	return true
}

// Awaiting reports whether the contact's conversation has a reply in flight.
// The UI uses this for the typing indicator.
func (r *Responder) Awaiting(contactID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.states[contactID]
	return ok
}

// WaitStart returns when the in-flight reply was triggered, if any.
func (r *Responder) WaitStart(contactID string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.states[contactID]
	if !ok {
		return time.Time{}, false
	}
	return st.start, true
}

// Cancel aborts any in-flight reply for the contact. The eventual Result's
// token will no longer match, so Resolve will reject it.
func (r *Responder) Cancel(contactID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.states[contactID]; ok {
		if st.cancel != nil {
			st.cancel()
		}
		delete(r.states, contactID)
	}
}

// CancelAll aborts every in-flight reply. Called on shutdown.
func (r *Responder) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, st := range r.states {
		if st.cancel != nil {
			st.cancel()
		}
		delete(r.states, id)
	}
}
