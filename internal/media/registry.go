// Package media holds in-memory blobs referenced by messages.
//
// Messages carry an opaque "mem://" reference instead of raw bytes so the
// store stays small and blobs can be released independently of message
// history.
package media

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

const refScheme = "mem://"

// Blob is a stored media payload.
type Blob struct {
	Data      []byte
	MediaType string // MIME type, e.g. "image/png" or "audio/wav"
}

// Registry is a thread-safe in-memory blob store.
type Registry struct {
	mu    sync.Mutex
	blobs map[string]Blob
	newID func() string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		blobs: make(map[string]Blob),
		newID: uuid.NewString,
	}
}

// Put stores a blob and returns its reference.
func (r *Registry) Put(data []byte, mediaType string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref := refScheme + r.newID()
	r.blobs[ref] = Blob{Data: data, MediaType: mediaType}
	return ref
}

// Get returns the blob for a reference, if present.
func (r *Registry) Get(ref string) (Blob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blob, ok := r.blobs[ref]
	return blob, ok
}

// Release frees the blob for a reference. Releasing an unknown or already
// released reference is a no-op.
func (r *Registry) Release(ref string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.blobs, ref)
}

// Len returns the number of stored blobs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.blobs)
}

// IsRef reports whether s looks like a registry reference.
func IsRef(s string) bool {
	return strings.HasPrefix(s, refScheme)
}
