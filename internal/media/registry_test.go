package media

import (
	"bytes"
	"testing"
)

func TestPutAndGet(t *testing.T) {
	r := NewRegistry()

	data := []byte{0x89, 0x50, 0x4e, 0x47}
	ref := r.Put(data, "image/png")

	if !IsRef(ref) {
		t.Errorf("Put() returned %q, want a mem:// reference", ref)
	}

	blob, ok := r.Get(ref)
	if !ok {
		t.Fatal("Get() should find a stored blob")
	}
	if !bytes.Equal(blob.Data, data) {
		t.Error("Get() returned different data than stored")
	}
	if blob.MediaType != "image/png" {
		t.Errorf("MediaType = %q, want %q", blob.MediaType, "image/png")
	}
}

func TestRefsAreUnique(t *testing.T) {
	r := NewRegistry()

	a := r.Put([]byte("a"), "audio/wav")
	b := r.Put([]byte("b"), "audio/wav")

	if a == b {
		t.Error("two Put() calls should return distinct references")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRelease(t *testing.T) {
	r := NewRegistry()

	ref := r.Put([]byte("payload"), "audio/wav")
	r.Release(ref)

	if _, ok := r.Get(ref); ok {
		t.Error("Get() should miss after Release()")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}

	// Releasing again is a no-op.
	r.Release(ref)
	r.Release("mem://never-existed")
}

func TestIsRef(t *testing.T) {
	if !IsRef("mem://abc") {
		t.Error("mem:// prefix should be recognized")
	}
	if IsRef("file:///tmp/x.png") {
		t.Error("other schemes should not be recognized")
	}
	if IsRef("") {
		t.Error("empty string is not a reference")
	}
}
