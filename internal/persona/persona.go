// Package persona provides canned reply lines for non-AI contacts.
//
// Personas are loaded from an optional personas.yaml in the config
// directory and merged with built-in defaults, so the app always has
// something to say even with no file present.
package persona

import (
	"context"

	"github.com/neochat/neochat/internal/chat"
)

// Persona is one contact's scripted voice.
type Persona struct {
	Lines []string `yaml:"lines"`
}

// Config is the full personas.yaml schema.
type Config struct {
	Personas map[string]Persona `yaml:"personas"`
	Default  Persona            `yaml:"default"`
}

// Set resolves contacts to reply lines. It implements the responder's
// Generator interface for scripted contacts.
type Set struct {
	cfg *Config
}

// NewSet wraps a merged Config.
func NewSet(cfg *Config) *Set {
	return &Set{cfg: cfg}
}

// Generate returns the contact's next scripted line. Line choice is keyed
// off the conversation length so consecutive replies differ but remain
// deterministic.
func (s *Set) Generate(_ context.Context, contact chat.Contact, history []chat.Message) (string, error) {
	lines := s.cfg.Default.Lines
	if p, ok := s.cfg.Personas[contact.ID]; ok && len(p.Lines) > 0 {
		lines = p.Lines
	}
	if len(lines) == 0 {
		return "👍", nil
	}
	return lines[len(history)%len(lines)], nil
}
