package persona

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/neochat/neochat/internal/chat"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != nil {
		t.Error("Load() should return nil for a missing file")
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	content := `personas:
  alice:
    lines:
      - "custom line one"
      - "custom line two"
default:
  lines:
    - "fallback"
`
	if err := os.WriteFile(filepath.Join(dir, "personas.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Personas["alice"].Lines) != 2 {
		t.Errorf("alice lines = %d, want 2", len(cfg.Personas["alice"].Lines))
	}
	if len(cfg.Default.Lines) != 1 {
		t.Errorf("default lines = %d, want 1", len(cfg.Default.Lines))
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "personas.yaml"), []byte("personas: [not a map"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}

func TestLoadAndMerge_NoFile(t *testing.T) {
	cfg, err := LoadAndMerge(t.TempDir())
	if err != nil {
		t.Fatalf("LoadAndMerge() error: %v", err)
	}
	if len(cfg.Personas) == 0 {
		t.Error("merged config should carry default personas")
	}
	if len(cfg.Default.Lines) == 0 {
		t.Error("merged config should carry default lines")
	}
}

func TestMerge_PartialOverridesPersona(t *testing.T) {
	partial := &Config{
		Personas: map[string]Persona{
			"alice": {Lines: []string{"only line"}},
		},
	}
	merged := Merge(partial, DefaultConfig())

	if len(merged.Personas["alice"].Lines) != 1 {
		t.Error("partial persona should fully replace the default")
	}
	if _, ok := merged.Personas["ben"]; !ok {
		t.Error("defaults should fill personas missing from partial")
	}
	if len(merged.Default.Lines) == 0 {
		t.Error("defaults should fill the default persona")
	}
}

func TestGenerate_UsesContactLines(t *testing.T) {
	set := NewSet(DefaultConfig())
	alice := chat.Contact{ID: "alice", Name: "Alice Rivera"}

	text, err := set.Generate(context.Background(), alice, nil)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if text != DefaultConfig().Personas["alice"].Lines[0] {
		t.Errorf("Generate() = %q, want alice's first line", text)
	}
}

func TestGenerate_VariesWithHistoryLength(t *testing.T) {
	set := NewSet(DefaultConfig())
	alice := chat.Contact{ID: "alice"}

	short, _ := set.Generate(context.Background(), alice, make([]chat.Message, 1))
	long, _ := set.Generate(context.Background(), alice, make([]chat.Message, 2))

	if short == long {
		t.Error("consecutive history lengths should pick different lines")
	}
}

func TestGenerate_UnknownContactFallsBack(t *testing.T) {
	set := NewSet(DefaultConfig())
	stranger := chat.Contact{ID: "stranger"}

	text, err := set.Generate(context.Background(), stranger, nil)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if text != DefaultConfig().Default.Lines[0] {
		t.Errorf("Generate() = %q, want the default first line", text)
	}
}

func TestGenerate_EmptySet(t *testing.T) {
	set := NewSet(&Config{})

	text, err := set.Generate(context.Background(), chat.Contact{ID: "anyone"}, nil)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if text == "" {
		t.Error("Generate() should never return an empty reply")
	}
}
