package persona

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const personasFileName = "personas.yaml"

// Load reads and parses personas.yaml from the given config directory.
// Returns nil, nil if the file does not exist.
func Load(configDir string) (*Config, error) {
	fp := filepath.Join(configDir, personasFileName)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read personas file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse personas file: %w", err)
	}

	return &cfg, nil
}

// LoadAndMerge loads the personas file and merges with defaults.
// If no personas file exists, returns the default config.
func LoadAndMerge(configDir string) (*Config, error) {
	cfg, err := Load(configDir)
	if err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	if cfg == nil {
		return defaults, nil
	}

	return Merge(cfg, defaults), nil
}

// Merge fills in missing values in partial from defaults.
// partial takes precedence; a persona defined in partial fully replaces
// the default persona for that contact.
func Merge(partial, defaults *Config) *Config {
	result := *partial

	if result.Personas == nil {
		result.Personas = make(map[string]Persona, len(defaults.Personas))
	}
	for id, p := range defaults.Personas {
		if _, ok := result.Personas[id]; !ok {
			result.Personas[id] = p
		}
	}

	if len(result.Default.Lines) == 0 {
		result.Default = defaults.Default
	}

	return &result
}
