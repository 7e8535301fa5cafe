package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration of the game with the given id.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default.
// Only a broken customPath is an error; other broken files are skipped.
func Load(id, customPath string) (GameConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(id, data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := id + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(id, data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := Parse(id, data); err == nil {
			return cfg, nil
		}
	}

	return Default(id)
}

// Default returns the embedded default for a game, falling back to the
// hard-coded one if the embedded YAML cannot be used.
func Default(id string) (GameConfig, error) {
	fallback, ok := defaultConfigs[id]
	if !ok {
		return GameConfig{}, fmt.Errorf("no default config for game %q", id)
	}
	if cfg, err := Parse(id, GetDefaultYAML(id)); err == nil {
		return cfg, nil
	}
	return fallback(), nil
}

// Parse decodes and validates a YAML document. Unknown keys are errors.
func Parse(id string, data []byte) (GameConfig, error) {
	var cfg GameConfig
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, fmt.Errorf("%s: empty config", id)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", id, err)
	}
	if cfg.Title == "" {
		cfg.Title = id
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", id, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
