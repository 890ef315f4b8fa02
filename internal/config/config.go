// Package config loads the optional emulation-layer configuration. The
// file is JSON; a missing file yields defaults, a malformed one is an
// error the registry initialization propagates.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EnvVar overrides the config file location.
const EnvVar = "WINFILE_CONFIG"

// Config controls which optional creators are registered and how
// credentials are handled.
type Config struct {
	DisableSMB         bool `json:"disableSMB"`
	DisableArchives    bool `json:"disableArchives"`
	PersistCredentials bool `json:"persistCredentials"`
}

// Manager provides configuration load/save around a single path.
type Manager struct {
	configPath string
}

func NewManager() *Manager {
	return &Manager{configPath: getConfigPath()}
}

// NewManagerAt pins the config path, bypassing the environment lookup.
func NewManagerAt(path string) *Manager {
	return &Manager{configPath: path}
}

func getConfigPath() string {
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "winfile", "config.json")
}

func getDefaultConfig() *Config {
	return &Config{}
}

// Load reads the config file over the defaults. A missing or unset path
// is not an error.
func (m *Manager) Load() (*Config, error) {
	cfg := getDefaultConfig()
	if m.configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration, creating the parent directory as
// needed.
func (m *Manager) Save(cfg *Config) error {
	if m.configPath == "" {
		return fmt.Errorf("no config path available")
	}
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}
	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
