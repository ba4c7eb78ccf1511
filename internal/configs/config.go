package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// AppConfig is the persisted application configuration.
type AppConfig struct {
	Database DatabaseConfig `toml:"database"`
}

// DatabaseConfig records how the local database is stored. Encrypted is
// the authoritative "is this database encrypted" flag; the content
// heuristic in the vault package is never trusted when this is available.
type DatabaseConfig struct {
	// Encrypted enables the at-rest encryption lifecycle.
	Encrypted bool `toml:"encrypted"`

	// Path optionally overrides the default data file location.
	Path string `toml:"path,omitempty"`
}

// LoadAppConfig loads config.toml, returning defaults if it does not exist.
func LoadAppConfig() (*AppConfig, error) {
	configPath := filepath.Join(AppSettings.ConfigDir, "config.toml")

	config := &AppConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	return config, nil
}

// SaveAppConfig writes the configuration to config.toml, creating the
// config directory on first run. The encryption flag must survive every
// save, so the whole struct is re-encoded rather than patched in place.
func SaveAppConfig(config *AppConfig) error {
	configPath := filepath.Join(AppSettings.ConfigDir, "config.toml")

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("failed to save app config: %w", err)
	}

	return nil
}
