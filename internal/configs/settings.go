package configs

import (
	"log"
	"os"
	"path/filepath"
)

// Settings holds the resolved filesystem locations for this user. Tests
// swap the package-level pointer to redirect everything into a temp dir.
type Settings struct {
	// ConfigDir holds config.toml and the audit log.
	ConfigDir string

	// DataDir holds the database file and its encrypted container.
	DataDir string
}

var AppSettings *Settings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("error getting home directory: %s", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	AppSettings = &Settings{
		ConfigDir: filepath.Join(configDir, "solobooks"),
		DataDir:   filepath.Join(dataDir, "solobooks"),
	}
}

// DataFileName is the plaintext working file the data layer opens.
const DataFileName = "solobooks.db"

// ContainerSuffix distinguishes the at-rest container from the working
// file it sits beside. Shared with the desktop front-end.
const ContainerSuffix = ".sbvault"

// DataFilePath returns the working file location, honoring a configured
// override path.
func DataFilePath(config *AppConfig) string {
	if config != nil && config.Database.Path != "" {
		return config.Database.Path
	}
	return filepath.Join(AppSettings.DataDir, DataFileName)
}

// ContainerPath returns the at-rest container location for a data file.
func ContainerPath(dataPath string) string {
	return dataPath + ContainerSuffix
}
