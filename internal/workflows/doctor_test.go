package workflows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/solobooks/solobooks/internal/configs"
	"github.com/solobooks/solobooks/internal/vault"
)

func overrideSettings(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	original := configs.AppSettings
	t.Cleanup(func() { configs.AppSettings = original })
	configs.AppSettings = &configs.Settings{
		ConfigDir: filepath.Join(tmpDir, "config"),
		DataDir:   filepath.Join(tmpDir, "data"),
	}
}

func findCheck(t *testing.T, result DoctorResult, name string) CheckResult {
	t.Helper()
	for _, c := range result.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("No check named %q in %v", name, result.Checks)
	return CheckResult{}
}

func TestDoctor_CleanInstall(t *testing.T) {
	overrideSettings(t)

	result := Doctor()
	if result.Summary.Errors != 0 {
		t.Errorf("Expected no errors on a clean install, got %d", result.Summary.Errors)
	}
	if c := findCheck(t, result, "container"); c.Status != CheckPass {
		t.Errorf("Expected container check to pass without a container, got %s: %s", c.Status, c.Message)
	}
	if c := findCheck(t, result, "working file"); c.Status != CheckPass {
		t.Errorf("Expected working file check to pass, got %s: %s", c.Status, c.Message)
	}
}

func TestDoctor_TruncatedContainer(t *testing.T) {
	overrideSettings(t)

	dataPath := configs.DataFilePath(&configs.AppConfig{})
	containerPath := configs.ContainerPath(dataPath)
	if err := os.MkdirAll(filepath.Dir(containerPath), 0700); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}
	if err := os.WriteFile(containerPath, make([]byte, 20), 0600); err != nil {
		t.Fatalf("Failed to write truncated container: %v", err)
	}

	result := Doctor()
	if c := findCheck(t, result, "container"); c.Status != CheckError {
		t.Errorf("Expected container error for truncated file, got %s: %s", c.Status, c.Message)
	}
}

func TestDoctor_OrphanedWorkingFile(t *testing.T) {
	overrideSettings(t)

	dataPath := configs.DataFilePath(&configs.AppConfig{})
	containerPath := configs.ContainerPath(dataPath)
	if err := os.MkdirAll(filepath.Dir(dataPath), 0700); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}

	sealed, err := vault.Seal([]byte("hunter2"), []byte("ledger"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := vault.WriteContainer(containerPath, sealed); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := os.WriteFile(dataPath, []byte("leftover plaintext"), 0600); err != nil {
		t.Fatalf("Failed to write working file: %v", err)
	}

	result := Doctor()
	if c := findCheck(t, result, "working file"); c.Status != CheckWarning {
		t.Errorf("Expected working file warning, got %s: %s", c.Status, c.Message)
	}
}
