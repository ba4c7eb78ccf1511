package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/solobooks/solobooks/internal/configs"
	"github.com/solobooks/solobooks/internal/password"
	"github.com/solobooks/solobooks/internal/workflows"
)

// TestDatabaseLifecycle contains integration tests for the `solobooks db`
// commands, run against temporary directories with the password supplied
// through the environment.
func TestDatabaseLifecycle(t *testing.T) {
	t.Run("EncryptThenDecryptRoundTrip", testEncryptThenDecryptRoundTrip)
	t.Run("EncryptWithoutDatabaseFile", testEncryptWithoutDatabaseFile)
	t.Run("StatusOnEmptyInstall", testStatusOnEmptyInstall)
	t.Run("PasswdWithoutEncryption", testPasswdWithoutEncryption)
	t.Run("DoctorOnCleanInstall", testDoctorOnCleanInstall)
	t.Run("ImportPlaintextDatabase", testImportPlaintextDatabase)
	t.Run("ImportEncryptedContainer", testImportEncryptedContainer)
}

func testEncryptThenDecryptRoundTrip(t *testing.T) {
	settings := setupTestEnvironment(t)
	t.Setenv(password.EnvVar, "correct horse battery staple")

	dataPath := filepath.Join(settings.DataDir, configs.DataFileName)
	containerPath := configs.ContainerPath(dataPath)
	content := []byte("SQLite format 3\x00 pretend database content")
	if err := os.WriteFile(dataPath, content, 0600); err != nil {
		t.Fatalf("Failed to write data file: %v", err)
	}

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"encrypt"}, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("encrypt failed: %v\nOutput: %s", err, output)
	}

	if _, err := os.Stat(containerPath); err != nil {
		t.Errorf("Container was not created: %v", err)
	}
	if _, err := os.Stat(dataPath); !os.IsNotExist(err) {
		t.Errorf("Plaintext data file should have been removed after encrypt")
	}

	config, err := configs.LoadAppConfig()
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if !config.Database.Encrypted {
		t.Errorf("Config should record encryption as enabled")
	}

	output, err = captureOutput(func() error {
		return createTestCLI([]string{"status"}, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("status failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "enabled") {
		t.Errorf("Status should report encryption enabled, got: %s", output)
	}

	output, err = captureOutput(func() error {
		return createTestCLI([]string{"decrypt"}, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("decrypt failed: %v\nOutput: %s", err, output)
	}

	restored, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("Plaintext data file was not restored: %v", err)
	}
	if !bytes.Equal(restored, content) {
		t.Errorf("Restored content differs from original")
	}
	if _, err := os.Stat(containerPath); !os.IsNotExist(err) {
		t.Errorf("Container should have been removed after decrypt")
	}

	config, err = configs.LoadAppConfig()
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if config.Database.Encrypted {
		t.Errorf("Config should record encryption as disabled")
	}
}

func testEncryptWithoutDatabaseFile(t *testing.T) {
	settings := setupTestEnvironment(t)
	t.Setenv(password.EnvVar, "irrelevant")

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"encrypt"}, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("encrypt should not return an error for a missing file: %v\nOutput: %s", err, output)
	}

	containerPath := configs.ContainerPath(filepath.Join(settings.DataDir, configs.DataFileName))
	if _, err := os.Stat(containerPath); !os.IsNotExist(err) {
		t.Errorf("No container should be created when there is no data file")
	}
}

func testStatusOnEmptyInstall(t *testing.T) {
	setupTestEnvironment(t)

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"status"}, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("status failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "(absent)") {
		t.Errorf("Status should report absent files, got: %s", output)
	}
	if !strings.Contains(output, "disabled") {
		t.Errorf("Status should report encryption disabled, got: %s", output)
	}
}

func testPasswdWithoutEncryption(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv(password.EnvVar, "irrelevant")

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"passwd"}, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("passwd should not return an error when encryption is off: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "not enabled") {
		t.Errorf("passwd should report encryption not enabled, got: %s", output)
	}
}

func testDoctorOnCleanInstall(t *testing.T) {
	setupTestEnvironment(t)

	exitCode := -1
	SetDoctorExitFunc(func(code int) {
		exitCode = code
	})

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"doctor", "--json"}, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("doctor failed: %v\nOutput: %s", err, output)
	}
	if exitCode != -1 {
		t.Errorf("doctor should not exit non-zero on a clean install, got exit code %d", exitCode)
	}

	var result workflows.DoctorResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("doctor --json output did not parse: %v\nOutput: %s", err, output)
	}
	if result.Summary.Errors != 0 {
		t.Errorf("Clean install should have no errors, got %d", result.Summary.Errors)
	}
	if len(result.Checks) == 0 {
		t.Errorf("Doctor should run at least one check")
	}
}

func testImportPlaintextDatabase(t *testing.T) {
	settings := setupTestEnvironment(t)

	sourcePath := filepath.Join(t.TempDir(), "backup.db")
	if err := os.WriteFile(sourcePath, []byte("SQLite format 3\x00 backup"), 0600); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"import", sourcePath}, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("import failed: %v\nOutput: %s", err, output)
	}

	dataPath := filepath.Join(settings.DataDir, configs.DataFileName)
	if _, err := os.Stat(dataPath); err != nil {
		t.Errorf("Imported plaintext database not found at %s: %v", dataPath, err)
	}

	config, err := configs.LoadAppConfig()
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if config.Database.Encrypted {
		t.Errorf("Plaintext import should leave encryption disabled")
	}
}

func testImportEncryptedContainer(t *testing.T) {
	settings := setupTestEnvironment(t)

	// High-entropy bytes that pass the container heuristic: long enough,
	// not all zeros, not all printable text.
	blob := make([]byte, 80)
	for i := range blob {
		blob[i] = byte(i*7 + 3)
	}
	sourcePath := filepath.Join(t.TempDir(), "backup.sbvault")
	if err := os.WriteFile(sourcePath, blob, 0600); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"import", sourcePath}, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("import failed: %v\nOutput: %s", err, output)
	}

	containerPath := configs.ContainerPath(filepath.Join(settings.DataDir, configs.DataFileName))
	if _, err := os.Stat(containerPath); err != nil {
		t.Errorf("Imported container not found at %s: %v", containerPath, err)
	}

	config, err := configs.LoadAppConfig()
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if !config.Database.Encrypted {
		t.Errorf("Container import should record encryption as enabled")
	}
}
