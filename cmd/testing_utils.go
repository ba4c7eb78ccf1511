// Package cmd contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and building a CLI instance wired to the real commands.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/solobooks/solobooks/internal/configs"
	logger "github.com/solobooks/solobooks/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment redirects all application paths into temporary
// directories and restores the original settings when the test finishes.
func setupTestEnvironment(t *testing.T) *configs.Settings {
	t.Helper()

	original := configs.AppSettings
	t.Cleanup(func() {
		configs.AppSettings = original
		ResetGlobalState()
	})

	tempDir := t.TempDir()
	configs.AppSettings = &configs.Settings{
		ConfigDir: filepath.Join(tempDir, "config"),
		DataDir:   filepath.Join(tempDir, "data"),
	}
	if err := os.MkdirAll(configs.AppSettings.ConfigDir, 0700); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}
	if err := os.MkdirAll(configs.AppSettings.DataDir, 0700); err != nil {
		t.Fatalf("Failed to create data directory: %v", err)
	}
	return configs.AppSettings
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI creates a complete CLI instance for testing that runs the
// given db subcommand with the real command implementations.
func createTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	verbose = verboseFlag
	debug = debugFlag

	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	rootCmd := &cobra.Command{
		Use:   "solobooks",
		Short: "SoloBooks - A CLI for running a one-person business from the terminal.",
	}
	rootCmd.AddCommand(DatabaseCmd)

	rootCmd.SetArgs(append([]string{"db"}, args...))

	if err := DatabaseCmd.PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := DatabaseCmd.PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}
