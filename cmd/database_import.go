package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/solobooks/solobooks/internal/audit"
	"github.com/solobooks/solobooks/internal/configs"
	"github.com/solobooks/solobooks/internal/vault"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var importForce bool

func init() {
	importCmd.Flags().BoolVar(&importForce, "force", false, "overwrite an existing database")
}

func resetImportCommandState() {
	importForce = false
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Install a database file from elsewhere as this machine's database",
	Long: `Copies a database file (from a backup, another machine, or the desktop
app) into the SoloBooks data directory. The file's content is inspected to
guess whether it is an encrypted container or a plaintext database, and it
is installed accordingly.

The content check is a heuristic: a real random container header is never
all zeros or all printable text, but unusual files can be misclassified.
Check the result with 'solobooks db status' after importing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourcePath := args[0]
		Logger.Infof("Starting import command for %s", sourcePath)

		config, err := configs.LoadAppConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}
		dataPath := configs.DataFilePath(config)
		containerPath := configs.ContainerPath(dataPath)

		if _, err := os.Stat(sourcePath); err != nil {
			color.Red("✗ Cannot read " + sourcePath)
			return nil
		}

		encrypted, err := vault.LooksEncrypted(sourcePath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to inspect %s: %v", sourcePath, err)
		}
		Logger.Debugf("Heuristic classification for %s: encrypted=%t", sourcePath, encrypted)

		destPath := dataPath
		if encrypted {
			destPath = containerPath
		}

		if !importForce {
			if _, err := os.Stat(destPath); err == nil {
				color.Red("✗ A database already exists at " + destPath)
				color.Cyan("→ Re-run with --force to overwrite it")
				return nil
			}
		}

		spinner, cleanup := startSpinner("Importing database...", verbose)
		defer cleanup()

		if err := os.MkdirAll(filepath.Dir(destPath), 0700); err != nil {
			return Logger.ErrorfAndReturn("failed to create data directory: %v", err)
		}
		if err := copyFile(sourcePath, destPath); err != nil {
			audit.Log(audit.Entry{Operation: "import", Path: destPath, Error: err.Error()})
			return Logger.ErrorfAndReturn("failed to import: %v", err)
		}

		config.Database.Encrypted = encrypted
		if err := configs.SaveAppConfig(config); err != nil {
			return Logger.ErrorfAndReturn("file imported but failed to save config: %v", err)
		}

		classification := "plaintext database"
		if encrypted {
			classification = "encrypted container"
		}
		audit.Log(audit.Entry{Operation: "import", Path: destPath, Encrypted: encrypted, Detail: classification})

		spinner.FinalMSG = color.GreenString("✓") + " Imported as " + classification + " at " + color.YellowString(destPath) + "\n" +
			color.CyanString("→") + " Verify with " + color.YellowString("solobooks db status")
		return nil
	},
}

// copyFile copies source to dest with owner-only permissions, via a
// temporary file and rename so a failed copy never leaves a partial
// database in place.
func copyFile(sourcePath, destPath string) error {
	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", sourcePath, err)
	}
	defer source.Close()

	tmpPath := destPath + ".import-tmp"
	dest, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	if _, err := io.Copy(dest, source); err != nil {
		dest.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy: %w", err)
	}
	if err := dest.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", destPath, err)
	}
	return nil
}
