package cmd

import (
	"errors"

	"github.com/solobooks/solobooks/internal/audit"
	"github.com/solobooks/solobooks/internal/configs"
	"github.com/solobooks/solobooks/internal/database"
	kerrors "github.com/solobooks/solobooks/internal/errors"
	"github.com/solobooks/solobooks/internal/password"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Disable at-rest encryption and restore the plaintext database file",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")

		config, err := configs.LoadAppConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}
		dataPath := configs.DataFilePath(config)
		Logger.Debugf("Data file: %s", dataPath)

		resolver := newResolver()
		defer resolver.Clear()

		pw, err := resolver.Get()
		if err != nil {
			if errors.Is(err, kerrors.ErrPasswordUnavailable) {
				color.Red("✗ No password available")
				color.Cyan("→ Set " + password.EnvVar + " or run from a terminal")
				return nil
			}
			return Logger.ErrorfAndReturn("failed to resolve password: %v", err)
		}

		spinner, cleanup := startSpinner("Decrypting database...", verbose)
		defer cleanup()

		if err := database.DisableEncryption(dataPath, pw); err != nil {
			switch {
			case errors.Is(err, kerrors.ErrEncryptionNotEnabled):
				spinner.FinalMSG = color.YellowString("✗") + " Database encryption is not enabled"
			case errors.Is(err, kerrors.ErrWrongPasswordOrCorrupt):
				spinner.FinalMSG = color.RedString("✗") + " Wrong password or corrupted database file"
			default:
				audit.Log(audit.Entry{Operation: "decrypt", Path: dataPath, Error: err.Error()})
				return Logger.ErrorfAndReturn("failed to decrypt database: %v", err)
			}
			return nil
		}

		config.Database.Encrypted = false
		if err := configs.SaveAppConfig(config); err != nil {
			return Logger.ErrorfAndReturn("plaintext restored but failed to save config: %v", err)
		}

		audit.Log(audit.Entry{Operation: "decrypt", Path: dataPath})
		spinner.FinalMSG = color.GreenString("✓") + " Database decrypted to " + color.YellowString(dataPath) + "\n" +
			color.CyanString("→") + " The file is now stored in plaintext"
		return nil
	},
}
