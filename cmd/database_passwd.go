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

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the database encryption password",
	Long: `Re-encrypts the at-rest container under a new password. The container is
replaced atomically, so an interrupted change leaves the old password
valid. If the platform credential store holds an entry for this database,
it is updated to the new password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting passwd command")

		config, err := configs.LoadAppConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}
		dataPath := configs.DataFilePath(config)

		resolver := newResolver()
		defer resolver.Clear()

		oldPw, err := resolver.Get()
		if err != nil {
			if errors.Is(err, kerrors.ErrPasswordUnavailable) {
				color.Red("✗ No current password available")
				color.Cyan("→ Set " + password.EnvVar + " or run from a terminal")
				return nil
			}
			return Logger.ErrorfAndReturn("failed to resolve current password: %v", err)
		}

		newPw, err := collectNewPassword()
		if err != nil {
			if errors.Is(err, kerrors.ErrPasswordMismatch) {
				color.Red("✗ Passwords do not match")
				return nil
			}
			return Logger.ErrorfAndReturn("failed to collect new password: %v", err)
		}

		spinner, cleanup := startSpinner("Re-encrypting database...", verbose)
		defer cleanup()

		if err := database.ChangePassword(dataPath, oldPw, newPw); err != nil {
			switch {
			case errors.Is(err, kerrors.ErrEncryptionNotEnabled):
				spinner.FinalMSG = color.YellowString("✗") + " Database encryption is not enabled\n" +
					color.CyanString("→") + " Run " + color.YellowString("solobooks db encrypt") + " first"
			case errors.Is(err, kerrors.ErrWrongPasswordOrCorrupt):
				spinner.FinalMSG = color.RedString("✗") + " Wrong password or corrupted database file"
			default:
				audit.Log(audit.Entry{Operation: "passwd", Path: dataPath, Error: err.Error()})
				return Logger.ErrorfAndReturn("failed to change password: %v", err)
			}
			return nil
		}

		finalMessage := color.GreenString("✓") + " Database password changed"

		// Keep an existing credential store entry in sync so the desktop
		// app doesn't start failing with the stale password.
		if keychain, err := password.OpenKeychain(); err == nil {
			stored, err := keychain.Get()
			if err == nil && stored != nil {
				if err := keychain.Set(newPw); err != nil {
					Logger.WarnfAlways("Failed to update credential store: %v", err)
				} else {
					finalMessage += "\n" + color.CyanString("→") + " Credential store entry updated"
				}
			}
		}

		audit.Log(audit.Entry{Operation: "passwd", Path: dataPath, Encrypted: true})
		spinner.FinalMSG = finalMessage
		return nil
	},
}
