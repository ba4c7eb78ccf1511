package cmd

import (
	"bytes"
	"errors"
	"os"

	"github.com/solobooks/solobooks/internal/audit"
	"github.com/solobooks/solobooks/internal/configs"
	"github.com/solobooks/solobooks/internal/database"
	kerrors "github.com/solobooks/solobooks/internal/errors"
	"github.com/solobooks/solobooks/internal/password"
	"github.com/solobooks/solobooks/internal/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var savePassword bool

func init() {
	encryptCmd.Flags().BoolVar(&savePassword, "save-password", false, "store the password in the platform credential store")
}

func resetEncryptCommandState() {
	savePassword = false
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Enable at-rest encryption for the database file",
	Long: `Encrypts the plaintext database file into an at-rest container protected
by a password. From then on, the application decrypts the container on
start and re-encrypts it on exit. The password can optionally be stored
in the platform credential store so the desktop app can unlock the same
database without prompting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")

		config, err := configs.LoadAppConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}
		dataPath := configs.DataFilePath(config)
		Logger.Debugf("Data file: %s", dataPath)

		if config.Database.Encrypted {
			Logger.Infof("Encryption already enabled in config")
			color.Yellow("✗ Database encryption is already enabled")
			return nil
		}
		if _, err := os.Stat(dataPath); os.IsNotExist(err) {
			color.Red("✗ No database file found at " + dataPath)
			return nil
		}

		// Collect the password before the spinner starts drawing.
		pw, err := collectNewPassword()
		if err != nil {
			if errors.Is(err, kerrors.ErrPasswordMismatch) {
				color.Red("✗ Passwords do not match")
				return nil
			}
			return Logger.ErrorfAndReturn("failed to collect password: %v", err)
		}

		spinner, cleanup := startSpinner("Encrypting database...", verbose)
		defer cleanup()

		Logger.Debugf("Sealing %s", dataPath)
		if err := database.EnableEncryption(dataPath, pw); err != nil {
			if errors.Is(err, kerrors.ErrEncryptionAlreadyEnabled) {
				spinner.FinalMSG = color.YellowString("✗") + " An encrypted container already exists at " +
					color.YellowString(configs.ContainerPath(dataPath))
				return nil
			}
			audit.Log(audit.Entry{Operation: "encrypt", Path: dataPath, Error: err.Error()})
			return Logger.ErrorfAndReturn("failed to encrypt database: %v", err)
		}

		config.Database.Encrypted = true
		if err := configs.SaveAppConfig(config); err != nil {
			return Logger.ErrorfAndReturn("container written but failed to save config: %v", err)
		}

		finalMessage := color.GreenString("✓") + " Database encrypted to " +
			color.YellowString(configs.ContainerPath(dataPath))

		if savePassword {
			Logger.Debugf("Saving password to credential store")
			if keychain, err := password.OpenKeychain(); err == nil {
				if err := keychain.Set(pw); err != nil {
					Logger.WarnfAlways("Failed to store password in credential store: %v", err)
				} else {
					finalMessage += "\n" + color.CyanString("→") + " Password saved to the platform credential store"
				}
			} else {
				Logger.WarnfAlways("Credential store unavailable, password not saved: %v", err)
			}
		}

		audit.Log(audit.Entry{Operation: "encrypt", Path: dataPath, Encrypted: true})
		spinner.FinalMSG = finalMessage
		return nil
	},
}

// collectNewPassword reads a new password, honoring the environment
// override for scripted use and prompting twice interactively.
func collectNewPassword() ([]byte, error) {
	if value, ok := os.LookupEnv(password.EnvVar); ok {
		Logger.Debugf("Using password from %s", password.EnvVar)
		return []byte(value), nil
	}
	if !utils.IsTerminal() {
		return nil, kerrors.ErrPasswordUnavailable
	}

	first, err := utils.ReadPassword("New database password: ")
	if err != nil {
		return nil, err
	}
	second, err := utils.ReadPassword("Confirm database password: ")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(first, second) {
		return nil, kerrors.ErrPasswordMismatch
	}
	return first, nil
}
