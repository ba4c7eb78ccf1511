package cmd

import (
	logger "github.com/solobooks/solobooks/internal/logging"
	"github.com/solobooks/solobooks/internal/password"
	"github.com/solobooks/solobooks/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	DatabaseCmd = &cobra.Command{
		Use:   "db",
		Short: "Manage the local database file and its at-rest encryption",
		Long:  `Provides encryption, decryption, password management, health checks, and status reporting for the SoloBooks database file.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing db command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	DatabaseCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	DatabaseCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	DatabaseCmd.AddCommand(statusCmd)
	DatabaseCmd.AddCommand(encryptCmd)
	DatabaseCmd.AddCommand(decryptCmd)
	DatabaseCmd.AddCommand(passwdCmd)
	DatabaseCmd.AddCommand(forgetCmd)
	DatabaseCmd.AddCommand(doctorCmd)
	DatabaseCmd.AddCommand(importCmd)
}

// newResolver builds the password resolver for this invocation: platform
// credential store when one exists, interactive prompt when stdin is a
// terminal. The SOLOBOOKS_DB_PASSWORD environment variable is consulted by
// the resolver itself.
func newResolver() *password.Resolver {
	var store password.CredentialStore
	if keychain, err := password.OpenKeychain(); err == nil {
		store = keychain
	} else {
		Logger.Debugf("Credential store unavailable: %v", err)
	}

	resolver := password.NewResolver(store)
	if utils.IsTerminal() {
		resolver.Prompt = func() ([]byte, error) {
			return utils.ReadPassword("Database password: ")
		}
	}
	return resolver
}

// Helper functions for testing

// GetDatabaseCmd returns the DatabaseCmd for testing.
func GetDatabaseCmd() *cobra.Command {
	return DatabaseCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetEncryptCommandState()
	resetDoctorCommandState()
	resetImportCommandState()

	for _, sub := range DatabaseCmd.Commands() {
		sub.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
