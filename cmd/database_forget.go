package cmd

import (
	"github.com/solobooks/solobooks/internal/audit"
	"github.com/solobooks/solobooks/internal/password"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var forgetCmd = &cobra.Command{
	Use:   "forget",
	Short: "Remove the stored database password",
	Long: `Clears the in-memory password cache and deletes the entry from the
platform credential store. The next unlock will prompt for the password
again (or use ` + password.EnvVar + ` if set).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting forget command")

		resolver := newResolver()
		if err := resolver.Forget(); err != nil {
			return Logger.ErrorfAndReturn("failed to remove stored password: %v", err)
		}

		audit.Log(audit.Entry{Operation: "forget"})
		color.Green("✓ Stored database password removed")
		return nil
	},
}
