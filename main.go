package main

import (
	"fmt"
	"os"

	"github.com/solobooks/solobooks/cmd"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "solobooks",
	Short: "SoloBooks - A CLI for running a one-person business from the terminal.",
	Long: `SoloBooks keeps the books for a solo business: clients, projects,
time tracking, and invoicing, all stored in a single local database file.

Features:
  - Keep the database encrypted at rest with a password you control
  - Store the password in the operating system keychain
  - Inspect and repair the database setup when something looks off

Usage:
  solobooks <command> [flags]

Available Commands:
  db    Manage the database file and its encryption

Run 'solobooks help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to SoloBooks! Run 'solobooks --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.DatabaseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
