package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/solobooks/solobooks/internal/ui"
	"github.com/solobooks/solobooks/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	doctorJSONOutput bool
	// doctorExitFunc is the function called to exit with a specific code.
	// Can be overridden for testing.
	doctorExitFunc = os.Exit
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
}

func resetDoctorCommandState() {
	doctorJSONOutput = false
	doctorExitFunc = os.Exit
}

// SetDoctorExitFunc sets the exit function for testing purposes.
func SetDoctorExitFunc(f func(int)) {
	doctorExitFunc = f
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on the database storage",
	Long: `Runs a series of health checks on the database storage and reports issues.

The doctor command checks:
  - Application configuration validity
  - Encrypted container parseability and permissions
  - Orphaned plaintext working files
  - Platform credential store availability

Exit codes:
  0 - All checks passed (warnings allowed)
  1 - At least one check found a critical issue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting doctor command")

		result := workflows.Doctor()

		if doctorJSONOutput {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to marshal doctor result: %v", err)
			}
			fmt.Println(string(data))
		} else {
			for _, check := range result.Checks {
				switch check.Status {
				case workflows.CheckPass:
					fmt.Println(ui.Success.Sprint("✓") + " " + check.Name + ": " + check.Message)
				case workflows.CheckWarning:
					fmt.Println(ui.Warning.Sprint("!") + " " + check.Name + ": " + check.Message)
				case workflows.CheckError:
					fmt.Println(ui.Error.Sprint("✗") + " " + check.Name + ": " + check.Message)
				}
				if check.Suggestion != "" {
					fmt.Println("  " + ui.Info.Sprint("→") + " " + check.Suggestion)
				}
			}
			fmt.Printf("\n%d passed, %d warnings, %d errors\n",
				result.Summary.Passed, result.Summary.Warnings, result.Summary.Errors)
		}

		if result.Summary.Errors > 0 {
			doctorExitFunc(1)
		}
		return nil
	},
}
