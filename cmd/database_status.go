package cmd

import (
	"fmt"
	"os"

	"github.com/solobooks/solobooks/internal/configs"
	"github.com/solobooks/solobooks/internal/ui"
	"github.com/solobooks/solobooks/internal/vault"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the database file, container, and encryption state",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		config, err := configs.LoadAppConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}
		dataPath := configs.DataFilePath(config)
		containerPath := configs.ContainerPath(dataPath)

		fmt.Println("Data file:  " + ui.Path.Sprint(dataPath) + "  " + describeFile(dataPath))
		fmt.Println("Container:  " + ui.Path.Sprint(containerPath) + "  " + describeFile(containerPath))

		_, containerErr := os.Stat(containerPath)
		switch {
		case config.Database.Encrypted:
			fmt.Println("Encryption: " + ui.Success.Sprint("enabled") + " (config)")
		case containerErr == nil:
			fmt.Println("Encryption: " + ui.Success.Sprint("enabled") + " (container present)")
		default:
			fmt.Println("Encryption: " + ui.Warning.Sprint("disabled"))
		}

		// The heuristic verdict is informational only; the config flag and
		// container existence above are what the lifecycle actually uses.
		if _, err := os.Stat(dataPath); err == nil {
			looks, err := vault.LooksEncrypted(dataPath)
			if err == nil && looks {
				fmt.Println(ui.Warning.Sprint("!") + " The data file itself looks encrypted; it may be a misplaced container")
			}
		}

		if _, dataErr := os.Stat(dataPath); dataErr == nil && containerErr == nil {
			fmt.Println(ui.Warning.Sprint("!") + " Plaintext working file exists beside its container (unfinished close?)")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("solobooks db doctor") + " for details")
		}

		return nil
	},
}

func describeFile(path string) string {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ui.Warning.Sprint("(absent)")
	}
	if err != nil {
		return ui.Error.Sprintf("(unreadable: %v)", err)
	}
	return fmt.Sprintf("(%d bytes)", info.Size())
}
