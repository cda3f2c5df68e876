package cmd

import (
	"fmt"

	"github.com/brogergvhs/pagecheck/internal/config"

	"github.com/spf13/cobra"
)

var flagResetYes bool

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the current config to default values and built-in checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		activePath, err := config.ActiveConfigPath()
		if err != nil {
			return err
		}

		if !flagResetYes && !confirm("Overwrite "+activePath+" with defaults") {
			fmt.Println("Aborted.")
			return nil
		}

		if err := config.SaveYAML(config.DefaultConfig(), activePath); err != nil {
			return err
		}

		fmt.Printf("Reset active config: %s\n", activePath)
		return nil
	},
}

func init() {
	configResetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "do not ask for confirmation")
	configCmd.AddCommand(configResetCmd)
}
