package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/pagecheck/internal/browser"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the Playwright driver and the configured browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		if err := browser.Install(cfg.Browser, os.Stdout); err != nil {
			return err
		}

		fmt.Printf("Installed Playwright with %s.\n", cfg.Browser)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
