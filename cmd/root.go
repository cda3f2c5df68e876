package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig     bool
	flagDebug            bool
	flagOutput           string
	flagHeaded           bool
	flagBrowser          string
	flagUserAgent        string
	flagBypassCloudflare bool
)

var rootCmd = &cobra.Command{
	Use:           "pagecheck",
	Short:         "Verify locally served pages in a headless browser and capture screenshots",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "", "directory for screenshots without an explicit path")
	rootCmd.PersistentFlags().BoolVar(&flagHeaded, "headed", false, "show the browser window")
	rootCmd.PersistentFlags().StringVar(&flagBrowser, "browser", "", "chromium, firefox or webkit")
	rootCmd.PersistentFlags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent (or a bot preset: google, bing, facebook, ahrefs)")
	rootCmd.PersistentFlags().BoolVar(&flagBypassCloudflare, "bypass-cloudflare", false, "send browser-like headers on plain HTTP fetches")
}

// exitError carries a status whose cause was already reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Println(err)
		os.Exit(1)
	}
}
