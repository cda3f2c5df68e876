package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brogergvhs/pagecheck/internal/checks"

	"github.com/spf13/cobra"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List configured checks and built-in presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tURL\tKIND\tSOURCE")

		for _, name := range checks.Names(cfg.Checks) {
			ch, err := checks.Select(cfg.Checks, name)
			if err != nil {
				return err
			}

			kind := "content"
			if ch.HasMeta() {
				kind = "meta"
			}

			source := "preset"
			for _, c := range cfg.Checks {
				if c.Name == name {
					source = "config"
					break
				}
			}

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ch.Name, ch.URL, kind, source)
		}

		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to flush table output: %v\n", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checksCmd)
}
