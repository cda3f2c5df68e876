package cmd

import (
	"context"

	"github.com/brogergvhs/pagecheck/internal/checks"
	"github.com/brogergvhs/pagecheck/internal/config"
	"github.com/brogergvhs/pagecheck/internal/meta"
	"github.com/brogergvhs/pagecheck/internal/util"
	"github.com/brogergvhs/pagecheck/internal/verify"

	"github.com/spf13/cobra"
)

var (
	metaFlags     checkFlags
	flagAsBot     string
	flagMetaAsset bool
)

func init() {
	metaCmd := &cobra.Command{
		Use:   "meta [check]",
		Short: "Check a meta tag in the server-rendered HTML as a crawler sees it (no browser)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMeta,
	}

	metaFlags.registerMeta(metaCmd)
	metaCmd.Flags().StringVar(&flagAsBot, "as", "facebook", "crawler identity: google, bing, facebook, ahrefs or a literal User-Agent")
	metaCmd.Flags().BoolVar(&flagMetaAsset, "check-asset", false, "also fetch the URL found in the attribute and require an image")

	rootCmd.AddCommand(metaCmd)
}

func runMeta(cmd *cobra.Command, args []string) error {
	cfg, logSvc, err := loadConfig()
	if err != nil {
		return err
	}

	ch, err := resolveMetaCheck(cfg, args, &metaFlags, cmd)
	if err != nil {
		return err
	}

	ctx, stop := util.WithInterrupt(context.Background())
	defer stop()

	client, err := newHTTPClient(cfg, flagAsBot, ch.NavTimeout, logSvc)
	if err != nil {
		return err
	}

	res, err := meta.NewScraper(client, logSvc).Check(ctx, ch)
	if err != nil {
		return &exitError{code: verify.ExitCode(err)}
	}

	if flagMetaAsset {
		if err := probeAsset(ctx, cfg, logSvc, ch, res.Value); err != nil {
			return &exitError{code: 1}
		}
	}

	return nil
}

// resolveMetaCheck defaults to the og-image check; flags such as --url
// refine it instead of starting an empty ad-hoc check.
func resolveMetaCheck(cfg *config.Config, args []string, f *checkFlags, c *cobra.Command) (checks.Check, error) {
	if len(args) == 0 {
		args = []string{checks.OGImage().Name}
	}
	return resolveCheck(cfg, args, f, c)
}
