package cmd

import (
	"context"
	"fmt"

	"github.com/brogergvhs/pagecheck/internal/assets"
	"github.com/brogergvhs/pagecheck/internal/checks"
	"github.com/brogergvhs/pagecheck/internal/config"
	"github.com/brogergvhs/pagecheck/internal/ui"
	"github.com/brogergvhs/pagecheck/internal/util"
	"github.com/brogergvhs/pagecheck/internal/verify"

	"github.com/spf13/cobra"
)

var (
	runFlags       checkFlags
	flagCheckAsset bool
)

func init() {
	runCmd := &cobra.Command{
		Use:   "run [check]",
		Short: "Run one check in a headless browser. Uses the named check (config or preset), overridden by CLI flags",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}

	runFlags.registerBrowser(runCmd)
	runCmd.Flags().BoolVar(&flagCheckAsset, "check-asset", false, "also fetch the URL found in the meta attribute and require an image")

	rootCmd.AddCommand(runCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, logSvc, err := loadConfig()
	if err != nil {
		return err
	}

	ch, err := resolveCheck(cfg, args, &runFlags, cmd)
	if err != nil {
		return err
	}

	ctx, stop := util.WithInterrupt(context.Background())
	defer stop()

	v := verify.New(newLauncher(cfg), logSvc)
	rep, err := v.Run(ctx, ch)
	if err != nil {
		return &exitError{code: verify.ExitCode(err)}
	}

	if flagCheckAsset && rep.Attribute != "" {
		if err := probeAsset(ctx, cfg, logSvc, ch, rep.Attribute); err != nil {
			return &exitError{code: 1}
		}
	}

	return nil
}

func probeAsset(ctx context.Context, cfg *config.Config, logSvc *ui.Logger, ch checks.Check, raw string) error {
	client, err := newHTTPClient(cfg, cfg.UserAgent, ch.NavTimeout, logSvc)
	if err != nil {
		return err
	}

	res, err := assets.New(client, logSvc).Fetch(ctx, ch.URL, raw)
	if err != nil {
		logSvc.Errorf("FAILURE: asset %s: %v", res.URL, err)
		return fmt.Errorf("asset %s: %w", res.URL, err)
	}

	logSvc.Infof("SUCCESS: asset %s is %s (%s)", res.URL, res.ContentType, util.Human(res.Bytes))
	return nil
}
