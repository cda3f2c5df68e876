package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brogergvhs/pagecheck/internal/checks"
	"github.com/brogergvhs/pagecheck/internal/ui"
	"github.com/brogergvhs/pagecheck/internal/util"
	"github.com/brogergvhs/pagecheck/internal/verify"

	"github.com/spf13/cobra"
)

var (
	flagBundle   string
	flagFailFast bool
)

func init() {
	suiteCmd := &cobra.Command{
		Use:   "suite",
		Short: "Run every configured check, one after another",
		Args:  cobra.NoArgs,
		RunE:  runSuite,
	}

	suiteCmd.Flags().StringVar(&flagBundle, "bundle", "", "zip all screenshots into this file")
	suiteCmd.Flags().BoolVar(&flagFailFast, "fail-fast", false, "stop at the first failing check")

	rootCmd.AddCommand(suiteCmd)
}

func runSuite(cmd *cobra.Command, _ []string) error {
	cfg, logSvc, err := loadConfig()
	if err != nil {
		return err
	}

	list := cfg.Checks
	if len(list) == 0 {
		list = checks.Presets()
	}

	ctx, stop := util.WithInterrupt(context.Background())
	defer stop()

	pm := ui.NewSuiteProgress(os.Stdout, len(list))
	defer pm.Close()

	stats := &ui.Stats{}
	v := verify.New(newLauncher(cfg), logSvc)
	start := time.Now()

	var artifacts artifactSet
	var failed []string

	for _, ch := range list {
		if ctx.Err() != nil {
			break
		}

		ch = ch.Normalize(cfg.Output)
		pm.Start(ch.Name)

		rep, err := v.Run(ctx, ch)
		pm.Done(err == nil)

		for _, p := range []string{rep.Screenshot, rep.ErrorScreenshot} {
			if artifacts.add(p) {
				stats.Screenshots.Add(1)
			}
		}
		stats.Bytes.Add(rep.ScreenshotBytes)

		if err != nil {
			stats.Failed.Add(1)
			failed = append(failed, ch.Name)
			if flagFailFast {
				break
			}
			continue
		}
		stats.Passed.Add(1)
	}
	pm.Close()

	stats.Print(os.Stdout, time.Since(start), util.Human)

	if flagBundle != "" {
		n, err := util.CreateArchive(artifacts.paths, flagBundle)
		if err != nil {
			return fmt.Errorf("bundle: %w", err)
		}
		fmt.Printf("Bundled %d screenshots into %s\n", n, flagBundle)
	}

	if len(failed) > 0 {
		fmt.Printf("\nFailed checks: %v\n", failed)
		return &exitError{code: 1}
	}
	if ctx.Err() != nil {
		return &exitError{code: 1}
	}

	fmt.Println("\nAll checks passed.")
	return nil
}

// artifactSet keeps screenshot paths in run order, once each. Checks that
// share a path overwrite one file.
type artifactSet struct {
	paths []string
	seen  map[string]bool
}

func (a *artifactSet) add(path string) bool {
	if path == "" || a.seen[path] {
		return false
	}
	if a.seen == nil {
		a.seen = map[string]bool{}
	}
	a.seen[path] = true
	a.paths = append(a.paths, path)
	return true
}
