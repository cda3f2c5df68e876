package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/brogergvhs/pagecheck/internal/browser"
	"github.com/brogergvhs/pagecheck/internal/checks"
	"github.com/brogergvhs/pagecheck/internal/config"
	"github.com/brogergvhs/pagecheck/internal/ui"
	"github.com/brogergvhs/pagecheck/internal/util"

	"github.com/spf13/cobra"
)

func loadConfig() (*config.Config, *ui.Logger, error) {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		Output:           flagOutput,
		Headed:           flagHeaded,
		Browser:          flagBrowser,
		UserAgent:        flagUserAgent,
		BypassCloudflare: flagBypassCloudflare,
	})
	if err != nil {
		return nil, nil, err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Debugf("Config file: %s", usedPath)

	return cfg, logSvc, nil
}

func newLauncher(cfg *config.Config) *browser.Launcher {
	ua := ""
	if cfg.UserAgent != "" {
		ua = util.PickUserAgent(cfg.UserAgent)
	}

	return browser.NewLauncher(browser.Options{
		Browser:        cfg.Browser,
		Headless:       cfg.Headless,
		ViewportWidth:  cfg.ViewportWidth,
		ViewportHeight: cfg.ViewportHeight,
		UserAgent:      ua,
	})
}

func newHTTPClient(cfg *config.Config, ua string, timeout time.Duration, logSvc *ui.Logger) (*http.Client, error) {
	return util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          timeout,
		UserAgent:        util.PickUserAgent(ua),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		BypassCloudflare: cfg.BypassCloudflare,
		DebugLogger:      logSvc,
	})
}

// checkFlags are per-field overrides on top of a configured or preset check.
type checkFlags struct {
	url             string
	heading         string
	contains        string
	readyText       string
	readyTimeout    time.Duration
	searchSelector  string
	searchValue     string
	settle          time.Duration
	settleIdle      bool
	metaSelector    string
	metaAttribute   string
	metaExpect      string
	screenshot      string
	errorScreenshot string
	fullPage        bool
	navTimeout      time.Duration
	assertTimeout   time.Duration
	actionTimeout   time.Duration
}

func (f *checkFlags) registerMeta(c *cobra.Command) {
	c.Flags().StringVar(&f.url, "url", "", "target page URL")
	c.Flags().StringVar(&f.metaSelector, "meta-selector", "", `CSS selector of the tag to read (e.g. meta[property="og:image"])`)
	c.Flags().StringVar(&f.metaAttribute, "meta-attr", "", "attribute to read (default content)")
	c.Flags().StringVar(&f.metaExpect, "meta-expect", "", "substring the attribute must contain")
	c.Flags().DurationVar(&f.navTimeout, "nav-timeout", 0, "navigation timeout")
}

func (f *checkFlags) registerBrowser(c *cobra.Command) {
	f.registerMeta(c)
	c.Flags().StringVar(&f.heading, "heading", "", "accessible name of a heading that must be visible")
	c.Flags().StringVar(&f.contains, "contains", "", "text that must appear on the page")
	c.Flags().StringVar(&f.readyText, "ready-text", "", "text marking content as loaded (non-fatal wait)")
	c.Flags().DurationVar(&f.readyTimeout, "ready-timeout", 0, "how long to wait for --ready-text")
	c.Flags().StringVar(&f.searchSelector, "search-selector", "", "input to type into")
	c.Flags().StringVar(&f.searchValue, "search-value", "", "value typed into --search-selector")
	c.Flags().DurationVar(&f.settle, "settle", 0, "fixed pause before capture")
	c.Flags().BoolVar(&f.settleIdle, "settle-network-idle", false, "wait for network idle instead of a fixed pause")
	c.Flags().StringVar(&f.screenshot, "screenshot", "", "screenshot path")
	c.Flags().StringVar(&f.errorScreenshot, "error-screenshot", "", "diagnostic screenshot path on failure")
	c.Flags().BoolVar(&f.fullPage, "full-page", true, "capture the full scrollable page")
	c.Flags().DurationVar(&f.assertTimeout, "assert-timeout", 0, "bound for visibility and attachment assertions")
	c.Flags().DurationVar(&f.actionTimeout, "action-timeout", 0, "bound for input interactions (default 30s)")
}

func (f *checkFlags) apply(c *cobra.Command, ch *checks.Check) {
	changed := c.Flags().Changed
	set := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}
	setDur := func(name string, dst *time.Duration, v time.Duration) {
		if changed(name) {
			*dst = v
		}
	}

	set("url", &ch.URL, f.url)
	set("meta-selector", &ch.MetaSelector, f.metaSelector)
	set("meta-attr", &ch.MetaAttribute, f.metaAttribute)
	set("meta-expect", &ch.MetaExpect, f.metaExpect)
	setDur("nav-timeout", &ch.NavTimeout, f.navTimeout)

	if c.Flags().Lookup("heading") == nil {
		return
	}

	set("heading", &ch.Heading, f.heading)
	set("contains", &ch.Contains, f.contains)
	set("ready-text", &ch.ReadyText, f.readyText)
	setDur("ready-timeout", &ch.ReadyTimeout, f.readyTimeout)
	set("search-selector", &ch.SearchSelector, f.searchSelector)
	set("search-value", &ch.SearchValue, f.searchValue)
	setDur("settle", &ch.Settle, f.settle)
	set("screenshot", &ch.Screenshot, f.screenshot)
	set("error-screenshot", &ch.ErrorScreenshot, f.errorScreenshot)
	setDur("assert-timeout", &ch.AssertTimeout, f.assertTimeout)
	setDur("action-timeout", &ch.ActionTimeout, f.actionTimeout)

	if changed("settle-network-idle") {
		ch.SettleNetworkIdle = f.settleIdle
	}
	if changed("full-page") {
		ch.FullPage = &f.fullPage
	}
}

// resolveCheck picks the check named in args, the first configured check,
// or an ad-hoc one built from flags alone.
func resolveCheck(cfg *config.Config, args []string, f *checkFlags, c *cobra.Command) (checks.Check, error) {
	var ch checks.Check

	switch {
	case len(args) == 1:
		found, err := checks.Select(cfg.Checks, args[0])
		if err != nil {
			return ch, err
		}
		ch = found
	case c.Flags().Changed("url"):
		ch = checks.Check{Name: "adhoc"}
	case len(cfg.Checks) > 0:
		ch = cfg.Checks[0]
	default:
		return ch, fmt.Errorf("no check given and none configured; pass a name or --url")
	}

	f.apply(c, &ch)
	return ch.Normalize(cfg.Output), nil
}
