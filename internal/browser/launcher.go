package browser

import (
	"context"
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"

	"github.com/brogergvhs/pagecheck/internal/verify"
)

var _ verify.Launcher = (*Launcher)(nil)

const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

type Options struct {
	// Browser is chromium, firefox or webkit.
	Browser        string
	Headless       bool
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string
}

// Launcher starts a fresh Playwright driver and browser per session, so
// nothing carries over between runs.
type Launcher struct {
	opts Options
}

func NewLauncher(opts Options) *Launcher {
	if opts.Browser == "" {
		opts.Browser = "chromium"
	}
	if opts.ViewportWidth == 0 {
		opts.ViewportWidth = DefaultViewportWidth
	}
	if opts.ViewportHeight == 0 {
		opts.ViewportHeight = DefaultViewportHeight
	}
	return &Launcher{opts: opts}
}

// Install downloads the Playwright driver and the configured browser.
func Install(browserName string, out io.Writer) error {
	if browserName == "" {
		browserName = "chromium"
	}

	err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{browserName},
		Verbose:  true,
		Stdout:   out,
		Stderr:   out,
	})
	if err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	return nil
}

func (l *Launcher) Launch(ctx context.Context) (verify.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run(&playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright (run `pagecheck install` first?): %w", err)
	}

	bt, err := browserType(pw, l.opts.Browser)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	b, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", l.opts.Browser, err)
	}

	pageOpts := playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{
			Width:  l.opts.ViewportWidth,
			Height: l.opts.ViewportHeight,
		},
	}
	if l.opts.UserAgent != "" {
		pageOpts.UserAgent = playwright.String(l.opts.UserAgent)
	}

	page, err := b.NewPage(pageOpts)
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &Session{
		pw:      pw,
		browser: b,
		page:    page,
		expect:  playwright.NewPlaywrightAssertions(),
	}, nil
}

func browserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case "chromium", "chrome":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unknown browser %q (chromium, firefox, webkit)", name)
	}
}
