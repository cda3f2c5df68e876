package verify

import (
	"context"
	"time"
)

// Session is one browser with one open page. Every wait takes an explicit
// bound; implementations poll until the condition holds or the bound
// elapses.
type Session interface {
	Goto(url string, timeout time.Duration) error
	ExpectHeading(name string, timeout time.Duration) error
	WaitForText(text string, timeout time.Duration) error
	PageText() (string, error)
	Fill(selector, value string, timeout time.Duration) error
	WaitForNetworkIdle(timeout time.Duration) error
	// Attribute requires exactly one element matching selector to be
	// attached to the document and returns the named attribute.
	Attribute(selector, name string, timeout time.Duration) (string, error)
	Screenshot(fullPage bool) ([]byte, error)
	Close() error
}

// Launcher starts a headless browser and opens a single page.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}
