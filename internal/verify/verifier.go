package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/brogergvhs/pagecheck/internal/checks"
	"github.com/brogergvhs/pagecheck/internal/util"
)

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Report is the outcome of one verification run.
type Report struct {
	Check           string
	URL             string
	Screenshot      string
	ScreenshotBytes int64
	ErrorScreenshot string
	Attribute       string
	ReadyTimedOut   bool
	Duration        time.Duration
	Err             error
}

func (r *Report) Passed() bool {
	return r.Err == nil
}

// Verifier drives a single check through navigate, wait, assert and
// capture. It holds no state between runs.
type Verifier struct {
	launcher Launcher
	log      Logger
}

func New(l Launcher, log Logger) *Verifier {
	return &Verifier{launcher: l, log: log}
}

// Run executes c once. The returned error is also stored in the report;
// ExitCode turns it into the process status.
func (v *Verifier) Run(ctx context.Context, c checks.Check) (*Report, error) {
	start := time.Now()
	c = c.Normalize("")

	rep := &Report{Check: c.Name, URL: c.URL}
	defer func() { rep.Duration = time.Since(start) }()

	if err := c.Validate(); err != nil {
		rep.Err = stepErr(KindUnexpected, "validate", err)
		v.log.Errorf("Error: %v", rep.Err)
		return rep, rep.Err
	}

	v.log.Debugf("Launching browser for %s", c.Name)
	sess, err := v.launcher.Launch(ctx)
	if err != nil {
		rep.Err = stepErr(KindUnexpected, "launch", err)
		v.log.Errorf("Error: %v", rep.Err)
		return rep, rep.Err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			v.log.Debugf("Warning: failed to close browser: %v", cerr)
		}
	}()

	if err := v.steps(ctx, sess, c, rep); err != nil {
		rep.Err = err
		if KindOf(err) != KindMismatch {
			v.log.Errorf("Error: %v", err)
			v.captureError(sess, c, rep)
		}
	}

	return rep, rep.Err
}

func (v *Verifier) steps(ctx context.Context, s Session, c checks.Check, rep *Report) error {
	if err := alive(ctx, "navigate"); err != nil {
		return err
	}
	v.log.Infof("Navigating to %s...", c.URL)
	if err := s.Goto(c.URL, c.NavTimeout); err != nil {
		return stepErr(KindNavigation, "navigate", err)
	}

	if c.Heading != "" {
		if err := alive(ctx, "heading"); err != nil {
			return err
		}
		v.log.Infof("Waiting for heading %q...", c.Heading)
		if err := s.ExpectHeading(c.Heading, c.AssertTimeout); err != nil {
			return stepErr(KindAssertion, "heading", err)
		}
	}

	if c.ReadyText != "" {
		if err := alive(ctx, "ready"); err != nil {
			return err
		}
		v.log.Infof("Waiting for %q...", c.ReadyText)
		if err := s.WaitForText(c.ReadyText, c.ReadyTimeout); err != nil {
			rep.ReadyTimedOut = true
			v.log.Infof("Timeout waiting for %q. Taking screenshot anyway to debug.", c.ReadyText)
			v.log.Debugf("ready wait: %v", err)
		}
	}

	if c.SearchSelector != "" {
		if err := alive(ctx, "search"); err != nil {
			return err
		}
		v.log.Infof("Interacting with search...")
		if err := s.Fill(c.SearchSelector, c.SearchValue, c.ActionTimeout); err != nil {
			return stepErr(KindUnexpected, "search", err)
		}
	}

	if err := v.settle(ctx, s, c); err != nil {
		return err
	}

	if c.Contains != "" {
		text, err := s.PageText()
		if err != nil {
			return stepErr(KindUnexpected, "contains", err)
		}
		if !checks.Contains(text, c.Contains) {
			return stepErr(KindAssertion, "contains", fmt.Errorf("%w: %q not on page", ErrMismatch, c.Contains))
		}
	}

	if c.HasMeta() {
		if err := v.checkMeta(s, c, rep); err != nil {
			return err
		}
	}

	if err := alive(ctx, "screenshot"); err != nil {
		return err
	}
	v.log.Infof("Taking screenshot...")
	data, err := s.Screenshot(c.WantFullPage())
	if err != nil {
		return stepErr(KindUnexpected, "screenshot", err)
	}
	if err := util.WriteFile(c.Screenshot, data); err != nil {
		return stepErr(KindUnexpected, "screenshot", err)
	}
	rep.Screenshot = c.Screenshot
	rep.ScreenshotBytes = int64(len(data))
	v.log.Infof("Saved %s (%s)", c.Screenshot, util.Human(rep.ScreenshotBytes))

	return nil
}

func (v *Verifier) settle(ctx context.Context, s Session, c checks.Check) error {
	if c.SettleNetworkIdle {
		if err := s.WaitForNetworkIdle(c.NavTimeout); err != nil {
			v.log.Debugf("network idle not reached: %v", err)
		}
		return nil
	}
	if c.Settle <= 0 {
		return nil
	}

	t := time.NewTimer(c.Settle)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return stepErr(KindUnexpected, "settle", ctx.Err())
	case <-t.C:
		return nil
	}
}

func (v *Verifier) checkMeta(s Session, c checks.Check, rep *Report) error {
	value, err := s.Attribute(c.MetaSelector, c.MetaAttribute, c.AssertTimeout)
	if err != nil {
		v.log.Errorf("FAILURE: %s not found: %v", c.MetaSelector, err)
		return stepErr(KindAssertion, "meta", err)
	}

	rep.Attribute = value
	v.log.Infof("Found %s %s: %s", c.MetaSelector, c.MetaAttribute, value)

	if !checks.Contains(value, c.MetaExpect) {
		v.log.Errorf("FAILURE: %s does not contain %q. Found: %s", c.MetaAttribute, c.MetaExpect, value)
		return stepErr(KindMismatch, "meta", fmt.Errorf("%w: %q in %q", ErrMismatch, c.MetaExpect, value))
	}

	v.log.Infof("SUCCESS: %s contains %q.", c.MetaAttribute, c.MetaExpect)
	return nil
}

// captureError is best effort: its own failures are logged, never returned.
func (v *Verifier) captureError(s Session, c checks.Check, rep *Report) {
	if c.ErrorScreenshot == "" {
		return
	}

	data, err := s.Screenshot(c.WantFullPage())
	if err != nil {
		v.log.Errorf("Error screenshot failed: %v", err)
		return
	}
	if err := util.WriteFile(c.ErrorScreenshot, data); err != nil {
		v.log.Errorf("Error screenshot failed: %v", err)
		return
	}

	rep.ErrorScreenshot = c.ErrorScreenshot
	v.log.Infof("Saved error screenshot %s", c.ErrorScreenshot)
}

func alive(ctx context.Context, step string) error {
	if err := ctx.Err(); err != nil {
		return stepErr(KindUnexpected, step, err)
	}
	return nil
}
