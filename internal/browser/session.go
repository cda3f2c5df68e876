package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session owns the driver, the browser and its single page.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func (s *Session) Goto(url string, timeout time.Duration) error {
	opts := playwright.PageGotoOptions{}
	if timeout > 0 {
		opts.Timeout = ms(timeout)
	}

	if _, err := s.page.Goto(url, opts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	return nil
}

func (s *Session) ExpectHeading(name string, timeout time.Duration) error {
	heading := s.page.GetByRole(*playwright.AriaRoleHeading, playwright.PageGetByRoleOptions{
		Name: name,
	})

	err := s.expect.Locator(heading).ToBeVisible(playwright.LocatorAssertionsToBeVisibleOptions{
		Timeout: ms(timeout),
	})
	if err != nil {
		return fmt.Errorf("heading %q not visible: %w", name, err)
	}

	return nil
}

func (s *Session) WaitForText(text string, timeout time.Duration) error {
	err := s.page.GetByText(text).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(timeout),
	})
	if err != nil {
		return fmt.Errorf("text %q not found: %w", text, err)
	}

	return nil
}

func (s *Session) PageText() (string, error) {
	text, err := s.page.Locator("body").InnerText()
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}

	return text, nil
}

func (s *Session) Fill(selector, value string, timeout time.Duration) error {
	err := s.page.Locator(selector).Fill(value, playwright.LocatorFillOptions{
		Timeout: ms(timeout),
	})
	if err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}

	return nil
}

func (s *Session) WaitForNetworkIdle(timeout time.Duration) error {
	return s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: ms(timeout),
	})
}

func (s *Session) Attribute(selector, name string, timeout time.Duration) (string, error) {
	loc := s.page.Locator(selector)

	err := s.expect.Locator(loc).ToBeAttached(playwright.LocatorAssertionsToBeAttachedOptions{
		Timeout: ms(timeout),
	})
	if err != nil {
		return "", fmt.Errorf("%s not attached: %w", selector, err)
	}

	count, err := loc.Count()
	if err != nil {
		return "", fmt.Errorf("selector query failed: %w", err)
	}
	if count != 1 {
		return "", fmt.Errorf("expected exactly one %s, found %d", selector, count)
	}

	value, err := loc.GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}

	return value, nil
}

func (s *Session) Screenshot(fullPage bool) ([]byte, error) {
	data, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(fullPage),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	return data, nil
}

// Close tears down page, browser and driver in that order and keeps going
// past individual failures.
func (s *Session) Close() error {
	var errs []error

	if err := s.page.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.browser.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}

	return errors.Join(errs...)
}
