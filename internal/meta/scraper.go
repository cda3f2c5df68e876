package meta

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/pagecheck/internal/checks"
	"github.com/brogergvhs/pagecheck/internal/verify"
)

var ErrNotUnique = errors.New("selector must match exactly one element")

// Result of a static meta check.
type Result struct {
	URL    string
	Status int
	Value  string
}

// Scraper reads tags from the HTML a crawler receives, without running any
// script.
type Scraper struct {
	client *http.Client
	log    verify.Logger
}

func NewScraper(c *http.Client, log verify.Logger) *Scraper {
	return &Scraper{client: c, log: log}
}

func (s *Scraper) fetchDOM(ctx context.Context, target string) (*goquery.Document, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	return doc, resp.StatusCode, err
}

// Attribute returns attr of the single element matching selector.
func Attribute(doc *goquery.Document, selector, attr string) (string, error) {
	sel := doc.Find(selector)
	if n := sel.Length(); n != 1 {
		return "", fmt.Errorf("%w: %s matched %d", ErrNotUnique, selector, n)
	}

	v, ok := sel.Attr(attr)
	if !ok {
		return "", fmt.Errorf("%s has no %s attribute", selector, attr)
	}

	return v, nil
}

// Check fetches c.URL once and applies the meta expectation of c. Errors
// carry the same categories as browser runs.
func (s *Scraper) Check(ctx context.Context, c checks.Check) (*Result, error) {
	c = c.Normalize("")
	res := &Result{URL: c.URL}

	if !c.HasMeta() {
		return res, s.invalid(fmt.Errorf("check %q has no meta_selector", c.Name))
	}
	if err := c.Validate(); err != nil {
		return res, s.invalid(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.NavTimeout)
	defer cancel()

	s.log.Infof("Fetching %s...", c.URL)
	doc, status, err := s.fetchDOM(ctx, c.URL)
	res.Status = status
	if err != nil {
		s.log.Errorf("Error: %v", err)
		return res, &verify.Error{Kind: verify.KindNavigation, Step: "fetch", Err: err}
	}

	value, err := Attribute(doc, c.MetaSelector, c.MetaAttribute)
	if err != nil {
		s.log.Errorf("FAILURE: %v", err)
		return res, &verify.Error{Kind: verify.KindAssertion, Step: "meta", Err: err}
	}

	res.Value = value
	s.log.Infof("Found %s %s: %s", c.MetaSelector, c.MetaAttribute, value)

	if !checks.Contains(value, c.MetaExpect) {
		s.log.Errorf("FAILURE: %s does not contain %q. Found: %s", c.MetaAttribute, c.MetaExpect, value)
		return res, &verify.Error{
			Kind: verify.KindMismatch,
			Step: "meta",
			Err:  fmt.Errorf("%w: %q in %q", verify.ErrMismatch, c.MetaExpect, value),
		}
	}

	s.log.Infof("SUCCESS: %s contains %q.", c.MetaAttribute, c.MetaExpect)
	return res, nil
}

func (s *Scraper) invalid(err error) error {
	verr := &verify.Error{Kind: verify.KindUnexpected, Step: "validate", Err: err}
	s.log.Errorf("Error: %v", verr)
	return verr
}
