package meta

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/pagecheck/internal/checks"
	"github.com/brogergvhs/pagecheck/internal/ui"
	"github.com/brogergvhs/pagecheck/internal/util"
	"github.com/brogergvhs/pagecheck/internal/verify"
)

const pageTmpl = `<!doctype html><html><head><title>Zen Eyer</title>%s</head><body><div id="root"></div></body></html>`

func ogTag(content string) string {
	return `<meta property="og:image" content="` + content + `">`
}

func serve(t *testing.T, status int, head string, seenUA *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seenUA != nil {
			*seenUA = r.Header.Get("User-Agent")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(strings.Replace(pageTmpl, "%s", head, 1)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newScraper(t *testing.T, ua string) (*Scraper, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := ui.NewLoggerTo(&buf, false)

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:   5 * time.Second,
		UserAgent: util.PickUserAgent(ua),
	})
	require.NoError(t, err)

	return NewScraper(client, log), &buf
}

func ogCheck(url string) checks.Check {
	c := checks.OGImage()
	c.URL = url
	return c
}

func TestCheckMatchesPNG(t *testing.T) {
	var ua string
	srv := serve(t, http.StatusOK, ogTag("/assets/zen-eyer-og-image.png"), &ua)
	s, out := newScraper(t, "facebook")

	res, err := s.Check(context.Background(), ogCheck(srv.URL))
	require.NoError(t, err)

	assert.Equal(t, 0, verify.ExitCode(err))
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "/assets/zen-eyer-og-image.png", res.Value)
	assert.Equal(t, util.BotUserAgents["facebook"], ua)
	assert.Contains(t, out.String(), "SUCCESS:")
}

func TestCheckRejectsSVG(t *testing.T) {
	srv := serve(t, http.StatusOK, ogTag("/assets/zen-eyer-og-image.svg"), nil)
	s, out := newScraper(t, "google")

	res, err := s.Check(context.Background(), ogCheck(srv.URL))

	assert.Equal(t, 1, verify.ExitCode(err))
	assert.Equal(t, verify.KindMismatch, verify.KindOf(err))
	assert.True(t, errors.Is(err, verify.ErrMismatch))
	assert.Equal(t, "/assets/zen-eyer-og-image.svg", res.Value)
	assert.Contains(t, out.String(), "FAILURE:")
	assert.Contains(t, out.String(), "Found: /assets/zen-eyer-og-image.svg")
}

func TestCheckTagCount(t *testing.T) {
	tests := []struct {
		name string
		head string
	}{
		{name: "absent", head: `<meta property="og:title" content="Zen Eyer">`},
		{name: "duplicated", head: ogTag("/a.png") + ogTag("/b.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, http.StatusOK, tt.head, nil)
			s, _ := newScraper(t, "")

			_, err := s.Check(context.Background(), ogCheck(srv.URL))

			assert.Equal(t, verify.KindAssertion, verify.KindOf(err))
			assert.True(t, errors.Is(err, ErrNotUnique))
		})
	}
}

func TestCheckHTTPErrorIsNavigation(t *testing.T) {
	srv := serve(t, http.StatusNotFound, "", nil)
	s, _ := newScraper(t, "")

	res, err := s.Check(context.Background(), ogCheck(srv.URL))

	assert.Equal(t, verify.KindNavigation, verify.KindOf(err))
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestCheckUnreachable(t *testing.T) {
	srv := serve(t, http.StatusOK, "", nil)
	url := srv.URL
	srv.Close()

	s, _ := newScraper(t, "")
	_, err := s.Check(context.Background(), ogCheck(url))

	assert.Equal(t, verify.KindNavigation, verify.KindOf(err))
}

func TestCheckInvalidIsLogged(t *testing.T) {
	noURL := checks.OGImage()
	noURL.URL = ""

	tests := []struct {
		name    string
		check   checks.Check
		wantLog string
	}{
		{name: "no meta selector", check: checks.MusicPage(), wantLog: `check "music" has no meta_selector`},
		{name: "no url", check: noURL, wantLog: "url is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := newScraper(t, "")

			_, err := s.Check(context.Background(), tt.check)

			require.Error(t, err)
			assert.Equal(t, verify.KindUnexpected, verify.KindOf(err))
			assert.Contains(t, out.String(), "[ERROR] Error: validate failed")
			assert.Contains(t, out.String(), tt.wantLog)
		})
	}
}

func TestAttributeMissing(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><head><meta property="og:image"></head></html>`))
	require.NoError(t, err)

	_, err = Attribute(doc, `meta[property="og:image"]`, "content")
	assert.ErrorContains(t, err, "no content attribute")
}
