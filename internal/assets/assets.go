package assets

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultMaxBytes = 20 << 20

type Logger interface {
	Debugf(format string, args ...any)
}

// Result describes a fetched asset. The body is counted, not kept.
type Result struct {
	URL         string
	Status      int
	ContentType string
	Bytes       int64
}

// Prober checks that an asset referenced by a page is reachable and is an
// image. One attempt per asset.
type Prober struct {
	client   *http.Client
	log      Logger
	timeout  time.Duration
	maxBytes int64
}

func New(c *http.Client, log Logger) *Prober {
	return &Prober{
		client:   c,
		log:      log,
		timeout:  30 * time.Second,
		maxBytes: DefaultMaxBytes,
	}
}

func (p *Prober) Fetch(ctx context.Context, pageURL, raw string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	u := Resolve(pageURL, raw)
	res := &Result{URL: u}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return res, err
	}

	req.Header.Set("Referer", pageURL)
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := p.client.Do(req)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			p.log.Debugf("Warning: failed to close response body for %s: %v", u, cerr)
		}
	}()

	res.Status = resp.StatusCode
	res.ContentType = resp.Header.Get("Content-Type")

	if resp.StatusCode != http.StatusOK {
		return res, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if mt, _, _ := mime.ParseMediaType(res.ContentType); !strings.HasPrefix(mt, "image/") {
		return res, fmt.Errorf("unexpected MIME: %q", res.ContentType)
	}

	n, err := drain(resp.Body, p.maxBytes)
	res.Bytes = n
	if err != nil {
		return res, err
	}

	p.log.Debugf("asset %s: %s, %d bytes", u, res.ContentType, n)
	return res, nil
}

// Resolve makes raw absolute against the page it was found on.
func Resolve(pageURL, raw string) string {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil || u == nil {
		return raw
	}
	if u.IsAbs() {
		return u.String()
	}

	base, err := url.Parse(pageURL)
	if err != nil || base == nil {
		return raw
	}

	return base.ResolveReference(u).String()
}
