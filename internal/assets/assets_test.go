package assets

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/pagecheck/internal/ui"
)

var png = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 2048)...)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/assets/zen-eyer-og-image.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})
	mux.HandleFunc("/assets/fallback.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>index</html>"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchImage(t *testing.T) {
	srv := newServer(t)
	p := New(srv.Client(), ui.NewLoggerTo(&bytes.Buffer{}, true))

	res, err := p.Fetch(context.Background(), srv.URL+"/music", "/assets/zen-eyer-og-image.png")
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/assets/zen-eyer-og-image.png", res.URL)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, int64(len(png)), res.Bytes)
}

func TestFetchRejectsHTMLFallback(t *testing.T) {
	srv := newServer(t)
	p := New(srv.Client(), ui.NewLoggerTo(&bytes.Buffer{}, false))

	_, err := p.Fetch(context.Background(), srv.URL, "/assets/fallback.png")
	assert.ErrorContains(t, err, "unexpected MIME")
}

func TestFetchNotFound(t *testing.T) {
	srv := newServer(t)
	p := New(srv.Client(), ui.NewLoggerTo(&bytes.Buffer{}, false))

	res, err := p.Fetch(context.Background(), srv.URL, "/assets/zen-eyer-og-image.svg")
	assert.ErrorContains(t, err, "HTTP 404")
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestFetchSizeLimit(t *testing.T) {
	srv := newServer(t)
	p := New(srv.Client(), ui.NewLoggerTo(&bytes.Buffer{}, false))
	p.maxBytes = 16

	_, err := p.Fetch(context.Background(), srv.URL, "/assets/zen-eyer-og-image.png")
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		page, raw, want string
	}{
		{"http://localhost:5173/music", "/assets/a.png", "http://localhost:5173/assets/a.png"},
		{"http://localhost:5173/music/", "a.png", "http://localhost:5173/music/a.png"},
		{"http://localhost:5173", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"http://localhost:5173", "  //cdn.example.com/a.png ", "http://cdn.example.com/a.png"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.page, tt.raw), tt.raw)
	}
}

func TestDrain(t *testing.T) {
	n, err := drain(strings.NewReader("hello"), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	_, err = drain(strings.NewReader("hello"), 4)
	assert.ErrorIs(t, err, ErrTooLarge)
}
