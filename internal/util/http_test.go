package util

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientSetsHeaders(t *testing.T) {
	var gotUA, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
	}))
	defer srv.Close()

	cookieFile := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(cookieFile, []byte("\n  session=abc  \nignored=1\n"), 0644))

	client, err := NewHTTPClient(HTTPClientOptions{
		Timeout:    5 * time.Second,
		UserAgent:  PickUserAgent("bing"),
		Cookie:     "lang=pt",
		CookieFile: cookieFile,
	})
	require.NoError(t, err)

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, BotUserAgents["bing"], gotUA)
	assert.Equal(t, "lang=pt; session=abc", gotCookie)
}

func TestPickUserAgent(t *testing.T) {
	assert.Equal(t, browserUA, PickUserAgent(""))
	assert.Equal(t, BotUserAgents["google"], PickUserAgent(" Google "))
	assert.Equal(t, "curl/8.0", PickUserAgent("curl/8.0"))
}

func TestJoinCookiesMissingFile(t *testing.T) {
	assert.Equal(t, "a=1", joinCookies(" a=1 ", filepath.Join(t.TempDir(), "none")))
	assert.Empty(t, joinCookies("", ""))
}

func TestBypassCloudflareKeepsOurHeaders(t *testing.T) {
	var gotUA, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
	}))
	defer srv.Close()

	client, err := NewHTTPClient(HTTPClientOptions{
		Timeout:          5 * time.Second,
		UserAgent:        PickUserAgent("facebook"),
		Cookie:           "lang=pt",
		BypassCloudflare: true,
	})
	require.NoError(t, err)

	rt, ok := client.Transport.(roundTripper)
	require.True(t, ok)
	_, plain := rt.base.(*http.Transport)
	assert.False(t, plain, "bypass should wrap the base transport")

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, BotUserAgents["facebook"], gotUA)
	assert.Equal(t, "lang=pt", gotCookie)
}
