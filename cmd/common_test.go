package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/pagecheck/internal/checks"
	"github.com/brogergvhs/pagecheck/internal/config"
)

func browserCmd(t *testing.T, f *checkFlags, flags map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "run"}
	f.registerBrowser(c)
	for k, v := range flags {
		require.NoError(t, c.Flags().Set(k, v))
	}
	return c
}

func TestResolveCheckPresetWithOverrides(t *testing.T) {
	var f checkFlags
	c := browserCmd(t, &f, map[string]string{
		"meta-expect": "zen-eyer-og-image.svg",
		"full-page":   "false",
	})

	ch, err := resolveCheck(config.DefaultConfig(), []string{"og-image"}, &f, c)
	require.NoError(t, err)

	assert.Equal(t, "zen-eyer-og-image.svg", ch.MetaExpect)
	assert.Equal(t, "http://localhost:5173", ch.URL)
	assert.False(t, ch.WantFullPage())
	assert.Equal(t, 10*time.Second, ch.NavTimeout)
}

func TestResolveCheckAdhoc(t *testing.T) {
	var f checkFlags
	c := browserCmd(t, &f, map[string]string{
		"url":                 "http://localhost:8080/shop",
		"heading":             "Shop",
		"settle-network-idle": "true",
	})

	cfg := config.DefaultConfig()
	cfg.Output = "shots"

	ch, err := resolveCheck(cfg, nil, &f, c)
	require.NoError(t, err)

	assert.Equal(t, "adhoc", ch.Name)
	assert.Equal(t, "Shop", ch.Heading)
	assert.True(t, ch.SettleNetworkIdle)
	assert.Equal(t, filepath.Join("shots", "adhoc.png"), ch.Screenshot)
}

func TestResolveCheckDefaultsToFirstConfigured(t *testing.T) {
	var f checkFlags
	c := browserCmd(t, &f, nil)

	ch, err := resolveCheck(config.DefaultConfig(), nil, &f, c)
	require.NoError(t, err)
	assert.Equal(t, checks.MusicPage().Name, ch.Name)

	cfg := config.DefaultConfig()
	cfg.Checks = nil
	_, err = resolveCheck(cfg, nil, &f, c)
	assert.Error(t, err)

	_, err = resolveCheck(cfg, []string{"missing"}, &f, c)
	assert.ErrorIs(t, err, checks.ErrNotFound)
}

func TestMetaFlagsIgnoreBrowserFields(t *testing.T) {
	var f checkFlags
	c := &cobra.Command{Use: "meta"}
	f.registerMeta(c)
	require.NoError(t, c.Flags().Set("meta-attr", "href"))

	ch := checks.MusicPage()
	f.apply(c, &ch)

	assert.Equal(t, "href", ch.MetaAttribute)
	assert.Equal(t, "Music Hub", ch.Heading)
}

func TestResolveMetaCheckKeepsOGImageWithURL(t *testing.T) {
	var f checkFlags
	c := &cobra.Command{Use: "meta"}
	f.registerMeta(c)
	require.NoError(t, c.Flags().Set("url", "http://localhost:4173"))

	ch, err := resolveMetaCheck(config.DefaultConfig(), nil, &f, c)
	require.NoError(t, err)

	assert.Equal(t, "og-image", ch.Name)
	assert.Equal(t, "http://localhost:4173", ch.URL)
	assert.Equal(t, `meta[property="og:image"]`, ch.MetaSelector)
	assert.Equal(t, "zen-eyer-og-image.png", ch.MetaExpect)
}
