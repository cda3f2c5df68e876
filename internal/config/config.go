package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/pagecheck/internal/checks"
)

type Config struct {
	Output           string `yaml:"output"`
	Debug            bool   `yaml:"debug"`
	Headless         bool   `yaml:"headless"`
	Browser          string `yaml:"browser"`
	ViewportWidth    int    `yaml:"viewport_width"`
	ViewportHeight   int    `yaml:"viewport_height"`
	UserAgent        string `yaml:"user_agent"`
	Cookie           string `yaml:"cookie"`
	CookieFile       string `yaml:"cookie_file"`
	BypassCloudflare bool   `yaml:"bypass_cloudflare"`

	Checks []checks.Check `yaml:"checks"`
}

type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Output           string
	Headed           bool
	Browser          string
	UserAgent        string
	Cookie           string
	CookieFile       string
	BypassCloudflare bool
}

func DefaultConfig() *Config {
	return &Config{
		Output:         checks.DefaultOutput,
		Debug:          false,
		Headless:       true,
		Browser:        "chromium",
		ViewportWidth:  1280,
		ViewportHeight: 720,
		Checks:         checks.Presets(),
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// absent keys keep their defaults
	c := DefaultConfig()
	c.Checks = nil
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	for _, ch := range c.Checks {
		if err := ch.Validate(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `pagecheck config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Debug {
		c.Debug = true
	}
	if o.Headed {
		c.Headless = false
	}
	if o.Browser != "" {
		c.Browser = o.Browser
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.BypassCloudflare {
		c.BypassCloudflare = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = checks.DefaultOutput
	}
	if c.Browser == "" {
		c.Browser = "chromium"
	}
	if c.ViewportWidth == 0 {
		c.ViewportWidth = 1280
	}
	if c.ViewportHeight == 0 {
		c.ViewportHeight = 720
	}
}

func (c *Config) Print(w io.Writer) {
	if c.Output != "" {
		_, _ = fmt.Fprintf(w, " -output: %s\n", c.Output)
	}
	_, _ = fmt.Fprintf(w, " -browser: %s\n", c.Browser)
	_, _ = fmt.Fprintf(w, " -headless: %t\n", c.Headless)
	_, _ = fmt.Fprintf(w, " -viewport: %dx%d\n", c.ViewportWidth, c.ViewportHeight)
	if c.Debug {
		_, _ = fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	if c.UserAgent != "" {
		_, _ = fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		_, _ = fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	if c.BypassCloudflare {
		_, _ = fmt.Fprintf(w, " -bypass_cloudflare: %t\n", c.BypassCloudflare)
	}
	for _, ch := range c.Checks {
		_, _ = fmt.Fprintf(w, " -check %s: %s\n", ch.Name, ch.URL)
	}
}
