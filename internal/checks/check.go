package checks

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultNavTimeout    = 30 * time.Second
	DefaultAssertTimeout = 5 * time.Second
	DefaultActionTimeout = 30 * time.Second
	DefaultReadyTimeout  = 10 * time.Second
	DefaultMetaAttribute = "content"
	DefaultOutput        = "verification"
)

// Check describes one page verification. Zero values mean "step skipped"
// for every optional step.
type Check struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`

	Heading  string `yaml:"heading,omitempty"`
	Contains string `yaml:"contains,omitempty"`

	ReadyText    string        `yaml:"ready_text,omitempty"`
	ReadyTimeout time.Duration `yaml:"ready_timeout,omitempty"`

	SearchSelector string `yaml:"search_selector,omitempty"`
	SearchValue    string `yaml:"search_value,omitempty"`

	Settle            time.Duration `yaml:"settle,omitempty"`
	SettleNetworkIdle bool          `yaml:"settle_network_idle,omitempty"`

	MetaSelector  string `yaml:"meta_selector,omitempty"`
	MetaAttribute string `yaml:"meta_attribute,omitempty"`
	MetaExpect    string `yaml:"meta_expect,omitempty"`

	Screenshot      string `yaml:"screenshot,omitempty"`
	ErrorScreenshot string `yaml:"error_screenshot,omitempty"`
	FullPage        *bool  `yaml:"full_page,omitempty"`

	NavTimeout    time.Duration `yaml:"nav_timeout,omitempty"`
	AssertTimeout time.Duration `yaml:"assert_timeout,omitempty"`
	// ActionTimeout bounds input interactions such as filling the search
	// field.
	ActionTimeout time.Duration `yaml:"action_timeout,omitempty"`
}

// HasMeta reports whether the check runs the meta-tag variant.
func (c Check) HasMeta() bool {
	return c.MetaSelector != ""
}

func (c Check) WantFullPage() bool {
	return c.FullPage == nil || *c.FullPage
}

func (c Check) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("check %q: url is required", c.Name)
	}
	if c.MetaSelector != "" && c.MetaExpect == "" {
		return fmt.Errorf("check %q: meta_selector needs meta_expect", c.Name)
	}
	if c.SearchSelector != "" && c.SearchValue == "" {
		return fmt.Errorf("check %q: search_selector needs search_value", c.Name)
	}
	if c.NavTimeout < 0 || c.AssertTimeout < 0 || c.ActionTimeout < 0 || c.ReadyTimeout < 0 || c.Settle < 0 {
		return fmt.Errorf("check %q: timeouts cannot be negative", c.Name)
	}

	return nil
}

// Normalize returns a copy with defaults filled in. Relative screenshot
// paths are kept relative to the working directory.
func (c Check) Normalize(output string) Check {
	if output == "" {
		output = DefaultOutput
	}
	if c.Name == "" {
		c.Name = "check"
	}
	if c.Screenshot == "" {
		c.Screenshot = filepath.Join(output, Sanitize(c.Name)+".png")
	}
	if c.ErrorScreenshot == "" {
		c.ErrorScreenshot = filepath.Join(output, Sanitize(c.Name)+"_error.png")
	}
	if c.MetaSelector != "" && c.MetaAttribute == "" {
		c.MetaAttribute = DefaultMetaAttribute
	}
	if c.ReadyText != "" && c.ReadyTimeout == 0 {
		c.ReadyTimeout = DefaultReadyTimeout
	}
	if c.NavTimeout == 0 {
		c.NavTimeout = DefaultNavTimeout
	}
	if c.AssertTimeout == 0 {
		c.AssertTimeout = DefaultAssertTimeout
	}
	if c.ActionTimeout == 0 {
		c.ActionTimeout = DefaultActionTimeout
	}

	return c
}

// Contains is the expectation predicate shared by the browser and the
// static meta checks.
func Contains(value, expect string) bool {
	return strings.Contains(value, expect)
}

var ErrNotFound = errors.New("check not found")
