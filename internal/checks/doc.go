// Package checks defines what a page verification looks for: the target
// URL, the expectations evaluated against the live DOM, and where the
// screenshot artifacts go. Built-in presets cover the music page and the
// og:image meta tag.
package checks
