// Package verify implements the page verification routine: open one page
// in a headless browser, wait for the expected elements, check an optional
// meta tag attribute and leave a screenshot behind. Each run is a single
// attempt and the browser is released on every exit path.
package verify
