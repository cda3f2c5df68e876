// Package browser backs the verifier with Playwright. Each Launch starts
// its own driver, launches one browser and opens one page; Close releases
// all three.
package browser
