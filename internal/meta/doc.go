// Package meta checks meta tags in the server-rendered HTML, the way social
// and search crawlers see the page, using the same expectation and exit
// semantics as the browser verifier.
package meta
