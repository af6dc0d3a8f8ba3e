// Package ui serves the single dashboard page. The page is embedded in the
// binary and rendered once per request with html/template; a directory on
// disk can replace it for local development.
package ui
