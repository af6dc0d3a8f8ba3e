// Package format renders dashboard data as terminal or Markdown tables for
// the launchreport CLI.
package format
