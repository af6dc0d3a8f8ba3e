package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchdash/launchdash/server/internal/format"
)

var summaryFlags struct {
	selectionFlags
	markdown bool
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the success pie and payload outcomes as tables",
	RunE:  runSummary,
}

func init() {
	f := summaryCmd.Flags()
	summaryFlags.register(f)
	f.BoolVar(&summaryFlags.markdown, "markdown", false, "Print Markdown tables")
}

func runSummary(cmd *cobra.Command, _ []string) error {
	v, err := loadView()
	if err != nil {
		return err
	}
	sel, err := summaryFlags.resolve(cmd, v.Dataset())
	if err != nil {
		return err
	}

	pie, err := v.PieData(sel.Site)
	if err != nil {
		return fmt.Errorf("pie: %w", err)
	}
	scatter, err := v.ScatterData(sel.Site, sel.PayloadRange)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}

	m := mode(summaryFlags.markdown)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, format.Pie(pie, m).String())
	fmt.Fprintln(out)
	fmt.Fprintln(out, format.Outcomes(scatter, m).String())
	return nil
}
