package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchdash/launchdash/server/internal/format"
)

var sitesFlags struct {
	markdown bool
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the launch site options with launch counts",
	RunE:  runSites,
}

func init() {
	sitesCmd.Flags().BoolVar(&sitesFlags.markdown, "markdown", false, "Print Markdown tables")
}

func runSites(cmd *cobra.Command, _ []string) error {
	v, err := loadView()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), format.Sites(v.Dataset(), mode(sitesFlags.markdown)).String())
	return nil
}

func mode(markdown bool) format.Mode {
	if markdown {
		return format.Markdown
	}
	return format.ASCII
}
