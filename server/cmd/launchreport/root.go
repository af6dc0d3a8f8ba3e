// launchreport prints and renders the launch dashboard views offline.
//
// Usage:
//
//	launchreport sites   [--data=<csv>]
//	launchreport summary [--data=<csv>] [--site=<site>] [--low=<kg> --high=<kg>] [--markdown]
//	launchreport render  [--data=<csv>] [--site=<site>] [--low=<kg> --high=<kg>] [--out=<dir>] [--format=png|svg]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/launchdash/launchdash/server/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	data string
}

var rootCmd = &cobra.Command{
	Use:   "launchreport",
	Short: "Launch success reports from a SpaceX launch CSV",
	Long:  "launchreport computes the dashboard's pie and scatter views from a\nlaunch CSV and prints them as tables or renders them as images.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.data, "data", config.DefaultDataPath, "Launch CSV to read")

	rootCmd.AddCommand(sitesCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
