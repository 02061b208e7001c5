package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svcmap/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "svcmapctl",
		Short: "svcmapctl - query the community service directory from the terminal",
		Long: `svcmapctl runs the directory's query layer locally: list and filter
services, search by keyword, find services near a point, and show stats.`,
	}

	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.NearbyCmd())
	rootCmd.AddCommand(cli.StatsCmd())
	rootCmd.AddCommand(cli.CategoriesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
