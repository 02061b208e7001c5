package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show directory totals and per-category breakdowns",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := dir.Stats(cmd.Context())
			if err != nil {
				return err
			}

			header.Println("Directory stats")
			fmt.Printf("  Services:             %d\n", stats.TotalServices)
			fmt.Printf("  Categories:           %d\n", stats.CategoryCount)
			fmt.Printf("  Source organizations: %d\n", stats.SourceOrgCount)

			categories, err := dir.Categories(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println()
			header.Println("By category")
			for _, c := range categories {
				fmt.Printf("  %-20s %d\n", c, stats.ByCategory[c])
			}

			orgs, err := dir.SourceOrganizations(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println()
			header.Println("By source organization")
			for _, o := range orgs {
				fmt.Printf("  %-30s %d\n", o, stats.BySourceOrg[o])
			}
			return nil
		},
	}
}
