package cli

import (
	"github.com/spf13/cobra"

	"svcmap/internal/model"
)

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	var categories []string
	var sourceOrgs []string
	var keyword string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services, optionally filtered by category, source org, and keyword",
		Long: `List the services in the directory. Filters compose with AND
semantics; an omitted filter imposes no constraint.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			services, err := dir.Filter(cmd.Context(), model.Query{
				Categories: categories,
				SourceOrgs: sourceOrgs,
				Keyword:    keyword,
			})
			if err != nil {
				return err
			}
			header.Printf("%d service(s)\n\n", len(services))
			for _, r := range services {
				printRecord(r)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "filter by category (repeatable)")
	cmd.Flags().StringSliceVarP(&sourceOrgs, "org", "o", nil, "filter by source organization (repeatable)")
	cmd.Flags().StringVarP(&keyword, "search", "s", "", "keyword matched against name, description, organization, address")
	return cmd
}
