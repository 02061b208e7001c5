package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CategoriesCmd returns the categories command
func CategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the distinct service categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			categories, err := dir.Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Println(c)
			}
			return nil
		},
	}
}
