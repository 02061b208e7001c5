package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NearbyCmd returns the nearby command
func NearbyCmd() *cobra.Command {
	var radius float64

	cmd := &cobra.Command{
		Use:   "nearby <lat> <lng>",
		Short: "List services within a radius of a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q", args[0])
			}
			lng, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q", args[1])
			}

			dir, err := openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			services, err := dir.WithinRadius(cmd.Context(), lat, lng, radius)
			if err != nil {
				return err
			}
			header.Printf("%d service(s) within %.1f miles of (%.4f, %.4f)\n\n", len(services), radius, lat, lng)
			for _, r := range services {
				printRecord(r)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&radius, "radius", "r", 5, "search radius in miles")
	return cmd
}
