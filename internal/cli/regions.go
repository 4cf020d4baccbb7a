package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegionsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the regions present in the NFHS dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			regions, err := rt.store.ListRegions(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range regions {
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
}
