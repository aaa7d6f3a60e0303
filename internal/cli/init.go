package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gads/pkg/types"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Verify the store connection and install the name constraint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Attaching installs the uniqueness constraint; a round trip
			// proves the store answers queries.
			return withStore(cmd, func(ctx context.Context, store types.Store) error {
				if _, err := store.Execute(ctx, "RETURN 1 AS ok", nil); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "store initialized")
				return nil
			})
		},
	}
}
