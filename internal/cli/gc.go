package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gads/pkg/memory"
	"github.com/mesh-intelligence/gads/pkg/types"
)

func newGcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Collect unreachable anonymous elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store types.Store) error {
				removed, err := memory.NewManager(store).GarbageCollect(ctx)
				if err != nil {
					return err
				}
				if flags.jsonMode {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]int64{"removed": removed})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d elements\n", removed)
				return nil
			})
		},
	}
}
