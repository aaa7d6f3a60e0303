package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gads/pkg/memory"
	"github.com/mesh-intelligence/gads/pkg/types"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the store population by kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store types.Store) error {
				stats, err := memory.NewManager(store).Stats(ctx)
				if err != nil {
					return err
				}

				if flags.jsonMode {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
						"named":     stats.Named,
						"anonymous": stats.Anonymous,
						"total":     stats.Total(),
					})
				}

				kinds := map[string]bool{}
				for kind := range stats.Named {
					kinds[kind] = true
				}
				for kind := range stats.Anonymous {
					kinds[kind] = true
				}
				sorted := make([]string, 0, len(kinds))
				for kind := range kinds {
					sorted = append(sorted, kind)
				}
				sort.Strings(sorted)

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "KIND\tNAMED\tANONYMOUS")
				for _, kind := range sorted {
					fmt.Fprintf(w, "%s\t%d\t%d\n", kind, stats.Named[kind], stats.Anonymous[kind])
				}
				fmt.Fprintf(w, "total\t\t%d\n", stats.Total())
				return w.Flush()
			})
		},
	}
}
