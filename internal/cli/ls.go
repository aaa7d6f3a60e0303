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

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List stored elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store types.Store) error {
				objects, err := memory.NewManager(store).ListObjects(ctx)
				if err != nil {
					return err
				}

				names := make([]string, 0, len(objects))
				for name := range objects {
					names = append(names, name)
				}
				sort.Strings(names)

				if flags.jsonMode {
					out := make([]map[string]string, 0, len(names))
					for _, name := range names {
						out = append(out, map[string]string{
							"name": name,
							"kind": objects[name].ElementKind(),
						})
					}
					return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tKIND")
				for _, name := range names {
					fmt.Fprintf(w, "%s\t%s\n", name, objects[name].ElementKind())
				}
				return w.Flush()
			})
		},
	}
}
