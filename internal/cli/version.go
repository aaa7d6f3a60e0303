package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gads/pkg/gads"
)

const modulePath = "github.com/mesh-intelligence/gads"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gads version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "gads v%s\nmodule: %s\n", gads.Version, modulePath)
			return nil
		},
	}
}
