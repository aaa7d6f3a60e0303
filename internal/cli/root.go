// Package cli implements the gads command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gads/internal/neo4j"
	"github.com/mesh-intelligence/gads/pkg/types"
)

// Exit codes: 0 success, 1 user error (bad arguments, missing objects),
// 2 system error (store unreachable, query failure).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configFile string
	jsonMode   bool
	verbose    bool
}

var flags rootFlags

// NewRootCmd creates the top-level "gads" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gads",
		Short: "Graph-backed abstract data structures",
		Long: "Gads stores scalar and composite variables, sets, maps and doubly\n" +
			"linked lists as patterns in a Neo4j property graph, one atomic\n" +
			"query per operation.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default: .gads.yaml)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "log queries and timings")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newLsCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newGcCmd())
	root.AddCommand(newStatsCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor separates caller mistakes from infrastructure failures.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrObjectNotFound),
		errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrURIEmpty):
		return exitUserError
	}
	return exitSysError
}

func logger() *zap.Logger {
	if !flags.verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// withStore loads the configuration, attaches a store for the duration of
// fn, and detaches it afterwards.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, store types.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	config, err := loadConfig(flags.configFile)
	if err != nil {
		return err
	}

	store := neo4j.NewStore(logger())
	if err := store.Attach(ctx, config); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	defer func() {
		if derr := store.Detach(ctx); derr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "detach store:", derr)
		}
	}()

	return fn(ctx, store)
}
