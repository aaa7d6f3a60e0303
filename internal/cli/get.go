package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gads/pkg/ads"
	"github.com/mesh-intelligence/gads/pkg/composite"
	"github.com/mesh-intelligence/gads/pkg/memory"
	"github.com/mesh-intelligence/gads/pkg/simple"
	"github.com/mesh-intelligence/gads/pkg/types"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Resolve one element and print its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store types.Store) error {
				obj, err := memory.NewManager(store).GetObject(ctx, args[0])
				if err != nil {
					return err
				}

				value, err := describe(ctx, obj)
				if err != nil {
					return err
				}

				if flags.jsonMode {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
						"name":  obj.ElementName(),
						"kind":  obj.ElementKind(),
						"value": value,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%v\n", obj.ElementName(), obj.ElementKind(), value)
				return nil
			})
		},
	}
}

// describe loads the element's content where a content exists, or measures
// the structure where it does not.
func describe(ctx context.Context, obj types.Element) (any, error) {
	switch v := obj.(type) {
	case *simple.Integer:
		if err := v.Load(ctx); err != nil {
			return nil, err
		}
		return v.Value(), nil
	case *simple.Number:
		if err := v.Load(ctx); err != nil {
			return nil, err
		}
		return v.Value(), nil
	case *simple.Date:
		if err := v.Load(ctx); err != nil {
			return nil, err
		}
		return v.Value().Format(time.DateOnly), nil
	case *composite.String:
		if err := v.Load(ctx); err != nil {
			return nil, err
		}
		return v.Value(), nil
	case *composite.Array[string]:
		if err := v.Load(ctx); err != nil {
			return nil, err
		}
		return v.Values(), nil
	case *composite.Array[float64]:
		if err := v.Load(ctx); err != nil {
			return nil, err
		}
		return v.Values(), nil
	case *composite.Array[time.Time]:
		if err := v.Load(ctx); err != nil {
			return nil, err
		}
		dates := make([]string, v.Len())
		for i, d := range v.Values() {
			dates[i] = d.Format(time.DateOnly)
		}
		return dates, nil
	case *ads.Set:
		n, err := v.Len(ctx)
		if err != nil {
			return nil, err
		}
		return fmt.Sprintf("%d members", n), nil
	case *ads.Map:
		n, err := v.Len(ctx)
		if err != nil {
			return nil, err
		}
		return fmt.Sprintf("%d keys", n), nil
	case *ads.DLList:
		n, err := v.Len(ctx)
		if err != nil {
			return nil, err
		}
		return fmt.Sprintf("%d items", n), nil
	}
	// Domain-owned element: identity is all the engine knows about it.
	return obj.ElementKind(), nil
}
