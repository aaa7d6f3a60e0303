package simple

import (
	"context"
	"fmt"
	"time"

	"github.com/mesh-intelligence/gads/pkg/types"
)

// dateLayout is the canonical wire form of a date value. Dates are stored
// as strings so the node stays readable in hand-written queries.
const dateLayout = "2006-01-02"

// Date is a scalar variable holding one calendar date. Time-of-day and
// location are discarded.
type Date struct {
	element
	value time.Time
}

var _ types.Hashable = (*Date)(nil)

// NewDate creates an unsaved date variable. A date has no sensible default,
// so a zero time is rejected with types.ErrNotInitialized. An empty name
// yields an anonymous element.
func NewDate(store types.Store, value time.Time, name string) (*Date, error) {
	if value.IsZero() {
		return nil, fmt.Errorf("new %s: %w", types.KindSimpleDate, types.ErrNotInitialized)
	}
	return &Date{
		element: element{store: store, name: types.ResolveName(name), kind: types.KindSimpleDate},
		value:   truncateToDate(value),
	}, nil
}

// BoundDate binds a handle to an already persisted node.
func BoundDate(store types.Store, name string, value time.Time) *Date {
	d := &Date{
		element: element{store: store, name: name, kind: types.KindSimpleDate, saved: true},
		value:   truncateToDate(value),
	}
	return d
}

// Value returns the local value.
func (d *Date) Value() time.Time { return d.value }

// SetValue replaces the local value. The change reaches the store on the
// next Save.
func (d *Date) SetValue(v time.Time) { d.value = truncateToDate(v) }

// Save persists the current value in one round trip.
func (d *Date) Save(ctx context.Context) error {
	return d.save(ctx, map[string]any{"value": d.value.Format(dateLayout)})
}

// Delete removes the node and all its relations.
func (d *Date) Delete(ctx context.Context) error { return d.delete(ctx) }

// Load refreshes the local value from the store.
func (d *Date) Load(ctx context.Context) error {
	raw, err := d.fetchValue(ctx)
	if err != nil {
		return err
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("load %s %q: stored value %T: %w", d.kind, d.name, raw, types.ErrTypeMismatch)
	}
	v, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("load %s %q: %q: %w", d.kind, d.name, s, types.ErrTypeMismatch)
	}
	d.value = v
	return nil
}

// HashValue hashes the canonical yyyy-mm-dd rendering of the value.
func (d *Date) HashValue() (string, error) {
	return types.HashOf(d.value.Format(dateLayout)), nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
