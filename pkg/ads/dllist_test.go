package ads

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gads/pkg/simple"
	"github.com/mesh-intelligence/gads/pkg/types"
)

func TestDLListSaveInitializesLength(t *testing.T) {
	store := types.NewMockStore()

	l := NewDLList(store, "queue")
	require.NoError(t, l.Save(context.Background()))

	call := store.LastCall()
	assert.Contains(t, call.Query, "CREATE (n:PersistentElement:AbstractDLList)")
	assert.Equal(t, int64(0), call.Params["length"])
}

func TestDLListAppendCompilesOneQuery(t *testing.T) {
	store := types.NewMockStore()
	ctx := context.Background()

	l := BoundDLList(store, "queue")
	e := simple.BoundInteger(store, "first", 1)

	store.Script([]types.Row{{"length": int64(1)}}, nil)
	require.NoError(t, l.Append(ctx, e))
	assert.Equal(t, 1, store.CallCount(), "the empty and non-empty branches live in the same statement")

	call := store.LastCall()
	assert.Contains(t, call.Query, "CREATE (i:PersistentElement:DLListItem:AbstractStructItem")
	assert.Contains(t, call.Query, "CREATE (l)-[:DLL_TAIL]->(i)")
	assert.Contains(t, call.Query, "WHEN t IS NULL THEN [1]")
	assert.Contains(t, call.Query, "SET l.length = coalesce(l.length, 0) + 1")
	assert.Equal(t, "first", call.Params["element"])
	assert.True(t, types.IsAnonymousName(call.Params["itemName"].(string)))
}

func TestDLListAppendUnsavedOperandRejected(t *testing.T) {
	store := types.NewMockStore()

	l := BoundDLList(store, "queue")
	e := simple.NewInteger(store, 1, "first")

	assert.ErrorIs(t, l.Append(context.Background(), e), types.ErrUnsavedElement)
	assert.Zero(t, store.CallCount())
}

func TestDLListGetWalksFromHead(t *testing.T) {
	store := types.NewMockStore()

	l := BoundDLList(store, "queue")
	store.Script([]types.Row{{"name": "third", "kind": types.KindSimpleInteger}}, nil)

	got, err := l.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "third", got.ElementName())

	query := store.LastCall().Query
	assert.Contains(t, query, "[:DLL_HEAD]")
	assert.Contains(t, query, "-[:DLL_NXT*2]->")
}

func TestDLListGetNegativeWalksFromTail(t *testing.T) {
	store := types.NewMockStore()

	l := BoundDLList(store, "queue")
	store.Script([]types.Row{{"name": "second-to-last", "kind": types.KindSimpleInteger}}, nil)

	_, err := l.Get(context.Background(), -2)
	require.NoError(t, err)

	query := store.LastCall().Query
	assert.Contains(t, query, "[:DLL_TAIL]")
	assert.Contains(t, query, "-[:DLL_PRV*1]->")
	assert.NotContains(t, query, "DLL_NXT")
}

func TestDLListGetOutOfRange(t *testing.T) {
	store := types.NewMockStore()

	l := BoundDLList(store, "queue")
	// The anchor matched but the traversal came back empty.
	store.Script([]types.Row{{"name": nil, "kind": nil}}, nil)

	_, err := l.Get(context.Background(), 9)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestDLListRemoveSplices(t *testing.T) {
	store := types.NewMockStore()

	l := BoundDLList(store, "queue")
	store.Script([]types.Row{{"length": int64(2)}}, nil)

	require.NoError(t, l.Remove(context.Background(), 1))

	query := store.LastCall().Query
	assert.Contains(t, query, "CREATE (p)-[:DLL_NXT]->(n)", "inner removal relinks the neighbours")
	assert.Contains(t, query, "CREATE (l)-[:DLL_HEAD]->(n)", "head removal moves the anchor")
	assert.Contains(t, query, "CREATE (l)-[:DLL_TAIL]->(p)", "tail removal moves the anchor")
	assert.Contains(t, query, "DETACH DELETE x")
	assert.Contains(t, query, "SET l.length = l.length - 1")
}

func TestDLListRemoveOutOfRange(t *testing.T) {
	store := types.NewMockStore()

	l := BoundDLList(store, "queue")
	store.Script(nil, nil)

	assert.ErrorIs(t, l.Remove(context.Background(), 9), types.ErrIndexOutOfRange)
}

func TestDLListMergeAdoptsOtherChain(t *testing.T) {
	store := types.NewMockStore()

	u := BoundDLList(store, "u")
	v := BoundDLList(store, "v")

	store.Script([]types.Row{{"length": int64(5)}}, nil)
	require.NoError(t, u.ExtendByMerging(context.Background(), v))
	assert.Equal(t, 1, store.CallCount(), "a merge relinks a constant number of relations")
	assert.False(t, v.Saved(), "the merged-away anchor stops resolving")

	query := store.LastCall().Query
	assert.Contains(t, query, "CREATE (utail)-[:DLL_NXT]->(vhead)")
	assert.Contains(t, query, "CREATE (u)-[:DLL_TAIL]->(vtail)")
	assert.Contains(t, query, "DETACH DELETE v")
	assert.NotContains(t, query, "ITEM_VALUE", "items are never visited or copied")
}

func TestDLListMergeIntoItselfRejected(t *testing.T) {
	store := types.NewMockStore()

	u := BoundDLList(store, "u")

	assert.ErrorIs(t, u.ExtendByMerging(context.Background(), u), types.ErrInvalidName)
	assert.Zero(t, store.CallCount())
}

func TestDLListFromQueryRequiresBinding(t *testing.T) {
	store := types.NewMockStore()

	l := BoundDLList(store, "queue")

	_, err := l.FromQuery(context.Background(), "MATCH (x:PersistentElement:SimpleInteger)")
	assert.ErrorIs(t, err, types.ErrBindingNotFound)
	assert.Zero(t, store.CallCount(), "the fragment is rejected before anything executes")
}

func TestDLListFromQueryWrapsFragment(t *testing.T) {
	store := types.NewMockStore()

	l := BoundDLList(store, "queue")
	fragment := "MATCH (item:PersistentElement:SimpleInteger) WHERE item.value > 2"

	store.Script([]types.Row{{"length": int64(3), "members": int64(0)}}, nil)
	n, err := l.FromQuery(context.Background(), fragment)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	query := store.LastCall().Query
	assert.True(t, strings.HasPrefix(query, fragment), "the fragment runs first")
	assert.Contains(t, query, "WITH collect(item) AS vals")
	assert.Contains(t, query, "CREATE (a)-[:DLL_NXT]->(b)")
	assert.Contains(t, query, "CREATE (l)-[:DLL_HEAD]->(h)")
	assert.Contains(t, query, "SET l.length = total")
}

func TestDLListFromQueryNonEmptyGuard(t *testing.T) {
	store := types.NewMockStore()

	l := BoundDLList(store, "queue")

	store.Script([]types.Row{{"length": int64(0), "members": int64(2)}}, nil)
	_, err := l.FromQuery(context.Background(), "MATCH (item:PersistentElement)")
	assert.ErrorIs(t, err, types.ErrContainerNotEmpty)
}

func TestDLListClearResetsLength(t *testing.T) {
	store := types.NewMockStore()

	l := BoundDLList(store, "queue")
	store.Script([]types.Row{{"removed": int64(4)}}, nil)

	require.NoError(t, l.Clear(context.Background()))

	query := store.LastCall().Query
	assert.Contains(t, query, "[:DLL_NXT*0..]->")
	assert.Contains(t, query, "SET l.length = 0")
}

func TestDLListDestroyGuard(t *testing.T) {
	store := types.NewMockStore()
	ctx := context.Background()

	l := BoundDLList(store, "queue")

	store.Script([]types.Row{{"members": int64(3)}}, nil)
	assert.ErrorIs(t, l.Destroy(ctx), types.ErrDestroyNonEmpty)
	assert.True(t, l.Saved())

	store.Script([]types.Row{{"members": int64(0)}}, nil)
	require.NoError(t, l.Destroy(ctx))
	assert.False(t, l.Saved())
}

func TestDLListLen(t *testing.T) {
	store := types.NewMockStore()

	l := BoundDLList(store, "queue")
	store.Script([]types.Row{{"length": int64(7)}}, nil)

	n, err := l.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
