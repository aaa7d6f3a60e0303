package neo4j

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gads/pkg/types"
)

func TestTranslateErrorConstraintViolation(t *testing.T) {
	err := translateError(&db.Neo4jError{
		Code: constraintViolation,
		Msg:  "Node(42) already exists with label `PersistentElement` and property `name` = 'answer'",
	})

	assert.ErrorIs(t, err, types.ErrNameCollision)
	assert.Contains(t, err.Error(), "answer")
}

func TestTranslateErrorPassesOthersThrough(t *testing.T) {
	syntax := &db.Neo4jError{Code: "Neo.ClientError.Statement.SyntaxError", Msg: "bad query"}
	assert.Equal(t, error(syntax), translateError(syntax))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateError(plain))
}

func TestExecuteDetachedRejected(t *testing.T) {
	s := NewStore(nil)

	_, err := s.Execute(context.Background(), "RETURN 1", nil)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestDetachWithoutAttachRejected(t *testing.T) {
	s := NewStore(nil)

	assert.ErrorIs(t, s.Detach(context.Background()), types.ErrStoreDetached)
}

func TestAttachRejectsInvalidConfig(t *testing.T) {
	s := NewStore(nil)

	err := s.Attach(context.Background(), types.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrURIEmpty)
}

func TestCollectRows(t *testing.T) {
	records := []*neo4j.Record{
		{Keys: []string{"name", "kind"}, Values: []any{"primes", types.KindAbstractSet}},
		{Keys: []string{"name", "kind"}, Values: []any{"queue", types.KindAbstractDLList}},
	}

	rows := collectRows(records)
	require.Len(t, rows, 2)
	assert.Equal(t, "primes", rows[0]["name"])
	assert.Equal(t, types.KindAbstractDLList, rows[1]["kind"])
}
