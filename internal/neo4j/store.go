// Package neo4j implements the graph store capability on the Neo4j Go
// driver. It is the only package that talks to the driver; everything
// above it sees queries and rows.
package neo4j

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gads/pkg/types"
)

// constraintViolation is the server code raised when two writes race the
// same element name.
const constraintViolation = "Neo.ClientError.Schema.ConstraintValidationFailed"

// nameConstraintQuery installs the uniqueness constraint the whole engine
// leans on; it is the only cross-entity invariant the store enforces.
const nameConstraintQuery = `CREATE CONSTRAINT persistent_element_name IF NOT EXISTS
FOR (n:PersistentElement) REQUIRE n.name IS UNIQUE`

// Store executes compiled queries against a Neo4j database. A session is
// opened per call and closed before it returns; no connection is held
// across engine operations.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	driver   neo4j.DriverWithContext
	log      *zap.Logger
}

var _ types.Store = (*Store)(nil)

// NewStore creates a detached store. Call Attach with a Config before use.
func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{log: log}
}

// Attach connects the driver, verifies connectivity, and installs the
// uniqueness constraint on element names.
func (s *Store) Attach(ctx context.Context, config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	driver, err := neo4j.NewDriverWithContext(config.URI, neo4j.BasicAuth(config.Username, config.Password, ""))
	if err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return fmt.Errorf("attach store %q: %w", config.URI, err)
	}

	s.driver = driver
	s.config = config
	s.attached = true

	if _, err := s.run(ctx, nameConstraintQuery, nil); err != nil {
		s.attached = false
		s.driver = nil
		_ = driver.Close(ctx)
		return fmt.Errorf("install name constraint: %w", err)
	}

	s.log.Info("store attached", zap.String("uri", config.URI), zap.String("database", config.Database))
	return nil
}

// Detach closes the driver. A detached store rejects Execute.
func (s *Store) Detach(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	s.attached = false
	driver := s.driver
	s.driver = nil

	if err := driver.Close(ctx); err != nil {
		return fmt.Errorf("detach store: %w", err)
	}
	s.log.Info("store detached")
	return nil
}

// Execute runs one compiled query in its own session and managed write
// transaction, returning the result rows. Constraint violations on the
// element name come back as ErrNameCollision; every other failure
// propagates unmodified.
func (s *Store) Execute(ctx context.Context, query string, params map[string]any) ([]types.Row, error) {
	s.mu.RLock()
	attached := s.attached
	s.mu.RUnlock()
	if !attached {
		return nil, types.ErrStoreDetached
	}
	return s.run(ctx, query, params)
}

func (s *Store) run(ctx context.Context, query string, params map[string]any) ([]types.Row, error) {
	start := time.Now()
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.config.Database,
	})
	defer session.Close(ctx)

	records, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, translateError(err)
	}

	rows := collectRows(records.([]*neo4j.Record))
	s.log.Debug("query executed",
		zap.String("query", query),
		zap.Int("rows", len(rows)),
		zap.Duration("duration", time.Since(start)))
	return rows, nil
}

// translateError maps the server's uniqueness-constraint violation onto the
// engine's error taxonomy.
func translateError(err error) error {
	var neoErr *db.Neo4jError
	if errors.As(err, &neoErr) && neoErr.Code == constraintViolation {
		return fmt.Errorf("%s: %w", neoErr.Msg, types.ErrNameCollision)
	}
	return err
}

func collectRows(records []*neo4j.Record) []types.Row {
	rows := make([]types.Row, 0, len(records))
	for _, record := range records {
		row := make(types.Row, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = record.Values[i]
		}
		rows = append(rows, row)
	}
	return rows
}
