package types

import "errors"

// Config holds the parameters needed to attach a Store to its backing graph
// database.
type Config struct {
	// URI is the bolt/neo4j connection URI, e.g. "bolt://localhost:7687".
	URI string `json:"uri" yaml:"uri"`

	// Username and Password authenticate against the server. Both may be
	// empty when the server runs without auth.
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`

	// Database selects the database to run queries against. Empty means the
	// server's default database.
	Database string `json:"database" yaml:"database"`
}

// Config validation errors.
var (
	ErrURIEmpty = errors.New("connection URI must not be empty")
)

// Validate checks that the Config is well-formed, returning a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.URI == "" {
		return ErrURIEmpty
	}
	return nil
}
