package storage

import (
	"net/url"
	"strings"

	"github.com/julianstephens/habitkit/internal/storage/postgres"
	"github.com/julianstephens/habitkit/internal/storage/sqlite"
)

// NewSQLiteStore creates a provider backed by a SQLite database file
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore creates a provider backed by a PostgreSQL database
func NewPostgresStore(connStr string) Provider {
	return postgres.NewStore(connStr)
}

// IsPostgres reports whether the config value is a PostgreSQL connection
// string rather than a SQLite file path
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password. Embedded credentials are rejected; passwords belong in
// the environment, .pgpass, or the OS keyring.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}
