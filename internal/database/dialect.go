package database

import (
	"database/sql"
	"strconv"
	"strings"
)

// Dialect abstracts the engine-specific parts of talking to a database so the
// repositories can write one set of SQL with ? placeholders.
type Dialect interface {
	// DriverName is the name registered with sql.Open
	DriverName() string

	// DSN builds the data source name from the configuration
	DSN(config DialectConfig) string

	// RewriteQuery adjusts placeholder syntax where the driver needs it
	RewriteQuery(query string) string

	// SupportsLastInsertId reports whether inserts can use Result.LastInsertId
	SupportsLastInsertId() bool

	// ConfigureConnection applies pool settings and engine pragmas
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir names the per-engine directory under migrations/
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the DDL for the migrations ledger
	CreateMigrationsTableQuery() string

	// BoolValue renders a boolean literal for this engine
	BoolValue(b bool) string
}

// DialectConfig holds connection parameters; Path is used by SQLite, URL by
// PostgreSQL and MySQL.
type DialectConfig struct {
	Path string
	URL  string
}

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, ...
// Queries here never embed literal question marks, so no quote handling.
func rewritePlaceholdersToNumbered(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
