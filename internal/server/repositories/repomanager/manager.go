// Package repomanager constructs the storage backend and hands out
// repositories over it.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authgate/internal/server/repositories/users"
)

type RepositoryManager interface {
	// Conn returns the underlying handle, or nil for non-SQL backends.
	Conn() *sql.DB
	Users() users.Repository
	RunMigrations(ctx context.Context) error
}
