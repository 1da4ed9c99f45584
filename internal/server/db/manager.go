package db

import (
	"context"

	"github.com/dsemenov/accountd/internal/server/repositories/users"
)

// RepositoryManager hands out the repositories backing the account service.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	Users() users.Repository
	Close() error
}
