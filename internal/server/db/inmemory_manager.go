package db

import (
	"context"

	"github.com/dsemenov/accountd/internal/server/repositories/users"
)

// InMemoryRepositoryManager backs the service with process-local storage.
// Intended for tests and local development runs without postgres.
type InMemoryRepositoryManager struct {
	users users.Repository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Close() error { return nil }
