package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dsemenov/accountd/internal/common"
	"github.com/dsemenov/accountd/internal/server/models"
)

// InMemoryRepository keeps records in process memory. Used for tests and
// for running the server without a database.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := cloneUser(user)
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()

	r.byID[stored.ID] = stored
	r.byEmail[key] = stored.ID

	return cloneUser(stored), nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(user), nil
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(r.byID[id]), nil
}

// UpdateByID applies the delta under one lock, mirroring the atomicity of
// the single-statement postgres UPDATE.
func (r *InMemoryRepository) UpdateByID(ctx context.Context, id string, delta *models.UserDelta) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	if delta.Email != nil && emailKey(*delta.Email) != emailKey(user.Email) {
		key := emailKey(*delta.Email)
		if _, taken := r.byEmail[key]; taken {
			return nil, common.ErrorAlreadyExists
		}
		delete(r.byEmail, emailKey(user.Email))
		r.byEmail[key] = id
		user.Email = *delta.Email
	}
	if delta.Name != nil {
		user.Name = *delta.Name
	}
	if delta.PasswordHash != nil {
		user.PasswordHash = append([]byte(nil), delta.PasswordHash...)
	}

	return cloneUser(user), nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c
}
