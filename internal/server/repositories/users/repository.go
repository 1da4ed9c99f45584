package users

import (
	"context"

	"github.com/dsemenov/accountd/internal/server/models"
)

// Repository is the durable store of identity records. Implementations own
// atomicity of their writes: UpdateByID must apply the whole delta in a
// single statement, so a failed update never leaves a partially changed
// record. Two concurrent updates to the same id may still interleave at
// the request level; the last write wins.
//
// Absent records are reported as common.ErrorNotFound, duplicate emails as
// common.ErrorAlreadyExists; any other failure wraps common.ErrorRepository.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateByID(ctx context.Context, id string, delta *models.UserDelta) (*models.User, error)
}
