// Package services contains server-side business logic. This file implements
// UserService, which handles account registration, profile reads, and
// credential updates.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/dsemenov/accountd/internal/common"
	"github.com/dsemenov/accountd/internal/metrics"
	"github.com/dsemenov/accountd/internal/server/auth"
	"github.com/dsemenov/accountd/internal/server/models"
	"github.com/dsemenov/accountd/internal/server/password"
	"github.com/dsemenov/accountd/internal/server/repositories/users"
)

// MinPasswordLength is the shortest account secret accepted at registration
// and rotation.
const MinPasswordLength = 6

// RegisterRequest is the validated input of the registration flow.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// UpdateRequest carries the candidate attribute values of one update.
// Empty Name/Email leave the stored value unchanged. OldPassword and
// NewPassword must be supplied together to rotate the secret.
type UpdateRequest struct {
	Name        string
	Email       string
	OldPassword string
	NewPassword string
}

// UserService orchestrates the account flows on top of the repository,
// the secret hasher, and the token issuer.
type UserService struct {
	repo    users.Repository
	hasher  *password.Hasher
	issuer  *auth.Issuer
	metrics *metrics.Metrics
}

func NewUserService(repo users.Repository, hasher *password.Hasher, issuer *auth.Issuer, m *metrics.Metrics) *UserService {
	return &UserService{repo: repo, hasher: hasher, issuer: issuer, metrics: m}
}

// Register creates an account and returns a bearer token bound to the new
// id. On any failure no record is persisted and no token is issued.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (string, error) {

	if err := validateRegistration(req); err != nil {
		return "", err
	}

	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		s.metrics.RegistrationConflictsTotal.Inc()
		return "", common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("checking email uniqueness: %w", err)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", err
	}

	user, err := s.repo.Create(ctx, &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: digest,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.metrics.RegistrationConflictsTotal.Inc()
			return "", common.ErrorAlreadyExists
		}
		return "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", err
	}

	s.metrics.RegistrationsTotal.Inc()
	return token, nil
}

// GetProfile returns the caller's record with the secret digest stripped.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.UserView, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.View(), nil
}

// Update applies attribute and credential changes for an authenticated
// account. The whole update is all-or-nothing: if the secret checks fail,
// the unrelated name/email changes are not persisted either.
func (s *UserService) Update(ctx context.Context, userID string, req UpdateRequest) (*models.UserView, error) {

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	delta := &models.UserDelta{}
	if req.Name != "" && req.Name != user.Name {
		delta.Name = &req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		delta.Email = &req.Email
	}

	rotate := req.OldPassword != "" || req.NewPassword != ""
	if rotate {
		if err := validateRotation(req); err != nil {
			return nil, err
		}

		// The old secret must match the stored digest, and the new secret
		// must actually change it.
		if !s.hasher.Verify(req.OldPassword, user.PasswordHash) ||
			s.hasher.Verify(req.NewPassword, user.PasswordHash) {
			s.metrics.CredentialMismatchesTotal.Inc()
			return nil, common.ErrorCredentialMismatch
		}

		digest, err := s.hasher.Hash(req.NewPassword)
		if err != nil {
			return nil, err
		}
		delta.PasswordHash = digest
	}

	updated, err := s.repo.UpdateByID(ctx, userID, delta)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	if rotate {
		s.metrics.CredentialRotationsTotal.Inc()
	}
	return updated.View(), nil
}

func validateRegistration(req RegisterRequest) error {
	var violations []string

	if req.Name == "" {
		violations = append(violations, "name is required")
	}
	if req.Email == "" {
		violations = append(violations, "email is required")
	} else if !isValidEmail(req.Email) {
		violations = append(violations, "email is not a valid address")
	}
	if len(req.Password) < MinPasswordLength {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	return common.NewValidationError(violations)
}

func validateRotation(req UpdateRequest) error {
	var violations []string

	if req.OldPassword == "" || req.NewPassword == "" {
		violations = append(violations, "old and new password must be supplied together")
	} else if len(req.NewPassword) < MinPasswordLength {
		violations = append(violations, fmt.Sprintf("new password must be at least %d characters", MinPasswordLength))
	}

	return common.NewValidationError(violations)
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	// reject display-name forms such as "A <a@x.com>"
	return err == nil && addr.Address == email
}
