// Package services – UserService
//
// This file implements UserService. Users are keyed by their Wikimedia
// account id; the first request from an account registers it and stamps
// first_seen, later requests return the stored row.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/repo"
)

// UserService implements the use-cases around users.
type UserService struct {
	DB *gorm.DB
}

// Ensure returns the user with id, registering it under username on first
// sight. created reports whether the user was new.
func (s *UserService) Ensure(ctx context.Context, id int64, username string) (*domain.User, bool, error) {
	username = strings.TrimSpace(username)
	if id <= 0 || username == "" {
		return nil, false, ErrInvalidUser
	}
	u, created, err := repo.EnsureUser(ctx, s.DB, id, username)
	if err != nil {
		if isDuplicate(err) {
			return nil, false, ErrDuplicateUser
		}
		return nil, false, err
	}
	return u, created, nil
}

// Get loads a user by username.
func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	u, err := repo.GetUserByUsername(ctx, s.DB, strings.TrimSpace(username))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// SetAdmin grants or revokes admin rights.
func (s *UserService) SetAdmin(ctx context.Context, username string, admin bool) error {
	if err := repo.SetUserAdmin(ctx, s.DB, strings.TrimSpace(username), admin); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
