// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for User.
package repo

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
)

// CreateUser inserts a user. A repeated id or username fails with ErrDuplicate.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return translate(db.WithContext(ctx).Create(u).Error)
}

// GetUser fetches a user by id, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id int64) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername fetches a user by username, or ErrNotFound.
func GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureUser returns the user with id, creating it with username when it
// does not exist yet. created reports whether a row was inserted. An existing
// row is returned unchanged, so FirstSeen keeps its original value.
func EnsureUser(ctx context.Context, db *gorm.DB, id int64, username string) (u *domain.User, created bool, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		got, gerr := GetUser(ctx, tx, id)
		if gerr == nil {
			u = got
			return nil
		}
		if !errors.Is(gerr, ErrNotFound) {
			return gerr
		}
		u = &domain.User{ID: id, Username: username}
		if cerr := CreateUser(ctx, tx, u); cerr != nil {
			return cerr
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return u, created, nil
}

// SetUserAdmin sets the admin flag for username.
func SetUserAdmin(ctx context.Context, db *gorm.DB, username string, admin bool) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("username = ?", username).
		Update("is_admin", admin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUserOptions replaces the options blob of user id.
func UpdateUserOptions(ctx context.Context, db *gorm.DB, id int64, options datatypes.JSON) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("options", options)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
