// Package cache persists the cached user-info projection. The projection
// only optimizes startup paint; it is never trusted for access control
// and is always revalidated against the backend.
package cache

import (
	"context"
	"errors"
)

// UserInfoKey is the fixed storage key for the cached user projection.
const UserInfoKey = "godad_user_info"

// ErrNotFound is returned when no projection is stored.
var ErrNotFound = errors.New("cache: not found")

// Store persists one opaque JSON blob under UserInfoKey.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
