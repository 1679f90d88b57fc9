// Package session owns the authenticated-session state: the current
// user, the cached projection used for instant startup paint, and the
// single-flight refresher that renews the session on 401.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/vietddude/godad/internal/core/domain"
	"github.com/vietddude/godad/internal/infra/cache"
)

// Session is the one piece of shared mutable state in the SDK. It is an
// injectable container, not a package singleton, so tests get a fresh
// instance per case. Mutated only by login/logout/profile updates and by
// refresh failure.
type Session struct {
	mu      sync.RWMutex
	user    *domain.User
	loading bool
	lastErr error
	store   cache.Store
}

// New builds a Session backed by the given projection store. A nil store
// disables persistence.
func New(store cache.Store) *Session {
	return &Session{store: store}
}

// User returns the current user, or nil when unauthenticated.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a user is set.
func (s *Session) Authenticated() bool { return s.User() != nil }

// Loading reports whether a validation round-trip is in progress.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the most recent session-level failure.
func (s *Session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Restore loads the cached projection for instant paint. The result is
// advisory only; callers must revalidate with Validate before trusting it.
func (s *Session) Restore(ctx context.Context) *domain.User {
	if s.store == nil {
		return nil
	}
	data, err := s.store.Load(ctx)
	if err != nil {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	return &u
}

// SetUser replaces the current user and persists the projection. Used by
// login, profile updates, and successful validation.
func (s *Session) SetUser(ctx context.Context, u *domain.User) {
	s.mu.Lock()
	s.user = u
	s.lastErr = nil
	s.mu.Unlock()

	if s.store != nil && u != nil {
		if data, err := json.Marshal(u); err == nil {
			_ = s.store.Save(ctx, data)
		}
	}
}

// Clear drops the user and the cached projection. Used by logout and by
// terminal refresh failure.
func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if s.store != nil {
		_ = s.store.Clear(ctx)
	}
}

// SetLoading flips the loading flag.
func (s *Session) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// SetError records a session-level failure.
func (s *Session) SetError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
