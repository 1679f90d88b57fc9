// Package api holds the thin endpoint wrappers over the request
// pipeline. Services only assemble paths, params, and bodies; list
// endpoints additionally run the page normalizer. Anything smarter
// belongs in the pipeline or the session layer.
package api

import (
	"context"

	"github.com/vietddude/godad/internal/core/domain"
	"github.com/vietddude/godad/internal/rest"
	"github.com/vietddude/godad/internal/session"
)

// AuthService drives the session lifecycle against the auth endpoints.
type AuthService struct {
	client  *rest.Client
	session *session.Session
}

func NewAuthService(client *rest.Client, sess *session.Session) *AuthService {
	return &AuthService{client: client, session: sess}
}

// Register creates an account. The backend does not log the user in.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	env, err := s.client.Post(ctx, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := env.Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates and installs the user into the session. Tokens
// arrive as httpOnly cookies; only the user projection is kept locally.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, error) {
	s.session.SetLoading(true)
	defer s.session.SetLoading(false)

	env, err := s.client.Post(ctx, "/auth/login", req)
	if err != nil {
		s.session.SetError(err)
		return nil, err
	}
	var res domain.LoginResult
	if err := env.Decode(&res); err != nil {
		return nil, err
	}
	s.session.SetUser(ctx, &res.User)
	return &res.User, nil
}

// Logout ends the backend session and clears local state either way.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.client.Post(ctx, "/auth/logout", nil)
	s.session.Clear(ctx)
	return err
}

// CurrentUser fetches the authenticated profile and refreshes the cached
// projection.
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	env, err := s.client.Get(ctx, "/user/profile", nil)
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := env.Decode(&u); err != nil {
		return nil, err
	}
	s.session.SetUser(ctx, &u)
	return &u, nil
}

// Init restores the cached projection for instant paint, then silently
// revalidates against the backend; a rejected session is cleared rather
// than trusted.
func (s *AuthService) Init(ctx context.Context) (*domain.User, error) {
	s.session.Restore(ctx)

	u, err := s.CurrentUser(ctx)
	if err != nil {
		s.session.Clear(ctx)
		return nil, err
	}
	return u, nil
}

// ForgotPassword requests a reset mail.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	_, err := s.client.Post(ctx, "/auth/forgot-password", map[string]string{"email": email})
	return err
}

// ResetPassword redeems a reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	_, err := s.client.Post(ctx, "/auth/reset-password", map[string]string{
		"token":        token,
		"new_password": newPassword,
	})
	return err
}
