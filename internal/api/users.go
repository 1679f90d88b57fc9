package api

import (
	"context"
	"fmt"

	"github.com/vietddude/godad/internal/core/domain"
	"github.com/vietddude/godad/internal/rest"
	"github.com/vietddude/godad/internal/session"
)

// UserService wraps the profile endpoints.
type UserService struct {
	client  *rest.Client
	session *session.Session
}

func NewUserService(client *rest.Client, sess *session.Session) *UserService {
	return &UserService{client: client, session: sess}
}

// UpdateProfile patches the caller's profile and replaces the session
// user with the result.
func (s *UserService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.User, error) {
	env, err := s.client.Put(ctx, "/user/profile", req)
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

// ChangePassword rotates the caller's password.
func (s *UserService) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) error {
	_, err := s.client.Post(ctx, "/user/change-password", req)
	return err
}

// PublicInfo fetches another user's public profile.
func (s *UserService) PublicInfo(ctx context.Context, id int64) (*domain.User, error) {
	env, err := s.client.Get(ctx, fmt.Sprintf("/user/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := env.Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CheckNickname reports whether a nickname is still free.
func (s *UserService) CheckNickname(ctx context.Context, nickname string) (bool, error) {
	env, err := s.client.Get(ctx, "/user/check-nickname", map[string]any{"nickname": nickname})
	if err != nil {
		return false, err
	}
	var res struct {
		Available bool `json:"available"`
	}
	if err := env.Decode(&res); err != nil {
		return false, err
	}
	return res.Available, nil
}
