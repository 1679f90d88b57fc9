package api

import (
	"context"
	"fmt"

	"github.com/vietddude/godad/internal/core/domain"
	"github.com/vietddude/godad/internal/page"
	"github.com/vietddude/godad/internal/rest"
)

// CategoryService wraps the category endpoints.
type CategoryService struct {
	client *rest.Client
}

func NewCategoryService(client *rest.Client) *CategoryService {
	return &CategoryService{client: client}
}

// List returns all categories. The endpoint is unpaginated but still
// rides the envelope convention.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	env, err := s.client.Get(ctx, "/categories", nil)
	if err != nil {
		return nil, err
	}
	var cats []domain.Category
	if err := env.Decode(&cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// FollowService wraps the follow-relationship endpoints.
type FollowService struct {
	client *rest.Client
}

func NewFollowService(client *rest.Client) *FollowService {
	return &FollowService{client: client}
}

// Follow starts following a user.
func (s *FollowService) Follow(ctx context.Context, userID int64) error {
	_, err := s.client.Post(ctx, fmt.Sprintf("/follows/%d", userID), nil)
	return err
}

// Unfollow stops following a user.
func (s *FollowService) Unfollow(ctx context.Context, userID int64) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/follows/%d", userID), nil)
	return err
}

// Followers returns a normalized page of a user's followers.
func (s *FollowService) Followers(ctx context.Context, userID int64, pageNum, size int) (page.List[domain.FollowUser], error) {
	return s.followList(ctx, fmt.Sprintf("/follows/%d/followers", userID), pageNum, size)
}

// Following returns a normalized page of users someone follows.
func (s *FollowService) Following(ctx context.Context, userID int64, pageNum, size int) (page.List[domain.FollowUser], error) {
	return s.followList(ctx, fmt.Sprintf("/follows/%d/following", userID), pageNum, size)
}

// Stats returns follower/following counters.
func (s *FollowService) Stats(ctx context.Context, userID int64) (*domain.FollowStats, error) {
	env, err := s.client.Get(ctx, fmt.Sprintf("/follows/%d/stats", userID), nil)
	if err != nil {
		return nil, err
	}
	var st domain.FollowStats
	if err := env.Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *FollowService) followList(ctx context.Context, path string, pageNum, size int) (page.List[domain.FollowUser], error) {
	q := map[string]any{}
	if pageNum > 0 {
		q["page"] = pageNum
	}
	if size > 0 {
		q["limit"] = size
	}
	env, err := s.client.Get(ctx, path, q)
	if err != nil {
		return page.List[domain.FollowUser]{}, err
	}
	return page.As[domain.FollowUser](page.NormalizeJSON(env.Body))
}

// LikeService wraps the like endpoints.
type LikeService struct {
	client *rest.Client
}

func NewLikeService(client *rest.Client) *LikeService {
	return &LikeService{client: client}
}

// Toggle flips the like state on a target and reports the new state.
func (s *LikeService) Toggle(ctx context.Context, targetType string, targetID int64) (*domain.LikeStatus, error) {
	env, err := s.client.Post(ctx, "/likes/toggle", map[string]any{
		"target_type": targetType,
		"target_id":   targetID,
	})
	if err != nil {
		return nil, err
	}
	var st domain.LikeStatus
	if err := env.Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Status reads the like state for one target.
func (s *LikeService) Status(ctx context.Context, targetType string, targetID int64) (*domain.LikeStatus, error) {
	env, err := s.client.Get(ctx, "/likes/status", map[string]any{
		"target_type": targetType,
		"target_id":   targetID,
	})
	if err != nil {
		return nil, err
	}
	var st domain.LikeStatus
	if err := env.Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// PointsService wraps the points endpoints.
type PointsService struct {
	client *rest.Client
}

func NewPointsService(client *rest.Client) *PointsService {
	return &PointsService{client: client}
}

// Balance returns the caller's points total.
func (s *PointsService) Balance(ctx context.Context) (*domain.PointsBalance, error) {
	env, err := s.client.Get(ctx, "/points/balance", nil)
	if err != nil {
		return nil, err
	}
	var b domain.PointsBalance
	if err := env.Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// History returns a normalized page of points movements.
func (s *PointsService) History(ctx context.Context, pageNum, size int) (page.List[domain.PointsRecord], error) {
	q := map[string]any{}
	if pageNum > 0 {
		q["page"] = pageNum
	}
	if size > 0 {
		q["size"] = size
	}
	env, err := s.client.Get(ctx, "/points/history", q)
	if err != nil {
		return page.List[domain.PointsRecord]{}, err
	}
	return page.As[domain.PointsRecord](page.NormalizeJSON(env.Body))
}
