package api

import (
	"context"
	"fmt"

	"github.com/vietddude/godad/internal/core/domain"
	"github.com/vietddude/godad/internal/page"
	"github.com/vietddude/godad/internal/rest"
)

// NotificationService wraps the notification endpoints. Their list
// response uses the domain-specific {notifications, pagination} envelope,
// which the normalizer folds into the canonical page shape.
type NotificationService struct {
	client *rest.Client
}

func NewNotificationService(client *rest.Client) *NotificationService {
	return &NotificationService{client: client}
}

// List returns a normalized page of notifications.
func (s *NotificationService) List(ctx context.Context, pageNum, limit int) (page.List[domain.Notification], error) {
	q := map[string]any{}
	if pageNum > 0 {
		q["page"] = pageNum
	}
	if limit > 0 {
		q["limit"] = limit
	}
	env, err := s.client.Get(ctx, "/notifications", q)
	if err != nil {
		return page.List[domain.Notification]{}, err
	}
	return page.As[domain.Notification](page.NormalizeJSON(env.Body))
}

// Stats returns the unread/total counters.
func (s *NotificationService) Stats(ctx context.Context) (*domain.NotificationStats, error) {
	env, err := s.client.Get(ctx, "/notifications/stats", nil)
	if err != nil {
		return nil, err
	}
	var st domain.NotificationStats
	if err := env.Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	_, err := s.client.Put(ctx, fmt.Sprintf("/notifications/%d/read", id), nil)
	return err
}

// MarkAllRead marks every notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	_, err := s.client.Put(ctx, "/notifications/read-all", nil)
	return err
}
