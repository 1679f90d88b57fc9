package api

import (
	"context"
	"fmt"

	"github.com/vietddude/godad/internal/core/domain"
	"github.com/vietddude/godad/internal/page"
	"github.com/vietddude/godad/internal/rest"
)

// CommentService wraps the comment endpoints.
type CommentService struct {
	client *rest.Client
}

func NewCommentService(client *rest.Client) *CommentService {
	return &CommentService{client: client}
}

// ListByArticle returns a normalized page of an article's comments.
func (s *CommentService) ListByArticle(ctx context.Context, articleID int64, pageNum, size int) (page.List[domain.Comment], error) {
	q := map[string]any{"article_id": articleID}
	if pageNum > 0 {
		q["page"] = pageNum
	}
	if size > 0 {
		q["size"] = size
	}
	env, err := s.client.Get(ctx, "/comments", q)
	if err != nil {
		return page.List[domain.Comment]{}, err
	}
	return page.As[domain.Comment](page.NormalizeJSON(env.Body))
}

// Create posts a comment or a reply.
func (s *CommentService) Create(ctx context.Context, req domain.CommentRequest) (*domain.Comment, error) {
	env, err := s.client.Post(ctx, "/comments", req)
	if err != nil {
		return nil, err
	}
	var c domain.Comment
	if err := env.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the caller's comment.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/comments/%d", id), nil)
	return err
}
