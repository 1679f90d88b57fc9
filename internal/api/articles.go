package api

import (
	"context"
	"fmt"

	"github.com/vietddude/godad/internal/core/domain"
	"github.com/vietddude/godad/internal/page"
	"github.com/vietddude/godad/internal/rest"
)

// ArticleService wraps the article endpoints.
type ArticleService struct {
	client *rest.Client
}

func NewArticleService(client *rest.Client) *ArticleService {
	return &ArticleService{client: client}
}

// List returns a normalized page of published articles.
func (s *ArticleService) List(ctx context.Context, params domain.ArticleListParams) (page.List[domain.Article], error) {
	env, err := s.client.Get(ctx, "/articles", listQuery(params))
	if err != nil {
		return page.List[domain.Article]{}, err
	}
	return page.As[domain.Article](page.NormalizeJSON(env.Body))
}

// Mine returns the caller's own articles, drafts included.
func (s *ArticleService) Mine(ctx context.Context, pageNum, size int) (page.List[domain.Article], error) {
	env, err := s.client.Get(ctx, "/articles/my", map[string]any{
		"page": pageNum,
		"size": size,
	})
	if err != nil {
		return page.List[domain.Article]{}, err
	}
	return page.As[domain.Article](page.NormalizeJSON(env.Body))
}

// Get fetches one article by id.
func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	env, err := s.client.Get(ctx, fmt.Sprintf("/articles/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var a domain.Article
	if err := env.Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create publishes or drafts a new article.
func (s *ArticleService) Create(ctx context.Context, req domain.ArticleRequest) (*domain.Article, error) {
	env, err := s.client.Post(ctx, "/articles", req)
	if err != nil {
		return nil, err
	}
	var a domain.Article
	if err := env.Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update replaces an article.
func (s *ArticleService) Update(ctx context.Context, id int64, req domain.ArticleRequest) (*domain.Article, error) {
	env, err := s.client.Put(ctx, fmt.Sprintf("/articles/%d", id), req)
	if err != nil {
		return nil, err
	}
	var a domain.Article
	if err := env.Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes an article.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/articles/%d", id), nil)
	return err
}

// listQuery drops zero values so only intentional filters reach the
// query string.
func listQuery(p domain.ArticleListParams) map[string]any {
	q := map[string]any{}
	if p.Page > 0 {
		q["page"] = p.Page
	}
	if p.Size > 0 {
		q["size"] = p.Size
	}
	if p.CategoryID > 0 {
		q["category_id"] = p.CategoryID
	}
	if p.AuthorID > 0 {
		q["author_id"] = p.AuthorID
	}
	if p.Keyword != "" {
		q["keyword"] = p.Keyword
	}
	return q
}
