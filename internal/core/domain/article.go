package domain

import "time"

// Article status codes as the backend encodes them.
const (
	ArticleDraft     = 0
	ArticlePublished = 1
	ArticleUnlisted  = 2
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Article struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Summary      string    `json:"summary,omitempty"`
	CoverImage   string    `json:"cover_image,omitempty"`
	CategoryID   int64     `json:"category_id"`
	Category     *Category `json:"category,omitempty"`
	AuthorID     int64     `json:"author_id"`
	Author       *User     `json:"author,omitempty"`
	Status       int       `json:"status"`
	ViewCount    int       `json:"view_count"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ArticleRequest is the create/update payload. Tags are comma-separated
// on the wire; status is the numeric encoding above.
type ArticleRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug,omitempty"`
	Content     string `json:"content"`
	Summary     string `json:"summary,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`
	CategoryID  int64  `json:"category_id"`
	Tags        string `json:"tags,omitempty"`
	Status      int    `json:"status"`
	IsTop       bool   `json:"is_top,omitempty"`
	IsRecommend bool   `json:"is_recommend,omitempty"`
}

// ArticleListParams filters GET /articles. Zero values are dropped from
// the query string by the request pipeline.
type ArticleListParams struct {
	Page       int
	Size       int
	CategoryID int64
	AuthorID   int64
	Keyword    string
}

type Comment struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"article_id"`
	UserID    int64     `json:"user_id"`
	User      *User     `json:"user,omitempty"`
	ParentID  int64     `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentRequest struct {
	ArticleID int64  `json:"article_id"`
	ParentID  int64  `json:"parent_id,omitempty"`
	Content   string `json:"content"`
}

// LikeStatus reports whether the current user liked a target resource.
type LikeStatus struct {
	TargetType string `json:"target_type"`
	TargetID   int64  `json:"target_id"`
	Liked      bool   `json:"liked"`
	LikeCount  int    `json:"like_count"`
}
