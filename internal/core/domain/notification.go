package domain

import "time"

type NotificationType string

const (
	NotificationLike     NotificationType = "like"
	NotificationComment  NotificationType = "comment"
	NotificationBookmark NotificationType = "bookmark"
	NotificationFollow   NotificationType = "follow"
)

type Notification struct {
	ID         int64            `json:"id"`
	ReceiverID int64            `json:"receiver_id"`
	ActorID    int64            `json:"actor_id"`
	Type       NotificationType `json:"type"`
	ResourceID int64            `json:"resource_id,omitempty"`
	Message    string           `json:"message"`
	IsRead     bool             `json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	// Denormalized actor/resource context for rendering.
	ActorUsername  string `json:"actor_username,omitempty"`
	ActorNickname  string `json:"actor_nickname,omitempty"`
	ActorAvatar    string `json:"actor_avatar,omitempty"`
	ArticleTitle   string `json:"article_title,omitempty"`
	CommentContent string `json:"comment_content,omitempty"`
}

// NotificationStats is the unread/total counter pair.
type NotificationStats struct {
	UnreadCount int `json:"unread_count"`
	TotalCount  int `json:"total_count"`
}

// PointsRecord is one entry in a user's points history.
type PointsRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Points    int       `json:"points"`
	Action    string    `json:"action"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PointsBalance is a user's current points total.
type PointsBalance struct {
	UserID int64 `json:"user_id"`
	Total  int   `json:"total"`
}
