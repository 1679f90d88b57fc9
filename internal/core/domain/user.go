package domain

import "time"

type Role string

const (
	RoleUser           Role = "user"
	RoleContentManager Role = "content_manager"
	RoleAdmin          Role = "admin"
)

// User is the backend's user projection, shared by auth, profile, and
// follow endpoints.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Role      Role      `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FollowUser extends User with relationship flags on follow listings.
type FollowUser struct {
	User
	IsFollowing    bool `json:"is_following,omitempty"`
	IsMutualFollow bool `json:"is_mutual_follow,omitempty"`
}

// FollowStats summarizes a user's follow relationships.
type FollowStats struct {
	FollowingCount int `json:"following_count"`
	FollowersCount int `json:"followers_count"`
}

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// LoginResult is the login response body. Tokens are delivered via
// httpOnly cookies in the current backend; the fields remain for the
// token-based variant.
type LoginResult struct {
	User         User   `json:"user"`
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// ChangePasswordRequest is the payload for POST /user/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
