package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostWithDetails is a post as rendered in feeds.
type PostWithDetails struct {
	Post
	Author        PublicUser `json:"author"`
	LikeCount     int        `json:"likeCount"`
	CommentCount  int        `json:"commentCount"`
	LikedByViewer bool       `json:"likedByViewer"`
}

type CreatePostParams struct {
	UserID   uuid.UUID
	Content  string
	ImageURL *string
}

// ProfilePosts is a user's post listing. When access is denied Posts is empty and
// RestrictedContent is set; it is not an error.
type ProfilePosts struct {
	Posts             []PostWithDetails `json:"posts"`
	RestrictedContent bool              `json:"restrictedContent"`
	PostAccess
}

type Comment struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"postId"`
	UserID    uuid.UUID  `json:"userId"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	Author    PublicUser `json:"author"`
}

type FollowCounts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}
