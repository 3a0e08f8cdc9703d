package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/vibenet/internal/models"
)

// UserServiceInterface defines the contract for user operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, params models.UpdateProfileParams) (*models.User, error)
	Search(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.PublicUser, error)
}

// AuthServiceInterface defines the contract for authentication operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	IssueToken(userID uuid.UUID) (string, time.Time, error)
	Authenticate(ctx context.Context, token string) (*models.User, *Claims, error)
	Login(ctx context.Context, email, password string) (*models.User, string, time.Time, error)
	RevokeToken(ctx context.Context, claims *Claims) error
}

// FriendServiceInterface defines the contract for friendship operations.
type FriendServiceInterface interface {
	SendRequest(ctx context.Context, requesterID, targetID uuid.UUID) (*models.Friendship, error)
	AcceptRequest(ctx context.Context, accepterID, requestID uuid.UUID) (*models.Friendship, error)
	DeclineRequest(ctx context.Context, declinerID, requestID uuid.UUID) error
	CancelRequest(ctx context.Context, requesterID, requestID uuid.UUID) error
	RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error
	ListRequests(ctx context.Context, userID uuid.UUID) (*models.FriendRequestLists, error)
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.Friend, error)
	GetStatus(ctx context.Context, viewerID, targetID uuid.UUID) (*models.FriendshipStatusResult, error)
	IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
}

// PostServiceInterface defines the contract for post operations.
type PostServiceInterface interface {
	Create(ctx context.Context, params models.CreatePostParams) (*models.Post, error)
	Get(ctx context.Context, viewerID, postID uuid.UUID) (*models.PostWithDetails, error)
	Delete(ctx context.Context, userID, postID uuid.UUID) error
	Feed(ctx context.Context, viewerID uuid.UUID, limit, offset int) ([]models.PostWithDetails, error)
	ListByUser(ctx context.Context, viewerID, targetID uuid.UUID, limit, offset int) (*models.ProfilePosts, error)
}

type CommentServiceInterface interface {
	Create(ctx context.Context, userID, postID uuid.UUID, content string) (*models.Comment, error)
	List(ctx context.Context, viewerID, postID uuid.UUID, limit, offset int) ([]models.Comment, error)
	Delete(ctx context.Context, userID, commentID uuid.UUID) error
}

type LikeServiceInterface interface {
	Like(ctx context.Context, userID, postID uuid.UUID) (int, error)
	Unlike(ctx context.Context, userID, postID uuid.UUID) (int, error)
}

type FollowServiceInterface interface {
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	Counts(ctx context.Context, userID uuid.UUID) (*models.FollowCounts, error)
}

var (
	_ UserServiceInterface    = (*UserService)(nil)
	_ AuthServiceInterface    = (*AuthService)(nil)
	_ FriendServiceInterface  = (*FriendService)(nil)
	_ PostServiceInterface    = (*PostService)(nil)
	_ CommentServiceInterface = (*CommentService)(nil)
	_ LikeServiceInterface    = (*LikeService)(nil)
	_ FollowServiceInterface  = (*FollowService)(nil)
	_ PostAccessEvaluator     = (*AccessPolicy)(nil)
	_ PostReadChecker         = (*PostService)(nil)
	_ UserGetter              = (*UserService)(nil)
	_ FriendChecker           = (*FriendService)(nil)
)
