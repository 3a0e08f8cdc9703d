package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/vibenet/internal/models"
	"github.com/HammerMeetNail/vibenet/internal/services"
)

type mockUserService struct {
	CreateFunc        func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	UpdateProfileFunc func(ctx context.Context, userID uuid.UUID, params models.UpdateProfileParams) (*models.User, error)
	SearchFunc        func(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.PublicUser, error)
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, params models.UpdateProfileParams) (*models.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *mockUserService) Search(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.PublicUser, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, currentUserID, query)
	}
	return nil, nil
}

type mockAuthService struct {
	HashPasswordFunc func(password string) (string, error)
	IssueTokenFunc   func(userID uuid.UUID) (string, time.Time, error)
	AuthenticateFunc func(ctx context.Context, token string) (*models.User, *services.Claims, error)
	LoginFunc        func(ctx context.Context, email, password string) (*models.User, string, time.Time, error)
	RevokeTokenFunc  func(ctx context.Context, claims *services.Claims) error
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed", nil
}

func (m *mockAuthService) IssueToken(userID uuid.UUID) (string, time.Time, error) {
	if m.IssueTokenFunc != nil {
		return m.IssueTokenFunc(userID)
	}
	return "token", time.Now().Add(time.Hour), nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*models.User, *services.Claims, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, token)
	}
	return nil, nil, services.ErrInvalidToken
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, time.Time, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, "", time.Time{}, services.ErrInvalidCredentials
}

func (m *mockAuthService) RevokeToken(ctx context.Context, claims *services.Claims) error {
	if m.RevokeTokenFunc != nil {
		return m.RevokeTokenFunc(ctx, claims)
	}
	return nil
}

type mockFriendService struct {
	SendRequestFunc    func(ctx context.Context, requesterID, targetID uuid.UUID) (*models.Friendship, error)
	AcceptRequestFunc  func(ctx context.Context, accepterID, requestID uuid.UUID) (*models.Friendship, error)
	DeclineRequestFunc func(ctx context.Context, declinerID, requestID uuid.UUID) error
	CancelRequestFunc  func(ctx context.Context, requesterID, requestID uuid.UUID) error
	RemoveFriendFunc   func(ctx context.Context, userID, friendID uuid.UUID) error
	ListRequestsFunc   func(ctx context.Context, userID uuid.UUID) (*models.FriendRequestLists, error)
	ListFriendsFunc    func(ctx context.Context, userID uuid.UUID) ([]models.Friend, error)
	GetStatusFunc      func(ctx context.Context, viewerID, targetID uuid.UUID) (*models.FriendshipStatusResult, error)
	IsFriendFunc       func(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
}

func (m *mockFriendService) SendRequest(ctx context.Context, requesterID, targetID uuid.UUID) (*models.Friendship, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, requesterID, targetID)
	}
	return nil, nil
}

func (m *mockFriendService) AcceptRequest(ctx context.Context, accepterID, requestID uuid.UUID) (*models.Friendship, error) {
	if m.AcceptRequestFunc != nil {
		return m.AcceptRequestFunc(ctx, accepterID, requestID)
	}
	return nil, nil
}

func (m *mockFriendService) DeclineRequest(ctx context.Context, declinerID, requestID uuid.UUID) error {
	if m.DeclineRequestFunc != nil {
		return m.DeclineRequestFunc(ctx, declinerID, requestID)
	}
	return nil
}

func (m *mockFriendService) CancelRequest(ctx context.Context, requesterID, requestID uuid.UUID) error {
	if m.CancelRequestFunc != nil {
		return m.CancelRequestFunc(ctx, requesterID, requestID)
	}
	return nil
}

func (m *mockFriendService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	if m.RemoveFriendFunc != nil {
		return m.RemoveFriendFunc(ctx, userID, friendID)
	}
	return nil
}

func (m *mockFriendService) ListRequests(ctx context.Context, userID uuid.UUID) (*models.FriendRequestLists, error) {
	if m.ListRequestsFunc != nil {
		return m.ListRequestsFunc(ctx, userID)
	}
	return &models.FriendRequestLists{}, nil
}

func (m *mockFriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(ctx, userID)
	}
	return []models.Friend{}, nil
}

func (m *mockFriendService) GetStatus(ctx context.Context, viewerID, targetID uuid.UUID) (*models.FriendshipStatusResult, error) {
	if m.GetStatusFunc != nil {
		return m.GetStatusFunc(ctx, viewerID, targetID)
	}
	return &models.FriendshipStatusResult{Status: models.RelationshipNone}, nil
}

func (m *mockFriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	if m.IsFriendFunc != nil {
		return m.IsFriendFunc(ctx, userID, otherUserID)
	}
	return false, nil
}

type mockPostService struct {
	CreateFunc     func(ctx context.Context, params models.CreatePostParams) (*models.Post, error)
	GetFunc        func(ctx context.Context, viewerID, postID uuid.UUID) (*models.PostWithDetails, error)
	DeleteFunc     func(ctx context.Context, userID, postID uuid.UUID) error
	FeedFunc       func(ctx context.Context, viewerID uuid.UUID, limit, offset int) ([]models.PostWithDetails, error)
	ListByUserFunc func(ctx context.Context, viewerID, targetID uuid.UUID, limit, offset int) (*models.ProfilePosts, error)
}

func (m *mockPostService) Create(ctx context.Context, params models.CreatePostParams) (*models.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockPostService) Get(ctx context.Context, viewerID, postID uuid.UUID) (*models.PostWithDetails, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, viewerID, postID)
	}
	return nil, nil
}

func (m *mockPostService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, postID)
	}
	return nil
}

func (m *mockPostService) Feed(ctx context.Context, viewerID uuid.UUID, limit, offset int) ([]models.PostWithDetails, error) {
	if m.FeedFunc != nil {
		return m.FeedFunc(ctx, viewerID, limit, offset)
	}
	return []models.PostWithDetails{}, nil
}

func (m *mockPostService) ListByUser(ctx context.Context, viewerID, targetID uuid.UUID, limit, offset int) (*models.ProfilePosts, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, viewerID, targetID, limit, offset)
	}
	return &models.ProfilePosts{Posts: []models.PostWithDetails{}}, nil
}

type mockCommentService struct {
	CreateFunc func(ctx context.Context, userID, postID uuid.UUID, content string) (*models.Comment, error)
	ListFunc   func(ctx context.Context, viewerID, postID uuid.UUID, limit, offset int) ([]models.Comment, error)
	DeleteFunc func(ctx context.Context, userID, commentID uuid.UUID) error
}

func (m *mockCommentService) Create(ctx context.Context, userID, postID uuid.UUID, content string) (*models.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, postID, content)
	}
	return nil, nil
}

func (m *mockCommentService) List(ctx context.Context, viewerID, postID uuid.UUID, limit, offset int) ([]models.Comment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, viewerID, postID, limit, offset)
	}
	return []models.Comment{}, nil
}

func (m *mockCommentService) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, commentID)
	}
	return nil
}

type mockLikeService struct {
	LikeFunc   func(ctx context.Context, userID, postID uuid.UUID) (int, error)
	UnlikeFunc func(ctx context.Context, userID, postID uuid.UUID) (int, error)
}

func (m *mockLikeService) Like(ctx context.Context, userID, postID uuid.UUID) (int, error) {
	if m.LikeFunc != nil {
		return m.LikeFunc(ctx, userID, postID)
	}
	return 0, nil
}

func (m *mockLikeService) Unlike(ctx context.Context, userID, postID uuid.UUID) (int, error) {
	if m.UnlikeFunc != nil {
		return m.UnlikeFunc(ctx, userID, postID)
	}
	return 0, nil
}

type mockFollowService struct {
	FollowFunc      func(ctx context.Context, followerID, followeeID uuid.UUID) error
	UnfollowFunc    func(ctx context.Context, followerID, followeeID uuid.UUID) error
	IsFollowingFunc func(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	CountsFunc      func(ctx context.Context, userID uuid.UUID) (*models.FollowCounts, error)
}

func (m *mockFollowService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if m.FollowFunc != nil {
		return m.FollowFunc(ctx, followerID, followeeID)
	}
	return nil
}

func (m *mockFollowService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if m.UnfollowFunc != nil {
		return m.UnfollowFunc(ctx, followerID, followeeID)
	}
	return nil
}

func (m *mockFollowService) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	if m.IsFollowingFunc != nil {
		return m.IsFollowingFunc(ctx, followerID, followeeID)
	}
	return false, nil
}

func (m *mockFollowService) Counts(ctx context.Context, userID uuid.UUID) (*models.FollowCounts, error) {
	if m.CountsFunc != nil {
		return m.CountsFunc(ctx, userID)
	}
	return &models.FollowCounts{}, nil
}
