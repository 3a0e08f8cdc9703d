package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/vibenet/internal/models"
)

// FollowService manages one-way follows. Following grants no post access.
type FollowService struct {
	db DBConn
}

func NewFollowService(db DBConn) *FollowService {
	return &FollowService{db: db}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return ErrCannotFollowSelf
	}

	var exists bool
	if err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", followeeID).Scan(&exists); err != nil {
		return fmt.Errorf("checking user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	_, err := s.db.Exec(ctx,
		"INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)",
		followerID, followeeID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyFollowing
		}
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("following user: %w", err)
	}
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2",
		followerID, followeeID,
	)
	if err != nil {
		return fmt.Errorf("unfollowing user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var following bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)",
		followerID, followeeID,
	).Scan(&following)
	if err != nil {
		return false, fmt.Errorf("checking follow: %w", err)
	}
	return following, nil
}

func (s *FollowService) Counts(ctx context.Context, userID uuid.UUID) (*models.FollowCounts, error) {
	counts := &models.FollowCounts{}
	err := s.db.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM follows WHERE followee_id = $1),
		   (SELECT COUNT(*) FROM follows WHERE follower_id = $1)`,
		userID,
	).Scan(&counts.Followers, &counts.Following)
	if err != nil {
		return nil, fmt.Errorf("counting follows: %w", err)
	}
	return counts, nil
}
