package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type LikeService struct {
	db    DBConn
	posts PostReadChecker
}

func NewLikeService(db DBConn, posts PostReadChecker) *LikeService {
	return &LikeService{db: db, posts: posts}
}

// Like records a like and returns the post's like count. Liking twice is a no-op.
func (s *LikeService) Like(ctx context.Context, userID, postID uuid.UUID) (int, error) {
	if _, err := s.posts.CheckReadable(ctx, userID, postID); err != nil {
		return 0, err
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO likes (post_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (post_id, user_id) DO NOTHING`,
		postID, userID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrPostNotFound
		}
		return 0, fmt.Errorf("liking post: %w", err)
	}
	return s.count(ctx, postID)
}

func (s *LikeService) Unlike(ctx context.Context, userID, postID uuid.UUID) (int, error) {
	result, err := s.db.Exec(ctx, "DELETE FROM likes WHERE post_id = $1 AND user_id = $2", postID, userID)
	if err != nil {
		return 0, fmt.Errorf("unliking post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return 0, ErrLikeNotFound
	}
	return s.count(ctx, postID)
}

func (s *LikeService) count(ctx context.Context, postID uuid.UUID) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM likes WHERE post_id = $1", postID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting likes: %w", err)
	}
	return n, nil
}
