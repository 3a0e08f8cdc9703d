package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/vibenet/internal/models"
)

const MaxCommentLength = 1000

// PostReadChecker resolves a post's author if the viewer may read the post.
type PostReadChecker interface {
	CheckReadable(ctx context.Context, viewerID, postID uuid.UUID) (uuid.UUID, error)
}

type CommentService struct {
	db    DBConn
	posts PostReadChecker
}

func NewCommentService(db DBConn, posts PostReadChecker) *CommentService {
	return &CommentService{db: db, posts: posts}
}

func scanComment(row Row) (*models.Comment, error) {
	c := &models.Comment{}
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt,
		&c.Author.ID, &c.Author.Username, &c.Author.DisplayName, &c.Author.ProfileImageURL)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) Create(ctx context.Context, userID, postID uuid.UUID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentContentRequired
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, ErrCommentContentTooLong
	}

	if _, err := s.posts.CheckReadable(ctx, userID, postID); err != nil {
		return nil, err
	}

	comment, err := scanComment(s.db.QueryRow(ctx,
		`WITH inserted AS (
			INSERT INTO comments (post_id, user_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, post_id, user_id, content, created_at
		)
		SELECT i.id, i.post_id, i.user_id, i.content, i.created_at,
		       u.id, u.username, u.display_name, u.profile_image_url
		FROM inserted i
		JOIN users u ON u.id = i.user_id`,
		postID, userID, content,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// List returns a readable post's comments, oldest first.
func (s *CommentService) List(ctx context.Context, viewerID, postID uuid.UUID, limit, offset int) ([]models.Comment, error) {
	if _, err := s.posts.CheckReadable(ctx, viewerID, postID); err != nil {
		return nil, err
	}

	limit, offset = NormalizePage(limit, offset)
	rows, err := s.db.Query(ctx,
		`SELECT c.id, c.post_id, c.user_id, c.content, c.created_at,
		        u.id, u.username, u.display_name, u.profile_image_url
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.post_id = $1
		 ORDER BY c.created_at ASC, c.id ASC
		 LIMIT $2 OFFSET $3`,
		postID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return comments, nil
}

// Delete removes a comment. The comment's author and the post's author may delete it.
func (s *CommentService) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM comments c
		 USING posts p
		 WHERE c.id = $1
		   AND p.id = c.post_id
		   AND (c.user_id = $2 OR p.user_id = $2)`,
		commentID, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}
