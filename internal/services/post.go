package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/vibenet/internal/models"
)

const (
	DefaultPageLimit  = 20
	MaxPageLimit      = 50
	MaxPostLength     = 2000
	postDetailColumns = `p.id, p.user_id, p.content, p.image_url, p.created_at, p.updated_at,
		u.id, u.username, u.display_name, u.profile_image_url,
		(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
		EXISTS(SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $1)`
)

// NormalizePage clamps a limit/offset pair to the allowed range.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type PostAccessEvaluator interface {
	CanAccessPosts(ctx context.Context, viewerID, targetID uuid.UUID) (models.PostAccess, error)
}

type PostService struct {
	db     DBConn
	access PostAccessEvaluator
}

func NewPostService(db DBConn, access PostAccessEvaluator) *PostService {
	return &PostService{db: db, access: access}
}

func scanPostDetails(row Row) (*models.PostWithDetails, error) {
	p := &models.PostWithDetails{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Content, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.ID, &p.Author.Username, &p.Author.DisplayName, &p.Author.ProfileImageURL,
		&p.LikeCount, &p.CommentCount, &p.LikedByViewer,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func collectPosts(rows Rows) ([]models.PostWithDetails, error) {
	defer rows.Close()

	posts := []models.PostWithDetails{}
	for rows.Next() {
		p, err := scanPostDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posts: %w", err)
	}
	return posts, nil
}

func validatePostContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrPostContentRequired
	}
	if utf8.RuneCountInString(content) > MaxPostLength {
		return "", ErrPostContentTooLong
	}
	return content, nil
}

func (s *PostService) Create(ctx context.Context, params models.CreatePostParams) (*models.Post, error) {
	content, err := validatePostContent(params.Content)
	if err != nil {
		return nil, err
	}

	imageURL := params.ImageURL
	if imageURL != nil && strings.TrimSpace(*imageURL) == "" {
		imageURL = nil
	}

	post := &models.Post{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO posts (user_id, content, image_url)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, content, image_url, created_at, updated_at`,
		params.UserID, content, imageURL,
	).Scan(&post.ID, &post.UserID, &post.Content, &post.ImageURL, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	return post, nil
}

// Get returns a post the viewer may see. Posts hidden by the access policy are reported as not found.
func (s *PostService) Get(ctx context.Context, viewerID, postID uuid.UUID) (*models.PostWithDetails, error) {
	post, err := scanPostDetails(s.db.QueryRow(ctx,
		"SELECT "+postDetailColumns+" FROM posts p JOIN users u ON u.id = p.user_id WHERE p.id = $2",
		viewerID, postID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting post: %w", err)
	}

	access, err := s.access.CanAccessPosts(ctx, viewerID, post.UserID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// CheckReadable returns the author of postID when the viewer may see it.
func (s *PostService) CheckReadable(ctx context.Context, viewerID, postID uuid.UUID) (uuid.UUID, error) {
	var authorID uuid.UUID
	err := s.db.QueryRow(ctx, "SELECT user_id FROM posts WHERE id = $1", postID).Scan(&authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrPostNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("getting post author: %w", err)
	}

	access, err := s.access.CanAccessPosts(ctx, viewerID, authorID)
	if err != nil {
		return uuid.Nil, err
	}
	if !access.CanAccess {
		return uuid.Nil, ErrPostNotFound
	}
	return authorID, nil
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	result, err := s.db.Exec(ctx, "DELETE FROM posts WHERE id = $1 AND user_id = $2", postID, userID)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Feed returns posts by the viewer and the viewer's accepted friends, newest first.
func (s *PostService) Feed(ctx context.Context, viewerID uuid.UUID, limit, offset int) ([]models.PostWithDetails, error) {
	limit, offset = NormalizePage(limit, offset)

	rows, err := s.db.Query(ctx,
		`SELECT `+postDetailColumns+`
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = $1
		    OR p.user_id IN (
		      SELECT CASE WHEN f.user_low = $1 THEN f.user_high ELSE f.user_low END
		      FROM friendships f
		      WHERE f.status = 'accepted'
		        AND (f.user_low = $1 OR f.user_high = $1)
		    )
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT $2 OFFSET $3`,
		viewerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("querying feed: %w", err)
	}
	return collectPosts(rows)
}

// ListByUser returns targetID's posts as seen by viewerID. A denied viewer gets an empty,
// restricted listing rather than an error.
func (s *PostService) ListByUser(ctx context.Context, viewerID, targetID uuid.UUID, limit, offset int) (*models.ProfilePosts, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", targetID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	access, err := s.access.CanAccessPosts(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess {
		return &models.ProfilePosts{
			Posts:             []models.PostWithDetails{},
			RestrictedContent: true,
			PostAccess:        access,
		}, nil
	}

	limit, offset = NormalizePage(limit, offset)
	rows, err := s.db.Query(ctx,
		`SELECT `+postDetailColumns+`
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = $2
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT $3 OFFSET $4`,
		viewerID, targetID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing user posts: %w", err)
	}
	posts, err := collectPosts(rows)
	if err != nil {
		return nil, err
	}

	return &models.ProfilePosts{Posts: posts, PostAccess: access}, nil
}
