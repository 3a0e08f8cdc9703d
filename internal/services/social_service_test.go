package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeReadChecker struct {
	authorID uuid.UUID
	err      error
	calls    int
}

func (f *fakeReadChecker) CheckReadable(ctx context.Context, viewerID, postID uuid.UUID) (uuid.UUID, error) {
	f.calls++
	return f.authorID, f.err
}

func TestCommentService_Create_Validation(t *testing.T) {
	posts := &fakeReadChecker{}
	svc := NewCommentService(&fakeDB{}, posts)

	if _, err := svc.Create(context.Background(), uuid.New(), uuid.New(), " "); !errors.Is(err, ErrCommentContentRequired) {
		t.Fatalf("expected ErrCommentContentRequired, got %v", err)
	}
	if _, err := svc.Create(context.Background(), uuid.New(), uuid.New(), strings.Repeat("x", MaxCommentLength+1)); !errors.Is(err, ErrCommentContentTooLong) {
		t.Fatalf("expected ErrCommentContentTooLong, got %v", err)
	}
	if posts.calls != 0 {
		t.Fatal("post access should not be checked for invalid content")
	}
}

func TestCommentService_Create_Unreadable(t *testing.T) {
	svc := NewCommentService(&fakeDB{}, &fakeReadChecker{err: ErrPostNotFound})
	if _, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "nice"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestCommentService_Create_Success(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()
	commentID := uuid.New()
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(commentID, postID, userID, "nice", time.Now(), userID, "alice", "Alice", nil)
		},
	}

	svc := NewCommentService(db, &fakeReadChecker{})
	comment, err := svc.Create(context.Background(), userID, postID, " nice ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.ID != commentID || comment.Author.Username != "alice" {
		t.Fatalf("unexpected comment: %+v", comment)
	}
}

func TestCommentService_Create_PostDeletedConcurrently(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowWithError(&pgconn.PgError{Code: "23503"})
		},
	}

	svc := NewCommentService(db, &fakeReadChecker{})
	if _, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "hi"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestCommentService_List(t *testing.T) {
	postID := uuid.New()
	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (Rows, error) {
			return &fakeRows{rows: [][]any{
				{uuid.New(), postID, uuid.New(), "first", time.Now(), uuid.New(), "a", "A", nil},
				{uuid.New(), postID, uuid.New(), "second", time.Now(), uuid.New(), "b", "B", nil},
			}}, nil
		},
	}

	svc := NewCommentService(db, &fakeReadChecker{})
	comments, err := svc.List(context.Background(), uuid.New(), postID, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 2 || comments[0].Content != "first" {
		t.Fatalf("unexpected comments: %+v", comments)
	}
}

func TestCommentService_Delete(t *testing.T) {
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			if !strings.Contains(sql, "p.user_id = $2") {
				t.Fatalf("post author must be allowed to delete: %s", sql)
			}
			return fakeCommandTag{rowsAffected: 0}, nil
		},
	}

	svc := NewCommentService(db, &fakeReadChecker{})
	if err := svc.Delete(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestLikeService_Like(t *testing.T) {
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			if !strings.Contains(sql, "ON CONFLICT") {
				t.Fatalf("like must be idempotent: %s", sql)
			}
			return fakeCommandTag{rowsAffected: 0}, nil
		},
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(7)
		},
	}

	svc := NewLikeService(db, &fakeReadChecker{})
	count, err := svc.Like(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 7 {
		t.Fatalf("expected 7 likes, got %d", count)
	}
}

func TestLikeService_Like_Unreadable(t *testing.T) {
	svc := NewLikeService(&fakeDB{}, &fakeReadChecker{err: ErrPostNotFound})
	if _, err := svc.Like(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestLikeService_Unlike_NotLiked(t *testing.T) {
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			return fakeCommandTag{rowsAffected: 0}, nil
		},
	}

	svc := NewLikeService(db, &fakeReadChecker{})
	if _, err := svc.Unlike(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrLikeNotFound) {
		t.Fatalf("expected ErrLikeNotFound, got %v", err)
	}
}

func TestFollowService_Follow(t *testing.T) {
	userID := uuid.New()
	if err := NewFollowService(&fakeDB{}).Follow(context.Background(), userID, userID); !errors.Is(err, ErrCannotFollowSelf) {
		t.Fatalf("expected ErrCannotFollowSelf, got %v", err)
	}

	missing := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row { return rowFromValues(false) },
	}
	if err := NewFollowService(missing).Follow(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	duplicate := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row { return rowFromValues(true) },
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			return nil, &pgconn.PgError{Code: "23505"}
		},
	}
	if err := NewFollowService(duplicate).Follow(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrAlreadyFollowing) {
		t.Fatalf("expected ErrAlreadyFollowing, got %v", err)
	}
}

func TestFollowService_UnfollowAndCounts(t *testing.T) {
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			return fakeCommandTag{rowsAffected: 0}, nil
		},
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(4, 2)
		},
	}

	svc := NewFollowService(db)
	if err := svc.Unfollow(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrNotFollowing) {
		t.Fatalf("expected ErrNotFollowing, got %v", err)
	}

	counts, err := svc.Counts(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Followers != 4 || counts.Following != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
