package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/HammerMeetNail/vibenet/internal/models"
)

const friendshipColumns = `id, user_low, user_high, status, requested_by, requested_at, accepted_at`

// FriendService owns every read and write of the friendships table.
// A pair of users shares at most one row, keyed by (user_low, user_high).
type FriendService struct {
	db DB
}

func NewFriendService(db DB) *FriendService {
	return &FriendService{db: db}
}

func scanFriendship(row Row) (*models.Friendship, error) {
	f := &models.Friendship{}
	err := row.Scan(&f.ID, &f.UserLow, &f.UserHigh, &f.Status, &f.RequestedBy, &f.RequestedAt, &f.AcceptedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// findBetween returns the row for the pair, or nil if the users are unrelated.
func (s *FriendService) findBetween(ctx context.Context, a, b uuid.UUID) (*models.Friendship, error) {
	low, high := models.OrderedPair(a, b)
	f, err := scanFriendship(s.db.QueryRow(ctx,
		"SELECT "+friendshipColumns+" FROM friendships WHERE user_low = $1 AND user_high = $2",
		low, high,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FriendService) SendRequest(ctx context.Context, requesterID, targetID uuid.UUID) (*models.Friendship, error) {
	if requesterID == targetID {
		return nil, ErrCannotFriendSelf
	}

	var targetExists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", targetID).Scan(&targetExists)
	if err != nil {
		return nil, fmt.Errorf("checking target user: %w", err)
	}
	if !targetExists {
		return nil, ErrUserNotFound
	}

	existing, err := s.findBetween(ctx, requesterID, targetID)
	if err != nil {
		return nil, fmt.Errorf("checking existing friendship: %w", err)
	}
	if existing != nil {
		switch {
		case existing.Status == models.FriendshipStatusAccepted:
			return nil, ErrAlreadyFriends
		case existing.Status == models.FriendshipStatusBlocked:
			return nil, ErrFriendshipBlocked
		case existing.RequestedBy == requesterID:
			return nil, ErrRequestAlreadySent
		default:
			return nil, ErrRequestAlreadyReceived
		}
	}

	low, high := models.OrderedPair(requesterID, targetID)
	friendship, err := scanFriendship(s.db.QueryRow(ctx,
		`INSERT INTO friendships (user_low, user_high, status, requested_by)
		 VALUES ($1, $2, 'pending', $3)
		 RETURNING `+friendshipColumns,
		low, high, requesterID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrFriendshipExists
		}
		return nil, fmt.Errorf("creating friend request: %w", err)
	}

	return friendship, nil
}

// AcceptRequest promotes a pending request to accepted. Only the recipient may accept.
func (s *FriendService) AcceptRequest(ctx context.Context, accepterID, requestID uuid.UUID) (*models.Friendship, error) {
	var friendship *models.Friendship
	err := withTx(ctx, s.db, func(tx Tx) error {
		f, err := scanFriendship(tx.QueryRow(ctx,
			`UPDATE friendships
			 SET status = 'accepted', accepted_at = NOW()
			 WHERE id = $1
			   AND status = 'pending'
			   AND requested_by <> $2
			   AND $2 IN (user_low, user_high)
			 RETURNING `+friendshipColumns,
			requestID, accepterID,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrFriendRequestNotFound
		}
		if err != nil {
			return fmt.Errorf("accepting friend request: %w", err)
		}
		friendship = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return friendship, nil
}

// DeclineRequest deletes a pending request addressed to declinerID.
func (s *FriendService) DeclineRequest(ctx context.Context, declinerID, requestID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM friendships
		 WHERE id = $1
		   AND status = 'pending'
		   AND requested_by <> $2
		   AND $2 IN (user_low, user_high)`,
		requestID, declinerID,
	)
	if err != nil {
		return fmt.Errorf("declining friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrFriendRequestNotFound
	}
	return nil
}

// CancelRequest deletes a pending request sent by requesterID.
func (s *FriendService) CancelRequest(ctx context.Context, requesterID, requestID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM friendships
		 WHERE id = $1
		   AND status = 'pending'
		   AND requested_by = $2`,
		requestID, requesterID,
	)
	if err != nil {
		return fmt.Errorf("canceling friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrFriendRequestNotFound
	}
	return nil
}

func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	if userID == friendID {
		return ErrFriendshipNotFound
	}

	low, high := models.OrderedPair(userID, friendID)
	return withTx(ctx, s.db, func(tx Tx) error {
		result, err := tx.Exec(ctx,
			`DELETE FROM friendships
			 WHERE user_low = $1 AND user_high = $2 AND status = 'accepted'`,
			low, high,
		)
		if err != nil {
			return fmt.Errorf("removing friend: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrFriendshipNotFound
		}
		return nil
	})
}

func scanFriendRequests(rows Rows) ([]models.FriendRequest, error) {
	defer rows.Close()

	requests := []models.FriendRequest{}
	for rows.Next() {
		var r models.FriendRequest
		if err := rows.Scan(
			&r.ID, &r.RequesterID, &r.RecipientID, &r.RequestedAt,
			&r.User.ID, &r.User.Username, &r.User.DisplayName, &r.User.ProfileImageURL,
		); err != nil {
			return nil, fmt.Errorf("scanning friend request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friend requests: %w", err)
	}
	return requests, nil
}

// ListRequests returns the pending requests addressed to and sent by userID.
func (s *FriendService) ListRequests(ctx context.Context, userID uuid.UUID) (*models.FriendRequestLists, error) {
	lists := &models.FriendRequestLists{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.db.Query(gctx,
			`SELECT f.id, f.requested_by, $1::uuid, f.requested_at,
			        u.id, u.username, u.display_name, u.profile_image_url
			 FROM friendships f
			 JOIN users u ON u.id = f.requested_by
			 WHERE f.status = 'pending'
			   AND f.requested_by <> $1
			   AND $1 IN (f.user_low, f.user_high)
			 ORDER BY f.requested_at DESC`,
			userID,
		)
		if err != nil {
			return fmt.Errorf("listing incoming requests: %w", err)
		}
		lists.Incoming, err = scanFriendRequests(rows)
		return err
	})

	g.Go(func() error {
		rows, err := s.db.Query(gctx,
			`SELECT f.id, f.requested_by, u.id, f.requested_at,
			        u.id, u.username, u.display_name, u.profile_image_url
			 FROM friendships f
			 JOIN users u ON u.id = CASE WHEN f.user_low = $1 THEN f.user_high ELSE f.user_low END
			 WHERE f.status = 'pending'
			   AND f.requested_by = $1
			 ORDER BY f.requested_at DESC`,
			userID,
		)
		if err != nil {
			return fmt.Errorf("listing outgoing requests: %w", err)
		}
		lists.Outgoing, err = scanFriendRequests(rows)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}

// ListFriends returns the counterpart of every accepted row containing userID, most recent first.
func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
	rows, err := s.db.Query(ctx,
		`SELECT f.id, f.accepted_at, u.id, u.username, u.display_name, u.profile_image_url
		 FROM friendships f
		 JOIN users u ON u.id = CASE WHEN f.user_low = $1 THEN f.user_high ELSE f.user_low END
		 WHERE f.status = 'accepted'
		   AND (f.user_low = $1 OR f.user_high = $1)
		 ORDER BY f.accepted_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	defer rows.Close()

	friends := []models.Friend{}
	seen := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.FriendshipID, &f.AcceptedAt,
			&f.User.ID, &f.User.Username, &f.User.DisplayName, &f.User.ProfileImageURL); err != nil {
			return nil, fmt.Errorf("scanning friend: %w", err)
		}
		if _, dup := seen[f.User.ID]; dup {
			continue
		}
		seen[f.User.ID] = struct{}{}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friends: %w", err)
	}

	return friends, nil
}

// GetStatus describes the relationship between viewerID and targetID from the viewer's side.
func (s *FriendService) GetStatus(ctx context.Context, viewerID, targetID uuid.UUID) (*models.FriendshipStatusResult, error) {
	if viewerID == targetID {
		return &models.FriendshipStatusResult{Status: models.RelationshipSelf}, nil
	}

	f, err := s.findBetween(ctx, viewerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("getting friendship status: %w", err)
	}
	if f == nil {
		return &models.FriendshipStatusResult{Status: models.RelationshipNone}, nil
	}

	id := f.ID
	switch f.Status {
	case models.FriendshipStatusAccepted:
		return &models.FriendshipStatusResult{Status: models.RelationshipFriends}, nil
	case models.FriendshipStatusPending:
		if f.RequestedBy == viewerID {
			return &models.FriendshipStatusResult{Status: models.RelationshipRequestSent, RequestID: &id}, nil
		}
		return &models.FriendshipStatusResult{Status: models.RelationshipRequestReceived, RequestID: &id}, nil
	case models.FriendshipStatusBlocked:
		return &models.FriendshipStatusResult{Status: models.RelationshipBlocked, RequestID: &id}, nil
	default:
		return nil, fmt.Errorf("unknown friendship status %q", f.Status)
	}
}

func (s *FriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	if userID == otherUserID {
		return false, nil
	}

	low, high := models.OrderedPair(userID, otherUserID)
	var isFriend bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friendships
			WHERE user_low = $1 AND user_high = $2 AND status = 'accepted'
		)`,
		low, high,
	).Scan(&isFriend)
	if err != nil {
		return false, fmt.Errorf("checking friendship: %w", err)
	}
	return isFriend, nil
}
