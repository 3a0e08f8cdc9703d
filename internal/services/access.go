package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/vibenet/internal/models"
)

type FriendChecker interface {
	IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
}

// AccessPolicy decides whether a viewer may see a user's posts.
// Posts are visible to their author and to the author's accepted friends.
type AccessPolicy struct {
	friends FriendChecker
}

func NewAccessPolicy(friends FriendChecker) *AccessPolicy {
	return &AccessPolicy{friends: friends}
}

// CanAccessPosts evaluates viewerID against targetID. uuid.Nil means an anonymous viewer.
func (p *AccessPolicy) CanAccessPosts(ctx context.Context, viewerID, targetID uuid.UUID) (models.PostAccess, error) {
	if viewerID == uuid.Nil {
		return models.PostAccess{Anonymous: true}, nil
	}
	if viewerID == targetID {
		return models.PostAccess{IsFriend: true, CanAccess: true}, nil
	}

	isFriend, err := p.friends.IsFriend(ctx, viewerID, targetID)
	if err != nil {
		return models.PostAccess{}, fmt.Errorf("evaluating post access: %w", err)
	}
	return models.PostAccess{IsFriend: isFriend, CanAccess: isFriend}, nil
}
