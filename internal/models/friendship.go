package models

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	// FriendshipStatusBlocked is reserved. Nothing in the API creates it.
	FriendshipStatusBlocked FriendshipStatus = "blocked"
)

// RelationshipStatus is how a relationship looks from the viewer's side.
type RelationshipStatus string

const (
	RelationshipSelf            RelationshipStatus = "self"
	RelationshipNone            RelationshipStatus = "none"
	RelationshipFriends         RelationshipStatus = "friends"
	RelationshipRequestSent     RelationshipStatus = "request_sent"
	RelationshipRequestReceived RelationshipStatus = "request_received"
	RelationshipBlocked         RelationshipStatus = "blocked"
)

// Friendship is the single row stored for an unordered pair of users.
// UserLow and UserHigh hold the pair in canonical uuid order.
type Friendship struct {
	ID          uuid.UUID        `json:"id"`
	UserLow     uuid.UUID        `json:"-"`
	UserHigh    uuid.UUID        `json:"-"`
	Status      FriendshipStatus `json:"status"`
	RequestedBy uuid.UUID        `json:"requestedBy"`
	RequestedAt time.Time        `json:"requestedAt"`
	AcceptedAt  *time.Time       `json:"acceptedAt,omitempty"`
}

// Recipient returns the member of the pair that did not send the request.
func (f *Friendship) Recipient() uuid.UUID {
	if f.RequestedBy == f.UserLow {
		return f.UserHigh
	}
	return f.UserLow
}

// Other returns the member of the pair that is not userID.
func (f *Friendship) Other(userID uuid.UUID) uuid.UUID {
	if f.UserLow == userID {
		return f.UserHigh
	}
	return f.UserLow
}

// Involves reports whether userID is one of the pair.
func (f *Friendship) Involves(userID uuid.UUID) bool {
	return f.UserLow == userID || f.UserHigh == userID
}

// OrderedPair returns a and b in the order the friendships table stores them.
func OrderedPair(a, b uuid.UUID) (low, high uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}

// FriendRequest is a pending friendship joined with the counterpart's profile.
type FriendRequest struct {
	ID          uuid.UUID  `json:"id"`
	RequesterID uuid.UUID  `json:"requesterId"`
	RecipientID uuid.UUID  `json:"recipientId"`
	RequestedAt time.Time  `json:"requestedAt"`
	User        PublicUser `json:"user"`
}

// Friend is an accepted friendship joined with the counterpart's profile.
type Friend struct {
	FriendshipID uuid.UUID  `json:"friendshipId"`
	AcceptedAt   time.Time  `json:"acceptedAt"`
	User         PublicUser `json:"user"`
}

type FriendRequestLists struct {
	Incoming []FriendRequest `json:"incoming"`
	Outgoing []FriendRequest `json:"outgoing"`
}

// FriendshipStatusResult carries the row id for pending and blocked states so callers can act on it.
type FriendshipStatusResult struct {
	Status    RelationshipStatus `json:"status"`
	RequestID *uuid.UUID         `json:"requestId,omitempty"`
}

// PostAccess is the outcome of evaluating whether a viewer may see a user's posts.
type PostAccess struct {
	IsFriend  bool `json:"isFriend"`
	CanAccess bool `json:"canAccess"`
	// Anonymous is set when there is no authenticated viewer, so clients can prompt
	// for login rather than a friend request.
	Anonymous bool `json:"anonymous"`
}
