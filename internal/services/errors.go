package services

import "errors"

// ErrorKind classifies service errors for transport mapping.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindInvalidOperation
	KindConflict
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

type kindError struct {
	kind ErrorKind
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func newError(kind ErrorKind, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// KindOf reports the kind of the first classified error in err's chain.
// Unclassified errors are internal.
func KindOf(err error) ErrorKind {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindInternal
}

var (
	ErrUserNotFound          = newError(KindNotFound, "user not found")
	ErrEmailAlreadyExists    = newError(KindConflict, "email is already registered")
	ErrUsernameAlreadyExists = newError(KindConflict, "username is already taken")
	ErrInvalidCredentials    = newError(KindUnauthorized, "invalid email or password")
	ErrInvalidToken          = newError(KindUnauthorized, "invalid or expired token")

	ErrCannotFriendSelf       = newError(KindInvalidOperation, "cannot send a friend request to yourself")
	ErrAlreadyFriends         = newError(KindConflict, "you are already friends with this user")
	ErrRequestAlreadySent     = newError(KindConflict, "friend request already sent")
	ErrRequestAlreadyReceived = newError(KindConflict, "this user has already sent you a friend request")
	ErrFriendshipBlocked      = newError(KindConflict, "cannot send a friend request to this user")
	ErrFriendshipExists       = newError(KindConflict, "a relationship with this user already exists")
	ErrFriendRequestNotFound  = newError(KindNotFound, "friend request not found")
	ErrFriendshipNotFound     = newError(KindNotFound, "friendship not found")

	ErrPostNotFound           = newError(KindNotFound, "post not found")
	ErrPostContentRequired    = newError(KindInvalidOperation, "post content is required")
	ErrPostContentTooLong     = newError(KindInvalidOperation, "post content is too long")
	ErrCommentNotFound        = newError(KindNotFound, "comment not found")
	ErrCommentContentRequired = newError(KindInvalidOperation, "comment content is required")
	ErrCommentContentTooLong  = newError(KindInvalidOperation, "comment content is too long")
	ErrLikeNotFound           = newError(KindNotFound, "post is not liked")

	ErrCannotFollowSelf = newError(KindInvalidOperation, "cannot follow yourself")
	ErrAlreadyFollowing = newError(KindConflict, "already following this user")
	ErrNotFollowing     = newError(KindNotFound, "not following this user")
)
