package repositories

import (
	"errors"
	"fmt"
)

// Domain-rule violations are detected before any write and surfaced as these
// sentinel values; handlers map them to HTTP status codes in one place.
var (
	ErrUserNotFound        = errors.New("user does not exist")
	ErrRoomNotFound        = errors.New("chat room does not exist")
	ErrNotMember           = errors.New("user is not a member of this room")
	ErrEmptyContent        = errors.New("message content must not be empty")
	ErrInvalidMembership   = errors.New("one-to-one room requires exactly one other member")
	ErrRoomNameRequired    = errors.New("group room requires a name")
	ErrSelfFriend          = errors.New("cannot send a friend request to yourself")
	ErrDuplicateRequest    = errors.New("friend request already exists")
	ErrRequestNotFound     = errors.New("friend request does not exist")
	ErrNotRequestRecipient = errors.New("user is not the recipient of this friend request")
	ErrAlreadyAccepted     = errors.New("friend request already accepted")
	ErrMediaNotFound       = errors.New("media does not exist")
	ErrNotOwner            = errors.New("user does not own this resource")
	ErrAlreadyLiked        = errors.New("media already liked by this user")

	// ErrStoreUnavailable wraps transient persistence failures. Retryable; no
	// partial state is committed when it is returned.
	ErrStoreUnavailable = errors.New("persistent store unavailable")
)

// storeError wraps an unexpected database error into ErrStoreUnavailable so
// callers see one retryable failure mode instead of driver internals.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
