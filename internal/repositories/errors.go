package repositories

import "errors"

// Sentinel errors shared by the store implementations. Handlers map these to
// HTTP statuses instead of matching on message text.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrPostNotFound = errors.New("post not found")
)
