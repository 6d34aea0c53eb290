package service

import "errors"

// --- Error Definitions ---
// Handlers map these onto HTTP status codes with errors.Is; wrapped variants
// (fmt.Errorf("%w: ...")) carry the detail message.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("not allowed")
	ErrStorageDisabled = errors.New("object storage is not configured")

	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")

	ErrUserNotFound    = errors.New("user not found")
	ErrChannelNotFound = errors.New("channel not found")
	ErrVideoNotFound   = errors.New("video not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrChannelExists = errors.New("you already have a channel with that name")
)
