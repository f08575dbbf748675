package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrUserExists         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrNotAuthenticated   = errors.New("you are not logged in")
	ErrStaleCredential    = errors.New("password was changed after this token was issued")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrResetTokenInvalid  = errors.New("reset token is invalid or has expired")
	ErrDeliveryFailed     = errors.New("could not send the reset email")
	ErrValidationFailed   = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
)
