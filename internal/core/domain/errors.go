package domain

import "errors"

// The error messages below are part of the product contract: API clients and
// the acceptance suite match on them verbatim, so they keep their original
// capitalisation.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUsernameTaken      = errors.New("Username is already taken")
	ErrUserNotFound       = errors.New("Error: User not found.")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUserDisabled       = errors.New("The user is not enabled")
	ErrForbidden          = errors.New("Forbidden request")
	ErrShopNotFound       = errors.New("Error: Shop not found.")
)
