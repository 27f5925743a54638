package shop

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrDuplicateEmail is returned when registering an email that already exists
var ErrDuplicateEmail = errors.New("email address is already registered", errors.CategoryConflict).
	WithTextCode("DUPLICATE_EMAIL")

// ErrCredentialCreation signals the store rejected the new account; the
// verbatim rule violations travel alongside it.
var ErrCredentialCreation = errors.New("unable to create account", errors.CategoryValidation).
	WithTextCode("CREDENTIAL_CREATION")

// ErrInvalidCredentials merges unknown-email and wrong-password failures so
// the response never reveals whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS")

// ErrEmailNotConfirmed blocks login until the confirmation link is used
var ErrEmailNotConfirmed = errors.New("email address has not been confirmed", errors.CategoryAuth).
	WithTextCode("EMAIL_NOT_CONFIRMED")

// ErrInvalidLink is returned for malformed confirmation links
var ErrInvalidLink = errors.New("invalid confirmation link", errors.CategoryBadInput).
	WithTextCode("INVALID_LINK")

// ErrAccountNotFound is returned when a confirmation link names an unknown user
var ErrAccountNotFound = errors.New("account not found", errors.CategoryNotFound).
	WithTextCode("ACCOUNT_NOT_FOUND")

// ErrInvalidConfirmationCode is returned when a code does not match the one
// on record, including codes that were already redeemed
var ErrInvalidConfirmationCode = errors.New("invalid or already used confirmation code", errors.CategoryBadInput).
	WithTextCode("INVALID_CONFIRMATION_CODE")

// ErrMismatchedHashAndPassword is the store-level password verification failure
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH")

// ErrNoEmptyString guards hashing empty passwords
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput).
	WithTextCode("EMPTY_VALUE")

// ErrTokenExpired is surfaced for expired bearer tokens
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed is surfaced for tokens that fail parsing or signature checks
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED")

// ErrUnableToMapClaims unable to get claims from token
var ErrUnableToMapClaims = errors.New("unable to map claims", errors.CategoryAuth).
	WithTextCode("UNMAPPABLE_CLAIMS")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsUniqueViolation will check for unique constraint errors from the driver
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
