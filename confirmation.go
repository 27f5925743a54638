package shop

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/goliatone/go-errors"
)

const confirmationCodeBytes = 32

// NewConfirmationCode returns fresh random code bytes. The store persists
// the encoded value; the raw bytes travel through the email link.
func NewConfirmationCode() ([]byte, error) {
	code := make([]byte, confirmationCodeBytes)
	if _, err := rand.Read(code); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to generate confirmation code")
	}
	return code, nil
}

// EncodeConfirmationCode renders code bytes as URL-safe text for the
// confirmation link query parameter.
func EncodeConfirmationCode(code []byte) string {
	return base64.RawURLEncoding.EncodeToString(code)
}

// DecodeConfirmationCode inverts EncodeConfirmationCode exactly. It is
// tolerant of padding so links survive clients that re-pad base64.
func DecodeConfirmationCode(encoded string) ([]byte, error) {
	trimmed := strings.TrimRight(encoded, "=")

	code, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "malformed confirmation code")
	}

	return code, nil
}
