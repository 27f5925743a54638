package shop

import (
	"fmt"
	"unicode"
)

// PasswordPolicy holds the complexity rules the credential store enforces
// before hashing a new password. The workflow layer never applies these
// rules itself; it only relays the violation list to the caller.
type PasswordPolicy struct {
	MinLength    int
	RequireUpper bool
	RequireLower bool
	RequireDigit bool
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:    8,
		RequireUpper: true,
		RequireLower: true,
		RequireDigit: true,
	}
}

// Validate returns the list of rules the password breaks, empty when the
// password is acceptable. Messages are returned to callers verbatim.
func (p PasswordPolicy) Validate(password string) []string {
	var violations []string

	if len(password) < p.MinLength {
		violations = append(violations,
			fmt.Sprintf("password must be at least %d characters long", p.MinLength))
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if p.RequireUpper && !hasUpper {
		violations = append(violations, "password must contain an uppercase letter")
	}
	if p.RequireLower && !hasLower {
		violations = append(violations, "password must contain a lowercase letter")
	}
	if p.RequireDigit && !hasDigit {
		violations = append(violations, "password must contain a digit")
	}

	return violations
}
