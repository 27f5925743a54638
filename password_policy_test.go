package shop_test

import (
	"testing"

	"github.com/goliatone/go-shop"
	"github.com/stretchr/testify/assert"
)

func TestPasswordPolicy_Validate(t *testing.T) {
	policy := shop.DefaultPasswordPolicy()

	tests := []struct {
		name       string
		password   string
		violations int
	}{
		{"acceptable", "Sup3rSecret", 0},
		{"too short", "Ab1", 1},
		{"missing uppercase", "lowercase1", 1},
		{"missing lowercase", "UPPERCASE1", 1},
		{"missing digit", "NoDigitsHere", 1},
		{"empty breaks everything", "", 4},
		{"short and single case", "abc", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := policy.Validate(tt.password)
			assert.Len(t, violations, tt.violations)
		})
	}
}

func TestPasswordPolicy_CustomRules(t *testing.T) {
	policy := shop.PasswordPolicy{MinLength: 4}

	assert.Empty(t, policy.Validate("abcd"))
	assert.Len(t, policy.Validate("ab"), 1)
}
