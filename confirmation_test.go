package shop_test

import (
	"testing"

	"github.com/goliatone/go-shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationCode_RoundTrip(t *testing.T) {
	code, err := shop.NewConfirmationCode()
	require.NoError(t, err)
	require.Len(t, code, 32)

	encoded := shop.EncodeConfirmationCode(code)
	require.NotEmpty(t, encoded)
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, "/")

	decoded, err := shop.DecodeConfirmationCode(encoded)
	require.NoError(t, err)
	assert.Equal(t, code, decoded)
}

func TestConfirmationCode_PaddingTolerance(t *testing.T) {
	code, err := shop.NewConfirmationCode()
	require.NoError(t, err)

	encoded := shop.EncodeConfirmationCode(code)

	decoded, err := shop.DecodeConfirmationCode(encoded + "==")
	require.NoError(t, err)
	assert.Equal(t, code, decoded)
}

func TestConfirmationCode_Malformed(t *testing.T) {
	_, err := shop.DecodeConfirmationCode("not base64 at all!!")
	require.Error(t, err)
}

func TestConfirmationCode_Distinct(t *testing.T) {
	a, err := shop.NewConfirmationCode()
	require.NoError(t, err)

	b, err := shop.NewConfirmationCode()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
