package tokens_test

import (
	stderrors "errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorPredicates(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		match func(error) bool
	}{
		{"missing field", tokens.MissingField("username"), tokens.IsMissingField},
		{"not unique", tokens.ErrNotUnique, tokens.IsNotUnique},
		{"not found", tokens.ErrNotFound, tokens.IsNotFound},
		{"bad credentials", tokens.ErrBadCredentials, tokens.IsBadCredentials},
		{"token expired", tokens.ErrTokenExpired, tokens.IsTokenExpiredError},
		{"token malformed", tokens.ErrTokenMalformed, tokens.IsMalformedError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.match(tc.err))
			assert.False(t, tc.match(stderrors.New("unrelated")))
			assert.False(t, tc.match(nil))
		})
	}
}

func TestPredicatesDoNotOverlap(t *testing.T) {
	assert.False(t, tokens.IsNotFound(tokens.ErrBadCredentials))
	assert.False(t, tokens.IsTokenExpiredError(tokens.ErrTokenMalformed))
	assert.False(t, tokens.IsMissingField(tokens.ErrNotUnique))
}

func TestMissingFieldNamesTheKey(t *testing.T) {
	err := tokens.MissingField("tokenId")
	assert.Contains(t, err.Error(), "tokenId")

	var rich *goerrors.Error
	require.True(t, goerrors.As(err, &rich))
	assert.Equal(t, goerrors.CategoryValidation, rich.Category)
	assert.Equal(t, "tokenId", rich.Metadata["key"])
}
