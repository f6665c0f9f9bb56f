package hash_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warbler/errs"
	"warbler/hash"
)

func TestHash(t *testing.T) {
	digest, err := hash.Hash("topsecretpassword")
	require.NoError(t, err)

	assert.NotEqual(t, "topsecretpassword", digest)
	assert.True(t, strings.HasPrefix(digest, "$2"), "bcrypt digests carry the $2 marker")
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := hash.Hash("")
	assert.ErrorIs(t, err, errs.PasswordRequired)
}

func TestHashIsSalted(t *testing.T) {
	first, err := hash.Hash("same-input")
	require.NoError(t, err)
	second, err := hash.Hash("same-input")
	require.NoError(t, err)

	// Same plaintext, different salt, different digest.
	assert.NotEqual(t, first, second)
	assert.True(t, hash.Verify("same-input", first))
	assert.True(t, hash.Verify("same-input", second))
}

func TestVerify(t *testing.T) {
	digest, err := hash.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, hash.Verify("correct horse battery staple", digest))
	assert.False(t, hash.Verify("wrong password", digest))
	assert.False(t, hash.Verify("", digest))
	assert.False(t, hash.Verify("anything", "not-a-bcrypt-digest"))
}
