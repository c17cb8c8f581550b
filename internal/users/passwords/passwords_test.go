package passwords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "cdp/pkg/domain-errors"
)

func TestHashAndVerify(t *testing.T) {
	h := Hasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, h.Verify("s3cret-pass", hash))
	err = h.Verify("wrong-pass", hash)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestHashRejectsBadLengths(t *testing.T) {
	h := Hasher{Cost: bcrypt.MinCost}

	_, err := h.Hash("short")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = h.Hash(strings.Repeat("x", 80))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestVerifyMalformedHash(t *testing.T) {
	err := Hasher{}.Verify("anything", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.False(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
