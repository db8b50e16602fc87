package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbridge/mealbridge-api/internal/model"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	codec, err := NewCodec("test-secret", 0)
	require.NoError(t, err)

	id := uuid.New()
	token, err := codec.Issue(id, model.RoleOrganization)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.AccountID)
	assert.Equal(t, model.RoleOrganization, claims.Role)
	assert.NotZero(t, claims.IssuedAtMillis)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	codec, err := NewCodec("test-secret", 0)
	require.NoError(t, err)

	token, err := codec.Issue(uuid.New(), model.RoleDonor)
	require.NoError(t, err)

	// Flip one character in the signature segment.
	i := strings.LastIndex(token, ".") + 1
	flipped := byte('A')
	if token[i] == 'A' {
		flipped = 'B'
	}
	tampered := token[:i] + string(flipped) + token[i+1:]
	require.NotEqual(t, token, tampered)

	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTamperedClaims(t *testing.T) {
	codec, err := NewCodec("test-secret", 0)
	require.NoError(t, err)

	token, err := codec.Issue(uuid.New(), model.RoleDonor)
	require.NoError(t, err)

	other, err := NewCodec("test-secret", 0)
	require.NoError(t, err)
	elevated, err := other.Issue(uuid.New(), model.RoleAdmin)
	require.NoError(t, err)

	// Splice the elevated payload onto the original signature.
	orig := strings.Split(token, ".")
	forged := strings.Split(elevated, ".")
	spliced := strings.Join([]string{forged[0], forged[1], orig[2]}, ".")

	if spliced != elevated {
		_, err = codec.Verify(spliced)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := NewCodec("secret-a", 0)
	require.NoError(t, err)
	verifier, err := NewCodec("secret-b", 0)
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.New(), model.RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	codec, err := NewCodec("test-secret", 0)
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(token)
		assert.Error(t, err, "token %q should not verify", token)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Millisecond)
	require.NoError(t, err)

	token, err := codec.Issue(uuid.New(), model.RoleDonor)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestZeroExpiryTokensDoNotExpire(t *testing.T) {
	codec, err := NewCodec("test-secret", 0)
	require.NoError(t, err)

	token, err := codec.Issue(uuid.New(), model.RoleDonor)
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestIssueRejectsUnknownRole(t *testing.T) {
	codec, err := NewCodec("test-secret", 0)
	require.NoError(t, err)

	_, err = codec.Issue(uuid.New(), model.Role("superuser"))
	assert.Error(t, err)
}

func TestNewCodecRequiresSecret(t *testing.T) {
	_, err := NewCodec("", 0)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
