package pkg

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePairRoundTrip(t *testing.T) {
	InitJWT("test-secret", 30*time.Minute, 24*time.Hour)

	pair, err := GeneratePair(42, "alice@example.com", true)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)

	rClaims, err := ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), rClaims.UserID)
}

func TestParseAccessTamperedSignature(t *testing.T) {
	InitJWT("test-secret", 30*time.Minute, 24*time.Hour)

	pair, err := GeneratePair(1, "a@b.c", false)
	require.NoError(t, err)

	// 改掉签名段的最后一个字节
	token := pair.AccessToken
	last := token[len(token)-1]
	if last == 'A' {
		token = token[:len(token)-1] + "B"
	} else {
		token = token[:len(token)-1] + "A"
	}

	_, err = ParseAccess(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessExpired(t *testing.T) {
	InitJWT("test-secret", 30*time.Minute, 24*time.Hour)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Subject:   "access",
		},
	})
	tokenStr, err := expired.SignedString(Secret)
	require.NoError(t, err)

	_, err = ParseAccess(tokenStr)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseAccessMissingExp(t *testing.T) {
	InitJWT("test-secret", 30*time.Minute, 24*time.Hour)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Subject:  "access",
		},
	})
	tokenStr, err := noExp.SignedString(Secret)
	require.NoError(t, err)

	_, err = ParseAccess(tokenStr)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsWrongKind(t *testing.T) {
	InitJWT("test-secret", 30*time.Minute, 24*time.Hour)

	pair, err := GeneratePair(9, "x@y.z", false)
	require.NoError(t, err)

	// access 当 refresh 用、refresh 当 access 用都要失败
	_, err = ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	_, err = ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessMalformed(t *testing.T) {
	InitJWT("test-secret", 30*time.Minute, 24*time.Hour)

	for _, tokenStr := range []string{"", "abc", "a.b", "a.b.c.d"} {
		_, err := ParseAccess(tokenStr)
		assert.Error(t, err, "token %q should not parse", tokenStr)
	}
}
