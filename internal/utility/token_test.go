package utility

import (
	"testing"
	"time"

	"github.com/Aniket1026/yoto/config"
	"github.com/Aniket1026/yoto/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager(&config.Configuration{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenExpiry:  "15m",
		RefreshTokenExpiry: "240h",
		TokenIssuer:        "yoto",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.IssueAccessToken("65a1b2c3d4e5f60718293a4b", "alice@example.com", "alice")
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "65a1b2c3d4e5f60718293a4b", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "yoto", claims.Issuer)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	m := newTestManager()

	first, err := m.IssueRefreshToken("user-1")
	require.NoError(t, err)
	second, err := m.IssueRefreshToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	claims, err := m.VerifyRefreshToken(second)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := newTestManager()

	refresh, err := m.IssueRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
	assert.Equal(t, common.StatusUnauthorized, common.StatusOf(err))
}

func TestExpiredToken(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := m.IssueAccessToken("user-1", "", "")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestRejectsOtherSigningMethods(t *testing.T) {
	m := newTestManager()
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "yoto"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(unsigned)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)

	_, err = m.VerifyAccessToken("")
	assert.ErrorIs(t, err, common.ErrTokenMissing)
}
