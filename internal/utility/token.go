package utility

import (
	"errors"
	"fmt"
	"time"

	"github.com/Aniket1026/yoto/config"
	"github.com/Aniket1026/yoto/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by access and refresh tokens. Subject is the user id.
type Claims struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the HS256 access/refresh token pair.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// NewTokenManager builds a manager from the server configuration.
func NewTokenManager(c *config.Configuration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(c.AccessTokenSecret),
		refreshSecret: []byte(c.RefreshTokenSecret),
		accessTTL:     c.AccessTokenTTL(),
		refreshTTL:    c.RefreshTokenTTL(),
		issuer:        c.TokenIssuer,
		now:           time.Now,
	}
}

// AccessTTL is used for the accessToken cookie max-age.
func (m *TokenManager) AccessTTL() time.Duration { return m.accessTTL }

// RefreshTTL is used for the refreshToken cookie max-age.
func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssueAccessToken signs a short lived token with identity claims.
func (m *TokenManager) IssueAccessToken(userID, email, username string) (string, error) {
	return m.sign(Claims{
		Email:            email,
		Username:         username,
		RegisteredClaims: m.registered(userID, m.accessTTL),
	}, m.accessSecret)
}

// IssueRefreshToken signs a long lived token carrying only the subject and a unique id.
func (m *TokenManager) IssueRefreshToken(userID string) (string, error) {
	return m.sign(Claims{RegisteredClaims: m.registered(userID, m.refreshTTL)}, m.refreshSecret)
}

func (m *TokenManager) registered(userID string, ttl time.Duration) jwt.RegisteredClaims {
	now := m.now()
	return jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    m.issuer,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (m *TokenManager) sign(claims Claims, secret []byte) (string, error) {
	if claims.Subject == "" {
		return "", common.ErrRequiredField.WithMessage("Token subject is required")
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", common.ErrInternal.WithDetails(fmt.Errorf("failed to sign token: %w", err))
	}
	return signed, nil
}

// VerifyAccessToken validates signature, issuer and expiry of an access token.
func (m *TokenManager) VerifyAccessToken(token string) (*Claims, error) {
	return m.verify(token, m.accessSecret)
}

// VerifyRefreshToken validates a refresh token.
func (m *TokenManager) VerifyRefreshToken(token string) (*Claims, error) {
	return m.verify(token, m.refreshSecret)
}

func (m *TokenManager) verify(tokenString string, secret []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrTokenMissing
	}

	parserOpts := []jwt.ParserOption{jwt.WithTimeFunc(m.now)}
	if m.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid.WithDetails(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}
