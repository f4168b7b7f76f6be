package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	basehdl "github.com/Aniket1026/yoto/internal/api/base/handler"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubVerifier map[string]string

func (s stubVerifier) VerifyAccessToken(token string) (*utility.Claims, error) {
	sub, ok := s[token]
	if !ok {
		return nil, common.ErrTokenInvalid
	}
	return &utility.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: sub}}, nil
}

func newApp(loader UserLoader) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c fiber.Ctx, err error) error { return basehdl.HandleError(c, err) },
	})
	verifier := stubVerifier{
		"good":    "65a1b2c3d4e5f60718293a4b",
		"deleted": "65a1b2c3d4e5f60718293a4c",
	}
	app.Get("/me", NewAuthMiddleware(verifier, loader), func(c fiber.Ctx) error {
		return c.SendString(c.Locals(LocalUserID).(string))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	deleted, err := primitive.ObjectIDFromHex("65a1b2c3d4e5f60718293a4c")
	require.NoError(t, err)
	app := newApp(func(_ context.Context, id primitive.ObjectID) (interface{}, error) {
		if id == deleted {
			return nil, common.ErrNotFound
		}
		return id, nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", "accessToken=good")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer forged")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer deleted")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
