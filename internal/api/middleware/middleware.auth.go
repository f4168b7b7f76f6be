package middleware

import (
	"context"
	"strings"

	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Locals keys set by the auth middleware.
const (
	LocalUserID = "user_id"
	LocalUser   = "user"
)

// AccessTokenCookie is the cookie the login handler sets.
const AccessTokenCookie = "accessToken"

// TokenVerifier validates access tokens.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*utility.Claims, error)
}

// UserLoader loads the authenticated user so handlers get a fresh profile.
// It must return common.ErrNotFound for deleted accounts.
type UserLoader func(ctx context.Context, id primitive.ObjectID) (interface{}, error)

// NewAuthMiddleware requires a valid access token from the accessToken cookie
// or an "Authorization: Bearer" header. On success Locals user_id (hex) and
// user are set.
func NewAuthMiddleware(tokens TokenVerifier, loadUser UserLoader) fiber.Handler {
	return func(c fiber.Ctx) error {
		raw := ExtractAccessToken(c)
		if raw == "" {
			return common.ErrTokenMissing
		}

		claims, err := tokens.VerifyAccessToken(raw)
		if err != nil {
			return err
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			return common.ErrTokenInvalid
		}

		if loadUser != nil {
			user, err := loadUser(c.Context(), userID)
			if err != nil {
				if common.StatusOf(err) == common.StatusNotFound {
					return common.ErrTokenInvalid.WithMessage("Invalid access token")
				}
				return err
			}
			c.Locals(LocalUser, user)
		}

		c.Locals(LocalUserID, userID.Hex())
		return c.Next()
	}
}

// ExtractAccessToken prefers the cookie, then the bearer header.
func ExtractAccessToken(c fiber.Ctx) string {
	if token := c.Cookies(AccessTokenCookie); token != "" {
		return token
	}
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
