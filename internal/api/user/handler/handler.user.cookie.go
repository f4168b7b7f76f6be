package userhdl

import (
	"context"
	"time"

	models "github.com/Aniket1026/yoto/internal/api/user/models"
	"github.com/Aniket1026/yoto/internal/api/middleware"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type imageUpdater func(ctx context.Context, userID primitive.ObjectID, localPath string) (*models.User, error)

func (h *UserHandler) setAuthCookies(c fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(h.cookie(middleware.AccessTokenCookie, accessToken, h.cookies.AccessTTL))
	c.Cookie(h.cookie(RefreshTokenCookie, refreshToken, h.cookies.RefreshTTL))
}

// clearAuthCookies expires both cookies with the attributes they were set with.
func (h *UserHandler) clearAuthCookies(c fiber.Ctx) {
	for _, name := range []string{middleware.AccessTokenCookie, RefreshTokenCookie} {
		cookie := h.cookie(name, "", 0)
		cookie.Expires = time.Unix(0, 0)
		cookie.MaxAge = -1
		c.Cookie(cookie)
	}
}

func (h *UserHandler) cookie(name, value string, ttl time.Duration) *fiber.Cookie {
	cookie := &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookies.Domain,
		HTTPOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
	}
	return cookie
}
