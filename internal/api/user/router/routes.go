// Package router mounts the account, session and channel routes.
package router

import (
	userhdl "github.com/Aniket1026/yoto/internal/api/user/handler"
	apirouter "github.com/Aniket1026/yoto/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register mounts the user routes on v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	services := r.Services()
	userHandler := userhdl.NewUserHandler(services.UserService, services.Temp, userhdl.CookieOptions{
		Secure:     services.Config.CookieSecure,
		Domain:     services.Config.FrontendDomain,
		AccessTTL:  services.Tokens.AccessTTL(),
		RefreshTTL: services.Tokens.RefreshTTL(),
	})
	auth := []fiber.Handler{services.Auth}
	public := []fiber.Handler{}

	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodPost, "/auth", public, userHandler.HandleRegister)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodPost, "/login", public, userHandler.HandleLogin)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodGet, "/logout", auth, userHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodPost, "/logout", auth, userHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodGet, "/refresh-token", public, userHandler.HandleRefreshToken)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodPost, "/refresh-token", public, userHandler.HandleRefreshToken)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodPost, "/reset-password", auth, userHandler.HandleResetPassword)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodGet, "/current-user", auth, userHandler.HandleCurrentUser)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodPatch, "/account", auth, userHandler.HandleUpdateAccount)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodPatch, "/avatar", auth, userHandler.HandleUpdateAvatar)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodPatch, "/cover-image", auth, userHandler.HandleUpdateCoverImage)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodGet, "/channel/:username", auth, userHandler.HandleChannelProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodGet, "/watch-history", auth, userHandler.HandleWatchHistory)
	return nil
}
