// Package router mounts the subscription routes.
package router

import (
	apirouter "github.com/Aniket1026/yoto/internal/api/router"
	subscriptionhdl "github.com/Aniket1026/yoto/internal/api/subscription/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(v1 fiber.Router, r *apirouter.Router) error {
	services := r.Services()
	subscriptionHandler := subscriptionhdl.NewSubscriptionHandler(services.SubscriptionService)
	auth := []fiber.Handler{services.Auth}

	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", fiber.MethodPost, "/:channelId", auth, subscriptionHandler.HandleToggle)
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", fiber.MethodGet, "/:channelId/subscribers", auth, subscriptionHandler.HandleSubscribers)
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", fiber.MethodGet, "/:subscriberId/channels", auth, subscriptionHandler.HandleChannels)
	return nil
}
