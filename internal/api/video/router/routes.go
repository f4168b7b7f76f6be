// Package router mounts the video routes.
package router

import (
	apirouter "github.com/Aniket1026/yoto/internal/api/router"
	videohdl "github.com/Aniket1026/yoto/internal/api/video/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(v1 fiber.Router, r *apirouter.Router) error {
	services := r.Services()
	videoHandler := videohdl.NewVideoHandler(services.VideoService, services.Temp)
	auth := []fiber.Handler{services.Auth}

	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodGet, "/videos", auth, videoHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(v1, "/video", fiber.MethodPost, "", auth, videoHandler.HandlePublish)
	apirouter.RegisterRouteWithMiddleware(v1, "/video", fiber.MethodGet, "/:videoId", auth, videoHandler.HandleGet)
	apirouter.RegisterRouteWithMiddleware(v1, "/video", fiber.MethodPatch, "/:videoId", auth, videoHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/video", fiber.MethodPatch, "/:videoId/toggle-publish", auth, videoHandler.HandleTogglePublish)
	apirouter.RegisterRouteWithMiddleware(v1, "/video", fiber.MethodDelete, "/:videoId", auth, videoHandler.HandleDelete)
	return nil
}
