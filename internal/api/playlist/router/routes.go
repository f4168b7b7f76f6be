// Package router mounts the playlist routes.
package router

import (
	playlisthdl "github.com/Aniket1026/yoto/internal/api/playlist/handler"
	apirouter "github.com/Aniket1026/yoto/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register must run after the other domains: /:channel/playlists matches any
// first path segment.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	services := r.Services()
	playlistHandler := playlisthdl.NewPlaylistHandler(services.PlaylistService)
	auth := []fiber.Handler{services.Auth}

	apirouter.RegisterRouteWithMiddleware(v1, "/playlist", fiber.MethodPost, "", auth, playlistHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlist", fiber.MethodGet, "/:playlistId", auth, playlistHandler.HandleGet)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlist", fiber.MethodPatch, "/:playlistId/:videoId", auth, playlistHandler.HandleAddVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlist", fiber.MethodDelete, "/:playlistId/:videoId", auth, playlistHandler.HandleRemoveVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlist", fiber.MethodPatch, "/:playlistId", auth, playlistHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlist", fiber.MethodDelete, "/:playlistId", auth, playlistHandler.HandleDelete)
	apirouter.RegisterRouteWithMiddleware(v1, "", fiber.MethodGet, "/:channel/playlists", auth, playlistHandler.HandleListByChannel)
	return nil
}
