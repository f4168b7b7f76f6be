package playlisthdl

import (
	basehdl "github.com/Aniket1026/yoto/internal/api/base/handler"
	playlistdto "github.com/Aniket1026/yoto/internal/api/playlist/dto"
	playlistsvc "github.com/Aniket1026/yoto/internal/api/playlist/service"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlaylistHandler struct {
	playlistService *playlistsvc.PlaylistService
}

func NewPlaylistHandler(playlistService *playlistsvc.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

func (h *PlaylistHandler) HandleCreate(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	var input playlistdto.CreatePlaylistInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return err
	}
	playlist, err := h.playlistService.Create(c.Context(), userID, &input)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusCreated, playlist, "Playlist created successfully")
}

func (h *PlaylistHandler) HandleGet(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	playlistID, err := basehdl.ParseObjectIDParam(c, "playlistId")
	if err != nil {
		return err
	}
	playlist, err := h.playlistService.Get(c.Context(), userID, playlistID)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, playlist, "Playlist fetched successfully")
}

func (h *PlaylistHandler) HandleListByChannel(c fiber.Ctx) error {
	playlists, err := h.playlistService.ListByChannel(c.Context(), c.Params("channel"))
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, playlists, "Playlists fetched successfully")
}

func (h *PlaylistHandler) HandleAddVideo(c fiber.Ctx) error {
	userID, playlistID, videoID, err := membershipParams(c)
	if err != nil {
		return err
	}
	playlist, err := h.playlistService.AddVideo(c.Context(), userID, playlistID, videoID)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, playlist, "Video added to playlist successfully")
}

func (h *PlaylistHandler) HandleRemoveVideo(c fiber.Ctx) error {
	userID, playlistID, videoID, err := membershipParams(c)
	if err != nil {
		return err
	}
	playlist, err := h.playlistService.RemoveVideo(c.Context(), userID, playlistID, videoID)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, playlist, "Video removed from playlist successfully")
}

func (h *PlaylistHandler) HandleUpdate(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	playlistID, err := basehdl.ParseObjectIDParam(c, "playlistId")
	if err != nil {
		return err
	}
	var input playlistdto.UpdatePlaylistInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return err
	}
	playlist, err := h.playlistService.Update(c.Context(), userID, playlistID, &input)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, playlist, "Playlist updated successfully")
}

func (h *PlaylistHandler) HandleDelete(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	playlistID, err := basehdl.ParseObjectIDParam(c, "playlistId")
	if err != nil {
		return err
	}
	if err := h.playlistService.Delete(c.Context(), userID, playlistID); err != nil {
		return err
	}
	logger.LogResource(c, "delete", "playlist", playlistID.Hex(), nil)
	return basehdl.Respond(c, common.StatusOK, fiber.Map{}, "Playlist deleted successfully")
}

func membershipParams(c fiber.Ctx) (userID, playlistID, videoID primitive.ObjectID, err error) {
	if userID, err = basehdl.CurrentUserID(c); err != nil {
		return
	}
	if playlistID, err = basehdl.ParseObjectIDParam(c, "playlistId"); err != nil {
		return
	}
	videoID, err = basehdl.ParseObjectIDParam(c, "videoId")
	return
}
