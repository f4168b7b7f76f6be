package videohdl

import (
	"strings"

	basehdl "github.com/Aniket1026/yoto/internal/api/base/handler"
	videodto "github.com/Aniket1026/yoto/internal/api/video/dto"
	videosvc "github.com/Aniket1026/yoto/internal/api/video/service"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/logger"
	"github.com/Aniket1026/yoto/internal/media"
	"github.com/Aniket1026/yoto/internal/utility"

	"github.com/gofiber/fiber/v3"
)

type VideoHandler struct {
	videoService *videosvc.VideoService
	temp         media.TempStore
}

func NewVideoHandler(videoService *videosvc.VideoService, temp media.TempStore) *VideoHandler {
	return &VideoHandler{videoService: videoService, temp: temp}
}

// HandlePublish takes title, description and the video and thumbnail files.
func (h *VideoHandler) HandlePublish(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	var input videodto.PublishVideoInput
	if err := basehdl.ParseForm(c, &input); err != nil {
		return err
	}

	if input.VideoPath, err = h.temp.Save(c, "video", true); err != nil {
		return err
	}
	defer func() { h.temp.Cleanup(input.VideoPath, input.ThumbnailPath) }()
	if input.ThumbnailPath, err = h.temp.Save(c, "thumbnail", true); err != nil {
		return err
	}

	video, err := h.videoService.Publish(c.Context(), userID, &input)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusCreated, video, "Video published successfully")
}

// HandleList supports page, limit, owner, q, sortBy and sortType=asc|desc.
func (h *VideoHandler) HandleList(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	page, limit := basehdl.ParsePagination(c)
	query := videodto.ListVideosQuery{
		Page:   page,
		Limit:  limit,
		Query:  c.Query("q"),
		SortBy: c.Query("sortBy"),
		Desc:   !strings.EqualFold(c.Query("sortType"), "asc"),
	}
	if raw := c.Query("owner"); raw != "" {
		owner, err := utility.ParseObjectID(raw)
		if err != nil {
			return err
		}
		query.Owner = &owner
	}
	if err := basehdl.ValidateInput(&query); err != nil {
		return err
	}

	result, err := h.videoService.List(c.Context(), userID, &query)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, result, "Videos fetched successfully")
}

func (h *VideoHandler) HandleGet(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	videoID, err := basehdl.ParseObjectIDParam(c, "videoId")
	if err != nil {
		return err
	}
	video, err := h.videoService.Get(c.Context(), userID, videoID)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, video, "Video fetched successfully")
}

// HandleUpdate accepts title, description and an optional thumbnail file.
func (h *VideoHandler) HandleUpdate(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	videoID, err := basehdl.ParseObjectIDParam(c, "videoId")
	if err != nil {
		return err
	}

	var input videodto.UpdateVideoInput
	if isMultipart(c) {
		if err := basehdl.ParseForm(c, &input); err != nil {
			return err
		}
		if input.ThumbnailPath, err = h.temp.Save(c, "thumbnail", false); err != nil {
			return err
		}
		defer h.temp.Cleanup(input.ThumbnailPath)
	} else if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return err
	}

	video, err := h.videoService.Update(c.Context(), userID, videoID, &input)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, video, "Video updated successfully")
}

func (h *VideoHandler) HandleTogglePublish(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	videoID, err := basehdl.ParseObjectIDParam(c, "videoId")
	if err != nil {
		return err
	}
	video, err := h.videoService.TogglePublish(c.Context(), userID, videoID)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, video, "Publish status toggled successfully")
}

func (h *VideoHandler) HandleDelete(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	videoID, err := basehdl.ParseObjectIDParam(c, "videoId")
	if err != nil {
		return err
	}
	if err := h.videoService.Delete(c.Context(), userID, videoID); err != nil {
		return err
	}
	logger.LogResource(c, "delete", "video", videoID.Hex(), nil)
	return basehdl.Respond(c, common.StatusOK, fiber.Map{}, "Video deleted successfully")
}

func isMultipart(c fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}
