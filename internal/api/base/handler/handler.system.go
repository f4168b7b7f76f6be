package basehdl

import (
	"context"
	"time"

	"github.com/Aniket1026/yoto/internal/common"

	"github.com/gofiber/fiber/v3"
)

// Pinger checks a backing dependency.
type Pinger func(ctx context.Context) error

// SystemHandler serves operational endpoints.
type SystemHandler struct {
	pingDatabase Pinger
}

func NewSystemHandler(pingDatabase Pinger) *SystemHandler {
	return &SystemHandler{pingDatabase: pingDatabase}
}

// HandleHealth reports API and database status, 503 when the database is unreachable.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	if h.pingDatabase == nil {
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
		return Respond(c, common.StatusOK, healthData, common.MsgSuccess)
	}

	if err := h.pingDatabase(ctx); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		return JSONResponse(c, common.StatusServiceUnavailable, ApiResponse{
			StatusCode: common.StatusServiceUnavailable,
			Success:    false,
			Data:       healthData,
			Message:    "Service is degraded",
		})
	}
	services["database"] = "ok"
	return Respond(c, common.StatusOK, healthData, common.MsgSuccess)
}
