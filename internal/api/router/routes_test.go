package router

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRouteWithMiddlewareRunsMiddlewareFirst(t *testing.T) {
	app := fiber.New()
	v1 := app.Group(NewRoutePrefix().V1)

	var trace []string
	mark := func(name string) fiber.Handler {
		return func(c fiber.Ctx) error {
			trace = append(trace, name)
			return c.Next()
		}
	}
	deny := func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "denied")
	}

	RegisterRouteWithMiddleware(v1, "/video", fiber.MethodPatch, "/:videoId", []fiber.Handler{mark("a"), mark("b")}, func(c fiber.Ctx) error {
		trace = append(trace, "handler")
		return c.SendString(c.Params("videoId"))
	})
	RegisterRouteWithMiddleware(v1, "/video", fiber.MethodDelete, "/:videoId", []fiber.Handler{deny}, func(c fiber.Ctx) error {
		trace = append(trace, "delete")
		return nil
	})
	RegisterRouteWithMiddleware(v1, "/videos", fiber.MethodGet, "", nil, func(c fiber.Ctx) error {
		return c.SendString("public")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPatch, "/api/v1/video/abc", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc", string(body))
	assert.Equal(t, []string{"a", "b", "handler"}, trace)

	trace = nil
	resp, err = app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/v1/video/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, trace, "handler must not run when middleware rejects")

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/videos", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "public", string(body), "routes without middleware stay open")
}

func TestSetupRoutesStopsOnError(t *testing.T) {
	app := fiber.New()
	var mounted []string
	ok := func(name string) RegisterFunc {
		return func(v1 fiber.Router, r *Router) error {
			mounted = append(mounted, name)
			assert.Same(t, app, r.App())
			return nil
		}
	}
	failing := func(v1 fiber.Router, r *Router) error { return fiber.ErrInternalServerError }

	err := SetupRoutes(app, nil, ok("user"), failing, ok("video"))
	assert.Error(t, err)
	assert.Equal(t, []string{"user"}, mounted)
}
