// Package router mounts the domain routes under /api/v1.
package router

import (
	"github.com/Aniket1026/yoto/internal/api/initsvc"

	"github.com/gofiber/fiber/v3"
)

// Router carries what domain registrations need besides the v1 group.
type Router struct {
	app      *fiber.App
	services *initsvc.Services
}

// RoutePrefix holds the API prefixes.
type RoutePrefix struct {
	Base string // /api
	V1   string // /api/v1
}

func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

func NewRouter(app *fiber.App, services *initsvc.Services) *Router {
	return &Router{
		app:      app,
		services: services,
	}
}

func (r *Router) App() *fiber.App { return r.app }

// Services returns the shared service container.
func (r *Router) Services() *initsvc.Services { return r.services }

// RegisterRouteWithMiddleware mounts handler at prefix+path behind middlewares.
// Fiber v3 runs a route's handlers in argument order, so the middlewares are
// passed first and the handler last; they only apply to this route.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	chain := append(append([]fiber.Handler{}, middlewares...), handler)
	first, rest := chain[0], chain[1:]
	full := prefix + path

	switch method {
	case fiber.MethodGet:
		router.Get(full, first, rest...)
	case fiber.MethodPost:
		router.Post(full, first, rest...)
	case fiber.MethodPut:
		router.Put(full, first, rest...)
	case fiber.MethodPatch:
		router.Patch(full, first, rest...)
	case fiber.MethodDelete:
		router.Delete(full, first, rest...)
	}
}

// RegisterFunc mounts one domain on v1.
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes mounts every domain in order under /api/v1.
func SetupRoutes(app *fiber.App, services *initsvc.Services, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app, services)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
