package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Aniket1026/yoto/config"
	basehdl "github.com/Aniket1026/yoto/internal/api/base/handler"
	"github.com/Aniket1026/yoto/internal/api/initsvc"
	"github.com/Aniket1026/yoto/internal/api/middleware"
	playlistrouter "github.com/Aniket1026/yoto/internal/api/playlist/router"
	apirouter "github.com/Aniket1026/yoto/internal/api/router"
	subscriptionrouter "github.com/Aniket1026/yoto/internal/api/subscription/router"
	userrouter "github.com/Aniket1026/yoto/internal/api/user/router"
	videorouter "github.com/Aniket1026/yoto/internal/api/video/router"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/database"
	"github.com/Aniket1026/yoto/internal/global"
	"github.com/Aniket1026/yoto/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// InitFiberApp builds the app with the middleware stack and every route.
func InitFiberApp(services *initsvc.Services) (*fiber.App, error) {
	cfg := services.Config

	app := fiber.New(fiber.Config{
		AppName:       "yoto API",
		ServerHeader:  "yoto",
		StrictRouting: false,
		CaseSensitive: true,
		UnescapePath:  true,

		BodyLimit:       cfg.BodyLimitMB * 1024 * 1024,
		ReadBufferSize:  8192,
		WriteBufferSize: 4096,

		ReadTimeout:  5 * time.Minute, // video uploads
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
	}))

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", fmt.Sprintf("%v", e)).Error("Panic recovered")
		},
	}))

	if services.Metrics != nil {
		app.Use(middleware.NewMetricsMiddleware(services.Metrics))
	}

	origins := splitOrigins(cfg.CORS_Origins)
	allowCredentials := cfg.CORS_AllowCredentials
	if allowCredentials && len(origins) == 1 && origins[0] == "*" {
		// cors refuses credentials with a wildcard origin
		logger.GetAppLogger().Warn("CORS_ALLOW_CREDENTIALS ignored with wildcard CORS_ORIGINS")
		allowCredentials = false
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Requested-With"},
		AllowCredentials: allowCredentials,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	app.Use(middleware.SecurityHeaders())

	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(newRateLimiter(cfg))
		logger.GetAppLogger().Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		logger.GetAppLogger().Info("Rate limiting disabled")
	}

	if services.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(services.Metrics.Handler()))
	}

	systemHandler := basehdl.NewSystemHandler(func(ctx context.Context) error {
		return database.Ping(ctx, global.MongoDB_Session)
	})
	prefix := apirouter.NewRoutePrefix()
	app.Get(prefix.V1+"/system/health", systemHandler.HandleHealth)

	err := apirouter.SetupRoutes(app, services,
		userrouter.Register,
		subscriptionrouter.Register,
		videorouter.Register,
		playlistrouter.Register,
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// errorHandler is the single place where handler errors become responses.
// The status carried by the error is kept.
func errorHandler(c fiber.Ctx, err error) error {
	env := basehdl.ErrorEnvelope(err)
	entry := logger.WithRequest(c).WithFields(map[string]interface{}{
		"status":    env.StatusCode,
		"errorCode": env.ErrorCode,
	})
	if env.StatusCode >= common.StatusInternalServerError {
		entry.WithError(err).Error("Request error")
	} else {
		entry.Debug(env.Message)
	}
	return basehdl.JSONResponse(c, env.StatusCode, env)
}

func newRateLimiter(cfg *config.Configuration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.RateLimit_Max,
		Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return common.NewError(common.ErrCodeBusinessOperation, common.MsgTooManyRequests, common.StatusTooManyRequests, nil)
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/metrics" ||
				c.Path() == "/api/v1/system/health" ||
				c.Method() == fiber.MethodOptions
		},
	})
}

func splitOrigins(value string) []string {
	if value == "" || value == "*" {
		return []string{"*"}
	}
	origins := strings.Split(value, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}
