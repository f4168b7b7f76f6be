package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Aniket1026/yoto/config"
	"github.com/Aniket1026/yoto/internal/api/initsvc"
	"github.com/Aniket1026/yoto/internal/database"
	"github.com/Aniket1026/yoto/internal/global"
	"github.com/Aniket1026/yoto/internal/logger"
	"github.com/Aniket1026/yoto/internal/media"
	"github.com/Aniket1026/yoto/internal/metrics"
	"github.com/Aniket1026/yoto/internal/worker"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// initServices builds object storage, metrics and the service container.
func initServices() *initsvc.Services {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := media.NewS3Store(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	services, err := initsvc.NewServices(cfg, store, metrics.New())
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	log.Info("Initialized services")
	return services
}

// resolvePath resolves a relative path against the directory holding config/env.
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		if _, err := os.Stat(filepath.Join(currentDir, "config", "env")); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

func listen(app *fiber.App, cfg *config.Configuration) error {
	log := logger.GetAppLogger()
	address := ":" + cfg.Address
	listenConfig := fiber.ListenConfig{DisableStartupMessage: true}

	if !cfg.EnableTLS || cfg.TLSCertFile == "" || cfg.TLSKeyFile == "" {
		log.WithFields(logrus.Fields{"address": address, "protocol": "HTTP"}).Info("Starting server with HTTP")
		return app.Listen(address, listenConfig)
	}

	certPath := resolvePath(cfg.TLSCertFile)
	keyPath := resolvePath(cfg.TLSKeyFile)
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return fmt.Errorf("error loading TLS certificate: %w", err)
	}
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("error creating listener: %w", err)
	}
	tlsListener := tls.NewListener(ln, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	})

	log.WithFields(logrus.Fields{"address": address, "cert": certPath, "key": keyPath}).Info("Starting server with HTTPS/TLS")
	return app.Listener(tlsListener, listenConfig)
}

// startWorkers launches the background jobs; they stop when ctx is cancelled.
func startWorkers(ctx context.Context, services *initsvc.Services) {
	interval, maxAge := services.Config.TempSweep()
	go worker.NewTempSweepWorker(services.Temp, interval, maxAge).Start(ctx)
}

func main() {
	initLogger()
	defer logger.Close()

	InitGlobal()
	InitRegistry()
	services := initServices()

	log := logger.GetAppLogger()
	app, err := InitFiberApp(services)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	startWorkers(workerCtx, services)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.WithField("signal", sig.String()).Info("Shutting down server")
		stopWorkers()
		if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	if err := listen(app, global.ServerConfig); err != nil {
		log.WithError(err).Error("Server stopped with error")
	}

	if err := database.CloseInstance(global.MongoDB_Session); err != nil {
		log.WithError(err).Error("Failed to close MongoDB connection")
	}
	log.Info("Server exited")
}
