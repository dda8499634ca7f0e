// Package main provides the entry point for the YouTube resolve-and-relay service.
// @title YTDL API
// @version 1.0
// @description A Go backend that resolves YouTube URLs into playable stream metadata and relays or redirects to the underlying media.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/A-EDev/YTDL/docs" // Import for swagger docs
	"github.com/A-EDev/YTDL/internal/api/handlers"
	"github.com/A-EDev/YTDL/internal/api/router"
	"github.com/A-EDev/YTDL/internal/config"
	"github.com/A-EDev/YTDL/internal/services/oembed"
	"github.com/A-EDev/YTDL/internal/services/relay"
	"github.com/A-EDev/YTDL/internal/services/resolver"
	"github.com/A-EDev/YTDL/internal/services/youtube"
	"github.com/A-EDev/YTDL/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting YouTube resolve-and-relay service")

	// Initialize resolution tiers
	primary := youtube.NewClient(&cfg.Upstream)
	fallback := oembed.NewClient(&cfg.Upstream)

	// Initialize relay with its best-effort transcoder
	transcoder := relay.NewFFmpegTranscoder()
	if !transcoder.Available() {
		logger.Warn("ffmpeg not found in PATH, mp3 downloads will serve untranscoded audio")
	}

	mediaRelay, err := relay.NewRelay(&cfg.Download, transcoder)
	if err != nil {
		logger.Fatalf("Failed to initialize relay: %v", err)
	}

	orchestrator := resolver.NewOrchestrator(primary, fallback, mediaRelay, &cfg.Download)

	// Initialize handlers
	videoHandler := handlers.NewVideoHandler(orchestrator)
	healthHandler := handlers.NewHealthHandler(&cfg.Download, transcoder)

	// Initialize router
	r := router.NewRouter(cfg, videoHandler, healthHandler)

	go func() {
		logger.Infof("Starting server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := r.Start(); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutdown complete")
}
