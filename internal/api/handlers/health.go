package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/A-EDev/YTDL/internal/config"
	"github.com/A-EDev/YTDL/internal/services/relay"
	"github.com/A-EDev/YTDL/internal/services/youtube"
)

type HealthHandler struct {
	downloadCfg *config.DownloadConfig
	transcoder  *relay.FFmpegTranscoder
}

type HealthResponse struct {
	Status  string                 `json:"status"`
	Version string                 `json:"version"`
	Library string                 `json:"library"`
	Checks  map[string]interface{} `json:"checks"`
}

func NewHealthHandler(downloadCfg *config.DownloadConfig, transcoder *relay.FFmpegTranscoder) *HealthHandler {
	return &HealthHandler{
		downloadCfg: downloadCfg,
		transcoder:  transcoder,
	}
}

// Health godoc
// @Summary Health check endpoint
// @Description Report service health, extractor library identity and collaborator availability
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
		Library: youtube.Library,
		Checks:  make(map[string]interface{}),
	}

	dirOK := h.checkDownloadDir()
	response.Checks["download_dir"] = dirOK

	// A missing ffmpeg degrades mp3 output but does not flip the overall status.
	response.Checks["ffmpeg"] = h.transcoder.Available()

	if !dirOK {
		response.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Readiness godoc
// @Summary Readiness check endpoint
// @Description Check if the service is ready to accept requests
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ready := h.checkDownloadDir()

	response := map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if ready {
		c.JSON(http.StatusOK, response)
	} else {
		c.JSON(http.StatusServiceUnavailable, response)
	}
}

// Liveness godoc
// @Summary Liveness check endpoint
// @Description Check if the service is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /live [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// checkDownloadDir verifies the session base directory is writable, since
// every relay download depends on it.
func (h *HealthHandler) checkDownloadDir() bool {
	probe := filepath.Join(h.downloadCfg.BaseDir, ".health-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return false
	}
	os.Remove(probe)
	return true
}
