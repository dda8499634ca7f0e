package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/A-EDev/YTDL/internal/models"
	"github.com/A-EDev/YTDL/internal/services/resolver"
	"github.com/A-EDev/YTDL/internal/utils"
)

type VideoHandler struct {
	orchestrator *resolver.Orchestrator
}

func NewVideoHandler(orchestrator *resolver.Orchestrator) *VideoHandler {
	return &VideoHandler{
		orchestrator: orchestrator,
	}
}

// GetInfo godoc
// @Summary Get video metadata
// @Description Resolve a YouTube URL into title, author, thumbnail, duration, views and the advertised format menu. Falls back to reduced-fidelity metadata when full extraction is blocked.
// @Tags video
// @Produce json
// @Param url query string true "YouTube video URL"
// @Success 200 {object} models.VideoInfoResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/video/info [get]
func (h *VideoHandler) GetInfo(c *gin.Context) {
	ctx := c.Request.Context()

	url := c.Query("url")
	if url == "" {
		h.errorResponse(c, utils.NewValidationError("URL is required", nil))
		return
	}

	utils.LogInfo(ctx, "Processing info request", utils.Fields{"url": url})

	info, err := h.orchestrator.GetInfo(ctx, url)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// Download godoc
// @Summary Download a video or audio stream
// @Description Resolve, fetch server-side and relay the chosen stream as an attachment.
// @Tags video
// @Produce application/octet-stream
// @Param url query string true "YouTube video URL"
// @Param format query string false "mp3 or mp4" default(mp4)
// @Param quality query string false "Requested quality, e.g. 360p/720p/1080p" default(360p)
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/video/download [get]
func (h *VideoHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	req, appErr := parseDownloadRequest(c)
	if appErr != nil {
		h.errorResponse(c, appErr)
		return
	}

	utils.LogInfo(ctx, "Processing download request", utils.Fields{
		"url":     req.URL,
		"format":  string(req.Format),
		"quality": req.Quality,
	})

	session, err := h.orchestrator.PrepareDownload(ctx, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	// Cleanup must run on every exit path, including a mid-stream abort.
	defer session.Close()

	c.Header("Content-Type", session.ContentType)
	c.Header("Content-Disposition", `attachment; filename="`+session.FileName+`"`)
	c.Header("Content-Length", strconv.FormatInt(session.Size, 10))
	c.Status(http.StatusOK)

	if err := session.Stream(c.Writer); err != nil {
		// Headers are already on the wire; all that is left is to log.
		utils.LogWarn(ctx, "Download stream aborted", utils.Fields{
			"session_id": session.ID,
			"file_name":  session.FileName,
			"reason":     err.Error(),
		})
		return
	}

	utils.LogInfo(ctx, "Download stream completed", utils.Fields{
		"session_id": session.ID,
		"file_name":  session.FileName,
		"bytes":      session.Size,
	})
}

// DirectLink godoc
// @Summary Get a direct media URL
// @Description Return the time-limited upstream media URL for the chosen stream, or a fallback link to this service's own download endpoint when extraction fails.
// @Tags video
// @Produce json
// @Param url query string true "YouTube video URL"
// @Param format query string false "mp3 or mp4" default(mp4)
// @Param quality query string false "Requested quality, e.g. 360p/720p/1080p" default(360p)
// @Success 200 {object} models.DirectLinkResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/video/direct-download [get]
func (h *VideoHandler) DirectLink(c *gin.Context) {
	ctx := c.Request.Context()

	req, appErr := parseDownloadRequest(c)
	if appErr != nil {
		h.errorResponse(c, appErr)
		return
	}

	utils.LogInfo(ctx, "Processing direct link request", utils.Fields{
		"url":     req.URL,
		"format":  string(req.Format),
		"quality": req.Quality,
	})

	resp, err := h.orchestrator.DirectLink(ctx, req, requestBaseURL(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func parseDownloadRequest(c *gin.Context) (models.DownloadRequest, *utils.AppError) {
	url := c.Query("url")
	if url == "" {
		return models.DownloadRequest{}, utils.NewValidationError("URL is required", nil)
	}

	format := models.FormatKind(c.DefaultQuery("format", string(models.FormatMP4)))
	if format != models.FormatMP3 && format != models.FormatMP4 {
		return models.DownloadRequest{}, utils.NewValidationError("format must be mp3 or mp4", map[string]interface{}{
			"provided": string(format),
		})
	}

	return models.DownloadRequest{
		URL:     url,
		Format:  format,
		Quality: c.DefaultQuery("quality", models.DefaultQuality),
	}, nil
}

// requestBaseURL reconstructs the externally visible base URL for the
// self-referential direct-link fallback.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func (h *VideoHandler) handleError(c *gin.Context, err error) {
	if appErr, ok := err.(*utils.AppError); ok {
		h.errorResponse(c, appErr)
		return
	}
	utils.LogError(c.Request.Context(), "Unhandled error", err)
	h.errorResponse(c, utils.NewInternalError())
}

func (h *VideoHandler) errorResponse(c *gin.Context, err *utils.AppError) {
	c.JSON(err.StatusCode, gin.H{
		"error":      err,
		"request_id": c.GetString("request_id"),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
