// Package resolver coordinates the fallback chain. Each inbound request runs
// one of three modes through a strictly linear tier sequence: a failed step
// advances to the next defined fallback or terminates, never retries.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/A-EDev/YTDL/internal/config"
	"github.com/A-EDev/YTDL/internal/models"
	"github.com/A-EDev/YTDL/internal/services/oembed"
	"github.com/A-EDev/YTDL/internal/services/relay"
	"github.com/A-EDev/YTDL/internal/services/selector"
	"github.com/A-EDev/YTDL/internal/services/youtube"
	"github.com/A-EDev/YTDL/internal/utils"
)

type Orchestrator struct {
	youtube youtube.Resolver
	oembed  oembed.Resolver
	relay   *relay.Relay
	config  *config.DownloadConfig
}

func NewOrchestrator(yt youtube.Resolver, oe oembed.Resolver, rl *relay.Relay, cfg *config.DownloadConfig) *Orchestrator {
	return &Orchestrator{
		youtube: yt,
		oembed:  oe,
		relay:   rl,
		config:  cfg,
	}
}

// GetInfo is the metadata-only mode: primary resolver first, oEmbed tier on
// any resolution failure. The advertised format list is a static capability
// menu, deliberately decoupled from the variants that were actually found.
// The response shape does not distinguish the tiers.
func (o *Orchestrator) GetInfo(ctx context.Context, rawURL string) (*models.VideoInfoResponse, error) {
	res, err := o.youtube.Resolve(ctx, rawURL)
	if err == nil {
		return infoResponse(&res.Info), nil
	}
	if errors.Is(err, youtube.ErrNoVideoID) {
		return nil, utils.NewInvalidURLError(rawURL)
	}

	utils.LogInfo(ctx, "Primary resolution failed, using metadata fallback", utils.Fields{
		"url":  rawURL,
		"mode": "info",
	})

	info, fallbackErr := o.oembed.ResolveBasic(ctx, rawURL)
	if fallbackErr != nil {
		utils.LogError(ctx, "All info tiers exhausted", fallbackErr, utils.Fields{
			"url":  rawURL,
			"mode": "info",
			"tier": "oembed",
		})
		return nil, err
	}
	return infoResponse(info), nil
}

// PrepareDownload is the relay-download mode. There is no fallback tier:
// serving bytes requires real media URLs, which only the primary resolver
// can produce. The returned session owns its working directory; the caller
// must Close it on every exit path.
func (o *Orchestrator) PrepareDownload(ctx context.Context, req models.DownloadRequest) (*relay.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	res, err := o.youtube.Resolve(ctx, req.URL)
	if err != nil {
		if errors.Is(err, youtube.ErrNoVideoID) {
			return nil, utils.NewInvalidURLError(req.URL)
		}
		return nil, err
	}

	variant, err := selector.Select(res.Variants, req.Format, req.Quality)
	if err != nil {
		return nil, utils.NewNoMatchingVariantError(string(req.Format), req.Quality)
	}

	stream, size, err := o.youtube.Stream(ctx, res, variant.Itag)
	if err != nil {
		return nil, err
	}

	utils.LogInfo(ctx, "Fetching stream for relay", utils.Fields{
		"video_id": res.Info.ID,
		"itag":     variant.Itag,
		"size":     size,
		"mode":     "download",
	})

	session, err := o.relay.Prepare(ctx, stream, &res.Info, req.Format)
	if err != nil {
		utils.LogError(ctx, "Relay preparation failed", err, utils.Fields{
			"video_id": res.Info.ID,
			"mode":     "download",
		})
		return nil, utils.NewRelayError(err)
	}
	return session, nil
}

// DirectLink is the direct-link mode: resolve, select, and hand back the
// signed upstream URL. Any resolution failure degrades to a self-referential
// response pointing at this service's own download endpoint, which performs
// the transfer server-side instead.
func (o *Orchestrator) DirectLink(ctx context.Context, req models.DownloadRequest, ownBaseURL string) (*models.DirectLinkResponse, error) {
	id, idErr := youtube.ExtractVideoID(req.URL)
	if idErr != nil {
		return nil, utils.NewInvalidURLError(req.URL)
	}

	res, err := o.youtube.Resolve(ctx, req.URL)
	if err == nil {
		variant, selErr := selector.Select(res.Variants, req.Format, req.Quality)
		if selErr != nil {
			return nil, utils.NewNoMatchingVariantError(string(req.Format), req.Quality)
		}

		mediaURL, urlErr := o.youtube.StreamURL(ctx, res, variant.Itag)
		if urlErr == nil {
			return &models.DirectLinkResponse{
				URL:    mediaURL,
				Title:  res.Info.Title,
				Format: string(req.Format),
			}, nil
		}
		err = urlErr
	}

	utils.LogWarn(ctx, "Direct link unavailable, pointing caller at the relay endpoint", utils.Fields{
		"url":    req.URL,
		"mode":   "direct-link",
		"reason": err.Error(),
	})

	query := url.Values{}
	query.Set("url", req.URL)
	query.Set("format", string(req.Format))
	query.Set("quality", req.Quality)

	return &models.DirectLinkResponse{
		URL:      ownBaseURL + "/api/video/download?" + query.Encode(),
		Title:    fmt.Sprintf("YouTube Video %s", id),
		Format:   string(req.Format),
		Fallback: true,
	}, nil
}

func infoResponse(info *models.VideoInfo) *models.VideoInfoResponse {
	return &models.VideoInfoResponse{
		ID:        info.ID,
		Title:     info.Title,
		Author:    info.Author,
		Thumbnail: info.ThumbnailURL,
		Duration:  utils.FormatDuration(info.DurationSeconds),
		Views:     utils.FormatViews(info.ViewCount),
		Formats:   models.AdvertisedFormats(),
	}
}
