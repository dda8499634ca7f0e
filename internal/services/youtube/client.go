package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/A-EDev/YTDL/internal/config"
	"github.com/A-EDev/YTDL/internal/models"
	"github.com/A-EDev/YTDL/internal/utils"
)

// Library identifies the extraction backend for the health surface.
const Library = "kkdai/youtube/v2"

type kkdaiVideo = youtube.Video

type Client struct {
	client  *youtube.Client
	timeout time.Duration
}

// NewClient creates the primary stream resolver. Every upstream request goes
// through the rotating browser transport, and every call is bounded by the
// configured resolve timeout.
func NewClient(cfg *config.UpstreamConfig) *Client {
	httpClient := &http.Client{
		Transport: &browserTransport{base: http.DefaultTransport},
	}

	return &Client{
		client: &youtube.Client{
			HTTPClient: httpClient,
		},
		timeout: cfg.ResolveTimeout,
	}
}

// Resolve performs full extraction: title, author, counters, thumbnail, and
// the complete variant set. The video ID is derived locally before any
// network call so a failure here never leaves the fallback tiers without one.
func (c *Client) Resolve(ctx context.Context, rawURL string) (*Resolution, error) {
	id, err := ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	video, err := c.client.GetVideoContext(ctx, id)
	if err != nil {
		return nil, c.classify(ctx, rawURL, err)
	}

	res := &Resolution{
		Info: models.VideoInfo{
			ID:              id,
			Title:           video.Title,
			Author:          video.Author,
			ThumbnailURL:    thumbnailURL(video, id),
			DurationSeconds: int(video.Duration.Seconds()),
			ViewCount:       int64(video.Views),
		},
		Variants: buildVariants(video.Formats),
		video:    video,
	}

	utils.LogInfo(ctx, "Resolved video", utils.Fields{
		"video_id": id,
		"title":    video.Title,
		"variants": len(res.Variants),
	})

	return res, nil
}

// StreamURL resolves the signed media URL for one variant. URL resolution is
// per-variant work upstream, so it is done lazily for the chosen variant
// instead of eagerly for all of them.
func (c *Client) StreamURL(ctx context.Context, res *Resolution, itag int) (string, error) {
	format, err := findFormat(res, itag)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	mediaURL, err := c.client.GetStreamURLContext(ctx, res.video, format)
	if err != nil {
		return "", c.classify(ctx, res.Info.ID, err)
	}
	return mediaURL, nil
}

// Stream opens the media bytes of one variant. The caller owns the reader and
// its cancellation; no resolve timeout applies here since downloads legally
// outlive it.
func (c *Client) Stream(ctx context.Context, res *Resolution, itag int) (io.ReadCloser, int64, error) {
	format, err := findFormat(res, itag)
	if err != nil {
		return nil, 0, err
	}

	reader, size, err := c.client.GetStreamContext(ctx, res.video, format)
	if err != nil {
		return nil, 0, c.classify(ctx, res.Info.ID, err)
	}
	return reader, size, nil
}

// findFormat looks the upstream format back up by itag. Itag returns a
// filtered FormatList, empty when the variant is not part of the resolution.
func findFormat(res *Resolution, itag int) (*youtube.Format, error) {
	matches := res.video.Formats.Itag(itag)
	if len(matches) == 0 {
		return nil, fmt.Errorf("itag %d not present in resolution", itag)
	}
	return &matches[0], nil
}

func buildVariants(formats youtube.FormatList) []models.StreamVariant {
	variants := make([]models.StreamVariant, 0, len(formats))
	for _, f := range formats {
		audioOnly := strings.HasPrefix(f.MimeType, "audio/")
		isVideo := strings.HasPrefix(f.MimeType, "video/")
		if !audioOnly && !isVideo {
			continue
		}

		container := "other"
		if strings.Contains(f.MimeType, "mp4") {
			container = "mp4"
		}

		variants = append(variants, models.StreamVariant{
			Itag:            f.ItagNo,
			MimeType:        f.MimeType,
			Container:       container,
			ResolutionLabel: f.QualityLabel,
			AverageBitrate:  f.AverageBitrate,
			AudioOnly:       audioOnly,
			Progressive:     isVideo && f.AudioChannels > 0,
		})
	}
	return variants
}

func thumbnailURL(video *kkdaiVideo, id string) string {
	if len(video.Thumbnails) > 0 {
		return video.Thumbnails[0].URL
	}
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/maxresdefault.jpg", id)
}

// classify buckets an extraction failure into the three error kinds. All of
// them trigger the same fallback handling in callers, but they are logged
// separately: the upstream-protocol bucket's sub-reason drifts as the
// platform changes and signals when the extraction library needs updating.
func (c *Client) classify(ctx context.Context, subject string, err error) *utils.AppError {
	if isPlayabilityError(err) ||
		errors.Is(err, youtube.ErrCipherNotFound) ||
		errors.Is(err, youtube.ErrLoginRequired) ||
		errors.Is(err, youtube.ErrVideoPrivate) ||
		errors.Is(err, youtube.ErrNotPlayableInEmbed) ||
		errors.Is(err, youtube.ErrInvalidCharactersInVideoID) ||
		errors.Is(err, youtube.ErrVideoIDMinLength) {
		utils.LogWarn(ctx, "Upstream rejected extraction", utils.Fields{
			"subject": subject,
			"kind":    "upstream",
			"reason":  err.Error(),
		})
		return utils.NewUpstreamError(err)
	}

	var statusErr youtube.ErrUnexpectedStatusCode
	var netErr net.Error
	if errors.As(err, &statusErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) {
		utils.LogWarn(ctx, "Transport failure during extraction", utils.Fields{
			"subject": subject,
			"kind":    "transport",
			"reason":  err.Error(),
		})
		return utils.NewTransportError(err)
	}

	utils.LogError(ctx, "Unexpected extraction failure", err, utils.Fields{
		"subject": subject,
		"kind":    "unexpected",
	})
	return utils.NewUpstreamError(err)
}

func isPlayabilityError(err error) bool {
	var statusErr *youtube.ErrPlayabiltyStatus
	return errors.As(err, &statusErr)
}
