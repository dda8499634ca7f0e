// Package oembed is the low-privilege metadata fallback. YouTube's oEmbed
// endpoint needs no authentication and is rarely blocked, which makes it the
// tier of choice once the primary extractor has failed.
package oembed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/A-EDev/YTDL/internal/config"
	"github.com/A-EDev/YTDL/internal/models"
	"github.com/A-EDev/YTDL/internal/services/youtube"
	"github.com/A-EDev/YTDL/internal/utils"
)

const defaultBaseURL = "https://www.youtube.com"

// Resolver fetches reduced-fidelity metadata by video identifier.
type Resolver interface {
	ResolveBasic(ctx context.Context, url string) (*models.VideoInfo, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.UpstreamConfig) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.OEmbedTimeout,
		},
	}
}

// NewClientWithBaseURL points the resolver at a different host. Used by tests.
func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// ResolveBasic runs the two internal tiers: the oEmbed request, then a
// synthesized identifier-only VideoInfo if even that fails. It only errors
// when no video ID can be extracted at all. Duration and view count come
// back as zero, meaning unknown rather than a true zero-length claim.
func (c *Client) ResolveBasic(ctx context.Context, rawURL string) (*models.VideoInfo, error) {
	id, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return nil, utils.NewInvalidURLError(rawURL)
	}

	info, err := c.fetch(ctx, id)
	if err != nil {
		utils.LogWarn(ctx, "oEmbed lookup failed, degrading to identifier-only info", utils.Fields{
			"video_id": id,
			"reason":   err.Error(),
		})
		return degradedInfo(id), nil
	}
	return info, nil
}

func (c *Client) fetch(ctx context.Context, id string) (*models.VideoInfo, error) {
	endpoint := fmt.Sprintf(
		"%s/oembed?url=https://www.youtube.com/watch?v=%s&format=json",
		c.baseURL, id,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", youtube.RandomUserAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}

	var data oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	info := &models.VideoInfo{
		ID:           id,
		Title:        data.Title,
		Author:       data.AuthorName,
		ThumbnailURL: data.ThumbnailURL,
	}
	if info.Title == "" {
		info.Title = "Unknown video"
	}
	if info.Author == "" {
		info.Author = "Unknown author"
	}
	if info.ThumbnailURL == "" {
		info.ThumbnailURL = defaultThumbnail(id)
	}
	return info, nil
}

func degradedInfo(id string) *models.VideoInfo {
	return &models.VideoInfo{
		ID:           id,
		Title:        fmt.Sprintf("YouTube Video %s", id),
		Author:       "Unknown",
		ThumbnailURL: defaultThumbnail(id),
	}
}

func defaultThumbnail(id string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/maxresdefault.jpg", id)
}
