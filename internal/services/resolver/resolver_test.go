package resolver

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/A-EDev/YTDL/internal/config"
	"github.com/A-EDev/YTDL/internal/models"
	"github.com/A-EDev/YTDL/internal/services/relay"
	"github.com/A-EDev/YTDL/internal/services/youtube"
	"github.com/A-EDev/YTDL/internal/utils"
)

type fakePrimary struct {
	resolution *youtube.Resolution
	resolveErr error
	streamURL  string
	urlErr     error
	payload    string
}

func (f *fakePrimary) Resolve(ctx context.Context, url string) (*youtube.Resolution, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.resolution, nil
}

func (f *fakePrimary) StreamURL(ctx context.Context, res *youtube.Resolution, itag int) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return f.streamURL, nil
}

func (f *fakePrimary) Stream(ctx context.Context, res *youtube.Resolution, itag int) (io.ReadCloser, int64, error) {
	return io.NopCloser(strings.NewReader(f.payload)), int64(len(f.payload)), nil
}

type fakeOEmbed struct {
	info *models.VideoInfo
	err  error
}

func (f *fakeOEmbed) ResolveBasic(ctx context.Context, url string) (*models.VideoInfo, error) {
	return f.info, f.err
}

func fullResolution() *youtube.Resolution {
	return &youtube.Resolution{
		Info: models.VideoInfo{
			ID:              "dQw4w9WgXcQ",
			Title:           "Never Gonna Give You Up",
			Author:          "Rick Astley",
			ThumbnailURL:    "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
			DurationSeconds: 213,
			ViewCount:       1200000,
		},
		Variants: []models.StreamVariant{
			{Itag: 18, MimeType: "video/mp4", Container: "mp4", ResolutionLabel: "360p", Progressive: true},
			{Itag: 22, MimeType: "video/mp4", Container: "mp4", ResolutionLabel: "720p", Progressive: true},
			{Itag: 140, MimeType: "audio/mp4", Container: "mp4", AverageBitrate: 128000, AudioOnly: true},
		},
	}
}

func newOrchestrator(t *testing.T, primary *fakePrimary, fallback *fakeOEmbed) *Orchestrator {
	t.Helper()
	cfg := &config.DownloadConfig{
		BaseDir:    t.TempDir(),
		Timeout:    30 * time.Second,
		ChunkSize:  8192,
		MP3Bitrate: 128,
	}
	rl, err := relay.NewRelay(cfg, relay.NewFFmpegTranscoder())
	if err != nil {
		t.Fatalf("NewRelay: %v", err)
	}
	return NewOrchestrator(primary, fallback, rl, cfg)
}

func TestGetInfoPrimarySuccess(t *testing.T) {
	o := newOrchestrator(t, &fakePrimary{resolution: fullResolution()}, &fakeOEmbed{})

	resp, err := o.GetInfo(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetInfo: %v", err)
	}

	if resp.Title != "Never Gonna Give You Up" {
		t.Errorf("Title = %q", resp.Title)
	}
	if resp.Duration != "3:33" {
		t.Errorf("Duration = %q, want 3:33", resp.Duration)
	}
	if resp.Views != "1.2M" {
		t.Errorf("Views = %q, want 1.2M", resp.Views)
	}
	// The menu is static regardless of what was resolved.
	if len(resp.Formats) != 3 {
		t.Errorf("expected the 3-entry static format menu, got %d entries", len(resp.Formats))
	}
}

// Info mode must degrade to the oEmbed tier instead of failing when the
// primary resolver reports an upstream error.
func TestGetInfoFallsBackToOEmbed(t *testing.T) {
	primary := &fakePrimary{resolveErr: utils.NewUpstreamError(errors.New("cipher changed"))}
	fallback := &fakeOEmbed{info: &models.VideoInfo{
		ID:     "dQw4w9WgXcQ",
		Title:  "Never Gonna Give You Up",
		Author: "Rick Astley",
	}}
	o := newOrchestrator(t, primary, fallback)

	resp, err := o.GetInfo(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetInfo should not fail when the fallback tier works: %v", err)
	}

	if resp.Duration != "0:00" {
		t.Errorf("Duration = %q, want 0:00", resp.Duration)
	}
	if resp.Views != "0" {
		t.Errorf("Views = %q, want 0", resp.Views)
	}
	if resp.Title != "Never Gonna Give You Up" {
		t.Errorf("Title = %q", resp.Title)
	}
}

func TestGetInfoInvalidURL(t *testing.T) {
	o := newOrchestrator(t, &fakePrimary{resolveErr: youtube.ErrNoVideoID}, &fakeOEmbed{})

	_, err := o.GetInfo(context.Background(), "https://example.com/clip")
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Code != utils.ErrorCodeInvalidURL {
		t.Errorf("expected INVALID_URL, got %v", err)
	}
}

func TestPrepareDownloadNoFallback(t *testing.T) {
	primary := &fakePrimary{resolveErr: utils.NewUpstreamError(errors.New("age restricted"))}
	o := newOrchestrator(t, primary, &fakeOEmbed{})

	_, err := o.PrepareDownload(context.Background(), models.DownloadRequest{
		URL:     "https://youtu.be/dQw4w9WgXcQ",
		Format:  models.FormatMP4,
		Quality: "360p",
	})
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Code != utils.ErrorCodeUpstreamUnavailable {
		t.Errorf("download mode must fail outright on primary failure, got %v", err)
	}
}

func TestPrepareDownloadNoMatchingVariant(t *testing.T) {
	res := fullResolution()
	res.Variants = nil
	o := newOrchestrator(t, &fakePrimary{resolution: res}, &fakeOEmbed{})

	_, err := o.PrepareDownload(context.Background(), models.DownloadRequest{
		URL:     "https://youtu.be/dQw4w9WgXcQ",
		Format:  models.FormatMP4,
		Quality: "720p",
	})
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Code != utils.ErrorCodeNoMatchingVariant {
		t.Errorf("expected NO_MATCHING_VARIANT, got %v", err)
	}
}

func TestPrepareDownloadSuccess(t *testing.T) {
	primary := &fakePrimary{resolution: fullResolution(), payload: "media-bytes"}
	o := newOrchestrator(t, primary, &fakeOEmbed{})

	session, err := o.PrepareDownload(context.Background(), models.DownloadRequest{
		URL:     "https://youtu.be/dQw4w9WgXcQ",
		Format:  models.FormatMP4,
		Quality: "720p",
	})
	if err != nil {
		t.Fatalf("PrepareDownload: %v", err)
	}
	defer session.Close()

	if session.FileName != "Never Gonna Give You Up.mp4" {
		t.Errorf("FileName = %q", session.FileName)
	}
	if session.Size != int64(len("media-bytes")) {
		t.Errorf("Size = %d", session.Size)
	}
}

func TestDirectLinkSuccess(t *testing.T) {
	primary := &fakePrimary{
		resolution: fullResolution(),
		streamURL:  "https://rr3---sn.googlevideo.com/videoplayback?expire=123",
	}
	o := newOrchestrator(t, primary, &fakeOEmbed{})

	resp, err := o.DirectLink(context.Background(), models.DownloadRequest{
		URL:     "https://youtu.be/dQw4w9WgXcQ",
		Format:  models.FormatMP4,
		Quality: "720p",
	}, "http://localhost:5000")
	if err != nil {
		t.Fatalf("DirectLink: %v", err)
	}

	if resp.Fallback {
		t.Error("successful direct link must not carry the fallback flag")
	}
	if resp.URL != primary.streamURL {
		t.Errorf("URL = %q", resp.URL)
	}
	if resp.Title != "Never Gonna Give You Up" {
		t.Errorf("Title = %q", resp.Title)
	}
}

// On primary failure the direct-link mode synthesizes a link back to this
// service's own download endpoint with the original format/quality echoed.
func TestDirectLinkFallsBackToOwnEndpoint(t *testing.T) {
	primary := &fakePrimary{resolveErr: utils.NewTransportError(errors.New("connection reset"))}
	o := newOrchestrator(t, primary, &fakeOEmbed{})

	resp, err := o.DirectLink(context.Background(), models.DownloadRequest{
		URL:     "https://youtu.be/dQw4w9WgXcQ",
		Format:  models.FormatMP3,
		Quality: "128",
	}, "http://localhost:5000")
	if err != nil {
		t.Fatalf("DirectLink: %v", err)
	}

	if !resp.Fallback {
		t.Error("expected fallback flag on synthesized response")
	}
	if !strings.HasPrefix(resp.URL, "http://localhost:5000/api/video/download?") {
		t.Errorf("URL = %q, want own download endpoint", resp.URL)
	}
	if !strings.Contains(resp.URL, "format=mp3") || !strings.Contains(resp.URL, "quality=128") {
		t.Errorf("URL = %q, want format/quality echoed", resp.URL)
	}
	if resp.Title != "YouTube Video dQw4w9WgXcQ" {
		t.Errorf("Title = %q", resp.Title)
	}
}

// Caller-supplied quality must be escaped in the synthesized URL, not
// interpolated as extra query parameters.
func TestDirectLinkFallbackEscapesQuality(t *testing.T) {
	primary := &fakePrimary{resolveErr: utils.NewTransportError(errors.New("connection reset"))}
	o := newOrchestrator(t, primary, &fakeOEmbed{})

	resp, err := o.DirectLink(context.Background(), models.DownloadRequest{
		URL:     "https://youtu.be/dQw4w9WgXcQ",
		Format:  models.FormatMP4,
		Quality: "360p&x=y",
	}, "http://localhost:5000")
	if err != nil {
		t.Fatalf("DirectLink: %v", err)
	}

	parsed, err := url.Parse(resp.URL)
	if err != nil {
		t.Fatalf("synthesized URL does not parse: %v", err)
	}
	q := parsed.Query()
	if got := q.Get("quality"); got != "360p&x=y" {
		t.Errorf("quality = %q, want the raw value round-tripped", got)
	}
	if q.Has("x") {
		t.Error("caller input injected an extra query parameter")
	}
}

func TestDirectLinkInvalidURL(t *testing.T) {
	o := newOrchestrator(t, &fakePrimary{}, &fakeOEmbed{})

	_, err := o.DirectLink(context.Background(), models.DownloadRequest{
		URL:     "https://example.com/clip",
		Format:  models.FormatMP4,
		Quality: "360p",
	}, "http://localhost:5000")
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Code != utils.ErrorCodeInvalidURL {
		t.Errorf("expected INVALID_URL, got %v", err)
	}
}
