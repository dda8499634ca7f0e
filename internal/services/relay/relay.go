// Package relay turns a resolved stream into a client-facing file download:
// one exclusive working directory per session, best-effort mp3 transcode,
// chunked streaming, and directory removal on every exit path.
package relay

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/A-EDev/YTDL/internal/config"
	"github.com/A-EDev/YTDL/internal/models"
	"github.com/A-EDev/YTDL/internal/utils"
)

type Relay struct {
	baseDir    string
	chunkSize  int
	mp3Bitrate int
	transcoder Transcoder
}

// NewRelay creates the relay and its base download directory. Session
// directories live under the base dir keyed by fresh UUIDs, so concurrent
// requests never address the same path.
func NewRelay(cfg *config.DownloadConfig, transcoder Transcoder) (*Relay, error) {
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	return &Relay{
		baseDir:    cfg.BaseDir,
		chunkSize:  cfg.ChunkSize,
		mp3Bitrate: cfg.MP3Bitrate,
		transcoder: transcoder,
	}, nil
}

// Session owns one download's working directory for the lifetime of one
// response. Close removes the directory and everything in it; callers must
// defer it as soon as Prepare succeeds.
type Session struct {
	ID          string
	Dir         string
	FilePath    string
	FileName    string
	ContentType string
	Size        int64

	chunkSize int
}

// Prepare allocates a fresh session directory, drains the source into it and
// runs the audio path through the transcoder when asked for mp3. The source
// reader is closed before Prepare returns. On any failure the directory is
// removed before the error surfaces.
func (r *Relay) Prepare(ctx context.Context, source io.ReadCloser, info *models.VideoInfo, format models.FormatKind) (*Session, error) {
	sessionID := uuid.New().String()
	dir := filepath.Join(r.baseDir, sessionID)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		source.Close()
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	filePath, err := r.fetch(dir, source)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	contentType := "video/mp4"
	extension := "mp4"
	if format == models.FormatMP3 {
		filePath = r.toMP3(ctx, filePath)
		contentType = "audio/mpeg"
		extension = "mp3"
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("downloaded file missing: %w", err)
	}

	return &Session{
		ID:          sessionID,
		Dir:         dir,
		FilePath:    filePath,
		FileName:    fmt.Sprintf("%s.%s", utils.SanitizeFilename(info.Title), extension),
		ContentType: contentType,
		Size:        stat.Size(),
		chunkSize:   r.chunkSize,
	}, nil
}

func (r *Relay) fetch(dir string, source io.ReadCloser) (string, error) {
	defer source.Close()

	filePath := filepath.Join(dir, "source.mp4")
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create download file: %w", err)
	}

	if _, err := io.Copy(file, source); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to fetch stream: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize download file: %w", err)
	}
	return filePath, nil
}

// toMP3 attempts the lossy transcode and never fails the relay path: when
// the transcoder is unavailable or errors, the fetched bytes are served
// as-is under an mp3 extension.
func (r *Relay) toMP3(ctx context.Context, sourcePath string) string {
	transcoded, err := r.transcoder.TranscodeToMP3(ctx, sourcePath, r.mp3Bitrate)
	if err == nil {
		return transcoded
	}

	utils.LogWarn(ctx, "MP3 transcode failed, serving original audio bytes", utils.Fields{
		"reason": err.Error(),
	})

	renamed := replaceExtension(sourcePath, ".mp3")
	if err := os.Rename(sourcePath, renamed); err != nil {
		return sourcePath
	}
	return renamed
}

func replaceExtension(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}

// Stream copies the prepared file to w in fixed-size chunks. Production is
// pull-driven: each chunk waits for the consumer, and an early disconnect
// surfaces as a write error. Cleanup is the caller's deferred Close, so it
// fires on this path's errors too.
func (s *Session) Stream(w io.Writer) error {
	file, err := os.Open(s.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open prepared file: %w", err)
	}
	defer file.Close()

	buf := make([]byte, s.chunkSize)
	if _, err := io.CopyBuffer(w, file, buf); err != nil {
		return fmt.Errorf("stream interrupted: %w", err)
	}
	return nil
}

// Close removes the session directory and all of its contents. Safe to call
// on every exit path, including after a failed Stream.
func (s *Session) Close() error {
	return os.RemoveAll(s.Dir)
}
