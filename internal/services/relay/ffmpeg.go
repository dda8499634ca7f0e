package relay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrTranscoderUnavailable reports a missing ffmpeg binary. The relay treats
// it like any other transcode failure and serves the original bytes.
var ErrTranscoderUnavailable = errors.New("ffmpeg not found in PATH")

// Transcoder is the capability-abstracted mp3 step. Its absence must never
// block the relay path.
type Transcoder interface {
	TranscodeToMP3(ctx context.Context, sourcePath string, bitrate int) (string, error)
}

// FFmpegTranscoder shells out to ffmpeg for the lossy audio conversion.
type FFmpegTranscoder struct{}

func NewFFmpegTranscoder() *FFmpegTranscoder {
	return &FFmpegTranscoder{}
}

// Available reports whether the ffmpeg binary can be found. Used by the
// health surface.
func (t *FFmpegTranscoder) Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

func (t *FFmpegTranscoder) TranscodeToMP3(ctx context.Context, sourcePath string, bitrate int) (string, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return "", ErrTranscoderUnavailable
	}

	outputPath := sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".mp3"

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", sourcePath,
		"-vn",
		"-ar", "44100",
		"-ac", "2",
		"-b:a", fmt.Sprintf("%dk", bitrate),
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg failed: %w, output: %s", err, string(output))
	}

	// The pre-transcode download is no longer needed.
	os.Remove(sourcePath)

	return outputPath, nil
}
