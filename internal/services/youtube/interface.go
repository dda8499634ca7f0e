package youtube

import (
	"context"
	"io"

	"github.com/A-EDev/YTDL/internal/models"
)

// Resolver is the primary stream resolution interface against the upstream
// platform. It is the most failure-prone dependency in the system; callers
// are expected to treat every error as a trigger for a fallback tier.
type Resolver interface {
	// Resolve extracts full metadata and the available stream variants.
	Resolve(ctx context.Context, url string) (*Resolution, error)

	// StreamURL resolves the time-limited signed media URL of one variant.
	StreamURL(ctx context.Context, res *Resolution, itag int) (string, error)

	// Stream opens the media bytes of one variant for reading.
	Stream(ctx context.Context, res *Resolution, itag int) (io.ReadCloser, int64, error)
}

// Resolution is the outcome of one successful extraction. Variants reference
// upstream formats by itag; the signed URLs behind them expire within
// minutes, so a Resolution is only valid for the request that produced it.
type Resolution struct {
	Info     models.VideoInfo
	Variants []models.StreamVariant

	video *kkdaiVideo
}
