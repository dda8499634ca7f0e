package models

// FormatKind is the container the caller asked for.
type FormatKind string

const (
	FormatMP3 FormatKind = "mp3"
	FormatMP4 FormatKind = "mp4"
)

// DefaultQuality is applied when the caller does not pick one.
const DefaultQuality = "360p"

// VideoInfo is the per-request metadata view of a video. It is produced at
// full fidelity by the primary resolver or at reduced fidelity by the oEmbed
// fallback, in which case DurationSeconds and ViewCount stay zero ("unknown").
type VideoInfo struct {
	ID              string
	Title           string
	Author          string
	ThumbnailURL    string
	DurationSeconds int
	ViewCount       int64
}

// StreamVariant describes one encoded variant offered by the upstream. The
// set is ephemeral: upstream URLs are signed and expire within minutes, so
// variants are never reused across requests. MediaURL is only populated once
// a variant has been picked (URL resolution is per-variant work upstream).
type StreamVariant struct {
	Itag            int
	MimeType        string
	Container       string
	ResolutionLabel string
	AverageBitrate  int
	AudioOnly       bool
	Progressive     bool
	MediaURL        string
}

// FormatOption is one entry of the static capability menu advertised by the
// info endpoint. The menu is intentionally not derived from the variants that
// were actually resolved.
type FormatOption struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

// AdvertisedFormats returns the fixed menu shown to the user before they pick.
func AdvertisedFormats() []FormatOption {
	return []FormatOption{
		{Value: "mp4-720p", Label: "MP4 720p", Size: "Variable", Quality: "720p"},
		{Value: "mp4-360p", Label: "MP4 360p", Size: "Variable", Quality: "360p"},
		{Value: "mp3-128", Label: "MP3 Audio", Size: "Variable", Quality: "128"},
	}
}

// VideoInfoResponse is the JSON shape of GET /api/video/info.
type VideoInfoResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Author    string         `json:"author"`
	Thumbnail string         `json:"thumbnail"`
	Duration  string         `json:"duration"`
	Views     string         `json:"views"`
	Formats   []FormatOption `json:"formats"`
}

// DirectLinkResponse is the JSON shape of GET /api/video/direct-download.
// Fallback is set when the URL points back at this service's own download
// endpoint instead of a signed upstream link.
type DirectLinkResponse struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Format   string `json:"format"`
	Fallback bool   `json:"fallback,omitempty"`
}

// DownloadRequest carries the query parameters of a download or direct-link
// call, defaults already applied.
type DownloadRequest struct {
	URL     string
	Format  FormatKind
	Quality string
}
