package youtube

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrNoVideoID is returned when no video identifier can be derived from a URL.
var ErrNoVideoID = errors.New("could not extract video ID from URL")

var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ExtractVideoID derives the canonical video identifier from a YouTube URL.
// Short links (youtu.be/<id>) take the first path segment with any query
// stripped; watch links (youtube.com/watch?v=<id>) take the v parameter.
// The function is pure and never touches the network; every resolution path
// calls it before any upstream request so fallback tiers always have an ID
// to work with.
func ExtractVideoID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrNoVideoID
	}

	host := u.Host
	if host == "" {
		// Scheme-less input like "youtu.be/abc" parses as a bare path.
		if i := strings.Index(rawURL, "/"); i > 0 {
			host = rawURL[:i]
			u.Path = rawURL[i:]
			if q := strings.Index(u.Path, "?"); q >= 0 {
				u.Path = u.Path[:q]
			}
		}
	}

	var id string
	switch {
	case strings.Contains(host, "youtu.be"):
		segments := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
		if len(segments) > 0 {
			id = segments[0]
		}
	case strings.Contains(host, "youtube.com"):
		id = u.Query().Get("v")
	default:
		return "", ErrNoVideoID
	}

	if id == "" || !videoIDPattern.MatchString(id) {
		return "", ErrNoVideoID
	}
	return id, nil
}
