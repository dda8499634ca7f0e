package youtube

import (
	"math/rand"
	"net/http"
)

// userAgents is the fixed pool rotated across upstream requests. Looking like
// a real browser reduces, but does not eliminate, the chance of being blocked.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:90.0) Gecko/20100101 Firefox/90.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 11.5; rv:90.0) Gecko/20100101 Firefox/90.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 11_5_1) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.2 Safari/605.1.15",
}

// RandomUserAgent draws one entry from the pool. The draw is request-scoped;
// there is no shared mutable state.
func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// browserTransport decorates every upstream request with a random User-Agent
// and browser-like headers before handing it to the base transport.
type browserTransport struct {
	base http.RoundTripper
}

func (t *browserTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", RandomUserAgent())
	setIfAbsent(r, "Accept-Language", "en-US,en;q=0.9")
	setIfAbsent(r, "Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	setIfAbsent(r, "Referer", "https://www.youtube.com/")
	setIfAbsent(r, "Origin", "https://www.youtube.com")
	return t.base.RoundTrip(r)
}

// setIfAbsent leaves headers the extraction library set on purpose alone.
func setIfAbsent(r *http.Request, key, value string) {
	if r.Header.Get(key) == "" {
		r.Header.Set(key, value)
	}
}
