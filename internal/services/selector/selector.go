// Package selector picks one stream variant out of a resolved set. It is a
// pure policy layer: no I/O, deterministic for a given input ordering.
package selector

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/A-EDev/YTDL/internal/models"
)

// ErrNoMatch is returned when no variant satisfies the request.
var ErrNoMatch = errors.New("no matching stream variant")

// Select applies the format-selection policy.
//
// Audio (mp3): audio-only variants ranked by descending average bitrate.
//
// Video (mp4): progressive mp4 variants. 1080p and 720p requests prefer an
// exact label match and otherwise fall back UP to the highest resolution
// available; every other quality (including the 360p default) prefers an
// exact 360p match and otherwise falls back DOWN to the lowest available.
// If no progressive mp4 exists at all, any mp4-container variant serves as
// a last resort.
//
// Ties are broken by first-encountered order after the stable sort.
func Select(variants []models.StreamVariant, format models.FormatKind, quality string) (models.StreamVariant, error) {
	if format == models.FormatMP3 {
		return selectAudio(variants)
	}
	return selectVideo(variants, quality)
}

func selectAudio(variants []models.StreamVariant) (models.StreamVariant, error) {
	audio := filter(variants, func(v models.StreamVariant) bool {
		return v.AudioOnly
	})
	if len(audio) == 0 {
		return models.StreamVariant{}, ErrNoMatch
	}

	sort.SliceStable(audio, func(i, j int) bool {
		return audio[i].AverageBitrate > audio[j].AverageBitrate
	})
	return audio[0], nil
}

func selectVideo(variants []models.StreamVariant, quality string) (models.StreamVariant, error) {
	progressive := filter(variants, func(v models.StreamVariant) bool {
		return v.Progressive && v.Container == "mp4"
	})

	if len(progressive) == 0 {
		// Last resort before giving up: any mp4-container variant.
		mp4s := filter(variants, func(v models.StreamVariant) bool {
			return v.Container == "mp4"
		})
		if len(mp4s) == 0 {
			return models.StreamVariant{}, ErrNoMatch
		}
		return mp4s[0], nil
	}

	switch quality {
	case "1080p", "720p":
		if v, ok := exactMatch(progressive, quality); ok {
			return v, nil
		}
		return highestResolution(progressive), nil
	default:
		if v, ok := exactMatch(progressive, "360p"); ok {
			return v, nil
		}
		return lowestResolution(progressive), nil
	}
}

func exactMatch(variants []models.StreamVariant, label string) (models.StreamVariant, bool) {
	for _, v := range variants {
		if v.ResolutionLabel == label {
			return v, true
		}
	}
	return models.StreamVariant{}, false
}

func highestResolution(variants []models.StreamVariant) models.StreamVariant {
	best := variants[0]
	for _, v := range variants[1:] {
		if resolutionHeight(v.ResolutionLabel) > resolutionHeight(best.ResolutionLabel) {
			best = v
		}
	}
	return best
}

func lowestResolution(variants []models.StreamVariant) models.StreamVariant {
	best := variants[0]
	for _, v := range variants[1:] {
		if resolutionHeight(v.ResolutionLabel) < resolutionHeight(best.ResolutionLabel) {
			best = v
		}
	}
	return best
}

// resolutionHeight parses the leading digits of a label like "720p" or
// "1080p60". Labels that do not parse rank as zero.
func resolutionHeight(label string) int {
	digits := label
	for i, r := range label {
		if r < '0' || r > '9' {
			digits = label[:i]
			break
		}
	}
	height, err := strconv.Atoi(strings.TrimSpace(digits))
	if err != nil {
		return 0
	}
	return height
}

func filter(variants []models.StreamVariant, keep func(models.StreamVariant) bool) []models.StreamVariant {
	out := make([]models.StreamVariant, 0, len(variants))
	for _, v := range variants {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
