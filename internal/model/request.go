package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Quality is a user-facing download preset
type Quality string

const (
	QualityBest  Quality = "best"
	QualityWorst Quality = "worst"
	QualityAudio Quality = "audio"
	Quality720p  Quality = "720p"
	Quality480p  Quality = "480p"
)

// DefaultOutputTemplate names each item after its title and extension
const DefaultOutputTemplate = "%(title)s.%(ext)s"

// QualityOptions returns presets in the order the UI lists them
func QualityOptions() []Quality {
	return []Quality{QualityBest, QualityWorst, QualityAudio, Quality720p, Quality480p}
}

// ParseQuality maps user input to a preset. Empty input means best.
func ParseQuality(s string) (Quality, error) {
	q := Quality(strings.ToLower(strings.TrimSpace(s)))
	if q == "" {
		return QualityBest, nil
	}
	for _, known := range QualityOptions() {
		if q == known {
			return q, nil
		}
	}
	return "", fmt.Errorf("unknown quality preset %q", s)
}

// FormatSelector carries the format choice for one session. Expression is the
// yt-dlp style selector kept for logs. Named presets go to the ytdlp library
// verbatim through Quality; AudioOnly and MaxHeight are resolved per item
// against the formats the video actually offers.
type FormatSelector struct {
	Expression string
	Quality    string
	Ext        string
	AudioOnly  bool
	MaxHeight  int
}

// Selector returns the format selector for the preset
func (q Quality) Selector() FormatSelector {
	switch q {
	case QualityAudio:
		return FormatSelector{Expression: "bestaudio", AudioOnly: true}
	case Quality720p:
		return heightSelector(720)
	case Quality480p:
		return heightSelector(480)
	case QualityWorst:
		return FormatSelector{Expression: string(q), Quality: string(q)}
	default:
		return FormatSelector{Expression: string(QualityBest), Quality: string(QualityBest)}
	}
}

func heightSelector(height int) FormatSelector {
	return FormatSelector{
		Expression: fmt.Sprintf("bestvideo[height<=%d]+bestaudio", height),
		MaxHeight:  height,
	}
}

// DownloadRequest is the immutable input of one session
type DownloadRequest struct {
	URL               string
	Quality           Quality
	DestinationFolder string
}

// OutputTemplate returns the destination folder joined with the per-item template
func (r DownloadRequest) OutputTemplate() string {
	return filepath.Join(r.DestinationFolder, DefaultOutputTemplate)
}
