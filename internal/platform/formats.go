package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/ytdlp/types"
	"github.com/ytget/ytdlp/youtube/formats"

	"github.com/ytget/yt-fetch/internal/model"
)

// ErrNoAudioStream is returned when an audio preset meets a video without
// audio-only streams
var ErrNoAudioStream = errors.New("no audio-only stream available")

// File naming
const (
	DefaultExt       = "mp4"
	AudioMP4Ext      = "m4a"
	FallbackFileName = "video"
	titlePlaceholder = "%(title)s"
	extPlaceholder   = "%(ext)s"
)

var heightLabelRe = regexp.MustCompile(`([0-9]{3,4})p`)

// unsafeFileChars are replaced in titles used as file names
var unsafeFileChars = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_", "\n", " ", "\r", " ", "\t", " ",
)

// formatChoice is the selector handed to the library and the format it picks
type formatChoice struct {
	selector string
	format   *types.Format
}

// ext returns the file extension of the chosen format
func (c formatChoice) ext(fallback string) string {
	if c.format != nil {
		return extFromMime(c.format.MimeType)
	}
	if fallback != "" {
		return strings.TrimPrefix(fallback, ".")
	}
	return DefaultExt
}

// chooseFormat maps the session selector onto one item's formats. Named
// presets pass through. Audio takes the highest-bitrate audio stream and a
// height cap takes the best progressive stream at or below it, both pinned by
// itag. The library cannot merge separate video and audio streams.
func chooseFormat(available []types.Format, sel model.FormatSelector) (formatChoice, error) {
	selector := sel.Quality

	switch {
	case sel.AudioOnly:
		f := bestAudio(available)
		if f == nil {
			return formatChoice{}, ErrNoAudioStream
		}
		selector = itagSelector(f.Itag)
	case sel.MaxHeight > 0:
		if f := bestProgressive(available, sel.MaxHeight); f != nil {
			selector = itagSelector(f.Itag)
		} else {
			selector = fmt.Sprintf("height<=%d", sel.MaxHeight)
		}
	}

	if len(available) == 0 {
		return formatChoice{selector: selector}, nil
	}
	return formatChoice{selector: selector, format: formats.SelectFormat(available, selector, sel.Ext)}, nil
}

func itagSelector(itag int) string {
	return "itag=" + strconv.Itoa(itag)
}

// bestAudio returns the audio-only format with the highest bitrate
func bestAudio(available []types.Format) *types.Format {
	var best *types.Format
	for i := range available {
		f := &available[i]
		if f.Itag <= 0 || !strings.HasPrefix(mimeBase(f.MimeType), "audio/") {
			continue
		}
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}
	return best
}

// bestProgressive returns the tallest muxed video+audio format not above
// maxHeight, using bitrate as the tiebreaker
func bestProgressive(available []types.Format, maxHeight int) *types.Format {
	var best *types.Format
	bestHeight := 0
	for i := range available {
		f := &available[i]
		if f.Itag <= 0 || !isProgressive(f.MimeType) {
			continue
		}
		h := labelHeight(f.Quality)
		if h <= 0 || h > maxHeight {
			continue
		}
		if best == nil || h > bestHeight || (h == bestHeight && f.Bitrate > best.Bitrate) {
			best = f
			bestHeight = h
		}
	}
	return best
}

// isProgressive reports whether a video MIME type lists both a video and an
// audio codec
func isProgressive(mime string) bool {
	if !strings.HasPrefix(mimeBase(mime), "video/") {
		return false
	}
	i := strings.Index(mime, "codecs=")
	return i >= 0 && strings.Contains(mime[i:], ",")
}

// labelHeight parses the pixel height out of a quality label such as "720p60"
func labelHeight(label string) int {
	m := heightLabelRe.FindStringSubmatch(label)
	if len(m) < 2 {
		return 0
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return h
}

func mimeBase(mime string) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return mime
}

// extFromMime returns the file extension for a format MIME type
func extFromMime(mime string) string {
	base := mimeBase(mime)
	if base == "audio/mp4" {
		return AudioMP4Ext
	}
	if i := strings.Index(base, "/"); i >= 0 && i < len(base)-1 {
		return base[i+1:]
	}
	return DefaultExt
}

// itemPath expands the output template for one item
func itemPath(template, title, ext string) string {
	name := safeFileName(title)
	base := strings.NewReplacer(titlePlaceholder, name, extPlaceholder, ext).Replace(filepath.Base(template))
	return filepath.Join(filepath.Dir(template), base)
}

// safeFileName turns a video title into a file name component
func safeFileName(title string) string {
	name := strings.Trim(strings.TrimSpace(unsafeFileChars.Replace(title)), ".")
	if name == "" {
		return FallbackFileName
	}
	return name
}
