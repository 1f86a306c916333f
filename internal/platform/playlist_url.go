package platform

import (
	"fmt"
	"net/url"
	"strings"
)

// URL parameters
const (
	PlaylistURLParam       = "list="
	PlaylistParamSeparator = "&"
	PlaylistQueryKey       = "list"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Playlist title constants
const (
	DefaultPlaylistTitle = "Untitled Playlist"
	PlaylistSuffix       = " Playlist"
	MinPrefixLength      = 10
)

// isPlaylistURL checks if the URL carries a playlist parameter
func isPlaylistURL(rawURL string) bool {
	return strings.Contains(rawURL, PlaylistURLParam)
}

// extractPlaylistID extracts the playlist ID from a YouTube URL
// Supported formats:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func extractPlaylistID(rawURL string) (string, error) {
	if !isPlaylistURL(rawURL) {
		return "", fmt.Errorf("URL does not contain playlist parameter")
	}

	parts := strings.SplitN(rawURL, PlaylistURLParam, 2)
	playlistID := parts[1]
	if idx := strings.Index(playlistID, PlaylistParamSeparator); idx >= 0 {
		playlistID = playlistID[:idx]
	}

	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID")
	}
	return playlistID, nil
}

// stripPlaylistParam removes the list parameter so only the single video remains
func stripPlaylistParam(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if !q.Has(PlaylistQueryKey) {
		return rawURL
	}
	q.Del(PlaylistQueryKey)
	u.RawQuery = q.Encode()
	return u.String()
}

// videoURL builds the watch URL for a video ID
func videoURL(videoID string) string {
	return fmt.Sprintf(YouTubeVideoURLTemplate, videoID)
}

// playlistTitle generates a title for the playlist based on its entry titles
func playlistTitle(titles []string) string {
	if len(titles) == 0 {
		return DefaultPlaylistTitle
	}
	if len(titles) > 1 {
		prefix := findCommonPrefix(titles[0], titles[1])
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return titles[0] + PlaylistSuffix
}

// findCommonPrefix finds the common prefix between two strings
func findCommonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
