// Package parsing provides URL classification and value parsing helpers.
package parsing

import (
	"fmt"
	"net/url"
	"strings"
)

// URLKind is the tagged classification of a submitted URL, resolved once
// at the entry point.
type URLKind int

const (
	KindUnknown URLKind = iota
	KindVideo
	KindChannel
	KindPlaylist
)

// String returns the kind name.
func (k URLKind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindChannel:
		return "channel"
	case KindPlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// channelMarkers identify channel-style YouTube URLs.
var channelMarkers = []string{"/channel/", "/c/", "/user/", "/@"}

// ClassifyURL determines whether a URL points at a single video, a channel,
// or a playlist. Returns an error for strings that are not YouTube URLs.
func ClassifyURL(rawURL string) (URLKind, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return KindUnknown, fmt.Errorf("empty URL")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return KindUnknown, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	if host != "youtube.com" && host != "youtu.be" {
		return KindUnknown, fmt.Errorf("unsupported host %q in URL %q", host, rawURL)
	}

	lower := strings.ToLower(u.Path)

	if strings.HasPrefix(lower, "/playlist") {
		return KindPlaylist, nil
	}

	for _, marker := range channelMarkers {
		if strings.Contains(lower, marker) {
			return KindChannel, nil
		}
	}

	if host == "youtu.be" && len(strings.Trim(u.Path, "/")) > 0 {
		return KindVideo, nil
	}
	if strings.HasPrefix(lower, "/watch") || strings.HasPrefix(lower, "/shorts/") || strings.HasPrefix(lower, "/live/") {
		return KindVideo, nil
	}

	return KindUnknown, fmt.Errorf("could not classify URL %q", rawURL)
}

// ExtractVideoID pulls the video identifier out of a video URL.
//
// Falls back to an empty string for URLs with no recognizable ID.
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "youtu.be" {
		return strings.Trim(u.Path, "/")
	}

	if id := u.Query().Get("v"); id != "" {
		return id
	}

	for _, prefix := range []string{"/shorts/", "/live/", "/embed/"} {
		if after, ok := strings.CutPrefix(u.Path, prefix); ok {
			return strings.Trim(after, "/")
		}
	}

	return ""
}

// ExtractChannelID returns the channel ID embedded in a '/channel/UC...'
// URL, or an empty string if the URL uses a handle or legacy form that
// requires resolution.
func ExtractChannelID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	if after, ok := strings.CutPrefix(u.Path, "/channel/"); ok {
		id := strings.Trim(after, "/")
		if i := strings.IndexByte(id, '/'); i != -1 {
			id = id[:i]
		}
		return id
	}
	return ""
}

// ExtractPlaylistID returns the 'list' parameter of a playlist URL.
func ExtractPlaylistID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return u.Query().Get("list")
}

// VideoURLFromID builds a canonical watch URL from a video ID.
func VideoURLFromID(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
