// Package scanner enumerates channel videos and drives their downloads.
package scanner

import (
	"context"
	"errors"
	"fmt"

	"audiorr/internal/parsing"
	"audiorr/internal/utils/logging"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrNoAPIKey indicates the YouTube Data API credential is missing. Channel
// scans cannot start without it.
var ErrNoAPIKey = errors.New("no YouTube API key configured")

const pageSize = 50

// VideoLister enumerates video URLs in the order the metadata API returns
// them. Implemented by the Data API client; tests inject fakes.
type VideoLister interface {
	ListChannelVideoURLs(ctx context.Context, channelID string, max int) ([]string, error)
	ListPlaylistVideoURLs(ctx context.Context, playlistID string, max int) ([]string, error)
}

// ChannelIDResolver resolves channel URLs to canonical channel IDs.
type ChannelIDResolver interface {
	ResolveChannelID(ctx context.Context, channelURL string) (string, error)
}

// YouTubeAPI lists channel videos through the YouTube Data API v3.
type YouTubeAPI struct {
	svc *youtube.Service
}

// NewYouTubeAPI builds a Data API client. Fails if no API key is provided;
// this is a hard precondition for channel scans.
func NewYouTubeAPI(ctx context.Context, apiKey string) (*YouTubeAPI, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &YouTubeAPI{svc: svc}, nil
}

// ListChannelVideoURLs returns watch URLs for a channel's uploads, in API
// order, capped at max when max > 0.
func (y *YouTubeAPI) ListChannelVideoURLs(ctx context.Context, channelID string, max int) ([]string, error) {
	resp, err := y.svc.Channels.List([]string{"contentDetails"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("channel lookup failed for %q: %w", channelID, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("no channel found with ID %q", channelID)
	}

	uploads := resp.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if uploads == "" {
		return nil, fmt.Errorf("channel %q has no uploads playlist", channelID)
	}

	return y.ListPlaylistVideoURLs(ctx, uploads, max)
}

// ListPlaylistVideoURLs returns watch URLs for a playlist's items, in API
// order, capped at max when max > 0.
func (y *YouTubeAPI) ListPlaylistVideoURLs(ctx context.Context, playlistID string, max int) ([]string, error) {
	var urls []string
	pageToken := ""

	for {
		call := y.svc.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("playlist items lookup failed for %q: %w", playlistID, err)
		}

		for _, item := range resp.Items {
			urls = append(urls, parsing.VideoURLFromID(item.ContentDetails.VideoId))
			if max > 0 && len(urls) >= max {
				logging.I("Limited channel scan to first %d videos", max)
				return urls, nil
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return urls, nil
}
