package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"audiorr/internal/domain/consts"
	"audiorr/internal/downloads"
	"audiorr/internal/models"
	"audiorr/internal/parsing"
	fsWrite "audiorr/internal/utils/fs/write"
	"audiorr/internal/utils/logging"
)

// Scanner drives sequential downloads over all videos belonging to a
// channel or playlist.
type Scanner struct {
	lister     VideoLister
	resolver   ChannelIDResolver
	downloader *downloads.Downloader
	maxVideos  int
}

// New returns a scanner. maxVideos <= 0 means unbounded.
func New(lister VideoLister, resolver ChannelIDResolver, dl *downloads.Downloader, maxVideos int) *Scanner {
	return &Scanner{
		lister:     lister,
		resolver:   resolver,
		downloader: dl,
		maxVideos:  maxVideos,
	}
}

// ScanChannel enumerates a channel's videos and downloads each in turn,
// appending every result to the session. One failing video never aborts
// the remaining downloads.
func (s *Scanner) ScanChannel(ctx context.Context, sess *models.Session, channelURL string) (*models.ChannelSummary, error) {
	channelID, err := s.resolver.ResolveChannelID(ctx, channelURL)
	if err != nil {
		return nil, fmt.Errorf("could not resolve channel ID for %q: %w", channelURL, err)
	}

	urls, err := s.lister.ListChannelVideoURLs(ctx, channelID, s.maxVideos)
	if err != nil {
		return nil, fmt.Errorf("channel scan failed for %q: %w", channelURL, err)
	}

	return s.downloadAll(ctx, sess, channelURL, channelID, urls)
}

// ScanPlaylist enumerates a playlist's videos and downloads each in turn.
func (s *Scanner) ScanPlaylist(ctx context.Context, sess *models.Session, playlistURL string) (*models.ChannelSummary, error) {
	playlistID := parsing.ExtractPlaylistID(playlistURL)
	if playlistID == "" {
		return nil, fmt.Errorf("no playlist ID in URL %q", playlistURL)
	}

	urls, err := s.lister.ListPlaylistVideoURLs(ctx, playlistID, s.maxVideos)
	if err != nil {
		return nil, fmt.Errorf("playlist scan failed for %q: %w", playlistURL, err)
	}

	return s.downloadAll(ctx, sess, playlistURL, playlistID, urls)
}

// downloadAll runs the sequential per-video download loop and aggregates
// the channel summary.
func (s *Scanner) downloadAll(ctx context.Context, sess *models.Session, sourceURL, sourceID string, urls []string) (*models.ChannelSummary, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("no videos found for %q", sourceURL)
	}

	logging.I("Found %d videos for %q", len(urls), sourceURL)

	summary := &models.ChannelSummary{
		ChannelURL: sourceURL,
		ChannelID:  sourceID,
		ScanTime:   time.Now(),
		TotalFound: len(urls),
	}

	for i, url := range urls {
		logging.I("Downloading video %d/%d: %s", i+1, len(urls), url)

		result := s.downloader.DownloadVideo(ctx, sess, url)
		sess.AppendResult(result)
		summary.Results = append(summary.Results, result)

		if result.Success {
			summary.Downloaded++
		} else {
			summary.Failed++
			logging.W("Failed: %s - %s", url, result.Err)
		}
	}

	if err := writeChannelSummary(sess, summary); err != nil {
		logging.E("Could not write channel summary: %v", err)
	}
	if err := writeVideoURLsFile(sess, summary); err != nil {
		logging.E("Could not write video URLs file: %v", err)
	}

	return summary, nil
}

// writeChannelSummary persists the scan summary as
// 'metadata/channel_summary.json'.
func writeChannelSummary(sess *models.Session, summary *models.ChannelSummary) error {
	fpath := filepath.Join(sess.MetadataDir, consts.ChannelSummaryFile)
	return fsWrite.WriteJSONFile(fpath, summary)
}

// writeVideoURLsFile writes the run report to '<session>/video_urls.txt'.
func writeVideoURLsFile(sess *models.Session, summary *models.ChannelSummary) error {
	var b []byte

	b = fmt.Appendf(b, "Channel: %s\n", summary.ChannelURL)
	b = fmt.Appendf(b, "Scan Date: %s\n", summary.ScanTime.Format("2006-01-02 15:04:05"))
	b = fmt.Appendf(b, "Total Videos: %d\n", summary.TotalFound)
	b = fmt.Appendf(b, "Downloaded: %d\n", summary.Downloaded)
	b = fmt.Appendf(b, "Failed: %d\n", summary.Failed)

	b = fmt.Appendf(b, "\n=== DOWNLOADED VIDEOS ===\n")
	for _, r := range summary.Results {
		if r.Success {
			title := ""
			if r.Metadata != nil {
				title = r.Metadata.Title
			}
			b = fmt.Appendf(b, "%s | %s\n", r.URL, title)
		}
	}

	b = fmt.Appendf(b, "\n=== FAILED VIDEOS ===\n")
	for _, r := range summary.Results {
		if !r.Success {
			b = fmt.Appendf(b, "%s | Error: %s\n", r.URL, r.Err)
		}
	}

	fpath := filepath.Join(sess.Dir, consts.VideoURLsFile)
	return os.WriteFile(fpath, b, consts.PermsFile)
}
