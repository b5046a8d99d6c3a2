package downloads

import (
	"context"

	"audiorr/internal/models"
	"audiorr/internal/parsing"
	"audiorr/internal/utils/logging"
)

// Downloader drives the per-video download and metadata flow.
type Downloader struct {
	fetcher VideoFetcher
}

// NewDownloader returns a downloader backed by the given fetcher.
func NewDownloader(fetcher VideoFetcher) *Downloader {
	return &Downloader{fetcher: fetcher}
}

// DownloadVideo attempts one video and returns its result.
//
// Failures (network, removed video, unsupported content, metadata write)
// are captured into the result with success=false. Errors never escape to
// the caller so one bad video cannot abort a batch.
func (d *Downloader) DownloadVideo(ctx context.Context, sess *models.Session, url string) models.VideoResult {
	result := models.VideoResult{
		URL:     url,
		VideoID: parsing.ExtractVideoID(url),
	}

	logging.I("Downloading video: %s", url)

	fr, err := d.fetcher.Fetch(ctx, url, sess.DownloadDir)
	if err != nil {
		logging.E("Download failed for %q: %v", url, err)
		result.Err = err.Error()
		return result
	}

	if fr.VideoID != "" {
		result.VideoID = fr.VideoID
	} else {
		// Fall back to the URL-derived ID for the metadata filename.
		fr.VideoID = result.VideoID
	}
	result.OutputPath = fr.OutputPath

	md := BuildMetadata(url, fr)
	mdPath, err := WriteMetadata(sess, md)
	if err != nil {
		logging.E("Metadata write failed for %q: %v", url, err)
		result.Err = err.Error()
		return result
	}

	result.MetadataPath = mdPath
	result.Metadata = md
	result.Success = true

	logging.S("Downloaded %q (%s)", md.Title, url)
	return result
}
