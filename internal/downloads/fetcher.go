// Package downloads orchestrates per-video audio downloads and metadata writes.
package downloads

import "context"

// FetchResult holds what the extraction step reports for one video.
type FetchResult struct {
	VideoID         string
	Title           string
	Uploader        string
	UploadDate      string // raw extractor value, normalized downstream
	DurationSeconds float64
	OutputPath      string
}

// VideoFetcher fetches and transcodes the audio for one video URL into
// outDir. Implemented by the yt-dlp backed fetcher; tests inject fakes.
type VideoFetcher interface {
	Fetch(ctx context.Context, url, outDir string) (*FetchResult, error)
}
