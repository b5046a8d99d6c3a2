package downloads

import (
	"context"
	"fmt"
	"path/filepath"

	"audiorr/internal/domain/errconsts"
	"audiorr/internal/utils/logging"

	"github.com/lrstanley/go-ytdlp"
)

// YtdlpFetcher downloads audio using yt-dlp.
type YtdlpFetcher struct {
	AudioFormat string
	SampleRate  int
	CookieFile  string
}

// NewYtdlpFetcher returns a fetcher targeting the given audio format and
// sample rate. An optional Netscape-format cookie file may be set for
// restricted videos.
func NewYtdlpFetcher(audioFormat string, sampleRate int, cookieFile string) *YtdlpFetcher {
	return &YtdlpFetcher{
		AudioFormat: audioFormat,
		SampleRate:  sampleRate,
		CookieFile:  cookieFile,
	}
}

// Fetch downloads and transcodes one video's audio into outDir. One
// attempt per video, no retries.
func (f *YtdlpFetcher) Fetch(ctx context.Context, url, outDir string) (*FetchResult, error) {
	dl := ytdlp.New().
		NoPlaylist().
		RestrictFilenames().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat(f.AudioFormat).
		PostProcessorArgs(fmt.Sprintf("ExtractAudio+ffmpeg:-ar %d -ac 1", f.SampleRate)).
		Output(filepath.Join(outDir, "%(id)s.%(ext)s"))

	if f.CookieFile != "" {
		dl = dl.Cookies(f.CookieFile)
	}

	logging.D(1, "Invoking yt-dlp for %q into %q", url, outDir)

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf(errconsts.YTDLPFailure, url, err)
	}

	info, err := res.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to read extracted info for %q: %w", url, err)
	}
	if len(info) == 0 {
		return nil, fmt.Errorf("yt-dlp returned no extracted info for %q", url)
	}

	first := info[0]
	fr := &FetchResult{VideoID: first.ID}

	if first.Title != nil {
		fr.Title = *first.Title
	}
	if first.Uploader != nil {
		fr.Uploader = *first.Uploader
	}
	if first.UploadDate != nil {
		fr.UploadDate = *first.UploadDate
	}
	if first.Duration != nil {
		fr.DurationSeconds = *first.Duration
	}
	if first.Filename != nil {
		fr.OutputPath = *first.Filename
	}

	if fr.OutputPath == "" {
		return nil, fmt.Errorf("yt-dlp reported no output file for %q", url)
	}
	return fr, nil
}
