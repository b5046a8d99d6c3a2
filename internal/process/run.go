// Package process runs the download/upload pipeline for submitted URLs.
package process

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"audiorr/internal/contracts"
	"audiorr/internal/domain/setup"
	"audiorr/internal/downloads"
	"audiorr/internal/models"
	"audiorr/internal/parsing"
	"audiorr/internal/scanner"
	"audiorr/internal/scraper"
	"audiorr/internal/session"
	"audiorr/internal/uploads"
	fsWrite "audiorr/internal/utils/fs/write"
	"audiorr/internal/utils/logging"
)

// Config carries the orchestration settings for pipeline runs. It is passed
// in explicitly at construction time rather than read from shared state.
type Config struct {
	OutputDir   string
	AudioFormat string
	SampleRate  int
	MaxVideos   int

	YouTubeAPIKey string

	GCSBucket      string
	GCSCredentials string
	GCSPrefix      string
	UploadEnabled  bool

	CookieSource string
}

// sessionUploader is the upload pass surface the pipeline depends on.
type sessionUploader interface {
	UploadSession(ctx context.Context, sess *models.Session) (*models.UploadSummary, error)
}

// Pipeline executes one synchronous session per submitted URL.
type Pipeline struct {
	cfg   Config
	store contracts.SessionStore

	downloader *downloads.Downloader
	resolver   scanner.ChannelIDResolver

	// Factories, overridable in tests.
	newLister   func(ctx context.Context) (scanner.VideoLister, error)
	newUploader func(ctx context.Context) (sessionUploader, error)
}

// New builds a pipeline from explicit configuration. The store may be nil,
// in which case run history is not persisted.
func New(cfg Config, store contracts.SessionStore) *Pipeline {
	res := scraper.New()

	cookieFile := ""
	if cfg.CookieSource != "" {
		fpath := filepath.Join(setup.CfgDir, "cookies.txt")
		exported, err := res.ExportCookieFile(context.Background(), "https://www.youtube.com", fpath)
		if err != nil {
			logging.W("Could not export browser cookies: %v", err)
		} else {
			cookieFile = exported
		}
	}

	p := &Pipeline{
		cfg:        cfg,
		store:      store,
		resolver:   res,
		downloader: downloads.NewDownloader(downloads.NewYtdlpFetcher(cfg.AudioFormat, cfg.SampleRate, cookieFile)),
	}

	p.newLister = func(ctx context.Context) (scanner.VideoLister, error) {
		api, err := scanner.NewYouTubeAPI(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			return nil, err
		}
		return api, nil
	}
	p.newUploader = func(ctx context.Context) (sessionUploader, error) {
		blobStore, err := uploads.NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentials)
		if err != nil {
			return nil, err
		}
		return uploads.NewCoordinator(blobStore, cfg.GCSBucket, cfg.GCSPrefix), nil
	}

	return p
}

// Options override configured defaults for a single run. Nil fields fall
// back to the pipeline configuration.
type Options struct {
	MaxVideos *int
	Upload    *bool
}

// Run executes one full session for rawURL with the configured defaults.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (*models.RunSummary, error) {
	return p.RunWithOptions(ctx, rawURL, Options{})
}

// RunWithOptions executes one full session for rawURL: classify, download,
// summarize, optionally upload.
//
// Per-video failures land in the summary. Structural failures (bad URL,
// unwritable output directory, missing credentials) return an error before
// or instead of partial work. An upload failure is returned as an error
// alongside the completed download summary, since prior local downloads
// remain intact.
func (p *Pipeline) RunWithOptions(ctx context.Context, rawURL string, opts Options) (*models.RunSummary, error) {
	start := time.Now()

	maxVideos := p.cfg.MaxVideos
	if opts.MaxVideos != nil {
		maxVideos = *opts.MaxVideos
	}
	uploadEnabled := p.cfg.UploadEnabled
	if opts.Upload != nil {
		uploadEnabled = *opts.Upload
	}

	kind, err := parsing.ClassifyURL(rawURL)
	if err != nil {
		return nil, err
	}

	// Hard preconditions, checked before any filesystem work.
	if kind != parsing.KindVideo && p.cfg.YouTubeAPIKey == "" {
		return nil, scanner.ErrNoAPIKey
	}
	if uploadEnabled && p.cfg.GCSBucket == "" {
		return nil, uploads.ErrNoBucket
	}

	sess, err := session.NewSession(p.cfg.OutputDir, start)
	if err != nil {
		return nil, err
	}
	sess.SourceURL = rawURL
	sess.Kind = kind.String()

	p.recordSessionStart(sess)

	logging.I("=== Starting %s run for %s (session %s) ===", sess.Kind, rawURL, sess.ID)

	switch kind {
	case parsing.KindVideo:
		result := p.downloader.DownloadVideo(ctx, sess, rawURL)
		sess.AppendResult(result)

	case parsing.KindChannel, parsing.KindPlaylist:
		lister, err := p.newLister(ctx)
		if err != nil {
			return nil, err
		}
		sc := scanner.New(lister, p.resolver, p.downloader, maxVideos)

		if kind == parsing.KindChannel {
			_, err = sc.ScanChannel(ctx, sess, rawURL)
		} else {
			_, err = sc.ScanPlaylist(ctx, sess, rawURL)
		}
		if err != nil {
			p.recordSessionEnd(sess, start)
			return nil, err
		}
	}

	sum := session.Summarize(sess)
	sum.ProcessingSeconds = time.Since(start).Seconds()

	if err := session.WriteSummary(sess, sum); err != nil {
		logging.E("Could not write run summary: %v", err)
	}

	p.recordSessionEnd(sess, start)
	p.updateDownloadedURLs(sess)

	logging.I("=== Run complete: %d/%d videos downloaded ===", sum.Succeeded, sum.TotalAttempted)

	if uploadEnabled {
		uploader, err := p.newUploader(ctx)
		if err != nil {
			return sum, fmt.Errorf("upload pass failed: %w", err)
		}

		upSum, err := uploader.UploadSession(ctx, sess)
		if err != nil {
			return sum, fmt.Errorf("upload pass failed: %w", err)
		}
		sum.Upload = upSum
	}

	return sum, nil
}

// updateDownloadedURLs appends this run's successful URLs to the cumulative
// downloaded-urls.txt in the output base directory.
func (p *Pipeline) updateDownloadedURLs(sess *models.Session) {
	var urls []string
	for _, r := range sess.Results {
		if r.Success {
			urls = append(urls, r.URL)
		}
	}
	if len(urls) == 0 {
		return
	}

	fpath := filepath.Join(p.cfg.OutputDir, "downloaded-urls.txt")
	if err := fsWrite.AppendURLsToFile(fpath, urls); err != nil {
		logging.E("Failed to update downloaded-urls.txt: %v", err)
	}
}

// recordSessionStart persists the new session row. Store failures are
// logged, not fatal: the run itself owns the on-disk artifacts.
func (p *Pipeline) recordSessionStart(sess *models.Session) {
	if p.store == nil {
		return
	}

	rec := &models.SessionRecord{
		ID:        sess.ID,
		Dir:       sess.Dir,
		SourceURL: sess.SourceURL,
		Kind:      sess.Kind,
		CreatedAt: sess.CreatedAt,
	}
	if err := p.store.AddSession(rec); err != nil {
		logging.E("Could not record session %q: %v", sess.ID, err)
	}
}

// recordSessionEnd persists per-video results and final counts.
func (p *Pipeline) recordSessionEnd(sess *models.Session, start time.Time) {
	if p.store == nil {
		return
	}

	if err := p.store.AddVideoResults(sess.ID, sess.Results); err != nil {
		logging.E("Could not record results for session %q: %v", sess.ID, err)
	}

	rec := &models.SessionRecord{
		ID:         sess.ID,
		CreatedAt:  start,
		FinishedAt: time.Now(),
	}
	for _, r := range sess.Results {
		rec.TotalAttempted++
		if r.Success {
			rec.Succeeded++
		} else {
			rec.Failed++
		}
	}
	if err := p.store.FinishSession(rec); err != nil {
		logging.E("Could not finalize session %q: %v", sess.ID, err)
	}
}
