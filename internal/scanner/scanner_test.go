package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"audiorr/internal/downloads"
	"audiorr/internal/models"
	"audiorr/internal/parsing"
	"audiorr/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister returns a fixed URL list, honoring the max cap like the real
// API client does.
type fakeLister struct {
	urls []string
	err  error
}

func (f *fakeLister) ListChannelVideoURLs(_ context.Context, _ string, max int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if max > 0 && len(f.urls) > max {
		return f.urls[:max], nil
	}
	return f.urls, nil
}

func (f *fakeLister) ListPlaylistVideoURLs(ctx context.Context, id string, max int) ([]string, error) {
	return f.ListChannelVideoURLs(ctx, id, max)
}

// fakeResolver answers a fixed channel ID.
type fakeResolver struct {
	id  string
	err error
}

func (f *fakeResolver) ResolveChannelID(context.Context, string) (string, error) {
	return f.id, f.err
}

// flakyFetcher fails URLs containing "bad" and succeeds otherwise.
type flakyFetcher struct{}

func (flakyFetcher) Fetch(_ context.Context, url, outDir string) (*downloads.FetchResult, error) {
	if strings.Contains(url, "bad") {
		return nil, errors.New("video unavailable")
	}

	id := parsing.ExtractVideoID(url)
	out := filepath.Join(outDir, id+".flac")
	if err := os.WriteFile(out, []byte("audio"), 0o644); err != nil {
		return nil, err
	}
	return &downloads.FetchResult{
		VideoID:    id,
		Title:      "Video " + id,
		Uploader:   "Creator",
		UploadDate: "20240101",
		OutputPath: out,
	}, nil
}

func newScanTestSession(t *testing.T) *models.Session {
	t.Helper()
	s, err := session.NewSession(t.TempDir(), time.Now())
	require.NoError(t, err)
	return s
}

// TestScanChannelPartialFailure tests that one failing video does not
// prevent the remaining videos from being attempted.
func TestScanChannelPartialFailure(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://www.youtube.com/watch?v=aaa11111111",
		"https://www.youtube.com/watch?v=bad22222222",
		"https://www.youtube.com/watch?v=ccc33333333",
	}
	s := New(&fakeLister{urls: urls}, &fakeResolver{id: "UCtest"}, downloads.NewDownloader(flakyFetcher{}), 0)

	sess := newScanTestSession(t)
	summary, err := s.ScanChannel(context.Background(), sess, "https://www.youtube.com/@creator")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalFound)
	assert.Equal(t, 2, summary.Downloaded)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, sess.Results, 3)

	// The failed video is still present, with a non-empty error message.
	assert.False(t, sess.Results[1].Success)
	assert.NotEmpty(t, sess.Results[1].Err)
	assert.True(t, sess.Results[2].Success, "video after the failure must still be attempted")
}

// TestScanChannelMaxVideos tests the configured cap.
func TestScanChannelMaxVideos(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://www.youtube.com/watch?v=vid00000001",
		"https://www.youtube.com/watch?v=vid00000002",
		"https://www.youtube.com/watch?v=vid00000003",
		"https://www.youtube.com/watch?v=vid00000004",
		"https://www.youtube.com/watch?v=vid00000005",
	}
	s := New(&fakeLister{urls: urls}, &fakeResolver{id: "UCtest"}, downloads.NewDownloader(flakyFetcher{}), 2)

	sess := newScanTestSession(t)
	summary, err := s.ScanChannel(context.Background(), sess, "https://www.youtube.com/@creator")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalFound)
	assert.Len(t, sess.Results, 2)
	assert.Equal(t, urls[0], sess.Results[0].URL, "API order must be preserved")
	assert.Equal(t, urls[1], sess.Results[1].URL)
}

// TestScanChannelWritesArtifacts tests channel_summary.json and
// video_urls.txt output.
func TestScanChannelWritesArtifacts(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://www.youtube.com/watch?v=aaa11111111",
		"https://www.youtube.com/watch?v=bad22222222",
	}
	s := New(&fakeLister{urls: urls}, &fakeResolver{id: "UCtest"}, downloads.NewDownloader(flakyFetcher{}), 0)

	sess := newScanTestSession(t)
	_, err := s.ScanChannel(context.Background(), sess, "https://www.youtube.com/@creator")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(sess.MetadataDir, "channel_summary.json"))

	data, err := os.ReadFile(filepath.Join(sess.Dir, "video_urls.txt"))
	require.NoError(t, err)
	report := string(data)
	assert.Contains(t, report, "Channel: https://www.youtube.com/@creator")
	assert.Contains(t, report, "Downloaded: 1")
	assert.Contains(t, report, "Failed: 1")
	assert.Contains(t, report, "bad22222222 | Error: ")
}

// TestScanChannelResolverError tests resolution failure propagation.
func TestScanChannelResolverError(t *testing.T) {
	t.Parallel()

	s := New(&fakeLister{}, &fakeResolver{err: errors.New("page had no identifier")}, downloads.NewDownloader(flakyFetcher{}), 0)

	sess := newScanTestSession(t)
	_, err := s.ScanChannel(context.Background(), sess, "https://www.youtube.com/@creator")
	require.Error(t, err)
	assert.Empty(t, sess.Results)
}

// TestScanPlaylist tests playlist ID extraction and the download loop.
func TestScanPlaylist(t *testing.T) {
	t.Parallel()

	urls := []string{"https://www.youtube.com/watch?v=aaa11111111"}
	s := New(&fakeLister{urls: urls}, &fakeResolver{id: ""}, downloads.NewDownloader(flakyFetcher{}), 0)

	sess := newScanTestSession(t)
	summary, err := s.ScanPlaylist(context.Background(), sess, "https://www.youtube.com/playlist?list=PLtest123")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Downloaded)
	assert.Equal(t, "PLtest123", summary.ChannelID)

	_, err = s.ScanPlaylist(context.Background(), sess, "https://www.youtube.com/watch?v=aaa11111111")
	require.Error(t, err, "URL without a list parameter must be rejected")
}
