package uploads

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"audiorr/internal/models"
	"audiorr/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBlobStore records uploads in memory.
type fakeBlobStore struct {
	bucketErr error
	failPaths map[string]bool // object names to fail

	objects map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) EnsureBucket(context.Context) error { return f.bucketErr }

func (f *fakeBlobStore) Put(_ context.Context, objectName, localPath string) (int64, error) {
	if f.failPaths[objectName] {
		return 0, errors.New("injected upload failure")
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return 0, err
	}
	f.objects[objectName] = data
	return int64(len(data)), nil
}

func (f *fakeBlobStore) PutJSON(_ context.Context, objectName string, _ any) error {
	f.objects[objectName] = []byte("{}")
	return nil
}

func (f *fakeBlobStore) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	for name := range f.objects {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

func newUploadTestSession(t *testing.T) *models.Session {
	t.Helper()

	sess, err := session.NewSession(t.TempDir(), time.Now())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(sess.DownloadDir, "aaa.flac"), []byte("audio-a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sess.DownloadDir, "bbb.flac"), []byte("audio-b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sess.MetadataDir, "aaa_metadata.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sess.Dir, "video_urls.txt"), []byte("report"), 0o644))

	return sess
}

// TestBuildPlan tests that the plan covers exactly the files on disk.
func TestBuildPlan(t *testing.T) {
	t.Parallel()

	sess := newUploadTestSession(t)

	items, err := BuildPlan(sess.Dir)
	require.NoError(t, err)

	var rels []string
	for _, item := range items {
		rels = append(rels, item.RelativePath)
	}

	assert.Equal(t, []string{
		"downloads/aaa.flac",
		"downloads/bbb.flac",
		"metadata/aaa_metadata.json",
		"video_urls.txt",
	}, rels)
}

// TestUploadSessionMirrorsTree tests relative-path set equality between the
// local tree and the remote listing.
func TestUploadSessionMirrorsTree(t *testing.T) {
	t.Parallel()

	sess := newUploadTestSession(t)
	store := newFakeBlobStore()
	c := NewCoordinator(store, "test-bucket", "youtube_downloads")

	summary, err := c.UploadSession(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalFiles)
	assert.Equal(t, 4, summary.Uploaded)
	assert.Zero(t, summary.Failed)

	remote, err := c.ListSessionObjects(context.Background(), sess.ID)
	require.NoError(t, err)

	local, err := BuildPlan(sess.Dir)
	require.NoError(t, err)

	var localRels []string
	for _, item := range local {
		localRels = append(localRels, item.RelativePath)
	}
	// The local tree now also contains upload_summary.json, which the remote
	// listing carries as well.
	assert.ElementsMatch(t, localRels, remote)
}

// TestUploadSessionPartialFailure tests that one failed file does not halt
// the remaining uploads.
func TestUploadSessionPartialFailure(t *testing.T) {
	t.Parallel()

	sess := newUploadTestSession(t)
	store := newFakeBlobStore()
	c := NewCoordinator(store, "test-bucket", "youtube_downloads")

	store.failPaths = map[string]bool{
		c.SessionPrefix(sess.ID) + "/downloads/aaa.flac": true,
	}

	summary, err := c.UploadSession(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalFiles)
	assert.Equal(t, 3, summary.Uploaded)
	assert.Equal(t, 1, summary.Failed)

	var failed []string
	for _, f := range summary.Files {
		if !f.Success {
			assert.NotEmpty(t, f.Err)
			failed = append(failed, f.RemotePath)
		}
	}
	assert.Len(t, failed, 1)
	assert.Contains(t, failed[0], "downloads/aaa.flac")
}

// TestUploadSessionBucketInaccessible tests the fatal bucket probe path.
func TestUploadSessionBucketInaccessible(t *testing.T) {
	t.Parallel()

	sess := newUploadTestSession(t)
	store := newFakeBlobStore()
	store.bucketErr = errors.New("permission denied")
	c := NewCoordinator(store, "test-bucket", "youtube_downloads")

	_, err := c.UploadSession(context.Background(), sess)
	require.Error(t, err)
	assert.Empty(t, store.objects, "no uploads may start when the bucket is inaccessible")
}

// TestUploadSummaryCountInvariant tests uploaded + failed == total.
func TestUploadSummaryCountInvariant(t *testing.T) {
	t.Parallel()

	sess := newUploadTestSession(t)
	store := newFakeBlobStore()
	c := NewCoordinator(store, "test-bucket", "prefix")
	store.failPaths = map[string]bool{
		c.SessionPrefix(sess.ID) + "/video_urls.txt": true,
	}

	summary, err := c.UploadSession(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, summary.TotalFiles, summary.Uploaded+summary.Failed)
	assert.Len(t, summary.Files, summary.TotalFiles)
}
