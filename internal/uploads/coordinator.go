package uploads

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"audiorr/internal/domain/consts"
	"audiorr/internal/models"
	fsWrite "audiorr/internal/utils/fs/write"
	"audiorr/internal/utils/logging"
)

// UploadItem pairs one local file with its bucket-relative destination.
type UploadItem struct {
	LocalPath    string
	RelativePath string
}

// BuildPlan walks the session directory and returns every regular file as
// an upload item, sorted by relative path. The plan covers exactly the set
// of files present at call time.
func BuildPlan(sessionDir string) ([]UploadItem, error) {
	var items []UploadItem

	err := filepath.WalkDir(sessionDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(sessionDir, p)
		if err != nil {
			return err
		}

		items = append(items, UploadItem{
			LocalPath:    p,
			RelativePath: filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk session directory %q: %w", sessionDir, err)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].RelativePath < items[j].RelativePath })
	return items, nil
}

// Coordinator uploads completed session directories to the object store.
type Coordinator struct {
	store  BlobStore
	bucket string
	prefix string
}

// NewCoordinator returns an upload coordinator writing under
// '<bucket>/<prefix>/<session_id>/'.
func NewCoordinator(store BlobStore, bucket, prefix string) *Coordinator {
	return &Coordinator{
		store:  store,
		bucket: bucket,
		prefix: prefix,
	}
}

// SessionPrefix returns the object prefix for a session's files.
func (c *Coordinator) SessionPrefix(sessionID string) string {
	return path.Join(c.prefix, sessionID)
}

// UploadSession mirrors the session directory into the bucket, preserving
// the local relative structure. Each file upload is independent: per-file
// failures are recorded and the pass continues. Only an inaccessible bucket
// aborts the pass.
func (c *Coordinator) UploadSession(ctx context.Context, sess *models.Session) (*models.UploadSummary, error) {
	if err := c.store.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	items, err := BuildPlan(sess.Dir)
	if err != nil {
		return nil, err
	}

	sessionPrefix := c.SessionPrefix(sess.ID)
	logging.I("Starting upload of session %q to gs://%s/%s", sess.ID, c.bucket, sessionPrefix)

	summary := &models.UploadSummary{
		SessionID:  sess.ID,
		Bucket:     c.bucket,
		Prefix:     sessionPrefix,
		Time:       time.Now(),
		TotalFiles: len(items),
	}

	for _, item := range items {
		objectName := path.Join(sessionPrefix, item.RelativePath)

		result := models.UploadResult{
			LocalPath:  item.LocalPath,
			RemotePath: objectName,
		}

		size, err := c.store.Put(ctx, objectName, item.LocalPath)
		if err != nil {
			logging.E("Upload failed: %s - %v", item.RelativePath, err)
			result.Err = err.Error()
			summary.Failed++
		} else {
			result.Size = size
			result.Success = true
			summary.Uploaded++
		}

		summary.Files = append(summary.Files, result)
	}

	// Summary lands both locally and next to the uploaded files.
	localSummary := filepath.Join(sess.Dir, consts.UploadSummaryFile)
	if err := fsWrite.WriteJSONFile(localSummary, summary); err != nil {
		logging.E("Could not write local upload summary: %v", err)
	}
	if err := c.store.PutJSON(ctx, path.Join(sessionPrefix, consts.UploadSummaryFile), summary); err != nil {
		logging.E("Could not write remote upload summary: %v", err)
	}

	logging.S("Session upload complete: %d/%d files uploaded", summary.Uploaded, summary.TotalFiles)
	return summary, nil
}

// ListSessionObjects returns the bucket-relative paths of a session's
// uploaded files, for verification against the local tree.
func (c *Coordinator) ListSessionObjects(ctx context.Context, sessionID string) ([]string, error) {
	sessionPrefix := c.SessionPrefix(sessionID) + "/"

	names, err := c.store.List(ctx, sessionPrefix)
	if err != nil {
		return nil, err
	}

	rels := make([]string, 0, len(names))
	for _, name := range names {
		rels = append(rels, strings.TrimPrefix(name, sessionPrefix))
	}
	sort.Strings(rels)
	return rels, nil
}
