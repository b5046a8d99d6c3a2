// Package session creates and summarizes download session directories.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"audiorr/internal/domain/consts"
	"audiorr/internal/models"
	"audiorr/internal/utils/logging"
)

// NewSession creates (or reuses) the session directory layout for one run:
//
//	<baseDir>/download_session_<timestamp>/
//	  downloads/
//	  metadata/
//
// Creation is idempotent; existing content is never removed.
func NewSession(baseDir string, at time.Time) (*models.Session, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("no output base directory configured")
	}

	id := consts.SessionPrefix + at.Format(consts.SessionStamp)
	dir := filepath.Join(baseDir, id)

	s := &models.Session{
		ID:          id,
		Dir:         dir,
		DownloadDir: filepath.Join(dir, consts.DownloadsDirName),
		MetadataDir: filepath.Join(dir, consts.MetadataDirName),
		CreatedAt:   at,
	}

	for _, d := range []string{s.Dir, s.DownloadDir, s.MetadataDir} {
		if err := os.MkdirAll(d, consts.PermsDir); err != nil {
			return nil, fmt.Errorf("failed to create session directory %q: %w", d, err)
		}
	}

	logging.I("Download session created: %s", s.ID)
	return s, nil
}
