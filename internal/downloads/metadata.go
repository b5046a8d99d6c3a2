package downloads

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"audiorr/internal/domain/consts"
	"audiorr/internal/models"
	"audiorr/internal/parsing"
	fsWrite "audiorr/internal/utils/fs/write"
	"audiorr/internal/utils/logging"
)

// BuildMetadata converts a fetch result into the per-video metadata record.
func BuildMetadata(url string, fr *FetchResult) *models.VideoMetadata {
	md := &models.VideoMetadata{
		URL:             url,
		VideoID:         fr.VideoID,
		Title:           fr.Title,
		DurationSeconds: fr.DurationSeconds,
		Uploader:        fr.Uploader,
		OutputPath:      fr.OutputPath,
		DownloadTime:    time.Now().Format(time.RFC3339),
		Success:         true,
	}

	date, err := parsing.NormalizeUploadDate(fr.UploadDate)
	if err != nil {
		logging.W("Could not parse upload date %q for %q: %v", fr.UploadDate, url, err)
		date = fr.UploadDate
	}
	md.UploadDate = date

	if info, err := os.Stat(fr.OutputPath); err == nil {
		md.FileSize = info.Size()
	}

	return md
}

// WriteMetadata persists the metadata record into the session's metadata
// directory as '<video_id>_metadata.json', returning the written path.
func WriteMetadata(sess *models.Session, md *models.VideoMetadata) (string, error) {
	if md.VideoID == "" {
		return "", fmt.Errorf("metadata for %q has no video ID", md.URL)
	}

	fpath := filepath.Join(sess.MetadataDir, md.VideoID+consts.MetadataSuffix)
	if err := fsWrite.WriteJSONFile(fpath, md); err != nil {
		return "", err
	}
	return fpath, nil
}
