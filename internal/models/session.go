package models

import (
	"path/filepath"
	"time"
)

// Session represents one download run and its output directory tree.
//
// The result list is append-only while the run is active and frozen once
// the run summary has been produced.
type Session struct {
	ID          string    `json:"id"`
	Dir         string    `json:"dir"`
	DownloadDir string    `json:"download_dir"`
	MetadataDir string    `json:"metadata_dir"`
	SourceURL   string    `json:"source_url"`
	Kind        string    `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`

	Results []VideoResult `json:"results"`
}

// AppendResult records the outcome for one attempted video.
func (s *Session) AppendResult(r VideoResult) {
	s.Results = append(s.Results, r)
}

// ResultsPath returns the path of the run-level results file.
func (s *Session) ResultsPath() string {
	return filepath.Join(s.Dir, "download_results.json")
}

// VideoResult is the immutable outcome for one attempted video.
type VideoResult struct {
	URL          string         `json:"url"`
	VideoID      string         `json:"video_id,omitempty"`
	Success      bool           `json:"success"`
	OutputPath   string         `json:"output_path,omitempty"`
	MetadataPath string         `json:"metadata_path,omitempty"`
	Metadata     *VideoMetadata `json:"metadata,omitempty"`
	Err          string         `json:"error,omitempty"`
}

// VideoMetadata is the descriptive record extracted from the source
// platform, persisted as 'metadata/<video_id>_metadata.json'.
type VideoMetadata struct {
	URL             string  `json:"url"`
	VideoID         string  `json:"video_id"`
	Title           string  `json:"title"`
	DurationSeconds float64 `json:"duration_seconds"`
	Uploader        string  `json:"uploader"`
	UploadDate      string  `json:"upload_date"`
	OutputPath      string  `json:"output_path"`
	FileSize        int64   `json:"file_size"`
	DownloadTime    string  `json:"download_time"`
	Success         bool    `json:"success"`
	Error           string  `json:"error,omitempty"`
}
