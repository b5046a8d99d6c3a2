package models

import "time"

// Run kinds, resolved once at the entry point.
const (
	KindVideo    = "video"
	KindChannel  = "channel"
	KindPlaylist = "playlist"
)

// RunSummary aggregates a session's results, written to
// '<session>/download_results.json' and returned by the web layer.
type RunSummary struct {
	SessionID  string `json:"session_id"`
	SessionDir string `json:"session_dir"`
	SourceURL  string `json:"source_url"`
	Kind       string `json:"kind"`

	TotalAttempted int `json:"total_attempted"`
	Succeeded      int `json:"succeeded"`
	Failed         int `json:"failed"`

	OutputFiles []string          `json:"output_files"`
	Failures    map[string]string `json:"failures"`

	ProcessingSeconds float64        `json:"processing_seconds"`
	Upload            *UploadSummary `json:"upload,omitempty"`
}

// ChannelSummary aggregates one channel scan, written to
// 'metadata/channel_summary.json' for channel runs.
type ChannelSummary struct {
	ChannelURL string    `json:"channel_url"`
	ChannelID  string    `json:"channel_id,omitempty"`
	ScanTime   time.Time `json:"scan_time"`

	TotalFound int `json:"total_videos_found"`
	Downloaded int `json:"downloaded_count"`
	Failed     int `json:"failed_count"`

	Results []VideoResult `json:"results"`
}

// UploadSummary aggregates one upload pass over a completed session.
type UploadSummary struct {
	SessionID string    `json:"session_id"`
	Bucket    string    `json:"bucket"`
	Prefix    string    `json:"session_prefix"`
	Time      time.Time `json:"upload_time"`

	TotalFiles int `json:"total_files"`
	Uploaded   int `json:"uploaded_count"`
	Failed     int `json:"failed_count"`

	Files []UploadResult `json:"files"`
}

// UploadResult records the outcome for one uploaded file.
type UploadResult struct {
	LocalPath  string `json:"local_path"`
	RemotePath string `json:"remote_path"`
	Size       int64  `json:"size"`
	Success    bool   `json:"success"`
	Err        string `json:"error,omitempty"`
}

// SessionRecord is the database row persisted for one session.
type SessionRecord struct {
	ID             string    `json:"id" db:"id"`
	Dir            string    `json:"dir" db:"dir"`
	SourceURL      string    `json:"source_url" db:"source_url"`
	Kind           string    `json:"kind" db:"kind"`
	TotalAttempted int       `json:"total_attempted" db:"total_attempted"`
	Succeeded      int       `json:"succeeded" db:"succeeded"`
	Failed         int       `json:"failed" db:"failed"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	FinishedAt     time.Time `json:"finished_at" db:"finished_at"`
}
