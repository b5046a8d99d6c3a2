// Package consts holds shared constant values.
package consts

// Session directory layout.
const (
	SessionPrefix = "download_session_"
	SessionStamp  = "20060102_150405"

	DownloadsDirName = "downloads"
	MetadataDirName  = "metadata"

	MetadataSuffix     = "_metadata.json"
	ChannelSummaryFile = "channel_summary.json"
	VideoURLsFile      = "video_urls.txt"
	ResultsFile        = "download_results.json"
	UploadSummaryFile  = "upload_summary.json"
)

// File permissions.
const (
	PermsDir  = 0o755
	PermsFile = 0o644
)

// Defaults.
const (
	DefaultAudioFormat = "flac"
	DefaultSampleRate  = 24000
	DefaultMaxVideos   = 2500
	DefaultPort        = "8828"
)
