// Package errconsts holds constant error messages
package errconsts

// Programs
const (
	YTDLPFailure = "yt-dlp failed for %q: %w"
)

// Storage
const (
	BucketProbeFailure = "bucket %q is not accessible: %w"
)
