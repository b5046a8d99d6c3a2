// Package keys holds viper/flag keys used across Audiorr.
package keys

// Terminal keys
const (
	OutputDir   string = "output-dir"
	AudioFormat string = "audio-format"
	SampleRate  string = "sample-rate"
	MaxVideos   string = "max-videos"

	YouTubeAPIKey string = "youtube-api-key"

	GCSBucket      string = "gcs-bucket"
	GCSCredentials string = "gcs-credentials"
	GCSPrefix      string = "gcs-prefix"
	UploadEnabled  string = "upload"

	CookieSource string = "cookie-source"

	URL        string = "url"
	ServePort  string = "port"
	DebugLevel string = "debug-level"
)

// Primary program
const (
	Execute string = "execute"
)
