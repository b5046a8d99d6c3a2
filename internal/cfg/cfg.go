// Package cfg provides configuration and command-line interface setup for Audiorr.
package cfg

import (
	"fmt"
	"strings"

	"audiorr/internal/domain/consts"
	"audiorr/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "audiorr",
	Short: "Audiorr downloads YouTube audio and uploads it to cloud storage.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Lookup("help").Changed {
			return nil // Stop further execution if help is invoked
		}
		if err := verify(); err != nil {
			return err
		}
		viper.Set(keys.Execute, true)
		return nil
	},
}

// InitCommands initializes the root command and its flags.
func InitCommands() error {
	viper.SetEnvPrefix("AUDIORR")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_")) // Look up "output-dir" as AUDIORR_OUTPUT_DIR

	return initProgramFlags(rootCmd)
}

// Execute runs the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// verify checks that the user input flags are valid.
func verify() error {
	if rate := viper.GetInt(keys.SampleRate); rate <= 0 {
		return fmt.Errorf("invalid sample rate %d", rate)
	}

	if maxVideos := viper.GetInt(keys.MaxVideos); maxVideos < 0 {
		return fmt.Errorf("invalid max videos %d", maxVideos)
	}

	format := viper.GetString(keys.AudioFormat)
	switch format {
	case "flac", "mp3", "m4a", "opus", "wav", "vorbis", "aac", "alac", "best":
	default:
		return fmt.Errorf("invalid audio format %q", format)
	}

	if viper.GetBool(keys.UploadEnabled) && viper.GetString(keys.GCSBucket) == "" {
		return fmt.Errorf("upload requested but no bucket configured (use --%s)", keys.GCSBucket)
	}

	return nil
}

// initProgramFlags declares the root flags and binds them into viper.
func initProgramFlags(cmd *cobra.Command) error {
	cmd.PersistentFlags().StringP(keys.OutputDir, "o", "downloads", "Base directory for session output")
	cmd.PersistentFlags().String(keys.AudioFormat, consts.DefaultAudioFormat, "Target audio format (flac, mp3, m4a, opus, wav...)")
	cmd.PersistentFlags().Int(keys.SampleRate, consts.DefaultSampleRate, "Target audio sample rate in Hz")
	cmd.PersistentFlags().Int(keys.MaxVideos, consts.DefaultMaxVideos, "Maximum videos to download per channel or playlist scan")

	cmd.PersistentFlags().String(keys.YouTubeAPIKey, "", "YouTube Data API key (required for channel/playlist scans)")

	cmd.PersistentFlags().String(keys.GCSBucket, "", "Google Cloud Storage bucket for uploads")
	cmd.PersistentFlags().String(keys.GCSCredentials, "", "Path to a Google Cloud service account JSON file")
	cmd.PersistentFlags().String(keys.GCSPrefix, "youtube_downloads", "Object name prefix for uploaded sessions")
	cmd.PersistentFlags().Bool(keys.UploadEnabled, false, "Upload completed sessions to the configured bucket")

	cmd.PersistentFlags().String(keys.CookieSource, "", "Export browser cookies for age/member restricted videos (Kooky searches common browser locations)")

	cmd.PersistentFlags().StringP(keys.URL, "u", "", "Run a single download session for this URL and exit")
	cmd.PersistentFlags().StringP(keys.ServePort, "p", consts.DefaultPort, "Web server port")
	cmd.PersistentFlags().Int(keys.DebugLevel, 0, "Debug level (0-5)")

	flags := []string{
		keys.OutputDir, keys.AudioFormat, keys.SampleRate, keys.MaxVideos,
		keys.YouTubeAPIKey,
		keys.GCSBucket, keys.GCSCredentials, keys.GCSPrefix, keys.UploadEnabled,
		keys.CookieSource,
		keys.URL, keys.ServePort, keys.DebugLevel,
	}
	for _, f := range flags {
		if err := viper.BindPFlag(f, cmd.PersistentFlags().Lookup(f)); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", f, err)
		}
	}

	return nil
}
