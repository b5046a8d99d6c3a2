// Package main is the entrypoint of Audiorr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"audiorr/internal/cfg"
	"audiorr/internal/domain/keys"
	"audiorr/internal/models"
	"audiorr/internal/process"
	"audiorr/internal/server"
	"audiorr/internal/uploads"
	"audiorr/internal/utils/logging"

	"github.com/spf13/viper"
)

// main is the main entrypoint of the program (duh!).
func main() {
	startTime := time.Now()

	store, database, err := initializeApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Audiorr exiting: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.DB.Close(); err != nil {
			logging.E("Failed to close database: %v", err)
		}
		logging.CloseLogFile()
	}()

	if err := cfg.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !viper.GetBool(keys.Execute) {
		return // Exit early if not meant to execute (e.g. help invoked)
	}

	logging.Level = viper.GetInt(keys.DebugLevel)
	logging.I("Audiorr started at: %v", startTime.Format("2006-01-02 15:04:05.00 MST"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := process.New(pipelineConfig(), store.SessionStore())

	// One-shot mode: run a single URL and exit.
	if url := viper.GetString(keys.URL); url != "" {
		sum, err := pipeline.Run(ctx, url)
		if err != nil {
			if sum != nil {
				printSummary(sum)
			}
			logging.E("Run failed: %v", err)
			os.Exit(1)
		}
		printSummary(sum)

		logging.I("Audiorr finished at: %v (%.2f seconds elapsed)",
			time.Now().Format("2006-01-02 15:04:05.00 MST"), time.Since(startTime).Seconds())
		return
	}

	server.StartServer(viper.GetString(keys.ServePort), store, pipeline, bucketProber(ctx))
}

// pipelineConfig assembles the pipeline settings from the bound flags.
func pipelineConfig() process.Config {
	return process.Config{
		OutputDir:      viper.GetString(keys.OutputDir),
		AudioFormat:    viper.GetString(keys.AudioFormat),
		SampleRate:     viper.GetInt(keys.SampleRate),
		MaxVideos:      viper.GetInt(keys.MaxVideos),
		YouTubeAPIKey:  viper.GetString(keys.YouTubeAPIKey),
		GCSBucket:      viper.GetString(keys.GCSBucket),
		GCSCredentials: viper.GetString(keys.GCSCredentials),
		GCSPrefix:      viper.GetString(keys.GCSPrefix),
		UploadEnabled:  viper.GetBool(keys.UploadEnabled),
		CookieSource:   viper.GetString(keys.CookieSource),
	}
}

// bucketProber builds the storage prober for the web UI, or nil when no
// bucket is configured or the client cannot be created.
func bucketProber(ctx context.Context) server.StorageProber {
	bucket := viper.GetString(keys.GCSBucket)
	if bucket == "" {
		return nil
	}

	gcs, err := uploads.NewGCSStore(ctx, bucket, viper.GetString(keys.GCSCredentials))
	if err != nil {
		logging.W("Storage client unavailable: %v", err)
		return nil
	}
	return gcs
}

// printSummary reports the run outcome on the terminal.
func printSummary(sum *models.RunSummary) {
	fmt.Printf("\nSession %s (%s)\n", sum.SessionID, sum.Kind)
	fmt.Printf("Downloaded %d/%d videos in %.2f seconds\n", sum.Succeeded, sum.TotalAttempted, sum.ProcessingSeconds)
	for url, reason := range sum.Failures {
		fmt.Printf("  failed: %s (%s)\n", url, reason)
	}
	if sum.Upload != nil {
		fmt.Printf("Uploaded %d/%d files to gs://%s\n", sum.Upload.Uploaded, sum.Upload.TotalFiles, sum.Upload.Bucket)
	}
	fmt.Printf("Output directory: %s\n", sum.SessionDir)
}
