// Package uploads mirrors completed session directories into a cloud bucket.
package uploads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"audiorr/internal/domain/errconsts"
	"audiorr/internal/utils/logging"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ErrNoBucket indicates no cloud bucket is configured. Upload passes cannot
// start without one.
var ErrNoBucket = errors.New("no cloud bucket configured")

// BlobStore is the object-store surface the upload coordinator depends on.
// Implemented by the GCS client; tests inject fakes.
type BlobStore interface {
	// EnsureBucket probes bucket access. Authentication or permission
	// failures here abort the entire upload pass.
	EnsureBucket(ctx context.Context) error

	Put(ctx context.Context, objectName, localPath string) (size int64, err error)
	PutJSON(ctx context.Context, objectName string, v any) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// BucketInfo describes the configured bucket.
type BucketInfo struct {
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	StorageClass string    `json:"storage_class"`
	Created      time.Time `json:"created"`
}

// GCSStore is the Google Cloud Storage implementation of BlobStore.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore builds a GCS-backed blob store. When credentialsPath is empty
// the client falls back to application default credentials.
func NewGCSStore(ctx context.Context, bucketName, credentialsPath string) (*GCSStore, error) {
	if bucketName == "" {
		return nil, ErrNoBucket
	}

	var opts []option.ClientOption
	if credentialsPath != "" {
		if _, err := os.Stat(credentialsPath); err != nil {
			return nil, fmt.Errorf("credentials file %q not readable: %w", credentialsPath, err)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSStore{
		client: client,
		bucket: bucketName,
	}, nil
}

// EnsureBucket verifies the bucket is reachable with the current credential.
func (g *GCSStore) EnsureBucket(ctx context.Context) error {
	if _, err := g.client.Bucket(g.bucket).Attrs(ctx); err != nil {
		return fmt.Errorf(errconsts.BucketProbeFailure, g.bucket, err)
	}
	return nil
}

// Put uploads one local file to the named object.
func (g *GCSStore) Put(ctx context.Context, objectName, localPath string) (int64, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %q: %w", localPath, err)
	}
	defer f.Close()

	w := g.client.Bucket(g.bucket).Object(objectName).NewWriter(ctx)
	n, err := io.Copy(w, f)
	if err != nil {
		_ = w.Close()
		return 0, fmt.Errorf("upload of %q failed: %w", localPath, err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("upload of %q failed on close: %w", localPath, err)
	}

	logging.D(1, "Uploaded %q -> gs://%s/%s (%d bytes)", localPath, g.bucket, objectName, n)
	return n, nil
}

// PutJSON writes v as an indented JSON object.
func (g *GCSStore) PutJSON(ctx context.Context, objectName string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON for %q: %w", objectName, err)
	}

	w := g.client.Bucket(g.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("upload of %q failed: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload of %q failed on close: %w", objectName, err)
	}
	return nil
}

// List returns the object names under prefix.
func (g *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects under %q: %w", prefix, err)
		}
		names = append(names, attrs.Name)
	}

	return names, nil
}

// Info returns descriptive attributes for the configured bucket.
func (g *GCSStore) Info(ctx context.Context) (*BucketInfo, error) {
	attrs, err := g.client.Bucket(g.bucket).Attrs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read bucket attrs: %w", err)
	}

	return &BucketInfo{
		Name:         attrs.Name,
		Location:     attrs.Location,
		StorageClass: attrs.StorageClass,
		Created:      attrs.Created,
	}, nil
}
