package main

import (
	"context"
	"fmt"
	"os"

	"github.com/outfitscope/outfitscope/internal/storage"
)

// openBlobs builds the catalog/report blob store selected by STORAGE_BACKEND.
// The returned func releases backend clients.
func openBlobs(ctx context.Context, backend string) (storage.Client, func(), error) {
	noop := func() {}
	switch backend {
	case "", "local":
		return storage.NewLocalStorage(envOrDefault("LOCAL_STORAGE_PATH", "/tmp/outfitscope-data")), noop, nil
	case "s3":
		s, err := storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Prefix:    os.Getenv("S3_PREFIX"),
		})
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case "gcs":
		bucket := os.Getenv("GCS_BUCKET")
		if bucket == "" {
			return nil, noop, fmt.Errorf("GCS_BUCKET is required for the gcs storage backend")
		}
		s, err := storage.NewGCSStorage(ctx, bucket, os.Getenv("GCS_PREFIX"))
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown STORAGE_BACKEND %q (want local, s3 or gcs)", backend)
	}
}
