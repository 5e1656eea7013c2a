package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSStorage implements Client using Google Cloud Storage.
type GCSStorage struct {
	client *gcs.Client
	bucket string
	prefix string
}

// NewGCSStorage creates a GCS-backed Client.
// It uses Application Default Credentials.
func NewGCSStorage(ctx context.Context, bucket, prefix string) (*GCSStorage, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket, prefix: prefix}, nil
}

// Close releases the underlying client.
func (s *GCSStorage) Close() error {
	return s.client.Close()
}

func (s *GCSStorage) put(ctx context.Context, key string, data []byte) error {
	key = s.prefix + key
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

func (s *GCSStorage) get(ctx context.Context, key string) ([]byte, error) {
	key = s.prefix + key
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, fmt.Errorf("gcs read %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (s *GCSStorage) PutCatalog(ctx context.Context, catalogID string, data []byte) error {
	if err := checkID(catalogID); err != nil {
		return err
	}
	return s.put(ctx, CatalogRef(catalogID), data)
}

func (s *GCSStorage) GetCatalog(ctx context.Context, catalogID string) ([]byte, error) {
	if err := checkID(catalogID); err != nil {
		return nil, err
	}
	return s.get(ctx, CatalogRef(catalogID))
}

func (s *GCSStorage) PutReport(ctx context.Context, catalogID, reportID string, data []byte) error {
	if err := checkID(catalogID, reportID); err != nil {
		return err
	}
	return s.put(ctx, ReportRef(catalogID, reportID), data)
}

func (s *GCSStorage) GetReport(ctx context.Context, catalogID, reportID string) ([]byte, error) {
	if err := checkID(catalogID, reportID); err != nil {
		return nil, err
	}
	return s.get(ctx, ReportRef(catalogID, reportID))
}
