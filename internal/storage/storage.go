// Package storage keeps catalog exports and saved ranking reports in blob
// storage: the local filesystem, S3, or GCS.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a blob does not exist.
var ErrNotFound = errors.New("blob not found")

// Client abstracts blob storage for catalogs and reports.
type Client interface {
	PutCatalog(ctx context.Context, catalogID string, data []byte) error
	GetCatalog(ctx context.Context, catalogID string) ([]byte, error)
	PutReport(ctx context.Context, catalogID, reportID string, data []byte) error
	GetReport(ctx context.Context, catalogID, reportID string) ([]byte, error)
}

// CatalogRef is the object key a catalog export is stored under. It is
// recorded as the catalog's storage_ref.
func CatalogRef(catalogID string) string {
	return path.Join("catalogs", catalogID+".json")
}

// ReportRef is the object key of a saved ranking report.
func ReportRef(catalogID, reportID string) string {
	return path.Join("reports", catalogID, reportID+".json")
}

// checkID rejects identifiers that would escape their key prefix.
func checkID(ids ...string) error {
	for _, id := range ids {
		if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
			return fmt.Errorf("invalid blob id %q", id)
		}
	}
	return nil
}

// LocalStorage implements Client using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) put(key string, data []byte) error {
	p := filepath.Join(s.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(p, data, 0o644)
}

func (s *LocalStorage) get(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.BaseDir, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", key, ErrNotFound)
	}
	return data, err
}

// PutCatalog stores a catalog export.
func (s *LocalStorage) PutCatalog(ctx context.Context, catalogID string, data []byte) error {
	if err := checkID(catalogID); err != nil {
		return err
	}
	return s.put(CatalogRef(catalogID), data)
}

// GetCatalog retrieves a catalog export.
func (s *LocalStorage) GetCatalog(ctx context.Context, catalogID string) ([]byte, error) {
	if err := checkID(catalogID); err != nil {
		return nil, err
	}
	return s.get(CatalogRef(catalogID))
}

// PutReport stores a ranking report.
func (s *LocalStorage) PutReport(ctx context.Context, catalogID, reportID string, data []byte) error {
	if err := checkID(catalogID, reportID); err != nil {
		return err
	}
	return s.put(ReportRef(catalogID, reportID), data)
}

// GetReport retrieves a ranking report.
func (s *LocalStorage) GetReport(ctx context.Context, catalogID, reportID string) ([]byte, error) {
	if err := checkID(catalogID, reportID); err != nil {
		return nil, err
	}
	return s.get(ReportRef(catalogID, reportID))
}
