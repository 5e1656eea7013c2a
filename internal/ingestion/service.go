// Package ingestion imports catalog exports from blob storage into Postgres.
package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/outfitscope/outfitscope/internal/closet"
	"github.com/outfitscope/outfitscope/internal/storage"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// Store is the subset of closet.Service the importer writes through.
type Store interface {
	CreateImport(ctx context.Context, catalogID, storageRef string) (*closet.ImportRow, error)
	UpdateImportStatus(ctx context.Context, importID string, status closet.ImportStatus, itemCount int, errMsg string) error
	UpsertCatalog(ctx context.Context, c *wardrobe.Catalog, storageRef string) error
}

// Service orchestrates catalog imports.
type Service struct {
	store      Store
	blobs      storage.Client
	log        zerolog.Logger
	onImported func(catalogID string)
}

// NewService creates a new ingestion Service.
func NewService(store Store, blobs storage.Client, log zerolog.Logger) *Service {
	return &Service{store: store, blobs: blobs, log: log}
}

// OnImported registers a callback run after each successful import.
func (s *Service) OnImported(fn func(catalogID string)) {
	s.onImported = fn
}

// Import loads the stored export of catalogID, validates it and replaces the
// catalog in the database. The returned row reflects the final status; on
// failure both the row and the error are returned.
func (s *Service) Import(ctx context.Context, catalogID string) (row *closet.ImportRow, err error) {
	ref := storage.CatalogRef(catalogID)
	row, err = s.store.CreateImport(ctx, catalogID, ref)
	if err != nil {
		return nil, fmt.Errorf("create import: %w", err)
	}
	if err := s.store.UpdateImportStatus(ctx, row.ID, closet.ImportRunning, 0, ""); err != nil {
		return row, fmt.Errorf("update status to running: %w", err)
	}
	row.Status = closet.ImportRunning

	// On failure, mark import as failed
	defer func() {
		if err == nil {
			return
		}
		msg := err.Error()
		if updateErr := s.store.UpdateImportStatus(context.WithoutCancel(ctx), row.ID, closet.ImportFailed, 0, msg); updateErr != nil {
			s.log.Error().Err(updateErr).Str("import_id", row.ID).Msg("failed to update import status")
		}
		row.Status = closet.ImportFailed
		row.Error = &msg
	}()

	start := time.Now()
	data, err := s.blobs.GetCatalog(ctx, catalogID)
	if err != nil {
		return row, fmt.Errorf("load catalog blob: %w", err)
	}

	c, err := wardrobe.ParseCatalog(data)
	if err != nil {
		return row, fmt.Errorf("parse catalog: %w", err)
	}
	if c.ID == "" {
		c.ID = catalogID
	}
	if c.ID != catalogID {
		return row, fmt.Errorf("catalog blob %s holds catalog %q", ref, c.ID)
	}

	if err = s.store.UpsertCatalog(ctx, c, ref); err != nil {
		return row, fmt.Errorf("store catalog: %w", err)
	}

	if err = s.store.UpdateImportStatus(ctx, row.ID, closet.ImportCompleted, len(c.Items), ""); err != nil {
		return row, fmt.Errorf("finalize import: %w", err)
	}
	row.Status = closet.ImportCompleted
	row.ItemCount = len(c.Items)

	s.log.Info().
		Str("import_id", row.ID).
		Str("catalog_id", catalogID).
		Int("items", len(c.Items)).
		Dur("elapsed", time.Since(start)).
		Msg("catalog imported")

	if s.onImported != nil {
		s.onImported(catalogID)
	}
	return row, nil
}
