package closet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ImportStatus is the lifecycle state of a catalog import.
type ImportStatus string

const (
	ImportQueued    ImportStatus = "QUEUED"
	ImportRunning   ImportStatus = "RUNNING"
	ImportCompleted ImportStatus = "COMPLETED"
	ImportFailed    ImportStatus = "FAILED"
)

// ImportRow is one attempt to load a catalog blob into the database.
type ImportRow struct {
	ID          string       `json:"id"`
	CatalogID   string       `json:"catalog_id"`
	StorageRef  string       `json:"storage_ref"`
	Status      ImportStatus `json:"status"`
	ItemCount   int          `json:"item_count"`
	Error       *string      `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// CreateImport records a queued import.
func (s *Service) CreateImport(ctx context.Context, catalogID, storageRef string) (*ImportRow, error) {
	r := &ImportRow{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO imports (catalog_id, storage_ref)
		 VALUES ($1, $2)
		 RETURNING id, catalog_id, storage_ref, status, item_count, error, created_at, completed_at`,
		catalogID, storageRef,
	).Scan(&r.ID, &r.CatalogID, &r.StorageRef, &r.Status, &r.ItemCount, &r.Error, &r.CreatedAt, &r.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("create import: %w", err)
	}
	return r, nil
}

// UpdateImportStatus moves an import to a new status. Terminal statuses
// stamp completed_at.
func (s *Service) UpdateImportStatus(ctx context.Context, importID string, status ImportStatus, itemCount int, errMsg string) error {
	var errVal *string
	if errMsg != "" {
		errVal = &errMsg
	}
	terminal := status == ImportCompleted || status == ImportFailed
	_, err := s.db.ExecContext(ctx,
		`UPDATE imports
		 SET status = $2, item_count = $3, error = $4,
		     completed_at = CASE WHEN $5 THEN now() ELSE completed_at END
		 WHERE id = $1`,
		importID, string(status), itemCount, errVal, terminal,
	)
	if err != nil {
		return fmt.Errorf("update import %s: %w", importID, err)
	}
	return nil
}

// GetImport returns an import by ID.
func (s *Service) GetImport(ctx context.Context, importID string) (*ImportRow, error) {
	r := &ImportRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, catalog_id, storage_ref, status, item_count, error, created_at, completed_at
		 FROM imports WHERE id = $1`,
		importID,
	).Scan(&r.ID, &r.CatalogID, &r.StorageRef, &r.Status, &r.ItemCount, &r.Error, &r.CreatedAt, &r.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get import %s: %w", importID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get import %s: %w", importID, err)
	}
	return r, nil
}
