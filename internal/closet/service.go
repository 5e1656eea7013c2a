// Package closet stores wardrobes in Postgres: catalogs and their items,
// saved combinations, and import records.
package closet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/outfitscope/outfitscope/pkg/recipe"
	"github.com/outfitscope/outfitscope/pkg/scoring"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// ErrNotFound is returned when a catalog or record does not exist.
var ErrNotFound = errors.New("not found")

// Service provides catalog persistence backed by Postgres.
type Service struct {
	db *sql.DB
}

// NewService creates a new closet Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

var _ recipe.Lookup = (*Service)(nil)

const itemColumns = `item_id, category, clothing_type, color, material, formality, image_ref`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (wardrobe.Item, error) {
	var (
		it        wardrobe.Item
		formality string
	)
	if err := row.Scan(&it.ID, &it.Category, &it.Type, &it.Color, &it.Material, &formality, &it.ImageRef); err != nil {
		return it, err
	}
	it.Formality = wardrobe.Formality(formality)
	return it, nil
}

// UpsertCatalog replaces a catalog and all of its items.
func (s *Service) UpsertCatalog(ctx context.Context, c *wardrobe.Catalog, storageRef string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("upsert catalog %s: %w", c.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO catalogs (id, owner, name, storage_ref, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), now())
		 ON CONFLICT (id) DO UPDATE
		   SET owner = EXCLUDED.owner,
		       name = EXCLUDED.name,
		       storage_ref = COALESCE(EXCLUDED.storage_ref, catalogs.storage_ref),
		       updated_at = now()`,
		c.ID, c.Owner, c.Name, storageRef,
	)
	if err != nil {
		return fmt.Errorf("upsert catalog %s: %w", c.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE catalog_id = $1`, c.ID); err != nil {
		return fmt.Errorf("clear items of %s: %w", c.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (catalog_id, item_id, position, category, clothing_type, color, material, formality, image_ref)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return fmt.Errorf("prepare item insert: %w", err)
	}
	defer stmt.Close()

	for i, it := range c.Items {
		if _, err := stmt.ExecContext(ctx, c.ID, it.ID, i,
			it.Category, it.Type, it.Color, it.Material, string(it.Formality), it.ImageRef); err != nil {
			return fmt.Errorf("insert item %s: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog %s: %w", c.ID, err)
	}
	return nil
}

// GetCatalog loads a catalog with its items in position order.
func (s *Service) GetCatalog(ctx context.Context, catalogID string) (*wardrobe.Catalog, error) {
	c := &wardrobe.Catalog{ID: catalogID}
	err := s.db.QueryRowContext(ctx,
		`SELECT owner, name, updated_at FROM catalogs WHERE id = $1`,
		catalogID,
	).Scan(&c.Owner, &c.Name, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get catalog %s: %w", catalogID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog %s: %w", catalogID, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE catalog_id = $1 ORDER BY position`,
		catalogID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items of %s: %w", catalogID, err)
	}
	defer rows.Close()

	c.Items = []wardrobe.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

// FindByType implements recipe.Lookup.
func (s *Service) FindByType(ctx context.Context, catalogID, garmentType string) (*wardrobe.Item, error) {
	it, err := scanItem(s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE catalog_id = $1 AND clothing_type = $2
		 ORDER BY position LIMIT 1`,
		catalogID, garmentType,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s in %s: %w", garmentType, catalogID, err)
	}
	return &it, nil
}

// FindByTypeAndColor implements recipe.Lookup.
func (s *Service) FindByTypeAndColor(ctx context.Context, catalogID, garmentType, color string) (*wardrobe.Item, error) {
	it, err := scanItem(s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE catalog_id = $1 AND clothing_type = $2 AND color = $3
		 ORDER BY position LIMIT 1`,
		catalogID, garmentType, color,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s %s in %s: %w", color, garmentType, catalogID, err)
	}
	return &it, nil
}

// SavedCombination is an accepted combination persisted for a catalog.
type SavedCombination struct {
	ID        string          `json:"id"`
	CatalogID string          `json:"catalog_id"`
	Key       string          `json:"key"`
	ItemIDs   []string        `json:"item_ids"`
	Score     float64         `json:"score"`
	Items     []wardrobe.Item `json:"items"`
	SavedAt   time.Time       `json:"saved_at"`
}

// SaveCombinations persists accepted candidates in one transaction.
func (s *Service) SaveCombinations(ctx context.Context, catalogID string, cands []scoring.Candidate) ([]SavedCombination, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	saved := make([]SavedCombination, 0, len(cands))
	for _, c := range cands {
		itemsJSON, err := json.Marshal(c.Items)
		if err != nil {
			return nil, fmt.Errorf("marshal items: %w", err)
		}
		ids := make([]string, len(c.Items))
		for i, it := range c.Items {
			ids[i] = it.ID
		}

		sc := SavedCombination{CatalogID: catalogID, Key: c.Key, ItemIDs: ids, Score: c.Score, Items: c.Items}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO saved_combinations (catalog_id, combo_key, item_ids, score, items)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, saved_at`,
			catalogID, c.Key, pq.Array(ids), c.Score, itemsJSON,
		).Scan(&sc.ID, &sc.SavedAt)
		if err != nil {
			return nil, fmt.Errorf("save combination %s: %w", c.Key, err)
		}
		saved = append(saved, sc)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit saved combinations: %w", err)
	}
	return saved, nil
}

// ListSaved returns saved combinations for a catalog, newest first.
func (s *Service) ListSaved(ctx context.Context, catalogID string) ([]SavedCombination, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, catalog_id, combo_key, item_ids, score, items, saved_at
		 FROM saved_combinations WHERE catalog_id = $1 ORDER BY saved_at DESC`,
		catalogID,
	)
	if err != nil {
		return nil, fmt.Errorf("list saved combinations: %w", err)
	}
	defer rows.Close()

	saved := []SavedCombination{}
	for rows.Next() {
		var (
			sc        SavedCombination
			itemsJSON []byte
		)
		if err := rows.Scan(&sc.ID, &sc.CatalogID, &sc.Key, pq.Array(&sc.ItemIDs), &sc.Score, &itemsJSON, &sc.SavedAt); err != nil {
			return nil, fmt.Errorf("scan saved combination: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &sc.Items); err != nil {
			return nil, fmt.Errorf("decode saved items: %w", err)
		}
		saved = append(saved, sc)
	}
	return saved, rows.Err()
}
