// Package api implements the hosted Outfitscope REST API.
// It ranks, matches and assembles outfits over catalogs stored in Postgres.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/outfitscope/outfitscope/internal/closet"
	"github.com/outfitscope/outfitscope/internal/storage"
	"github.com/outfitscope/outfitscope/pkg/match"
	"github.com/outfitscope/outfitscope/pkg/recipe"
	"github.com/outfitscope/outfitscope/pkg/scoring"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// Store is the persistence the API reads and writes. closet.Service
// implements it.
type Store interface {
	recipe.Lookup
	GetCatalog(ctx context.Context, catalogID string) (*wardrobe.Catalog, error)
	SaveCombinations(ctx context.Context, catalogID string, cands []scoring.Candidate) ([]closet.SavedCombination, error)
	ListSaved(ctx context.Context, catalogID string) ([]closet.SavedCombination, error)
	GetImport(ctx context.Context, importID string) (*closet.ImportRow, error)
}

// Importer loads a stored catalog export into the Store.
type Importer interface {
	Import(ctx context.Context, catalogID string) (*closet.ImportRow, error)
}

// Deps bundles what a Handler needs. Engine, Matcher and Boxes fall back to
// defaults when unset; Blobs and Importer may be nil, which disables reports
// and imports respectively.
type Deps struct {
	Store    Store
	Importer Importer
	Blobs    storage.Client
	Engine   *scoring.Engine
	Matcher  *match.Matcher
	Recipe   *recipe.Recipe
	Boxes    map[match.Slot]string
	Cache    *CatalogCache
	Log      zerolog.Logger
}

// Handler is the top-level API handler for the hosted service.
type Handler struct {
	store    Store
	importer Importer
	blobs    storage.Client
	engine   *scoring.Engine
	matcher  *match.Matcher
	recipe   recipe.Recipe
	boxes    map[match.Slot]string
	cache    *CatalogCache
	log      zerolog.Logger
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	h := &Handler{
		store:    d.Store,
		importer: d.Importer,
		blobs:    d.Blobs,
		engine:   d.Engine,
		matcher:  d.Matcher,
		boxes:    d.Boxes,
		cache:    d.Cache,
		log:      d.Log,
	}
	if h.engine == nil {
		h.engine = scoring.DefaultEngine()
	}
	if h.matcher == nil {
		h.matcher = match.DefaultMatcher()
	}
	if d.Recipe != nil {
		h.recipe = *d.Recipe
	} else {
		h.recipe = recipe.Default()
	}
	if h.boxes == nil {
		h.boxes = match.DefaultBoxes()
	}
	if h.cache == nil {
		h.cache = NewCatalogCacheFromEnv()
	}
	return h
}

// InvalidateCatalog drops a catalog from the cache. Imports call it.
func (h *Handler) InvalidateCatalog(catalogID string) {
	h.cache.Invalidate(catalogID)
}

// loadCatalog returns a catalog from the cache or the store.
func (h *Handler) loadCatalog(ctx context.Context, catalogID string) (*wardrobe.Catalog, error) {
	if c := h.cache.Get(catalogID); c != nil {
		return c, nil
	}
	c, err := h.store.GetCatalog(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	h.cache.Put(catalogID, c)
	return c, nil
}

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps persistence errors onto status codes.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, what string, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, closet.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, what+" not found")
	case errors.As(err, &maxErr):
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "failed to load "+what)
	}
}

// writeDecodeError reports a bad request body.
func writeDecodeError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
