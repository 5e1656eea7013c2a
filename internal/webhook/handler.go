package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/outfitscope/outfitscope/internal/closet"
)

// Importer loads a stored catalog export into the database.
type Importer interface {
	Import(ctx context.Context, catalogID string) (*closet.ImportRow, error)
}

// Handler processes incoming catalog notifications. Imports run in the
// background so the sender is answered promptly.
type Handler struct {
	webhookSecret []byte
	importer      Importer
	log           zerolog.Logger
	timeout       time.Duration
	wg            sync.WaitGroup
}

// NewHandler creates a new webhook Handler.
func NewHandler(webhookSecret []byte, importer Importer, log zerolog.Logger) *Handler {
	return &Handler{
		webhookSecret: webhookSecret,
		importer:      importer,
		log:           log,
		timeout:       2 * time.Minute,
	}
}

// Wait blocks until all background imports have finished.
func (h *Handler) Wait() {
	h.wg.Wait()
}

// ServeHTTP handles incoming webhook requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if err := VerifySignature(body, r.Header.Get(SignatureHeader), h.webhookSecret); err != nil {
		h.log.Warn().Err(err).Msg("webhook signature verification failed")
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	eventType := r.Header.Get(EventHeader)
	if eventType == "" {
		http.Error(w, "missing "+EventHeader+" header", http.StatusBadRequest)
		return
	}

	event, err := ParseEvent(eventType, body)
	if err != nil {
		h.log.Warn().Err(err).Str("event", eventType).Msg("webhook parse error")
		http.Error(w, "unsupported event", http.StatusBadRequest)
		return
	}

	switch e := event.(type) {
	case *CatalogUploadedEvent:
		h.enqueueImport(r.Context(), e)
	case *PingEvent:
		h.log.Info().Msg("webhook ping")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}

func (h *Handler) enqueueImport(ctx context.Context, e *CatalogUploadedEvent) {
	// Detach from the request so the import outlives the response.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer cancel()
		row, err := h.importer.Import(ctx, e.CatalogID)
		if err != nil {
			h.log.Error().Err(err).Str("catalog_id", e.CatalogID).Msg("catalog import failed")
			return
		}
		h.log.Info().
			Str("catalog_id", e.CatalogID).
			Str("import_id", row.ID).
			Int("items", row.ItemCount).
			Msg("catalog import completed")
	}()
}
