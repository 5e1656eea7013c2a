package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/outfitscope/outfitscope/pkg/filter"
	"github.com/outfitscope/outfitscope/pkg/scoring"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// rankRequest is the JSON body for POST /api/v1/combinations.
type rankRequest struct {
	Selection *wardrobe.Selection `json:"selection" validate:"required"`
	Where     string              `json:"where,omitempty" validate:"max=1024"`
	Explain   bool                `json:"explain,omitempty"`
}

// catalogRankRequest is the JSON body for POST .../catalogs/{id}/combinations.
type catalogRankRequest struct {
	Categories []string `json:"categories" validate:"required,min=1,max=16,dive,required"`
	Where      string   `json:"where,omitempty" validate:"max=1024"`
	Explain    bool     `json:"explain,omitempty"`
	Save       bool     `json:"save,omitempty"`
}

type rankResponse struct {
	*scoring.Result
	ReportID string `json:"report_id,omitempty"`
}

func (h *Handler) handleRankSelection(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := decode(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	res, status, err := h.rank(r.Context(), req.Selection, req.Where, req.Explain)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rankResponse{Result: res})
}

func (h *Handler) handleRankCatalog(w http.ResponseWriter, r *http.Request) {
	catalogID := chi.URLParam(r, "catalogID")

	var req catalogRankRequest
	if err := decode(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	c, err := h.loadCatalog(r.Context(), catalogID)
	if err != nil {
		h.writeStoreError(w, r, "catalog", err)
		return
	}

	res, status, err := h.rank(r.Context(), c.Selection(req.Categories...), req.Where, req.Explain)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	resp := rankResponse{Result: res}
	if req.Save {
		if h.blobs == nil {
			writeError(w, http.StatusNotImplemented, "report storage is not configured")
			return
		}
		data, err := json.Marshal(res)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to encode report")
			return
		}
		resp.ReportID = uuid.NewString()
		if err := h.blobs.PutReport(r.Context(), catalogID, resp.ReportID, data); err != nil {
			h.log.Error().Err(err).Str("catalog_id", catalogID).Msg("store report")
			writeError(w, http.StatusInternalServerError, "failed to store report")
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if h.blobs == nil {
		writeError(w, http.StatusNotImplemented, "report storage is not configured")
		return
	}
	data, err := h.blobs.GetReport(r.Context(), chi.URLParam(r, "catalogID"), chi.URLParam(r, "reportID"))
	if err != nil {
		h.writeStoreError(w, r, "report", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// rank filters sel and runs the engine. On error it also returns the status
// code to answer with.
func (h *Handler) rank(ctx context.Context, sel *wardrobe.Selection, where string, explain bool) (*scoring.Result, int, error) {
	if where != "" {
		f, err := filter.Compile(where)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		sel = f.Selection(sel)
	}

	var (
		res *scoring.Result
		err error
	)
	if explain {
		res, err = h.engine.Explain(ctx, sel)
	} else {
		res, err = h.engine.GenerateAndRank(ctx, sel)
	}
	if err != nil {
		return nil, http.StatusServiceUnavailable, err
	}
	combinationsScored.Add(float64(res.Generated))
	return res, http.StatusOK, nil
}
