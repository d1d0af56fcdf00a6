package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/pipeline"
	"github.com/mkessler/deckplan/pkg/render"
)

// planResponse is the body returned when a plan is created or fetched.
type planResponse struct {
	ID        string              `json:"id"`
	Plan      *compose.DeckPlan   `json:"plan"`
	Stats     *planStats          `json:"stats,omitempty"`
	CacheInfo *pipeline.CacheInfo `json:"cache_info,omitempty"`
}

type planStats struct {
	SlideCount    int    `json:"slide_count"`
	OutlineMillis int64  `json:"outline_ms"`
	PlanMillis    int64  `json:"plan_ms"`
	OutlineHash   string `json:"outline_hash,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreatePlan runs outline → plan for the posted options and stores
// the result. Rendering happens lazily via the artifact endpoint.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse request body"))
		return
	}

	ctx := r.Context()
	outline, err := s.runner.Outline(ctx, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	plan, err := s.runner.Plan(ctx, outline, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(ctx, plan); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("created plan", "id", plan.ID, "slides", len(plan.Slides))
	writeJSON(w, http.StatusCreated, planResponse{
		ID:   plan.ID,
		Plan: plan,
		Stats: &planStats{
			SlideCount: len(plan.Slides),
		},
	})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, planResponse{ID: plan.ID, Plan: plan})
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	summaries, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": summaries})
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetArtifact renders a stored plan in the requested format. The
// pipeline's artifact cache makes repeated fetches cheap.
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if _, err := render.ParseFormat(format); err != nil {
		writeError(w, err)
		return
	}

	plan, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	opts := pipeline.Options{
		Formats:    []string{format},
		ShowLabels: r.URL.Query().Get("labels") == "true",
		ShowGrid:   r.URL.Query().Get("grid") == "true",
		Branding:   r.URL.Query().Get("branding") == "true",
	}
	artifacts, err := s.runner.Render(r.Context(), plan, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(render.Format(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func contentType(format render.Format) string {
	switch format {
	case render.FormatSVG:
		return "image/svg+xml"
	case render.FormatJSON:
		return "application/json"
	case render.FormatPNG:
		return "image/png"
	case render.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}
