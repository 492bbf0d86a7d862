package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/justestif/go-mood-to-music/internal/history"
	"github.com/justestif/go-mood-to-music/internal/mood"
	"github.com/justestif/go-mood-to-music/internal/recommend"
	"github.com/justestif/go-mood-to-music/internal/trends"
)

// History limits.
const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	trendWindow         = 500
)

// Error messages returned to clients.
const (
	msgNoMoodText    = "No mood text provided"
	msgNoMood        = "No mood selected"
	msgInvalidMood   = "Invalid mood selection"
	msgInvalidJSON   = "Invalid JSON body"
	msgInvalidLimit  = "Invalid limit"
	msgRenderFailure = "Failed to render template"
)

// MoodService answers mood requests. *recommend.Service satisfies it.
type MoodService interface {
	AnalyzeText(ctx context.Context, text string) (*recommend.Response, error)
	AnalyzeSelection(ctx context.Context, label string) (*recommend.Response, error)
	SpotifyStub(ctx context.Context, label string) (*recommend.Response, error)
}

var _ MoodService = (*recommend.Service)(nil)

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	moods     MoodService
	history   history.Store
	templates *Templates
	log       *zap.Logger
}

// NewHandlers creates a new Handlers instance. store may be nil.
func NewHandlers(moods MoodService, store history.Store, templates *Templates, log *zap.Logger) *Handlers {
	return &Handlers{
		moods:     moods,
		history:   store,
		templates: templates,
		log:       log,
	}
}

// analyzeRequest is the body of the analyze endpoints. Pointers tell an
// absent field from an empty one.
type analyzeRequest struct {
	MoodText *string `json:"mood_text"`
	Mood     *string `json:"mood"`
}

// Home handles the text-input page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, "home", newPageData("Mood to Music", r))
}

// Buttons handles the mood button page (GET /buttons).
func (h *Handlers) Buttons(w http.ResponseWriter, r *http.Request) {
	h.render(w, "buttons", newPageData("Pick a Mood", r))
}

func (h *Handlers) render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, page, data); err != nil {
		h.log.Error("rendering template", zap.String("page", page), zap.Error(err))
		http.Error(w, msgRenderFailure, http.StatusInternalServerError)
	}
}

// AnalyzeMood classifies free text (mood_text) or a button label (mood)
// and returns recommendations (POST /analyze_mood).
func (h *Handlers) AnalyzeMood(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if req.MoodText == nil && req.Mood != nil {
		resp, err := h.moods.AnalyzeSelection(r.Context(), *req.Mood)
		h.respond(w, resp, err, msgNoMood)
		return
	}

	var text string
	if req.MoodText != nil {
		text = *req.MoodText
	}
	resp, err := h.moods.AnalyzeText(r.Context(), text)
	h.respond(w, resp, err, msgNoMoodText)
}

// SpotifyAnalyzeMood answers a mood button from the Spotify table
// (POST /api/spotify/analyze_mood).
func (h *Handlers) SpotifyAnalyzeMood(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	var label string
	if req.Mood != nil {
		label = *req.Mood
	}
	resp, err := h.moods.SpotifyStub(r.Context(), label)
	h.respond(w, resp, err, msgNoMood)
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request) (analyzeRequest, bool) {
	var req analyzeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return req, false
	}
	return req, true
}

// respond maps service errors onto status codes. emptyMsg is the message
// for a missing mood on this endpoint.
func (h *Handlers) respond(w http.ResponseWriter, resp *recommend.Response, err error, emptyMsg string) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, mood.ErrEmptyMood):
		writeError(w, http.StatusBadRequest, emptyMsg)
	case errors.Is(err, mood.ErrUnknownMood):
		writeError(w, http.StatusBadRequest, msgInvalidMood)
	default:
		h.log.Error("analyzing mood", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Moods lists the selectable labels and their profiles (GET /api/moods).
func (h *Handlers) Moods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"moods":    mood.Labels(),
		"profiles": mood.Profiles(),
		"fallback": mood.Fallback(),
	})
}

// History lists recent analyses (GET /api/history?limit=N).
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, msgInvalidLimit)
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	entries := []history.Entry{}
	if h.history != nil {
		recent, err := h.history.Recent(r.Context(), limit)
		if err != nil {
			h.log.Error("listing history", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if recent != nil {
			entries = recent
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// Trends clusters recent analyses (GET /api/trends).
func (h *Handlers) Trends(w http.ResponseWriter, r *http.Request) {
	result := trends.Result{Clusters: []trends.Cluster{}}
	counts := []history.MoodCount{}

	if h.history != nil {
		entries, err := h.history.Recent(r.Context(), trendWindow)
		if err != nil {
			h.log.Error("loading history for trends", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if result, err = trends.Detect(entries, trends.DefaultConfig()); err != nil {
			h.log.Error("detecting trends", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if c, err := h.history.CountByMood(r.Context()); err == nil && c != nil {
			counts = c
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":       result.Total,
		"clusters":    result.Clusters,
		"mood_counts": counts,
	})
}

// Health reports liveness (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
