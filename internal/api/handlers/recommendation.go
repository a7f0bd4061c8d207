package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/internal/recommend"
	"github.com/wonny/advisor/pkg/logger"
)

// RecommendationHandler serves the recommendation pipeline over HTTP.
// The repository is optional: without a database the live endpoints
// still work and only history/stored-pick lookups return 503.
type RecommendationHandler struct {
	orchestrator *recommend.Orchestrator
	repo         *recommend.Repository
	universe     []string
	logger       *logger.Logger
}

// NewRecommendationHandler creates the recommendation handler
func NewRecommendationHandler(o *recommend.Orchestrator, repo *recommend.Repository, universe []string, log *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		orchestrator: o,
		repo:         repo,
		universe:     universe,
		logger:       log,
	}
}

// Analyze handles GET /api/recommendations/{symbol}?horizon=weekly
func (h *RecommendationHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	horizon, err := contracts.ParseHorizon(r.URL.Query().Get("horizon"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.orchestrator.Analyze(r.Context(), symbol, horizon)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// DeepAnalyze handles GET /api/analysis/{symbol}?horizon=monthly
func (h *RecommendationHandler) DeepAnalyze(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	horizon, err := contracts.ParseHorizon(r.URL.Query().Get("horizon"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	enriched, err := h.orchestrator.DeepAnalyze(r.Context(), symbol, horizon)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, enriched)
}

// Rank handles GET /api/rank?horizon=weekly&symbols=AAPL,MSFT&limit=10
func (h *RecommendationHandler) Rank(w http.ResponseWriter, r *http.Request) {
	horizon, err := contracts.ParseHorizon(r.URL.Query().Get("horizon"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	universe := h.symbolsParam(r)
	limit := intParam(r, "limit", 10)

	batch, err := h.orchestrator.Rank(r.Context(), horizon, universe, limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, batch)
}

// PickOfWeek handles GET /api/picks/week. The stored pick is served
// when present; ?live=true recomputes.
func (h *RecommendationHandler) PickOfWeek(w http.ResponseWriter, r *http.Request) {
	h.servePick(w, r, recommend.PickKindWeek, h.orchestrator.PickOfWeek)
}

// PickOfMonth handles GET /api/picks/month
func (h *RecommendationHandler) PickOfMonth(w http.ResponseWriter, r *http.Request) {
	h.servePick(w, r, recommend.PickKindMonth, h.orchestrator.PickOfMonth)
}

func (h *RecommendationHandler) servePick(
	w http.ResponseWriter,
	r *http.Request,
	kind string,
	compute func(ctx context.Context, universe []string) (*contracts.EnrichedRecommendation, error),
) {
	live := r.URL.Query().Get("live") == "true"

	if !live && h.repo != nil {
		pick, err := h.repo.LatestPick(r.Context(), kind)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if pick != nil {
			writeJSON(w, http.StatusOK, pick)
			return
		}
	}

	pick, err := compute(r.Context(), h.symbolsParam(r))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pick)
}

// History handles GET /api/history/{symbol}?limit=20
func (h *RecommendationHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "history storage not configured")
		return
	}

	symbol := strings.ToUpper(mux.Vars(r)["symbol"])
	limit := intParam(r, "limit", 20)

	records, err := h.repo.RecentRecommendations(r.Context(), symbol, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  symbol,
		"records": records,
	})
}

// symbolsParam reads the comma-separated symbols override, falling
// back to the configured universe
func (h *RecommendationHandler) symbolsParam(r *http.Request) []string {
	raw := r.URL.Query().Get("symbols")
	if raw == "" {
		return h.universe
	}

	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			symbols = append(symbols, strings.ToUpper(trimmed))
		}
	}
	return symbols
}

func intParam(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
