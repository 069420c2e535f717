package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/aurelius/internal/valuation"
	"github.com/wonny/aurelius/pkg/logger"
)

// ValuationHandler handles DCF valuation API endpoints
// ⭐ SSOT: 밸류에이션 API 핸들러는 이 구조체에서만
type ValuationHandler struct {
	service *valuation.Service
	logger  *logger.Logger
}

// NewValuationHandler creates a new valuation handler
func NewValuationHandler(service *valuation.Service, log *logger.Logger) *ValuationHandler {
	return &ValuationHandler{
		service: service,
		logger:  log,
	}
}

// GetDCF runs a DCF valuation for a ticker
// GET /api/valuation/{ticker}/dcf?terminal_growth=0.025&wacc=0.10
func (h *ValuationHandler) GetDCF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	opts := valuation.Options{
		TerminalGrowth: queryFloat(r, "terminal_growth", 0),
		WACCOverride:   queryFloat(r, "wacc", 0),
	}

	result, err := h.service.Valuate(ctx, ticker, opts)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("DCF valuation failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetWACC returns the CAPM discount-rate breakdown without running the DCF
// GET /api/valuation/{ticker}/wacc
func (h *ValuationHandler) GetWACC(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	result, err := h.service.WACC(ctx, ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("WACC computation failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetProjection returns the forecast series driving the DCF
// GET /api/valuation/{ticker}/projection
func (h *ValuationHandler) GetProjection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	result, err := h.service.Projection(ctx, ticker, valuation.Options{})
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Projection failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetSensitivity runs the WACC × growth sensitivity grid
// GET /api/valuation/{ticker}/sensitivity?wacc_lo=0.07&wacc_hi=0.13&growth_lo=0.015&growth_hi=0.035&steps=5
func (h *ValuationHandler) GetSensitivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	defaults := h.service.Assumptions()
	waccLo := queryFloat(r, "wacc_lo", 0.07)
	waccHi := queryFloat(r, "wacc_hi", 0.13)
	growthLo := queryFloat(r, "growth_lo", defaults.TerminalGrowth-0.01)
	growthHi := queryFloat(r, "growth_hi", defaults.TerminalGrowth+0.01)
	steps := queryInt(r, "steps", 5)

	grid, err := h.service.Sensitivity(ctx, ticker, waccLo, waccHi, growthLo, growthHi, steps)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Sensitivity analysis failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, grid)
}
