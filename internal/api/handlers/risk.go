package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/aurelius/internal/risk"
	"github.com/wonny/aurelius/pkg/logger"
)

// RiskHandler handles risk analytics API endpoints
// ⭐ SSOT: 리스크 API 핸들러는 이 구조체에서만
type RiskHandler struct {
	service *risk.Service
	logger  *logger.Logger
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(service *risk.Service, log *logger.Logger) *RiskHandler {
	return &RiskHandler{
		service: service,
		logger:  log,
	}
}

// GetVaR computes Value-at-Risk for a ticker
// GET /api/risk/{ticker}/var?period=1y&confidence=0.95&holding=1&method=historical
func (h *RiskHandler) GetVaR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	period := queryString(r, "period", "1y")
	confidence := queryFloat(r, "confidence", 0.95)
	holding := queryInt(r, "holding", 1)
	method := risk.VaRMethod(queryString(r, "method", string(risk.MethodHistorical)))

	result, err := h.service.VaR(ctx, ticker, period, confidence, holding, method)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("VaR calculation failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetRatios computes Sharpe/Sortino for a ticker
// GET /api/risk/{ticker}/ratios?period=1y&risk_free=0.045
func (h *RiskHandler) GetRatios(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	period := queryString(r, "period", "1y")
	riskFree := queryFloat(r, "risk_free", 0.045)

	result, err := h.service.Ratios(ctx, ticker, period, riskFree)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Ratio calculation failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetDrawdown computes the maximum drawdown profile
// GET /api/risk/{ticker}/drawdown?period=1y
func (h *RiskHandler) GetDrawdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	result, err := h.service.MaxDrawdown(ctx, ticker, queryString(r, "period", "1y"))
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Drawdown calculation failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetVolatility computes rolling annualized volatility
// GET /api/risk/{ticker}/volatility?period=1y&window=30
func (h *RiskHandler) GetVolatility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	result, err := h.service.RollingVolatility(ctx, ticker,
		queryString(r, "period", "1y"), queryInt(r, "window", risk.DefaultVolatilityWindow))
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Volatility calculation failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetBeta regresses a ticker against a benchmark
// GET /api/risk/{ticker}/beta?benchmark=SPY&period=1y&risk_free=0.045
func (h *RiskHandler) GetBeta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	result, err := h.service.BetaAlpha(ctx, ticker,
		queryString(r, "benchmark", ""), queryString(r, "period", "1y"),
		queryFloat(r, "risk_free", 0.045))
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Beta calculation failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetCorrelations builds the correlation matrix for a ticker list
// GET /api/risk/correlations?tickers=AAPL,MSFT,GOOG&period=1y
func (h *RiskHandler) GetCorrelations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := queryString(r, "tickers", "")
	var tickers []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}

	result, err := h.service.Correlations(ctx, tickers, queryString(r, "period", "1y"))
	if err != nil {
		h.logger.WithError(err).WithField("tickers", raw).Warn("Correlation matrix failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetMonteCarlo runs a Monte Carlo simulation
// GET /api/risk/{ticker}/montecarlo?period=1y&sims=10000&holding=5&seed=0
func (h *RiskHandler) GetMonteCarlo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	cfg := risk.DefaultMonteCarloConfig()
	cfg.NumSimulations = queryInt(r, "sims", cfg.NumSimulations)
	cfg.HoldingPeriod = queryInt(r, "holding", cfg.HoldingPeriod)
	cfg.Seed = int64(queryInt(r, "seed", 0))
	if m := queryString(r, "method", ""); m != "" {
		cfg.Method = risk.MonteCarloMethod(m)
	}

	result, err := h.service.MonteCarlo(ctx, ticker, queryString(r, "period", "1y"), cfg)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Monte Carlo simulation failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
