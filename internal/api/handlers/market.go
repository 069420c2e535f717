package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/aurelius/internal/marketdata"
	"github.com/wonny/aurelius/pkg/logger"
)

// MarketHandler exposes raw market data for charting
type MarketHandler struct {
	provider marketdata.Provider
	logger   *logger.Logger
}

// NewMarketHandler creates a new market data handler
func NewMarketHandler(provider marketdata.Provider, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		provider: provider,
		logger:   log,
	}
}

// GetQuote returns the current market snapshot
// GET /api/market/{ticker}/quote
func (h *MarketHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	info, err := h.provider.GetStockInfo(ctx, ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Quote fetch failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// GetCandles returns daily OHLCV bars
// GET /api/market/{ticker}/candles?period=1y
func (h *MarketHandler) GetCandles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	candles, err := h.provider.GetDailyCandles(ctx, ticker, queryString(r, "period", "1y"))
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Candle fetch failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, candles)
}

// GetFinancials returns annual statement history
// GET /api/market/{ticker}/financials
func (h *MarketHandler) GetFinancials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	years, err := h.provider.GetFinancials(ctx, ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Financials fetch failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, years)
}
