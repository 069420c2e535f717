package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/wonny/aurelius/internal/marketdata"
	"github.com/wonny/aurelius/internal/risk"
	"github.com/wonny/aurelius/internal/valuation"
	"github.com/wonny/aurelius/internal/watchlist"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondDomainError maps calculation errors onto HTTP statuses.
// 에러 메시지에 이미 티커가 포함되어 있어 그대로 노출
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, marketdata.ErrNoData),
		errors.Is(err, valuation.ErrNoRevenue),
		errors.Is(err, watchlist.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, marketdata.ErrInvalidPeriod),
		errors.Is(err, valuation.ErrBadGrid),
		errors.Is(err, risk.ErrTooFewTickers),
		errors.Is(err, risk.ErrInvalidMethod),
		errors.Is(err, watchlist.ErrDuplicate):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, valuation.ErrTerminalGrowth),
		errors.Is(err, risk.ErrEmptySeries),
		errors.Is(err, risk.ErrInsufficientData):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// queryFloat parses an optional float query parameter
func queryFloat(r *http.Request, key string, def float64) float64 {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return def
}

// queryInt parses an optional int query parameter
func queryInt(r *http.Request, key string, def int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

// queryString returns an optional string query parameter
func queryString(r *http.Request, key, def string) string {
	if s := r.URL.Query().Get(key); s != "" {
		return s
	}
	return def
}
