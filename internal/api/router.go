package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/aurelius/internal/api/handlers"
	"github.com/wonny/aurelius/pkg/logger"
)

// Handlers groups the API handler set for router wiring
type Handlers struct {
	Valuation *handlers.ValuationHandler
	Risk      *handlers.RiskHandler
	Market    *handlers.MarketHandler
	Watchlist *handlers.WatchlistHandler
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Valuation endpoints
	api.HandleFunc("/valuation/{ticker}/dcf", h.Valuation.GetDCF).Methods("GET")
	api.HandleFunc("/valuation/{ticker}/wacc", h.Valuation.GetWACC).Methods("GET")
	api.HandleFunc("/valuation/{ticker}/projection", h.Valuation.GetProjection).Methods("GET")
	api.HandleFunc("/valuation/{ticker}/sensitivity", h.Valuation.GetSensitivity).Methods("GET")

	// Risk endpoints
	api.HandleFunc("/risk/correlations", h.Risk.GetCorrelations).Methods("GET")
	api.HandleFunc("/risk/{ticker}/var", h.Risk.GetVaR).Methods("GET")
	api.HandleFunc("/risk/{ticker}/ratios", h.Risk.GetRatios).Methods("GET")
	api.HandleFunc("/risk/{ticker}/drawdown", h.Risk.GetDrawdown).Methods("GET")
	api.HandleFunc("/risk/{ticker}/volatility", h.Risk.GetVolatility).Methods("GET")
	api.HandleFunc("/risk/{ticker}/beta", h.Risk.GetBeta).Methods("GET")
	api.HandleFunc("/risk/{ticker}/montecarlo", h.Risk.GetMonteCarlo).Methods("GET")

	// Market data endpoints
	api.HandleFunc("/market/{ticker}/quote", h.Market.GetQuote).Methods("GET")
	api.HandleFunc("/market/{ticker}/candles", h.Market.GetCandles).Methods("GET")
	api.HandleFunc("/market/{ticker}/financials", h.Market.GetFinancials).Methods("GET")

	// Watchlist endpoints (optional: nil when no database is configured)
	if h.Watchlist != nil {
		api.HandleFunc("/watchlist", h.Watchlist.List).Methods("GET")
		api.HandleFunc("/watchlist", h.Watchlist.Add).Methods("POST")
		api.HandleFunc("/watchlist/notes/{id}", h.Watchlist.DeleteNote).Methods("DELETE")
		api.HandleFunc("/watchlist/{ticker}", h.Watchlist.Remove).Methods("DELETE")
		api.HandleFunc("/watchlist/{ticker}/notes", h.Watchlist.ListNotes).Methods("GET")
		api.HandleFunc("/watchlist/{ticker}/notes", h.Watchlist.AddNote).Methods("POST")
	}

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "aurelius-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
