package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/aurelius/internal/watchlist"
	"github.com/wonny/aurelius/pkg/logger"
)

// WatchlistHandler handles watchlist CRUD endpoints
type WatchlistHandler struct {
	repo   *watchlist.Repository
	logger *logger.Logger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(repo *watchlist.Repository, log *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		repo:   repo,
		logger: log,
	}
}

type addEntryRequest struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

type addNoteRequest struct {
	Body string `json:"body"`
}

// List returns all watchlisted tickers
// GET /api/watchlist
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list watchlist")
		respondError(w, http.StatusInternalServerError, "failed to list watchlist")
		return
	}
	if entries == nil {
		entries = []watchlist.Entry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// Add puts a ticker on the watchlist
// POST /api/watchlist
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	entry, err := h.repo.Add(r.Context(), req.Ticker, req.Name)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// Remove deletes a ticker from the watchlist
// DELETE /api/watchlist/{ticker}
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	if err := h.repo.Remove(r.Context(), ticker); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"removed": ticker})
}

// ListNotes returns research notes for a ticker
// GET /api/watchlist/{ticker}/notes
func (h *WatchlistHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	notes, err := h.repo.NotesFor(r.Context(), ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to list notes")
		respondError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	if notes == nil {
		notes = []watchlist.Note{}
	}
	respondJSON(w, http.StatusOK, notes)
}

// AddNote attaches a note to a ticker
// POST /api/watchlist/{ticker}/notes
func (h *WatchlistHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Body == "" {
		respondError(w, http.StatusBadRequest, "note body is required")
		return
	}

	note, err := h.repo.AddNote(r.Context(), ticker, req.Body)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

// DeleteNote removes a note by id
// DELETE /api/watchlist/notes/{id}
func (h *WatchlistHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	if err := h.repo.DeleteNote(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
