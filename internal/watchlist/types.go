package watchlist

import (
	"errors"
	"time"
)

var (
	// ErrNotFound watchlist entry does not exist
	ErrNotFound = errors.New("watchlist entry not found")
	// ErrDuplicate ticker is already on the watchlist
	ErrDuplicate = errors.New("ticker already on watchlist")
)

// Entry one watchlisted ticker
type Entry struct {
	ID        int64     `json:"id"`
	Ticker    string    `json:"ticker"`
	Name      string    `json:"name,omitempty"`
	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note free-form research note attached to a ticker
type Note struct {
	ID        int64     `json:"id"`
	Ticker    string    `json:"ticker"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
