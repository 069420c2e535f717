package watchlist

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists watchlist entries and research notes
// ⭐ SSOT: 워치리스트 영속성은 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new watchlist repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Add puts a ticker on the watchlist
func (r *Repository) Add(ctx context.Context, ticker, name string) (*Entry, error) {
	query := `
		INSERT INTO app.watchlist (ticker, name)
		VALUES ($1, $2)
		ON CONFLICT (ticker) DO NOTHING
		RETURNING id, ticker, name, added_at, updated_at
	`

	var e Entry
	err := r.pool.QueryRow(ctx, query, normalize(ticker), name).Scan(
		&e.ID, &e.Ticker, &e.Name, &e.AddedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Remove deletes a ticker from the watchlist along with its notes
func (r *Repository) Remove(ctx context.Context, ticker string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM app.watchlist WHERE ticker = $1`, normalize(ticker))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all watchlisted tickers, most recently added first
func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	query := `
		SELECT id, ticker, name, added_at, updated_at
		FROM app.watchlist
		ORDER BY added_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Ticker, &e.Name, &e.AddedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Contains reports whether a ticker is watchlisted
func (r *Repository) Contains(ctx context.Context, ticker string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM app.watchlist WHERE ticker = $1)`,
		normalize(ticker)).Scan(&exists)
	return exists, err
}

// =============================================================================
// Notes
// =============================================================================

// AddNote attaches a research note to a ticker
func (r *Repository) AddNote(ctx context.Context, ticker, body string) (*Note, error) {
	query := `
		INSERT INTO app.watchlist_notes (ticker, body)
		VALUES ($1, $2)
		RETURNING id, ticker, body, created_at, updated_at
	`

	var n Note
	err := r.pool.QueryRow(ctx, query, normalize(ticker), body).Scan(
		&n.ID, &n.Ticker, &n.Body, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// UpdateNote replaces a note's body
func (r *Repository) UpdateNote(ctx context.Context, id int64, body string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE app.watchlist_notes SET body = $2, updated_at = now() WHERE id = $1`,
		id, body)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNote removes a note
func (r *Repository) DeleteNote(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM app.watchlist_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// NotesFor returns all notes for a ticker, newest first
func (r *Repository) NotesFor(ctx context.Context, ticker string) ([]Note, error) {
	query := `
		SELECT id, ticker, body, created_at, updated_at
		FROM app.watchlist_notes
		WHERE ticker = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, normalize(ticker))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Ticker, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// normalize 티커는 항상 대문자로 저장
func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
