package watchlist

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aapl", "AAPL"},
		{" msft ", "MSFT"},
		{"BRK.B", "BRK.B"},
	}

	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestRepositoryRoundTrip exercises CRUD against a live database.
// DATABASE_URL이 없거나 -short면 스킵
func TestRepositoryRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	repo := NewRepository(pool)

	entry, err := repo.Add(ctx, "test_tick", "Test Co")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	defer repo.Remove(ctx, entry.Ticker)

	if entry.Ticker != "TEST_TICK" {
		t.Errorf("Ticker = %s, want normalized TEST_TICK", entry.Ticker)
	}

	// Duplicate insert is rejected
	if _, err := repo.Add(ctx, "test_tick", "Test Co"); err != ErrDuplicate {
		t.Errorf("duplicate Add() error = %v, want ErrDuplicate", err)
	}

	ok, err := repo.Contains(ctx, "test_tick")
	if err != nil || !ok {
		t.Errorf("Contains() = %v, %v, want true", ok, err)
	}

	note, err := repo.AddNote(ctx, "test_tick", "undervalued on 2026 numbers")
	if err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}

	if err := repo.UpdateNote(ctx, note.ID, "revised"); err != nil {
		t.Errorf("UpdateNote() error = %v", err)
	}

	notes, err := repo.NotesFor(ctx, "test_tick")
	if err != nil || len(notes) == 0 {
		t.Errorf("NotesFor() = %d notes, %v", len(notes), err)
	}

	if err := repo.DeleteNote(ctx, note.ID); err != nil {
		t.Errorf("DeleteNote() error = %v", err)
	}

	if err := repo.Remove(ctx, "test_tick"); err != nil {
		t.Errorf("Remove() error = %v", err)
	}
	if err := repo.Remove(ctx, "test_tick"); err != ErrNotFound {
		t.Errorf("second Remove() error = %v, want ErrNotFound", err)
	}
}
