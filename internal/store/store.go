// Package store provides the memo repository and the SQLite client beneath it.
package store

import (
	"context"

	"github.com/rcliao/memo/internal/model"
)

// Store defines the memo persistence interface.
type Store interface {
	// EnsureSchema creates the memos table if it does not exist.
	EnsureSchema(ctx context.Context) error

	// Add inserts a memo and returns the id assigned by the database.
	Add(ctx context.Context, memo model.Memo) (int64, error)

	// GetAll returns every memo, most recently inserted first.
	GetAll(ctx context.Context) ([]model.Memo, error)

	// Delete removes the memo with memo's id. Missing rows are not an error.
	Delete(ctx context.Context, memo model.Memo) error

	// Count returns the number of stored memos.
	Count(ctx context.Context) (int, error)
}
