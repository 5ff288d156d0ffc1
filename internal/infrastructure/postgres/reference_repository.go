package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ReferenceRepository reads the transaction_types and categories reference
// tables. Both are effectively immutable at runtime and only ever read from
// here; a name that matches nothing yields a nil id, not an error.
type ReferenceRepository struct {
	db *DB
}

func NewReferenceRepository(db *DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) TypeIDByName(ctx context.Context, name string) (*int64, error) {
	query := `SELECT id FROM transaction_types WHERE UPPER(type) = UPPER($1) LIMIT 1`

	var id int64
	err := r.db.QueryRowContext(ctx, query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up transaction type: %w", err)
	}
	return &id, nil
}

func (r *ReferenceRepository) CategoryIDByName(ctx context.Context, name string) (*int64, error) {
	query := `SELECT id FROM categories WHERE UPPER(name) = UPPER($1) LIMIT 1`

	var id int64
	err := r.db.QueryRowContext(ctx, query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	return &id, nil
}
