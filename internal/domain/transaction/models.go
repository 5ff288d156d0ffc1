package transaction

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrTypeNotResolved      = errors.New("transaction type could not be resolved (use type_id or type_name: INCOME/EXPENSES/TRANSFER)")
	ErrNothingToUpdate      = errors.New("no fields to update")
	ErrUpdateTargetRequired = errors.New("update requires an id, or match_text together with date_local")
	ErrTransactionNotFound  = errors.New("no transaction matched the given text and date")
)

// Query limits. The original tool left limit unbounded; MaxQueryLimit caps
// it defensively.
const (
	DefaultQueryLimit = 20
	MaxQueryLimit     = 100
)

// View is a denormalized transaction row as returned to callers: type and
// category are joined to their human-readable names. CategoryName is nil for
// transactions without a category.
type View struct {
	ID            int64     `json:"id"`
	Amount        float64   `json:"amount"`
	TypeName      string    `json:"type_name"`
	CategoryName  *string   `json:"category_name"`
	Description   *string   `json:"description"`
	PaymentMethod *string   `json:"payment_method"`
	OccurredAt    time.Time `json:"occurred_at"`
	SourceText    string    `json:"source_text"`
}

// AddParams contains caller-supplied arguments for recording a transaction.
// Amounts are positive magnitudes; direction is carried by the type, not the
// sign. OccurredAt is an ISO 8601 string passed through to the database cast
// so that malformed values surface as storage errors, like any other bad
// input to the engine.
type AddParams struct {
	Amount        float64
	SourceText    string
	OccurredAt    *string
	TypeID        *int64
	TypeName      *string
	CategoryID    *int64
	CategoryName  *string
	Description   *string
	PaymentMethod *string
}

// AddResult reports the stored row.
type AddResult struct {
	ID         int64
	OccurredAt time.Time
}

// QueryParams contains caller-supplied filters for listing transactions.
// All date fields are local calendar dates ("2006-01-02") in the assistant's
// fixed time zone.
type QueryParams struct {
	Text          *string
	TypeName      *string
	DateLocal     *string
	DateFromLocal *string
	DateToLocal   *string
	Limit         int
}

// UpdateParams identifies a target transaction (by id, or by match_text +
// date_local) and carries the fields to change. Absent fields are left
// untouched.
type UpdateParams struct {
	ID        *int64
	MatchText *string
	DateLocal *string

	Amount        *float64
	TypeID        *int64
	TypeName      *string
	CategoryID    *int64
	CategoryName  *string
	Description   *string
	PaymentMethod *string
	OccurredAt    *string
}

// hasMutations reports whether at least one mutable field was supplied.
func (p UpdateParams) hasMutations() bool {
	return p.Amount != nil ||
		p.TypeID != nil || p.TypeName != nil ||
		p.CategoryID != nil || p.CategoryName != nil ||
		p.Description != nil || p.PaymentMethod != nil ||
		p.OccurredAt != nil
}

// UpdateResult reports the outcome of an update. Updated is the post-update
// denormalized row; it is nil when the read-back failed (the mutation itself
// still counted in RowsAffected) or matched nothing.
type UpdateResult struct {
	RowsAffected int64
	ID           int64
	Updated      *View
}
