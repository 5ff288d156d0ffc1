package transaction

import (
	"context"
	"time"
)

// ReferenceStore looks up foreign keys in the read-only reference tables.
// Lookups are case-insensitive on trimmed names; a nil id (with nil error)
// means the name did not resolve, which is a valid outcome, not a failure.
type ReferenceStore interface {
	TypeIDByName(ctx context.Context, name string) (*int64, error)
	CategoryIDByName(ctx context.Context, name string) (*int64, error)
}

// InsertRow is a fully resolved transaction ready to be stored. TypeID has
// been resolved; CategoryID is nil when no category applies. OccurredAt is
// an ISO 8601 string cast by the storage layer, or nil for "now".
type InsertRow struct {
	Amount        float64
	TypeID        int64
	CategoryID    *int64
	Description   *string
	PaymentMethod *string
	OccurredAt    *string
	SourceText    string
}

// ListQuery is a normalized, resolved filter for listing transactions. The
// service has already applied the exact-date-over-range precedence and
// decided the ordering; the repository only renders it.
type ListQuery struct {
	Text      *string
	TypeID    *int64
	DateLocal *string
	DateFrom  *string
	DateTo    *string
	Ascending bool
	Limit     int
}

// Assignment is one (column, value) pair of a dynamic UPDATE. Cast, when
// set, is a SQL cast appended to the placeholder (e.g. "::timestamptz").
// Values are always bound as parameters, never interpolated.
type Assignment struct {
	Column string
	Value  any
	Cast   string
}

// Repository is the storage surface the transaction operations run against.
type Repository interface {
	Insert(ctx context.Context, row InsertRow) (id int64, occurredAt time.Time, err error)
	List(ctx context.Context, q ListQuery) ([]*View, error)
	TotalBalance(ctx context.Context) (float64, error)
	DailyBalance(ctx context.Context, dateLocal string) (float64, error)
	// FindLatestMatch returns the id of the most recently occurred
	// transaction whose source_text or description contains matchText
	// (case-insensitive) on the given local day, or nil if none.
	FindLatestMatch(ctx context.Context, matchText, dateLocal string) (*int64, error)
	Update(ctx context.Context, id int64, fields []Assignment) (rowsAffected int64, err error)
	GetView(ctx context.Context, id int64) (*View, error)
}
