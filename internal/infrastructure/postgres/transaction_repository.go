package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"assessor/internal/domain/transaction"
)

// viewColumns is the denormalized projection shared by list, read-back and
// match queries: type and category joined to their human-readable names,
// left join for category so uncategorized transactions still appear.
const viewColumns = `t.id, t.amount, tt.type, c.name, t.description, t.payment_method, t.occurred_at, t.source_text
		FROM transactions t
		JOIN transaction_types tt ON tt.id = t."type"
		LEFT JOIN categories c ON c.id = t.category_id`

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Insert stores one transaction and returns its generated id and stored
// timestamp. When the caller gave no occurred_at, the database clock
// assigns it, not this process.
func (r *TransactionRepository) Insert(ctx context.Context, row transaction.InsertRow) (int64, time.Time, error) {
	var (
		id         int64
		occurredAt time.Time
		err        error
	)

	if row.OccurredAt != nil {
		query := `
			INSERT INTO transactions (amount, "type", category_id, description, payment_method, occurred_at, source_text)
			VALUES ($1, $2, $3, $4, $5, $6::timestamptz, $7)
			RETURNING id, occurred_at
		`
		err = r.db.QueryRowContext(ctx, query,
			row.Amount, row.TypeID, row.CategoryID, row.Description,
			row.PaymentMethod, *row.OccurredAt, row.SourceText,
		).Scan(&id, &occurredAt)
	} else {
		query := `
			INSERT INTO transactions (amount, "type", category_id, description, payment_method, occurred_at, source_text)
			VALUES ($1, $2, $3, $4, $5, NOW(), $6)
			RETURNING id, occurred_at
		`
		err = r.db.QueryRowContext(ctx, query,
			row.Amount, row.TypeID, row.CategoryID, row.Description,
			row.PaymentMethod, row.SourceText,
		).Scan(&id, &occurredAt)
	}

	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return id, occurredAt, nil
}

// buildListQuery renders a normalized filter into one parameterized SELECT.
// Values are always bound, never interpolated.
func buildListQuery(q transaction.ListQuery) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(viewColumns)

	var conds []string
	var args []any
	bind := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.Text != nil && *q.Text != "" {
		p := bind("%" + *q.Text + "%")
		conds = append(conds, "(t.source_text ILIKE "+p+" OR t.description ILIKE "+p+")")
	}
	if q.TypeID != nil {
		conds = append(conds, `t."type" = `+bind(*q.TypeID))
	}
	switch {
	case q.DateLocal != nil && *q.DateLocal != "":
		bind(*q.DateLocal)
		conds = append(conds, dayEquals("t.occurred_at", len(args)))
	default:
		if q.DateFrom != nil && *q.DateFrom != "" {
			bind(*q.DateFrom)
			conds = append(conds, dayOnOrAfter("t.occurred_at", len(args)))
		}
		if q.DateTo != nil && *q.DateTo != "" {
			bind(*q.DateTo)
			conds = append(conds, dayOnOrBefore("t.occurred_at", len(args)))
		}
	}

	if len(conds) > 0 {
		b.WriteString("\n\t\tWHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	if q.Ascending {
		b.WriteString("\n\t\tORDER BY t.occurred_at ASC")
	} else {
		b.WriteString("\n\t\tORDER BY t.occurred_at DESC")
	}
	b.WriteString("\n\t\tLIMIT " + bind(q.Limit))

	return b.String(), args
}

func (r *TransactionRepository) List(ctx context.Context, q transaction.ListQuery) ([]*transaction.View, error) {
	query, args := buildListQuery(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var views []*transaction.View
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return views, nil
}

// balanceQuery sums amounts signed by type. TRANSFER moves money between
// the user's own pockets, so it is excluded from the aggregate entirely.
const balanceQuery = `
	SELECT COALESCE(SUM(CASE tt.type WHEN 'INCOME' THEN t.amount WHEN 'EXPENSES' THEN -t.amount END), 0)
	FROM transactions t
	JOIN transaction_types tt ON tt.id = t."type"
	WHERE tt.type IN ('INCOME', 'EXPENSES')`

func (r *TransactionRepository) TotalBalance(ctx context.Context) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(ctx, balanceQuery).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to compute total balance: %w", err)
	}
	return total, nil
}

func (r *TransactionRepository) DailyBalance(ctx context.Context, dateLocal string) (float64, error) {
	query := balanceQuery + " AND " + dayEquals("t.occurred_at", 1)

	var total float64
	if err := r.db.QueryRowContext(ctx, query, dateLocal).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to compute daily balance: %w", err)
	}
	return total, nil
}

// FindLatestMatch locates the most recently occurred transaction whose
// source_text or description contains matchText on the given local day.
// Returns nil when nothing matches.
func (r *TransactionRepository) FindLatestMatch(ctx context.Context, matchText, dateLocal string) (*int64, error) {
	query := `
		SELECT t.id
		FROM transactions t
		WHERE (t.source_text ILIKE $1 OR t.description ILIKE $1)
		AND ` + dayEquals("t.occurred_at", 2) + `
		ORDER BY t.occurred_at DESC
		LIMIT 1`

	var id int64
	err := r.db.QueryRowContext(ctx, query, "%"+matchText+"%", dateLocal).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find matching transaction: %w", err)
	}
	return &id, nil
}

// buildUpdateQuery renders the supplied (column, value) pairs into one
// parameterized UPDATE restricted to the target id. Column names come from
// the service's fixed set and are still quoted ("type" is reserved-ish).
func buildUpdateQuery(id int64, fields []transaction.Assignment) (string, []any) {
	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)

	for _, f := range fields {
		args = append(args, f.Value)
		sets = append(sets, `"`+f.Column+`" = $`+strconv.Itoa(len(args))+f.Cast)
	}
	args = append(args, id)

	query := "UPDATE transactions SET " + strings.Join(sets, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args))
	return query, args
}

func (r *TransactionRepository) Update(ctx context.Context, id int64, fields []transaction.Assignment) (int64, error) {
	query, args := buildUpdateQuery(id, fields)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update transaction: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

// GetView returns one denormalized transaction, or nil when the id does not
// exist.
func (r *TransactionRepository) GetView(ctx context.Context, id int64) (*transaction.View, error) {
	query := "SELECT " + viewColumns + "\n\t\tWHERE t.id = $1"

	row := r.db.QueryRowContext(ctx, query, id)
	view, err := scanView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return view, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanView maps a view row to the domain record by column position of
// viewColumns only; nullable columns go through sql.Null wrappers instead
// of bare pointers so a schema NULL never panics a scan.
func scanView(s scanner) (*transaction.View, error) {
	var (
		view          transaction.View
		categoryName  sql.NullString
		description   sql.NullString
		paymentMethod sql.NullString
	)

	err := s.Scan(
		&view.ID, &view.Amount, &view.TypeName, &categoryName,
		&description, &paymentMethod, &view.OccurredAt, &view.SourceText,
	)
	if err != nil {
		return nil, err
	}

	if categoryName.Valid {
		view.CategoryName = &categoryName.String
	}
	if description.Valid {
		view.Description = &description.String
	}
	if paymentMethod.Valid {
		view.PaymentMethod = &paymentMethod.String
	}
	return &view, nil
}
