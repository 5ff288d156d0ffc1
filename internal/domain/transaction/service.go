package transaction

import (
	"context"
	"log"
	"strings"
)

// Service implements the transaction operations: add, query, balances and
// update-by-id-or-match. Every call is a self-contained unit of work; the
// service holds no state between calls.
type Service struct {
	repo     Repository
	resolver *Resolver
}

func NewService(repo Repository, resolver *Resolver) *Service {
	return &Service{repo: repo, resolver: resolver}
}

// Add records one transaction. The type is resolved through the shared
// resolver; when the caller gave no type at all it defaults to EXPENSES, but
// an explicit name or id that fails to resolve is an error, never silently
// replaced. An unresolved category is stored as null.
func (s *Service) Add(ctx context.Context, params AddParams) (*AddResult, error) {
	typeID, err := s.resolver.ResolveType(ctx, params.TypeID, params.TypeName)
	if err != nil {
		return nil, err
	}
	if typeID == nil {
		if params.TypeID == nil && (params.TypeName == nil || strings.TrimSpace(*params.TypeName) == "") {
			typeID, err = s.resolver.DefaultTypeID(ctx)
			if err != nil {
				return nil, err
			}
		}
		if typeID == nil {
			return nil, ErrTypeNotResolved
		}
	}

	categoryID, err := s.resolver.ResolveCategory(ctx, params.CategoryID, params.CategoryName)
	if err != nil {
		return nil, err
	}

	id, occurredAt, err := s.repo.Insert(ctx, InsertRow{
		Amount:        params.Amount,
		TypeID:        *typeID,
		CategoryID:    categoryID,
		Description:   params.Description,
		PaymentMethod: params.PaymentMethod,
		OccurredAt:    params.OccurredAt,
		SourceText:    params.SourceText,
	})
	if err != nil {
		return nil, err
	}
	return &AddResult{ID: id, OccurredAt: occurredAt}, nil
}

// Query lists denormalized transactions. Unlike Add, a type_name that does
// not resolve fails the whole call: filtering by a type the table does not
// know would silently return the wrong rows. An exact date takes priority
// over a range; a complete range is returned in chronological order, every
// other case newest-first.
func (s *Service) Query(ctx context.Context, params QueryParams) ([]*View, error) {
	q := ListQuery{Text: params.Text}

	if params.TypeName != nil && strings.TrimSpace(*params.TypeName) != "" {
		typeID, err := s.resolver.ResolveType(ctx, nil, params.TypeName)
		if err != nil {
			return nil, err
		}
		if typeID == nil {
			return nil, ErrTypeNotResolved
		}
		q.TypeID = typeID
	}

	q.Limit = params.Limit
	if q.Limit <= 0 {
		q.Limit = DefaultQueryLimit
	}
	if q.Limit > MaxQueryLimit {
		q.Limit = MaxQueryLimit
	}

	switch {
	case present(params.DateLocal):
		q.DateLocal = params.DateLocal
	case present(params.DateFromLocal) && present(params.DateToLocal):
		q.DateFrom = params.DateFromLocal
		q.DateTo = params.DateToLocal
		q.Ascending = true
	default:
		// An incomplete range still filters on the bound that was
		// given, but reads newest-first like an unbounded feed.
		q.DateFrom = params.DateFromLocal
		q.DateTo = params.DateToLocal
	}

	return s.repo.List(ctx, q)
}

// TotalBalance sums all amounts signed by type (INCOME positive, EXPENSES
// negative, TRANSFER ignored). An empty table yields 0.
func (s *Service) TotalBalance(ctx context.Context) (float64, error) {
	return s.repo.TotalBalance(ctx)
}

// DailyBalance is TotalBalance restricted to one local calendar day.
func (s *Service) DailyBalance(ctx context.Context, dateLocal string) (float64, error) {
	return s.repo.DailyBalance(ctx, dateLocal)
}

// Update mutates one transaction in place, field by field, touching only
// the fields that were supplied. The target is either an explicit id or the
// most recent transaction matching match_text on the given local day ("the
// thing I just told you about"). The read-back of the updated row is
// best-effort: its failure does not undo the mutation.
func (s *Service) Update(ctx context.Context, params UpdateParams) (*UpdateResult, error) {
	if !params.hasMutations() {
		return nil, ErrNothingToUpdate
	}

	var id int64
	switch {
	case params.ID != nil:
		id = *params.ID
	case present(params.MatchText) && present(params.DateLocal):
		found, err := s.repo.FindLatestMatch(ctx, *params.MatchText, *params.DateLocal)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, ErrTransactionNotFound
		}
		id = *found
	default:
		return nil, ErrUpdateTargetRequired
	}

	fields, err := s.assignments(ctx, params)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	result := &UpdateResult{RowsAffected: rows, ID: id}
	view, err := s.repo.GetView(ctx, id)
	if err != nil {
		log.Printf("Transaction %d updated but read-back failed: %v", id, err)
		return result, nil
	}
	result.Updated = view
	return result, nil
}

// assignments builds the ordered (column, value) pairs for the supplied
// fields only, resolving type and category through the same resolver as
// insertion.
func (s *Service) assignments(ctx context.Context, params UpdateParams) ([]Assignment, error) {
	var fields []Assignment

	if params.Amount != nil {
		fields = append(fields, Assignment{Column: "amount", Value: *params.Amount})
	}
	if params.TypeID != nil || present(params.TypeName) {
		typeID, err := s.resolver.ResolveType(ctx, params.TypeID, params.TypeName)
		if err != nil {
			return nil, err
		}
		if typeID == nil {
			return nil, ErrTypeNotResolved
		}
		fields = append(fields, Assignment{Column: "type", Value: *typeID})
	}
	if params.CategoryID != nil || present(params.CategoryName) {
		categoryID, err := s.resolver.ResolveCategory(ctx, params.CategoryID, params.CategoryName)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Assignment{Column: "category_id", Value: categoryID})
	}
	if params.Description != nil {
		fields = append(fields, Assignment{Column: "description", Value: *params.Description})
	}
	if params.PaymentMethod != nil {
		fields = append(fields, Assignment{Column: "payment_method", Value: *params.PaymentMethod})
	}
	if params.OccurredAt != nil {
		fields = append(fields, Assignment{Column: "occurred_at", Value: *params.OccurredAt, Cast: "::timestamptz"})
	}

	return fields, nil
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
