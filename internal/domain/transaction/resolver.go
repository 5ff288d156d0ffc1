package transaction

import (
	"context"
	"strings"
)

// Resolver turns loosely specified type/category arguments into foreign-key
// ids against the reference tables. It is shared by the insert, query-filter
// and update paths so all three resolve identically.
type Resolver struct {
	refs ReferenceStore
}

func NewResolver(refs ReferenceStore) *Resolver {
	return &Resolver{refs: refs}
}

// ResolveType resolves a transaction type. A non-empty name takes precedence
// over an id: it is alias-normalized and matched case-insensitively against
// transaction_types, and a miss returns nil (never a silent fallback to the
// id). With no name, a supplied id passes through as-is. With neither, nil
// is returned; whether that means "default to EXPENSES" or "no filter" is
// the caller's decision.
func (r *Resolver) ResolveType(ctx context.Context, typeID *int64, typeName *string) (*int64, error) {
	if typeName != nil && strings.TrimSpace(*typeName) != "" {
		return r.refs.TypeIDByName(ctx, NormalizeTypeName(*typeName))
	}
	if typeID != nil {
		return typeID, nil
	}
	return nil, nil
}

// DefaultTypeID returns the id of the EXPENSES type, the insertion default
// when the caller supplied no type at all.
func (r *Resolver) DefaultTypeID(ctx context.Context) (*int64, error) {
	return r.refs.TypeIDByName(ctx, TypeExpenses)
}

// ResolveCategory resolves a category. An explicit id takes precedence; else
// the name is matched case-insensitively against categories after trimming.
// An unknown name resolves to nil, which is preserved as "no category", not
// treated as an error.
func (r *Resolver) ResolveCategory(ctx context.Context, categoryID *int64, categoryName *string) (*int64, error) {
	if categoryID != nil {
		return categoryID, nil
	}
	if categoryName != nil && strings.TrimSpace(*categoryName) != "" {
		return r.refs.CategoryIDByName(ctx, strings.TrimSpace(*categoryName))
	}
	return nil, nil
}
