package tools

import (
	"context"
	"testing"
	"time"

	"assessor/internal/domain/transaction"
)

// fakeRefs resolves the three seeded transaction types and no categories.
type fakeRefs struct{}

func (fakeRefs) TypeIDByName(ctx context.Context, name string) (*int64, error) {
	ids := map[string]int64{"INCOME": 1, "EXPENSES": 2, "TRANSFER": 3}
	if id, ok := ids[name]; ok {
		return &id, nil
	}
	return nil, nil
}

func (fakeRefs) CategoryIDByName(ctx context.Context, name string) (*int64, error) {
	return nil, nil
}

// fakeRepo records inserts and serves canned views.
type fakeRepo struct {
	inserted []transaction.InsertRow
	views    []*transaction.View
}

func (f *fakeRepo) Insert(ctx context.Context, row transaction.InsertRow) (int64, time.Time, error) {
	f.inserted = append(f.inserted, row)
	return int64(len(f.inserted)), time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), nil
}

func (f *fakeRepo) List(ctx context.Context, q transaction.ListQuery) ([]*transaction.View, error) {
	return f.views, nil
}

func (f *fakeRepo) TotalBalance(ctx context.Context) (float64, error) { return 150.25, nil }

func (f *fakeRepo) DailyBalance(ctx context.Context, dateLocal string) (float64, error) {
	return -42.10, nil
}

func (f *fakeRepo) FindLatestMatch(ctx context.Context, matchText, dateLocal string) (*int64, error) {
	return nil, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, fields []transaction.Assignment) (int64, error) {
	return 1, nil
}

func (f *fakeRepo) GetView(ctx context.Context, id int64) (*transaction.View, error) {
	return nil, nil
}

func newTestRegistry(repo *fakeRepo) *Registry {
	svc := transaction.NewService(repo, transaction.NewResolver(fakeRefs{}))
	r := NewRegistry()
	RegisterTransactionTools(r, svc)
	return r
}

func TestRegisterTransactionTools_AllFiveRegistered(t *testing.T) {
	r := newTestRegistry(&fakeRepo{})

	want := []string{"add_transaction", "query_transactions", "total_balance", "daily_balance", "update_transaction"}
	names := r.Names()
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestAddTransactionTool_Success(t *testing.T) {
	repo := &fakeRepo{}
	r := newTestRegistry(repo)

	// JSON-decoded arguments: numbers come in as float64
	result := r.Dispatch(context.Background(), "add_transaction", map[string]any{
		"amount":      float64(25.50),
		"source_text": "mercado 25,50",
		"type_name":   "despesa",
	})

	if result["status"] != "ok" {
		t.Fatalf("status = %v, want ok (message: %v)", result["status"], result["message"])
	}
	if result["id"] != int64(1) {
		t.Errorf("id = %v, want 1", result["id"])
	}
	if result["occurred_at"] != "2026-03-10T12:00:00Z" {
		t.Errorf("occurred_at = %v, want RFC3339 timestamp", result["occurred_at"])
	}
	if len(repo.inserted) != 1 || repo.inserted[0].TypeID != 2 {
		t.Errorf("inserted = %+v, want one EXPENSES row", repo.inserted)
	}
}

func TestAddTransactionTool_MissingRequiredArgument(t *testing.T) {
	repo := &fakeRepo{}
	r := newTestRegistry(repo)

	result := r.Dispatch(context.Background(), "add_transaction", map[string]any{
		"source_text": "mercado",
	})

	if result["status"] != "error" {
		t.Errorf("status = %v, want error for missing amount", result["status"])
	}
	if len(repo.inserted) != 0 {
		t.Error("nothing should be inserted on a rejected call")
	}
}

func TestAddTransactionTool_UnresolvedTypeName(t *testing.T) {
	r := newTestRegistry(&fakeRepo{})

	result := r.Dispatch(context.Background(), "add_transaction", map[string]any{
		"amount":      float64(10),
		"source_text": "x",
		"type_name":   "investimento",
	})

	if result["status"] != "error" {
		t.Errorf("status = %v, want error for unresolvable type", result["status"])
	}
}

func TestQueryTransactionsTool_EmptyResultIsEmptyList(t *testing.T) {
	r := newTestRegistry(&fakeRepo{})

	result := r.Dispatch(context.Background(), "query_transactions", map[string]any{})

	if result["status"] != "ok" {
		t.Fatalf("status = %v, want ok", result["status"])
	}
	views, ok := result["transactions"].([]*transaction.View)
	if !ok {
		t.Fatalf("transactions has type %T, want a view slice", result["transactions"])
	}
	if views == nil {
		t.Error("transactions should be an empty list, not null")
	}
}

func TestTotalBalanceTool(t *testing.T) {
	r := newTestRegistry(&fakeRepo{})

	result := r.Dispatch(context.Background(), "total_balance", map[string]any{})

	if result["status"] != "ok" {
		t.Fatalf("status = %v, want ok", result["status"])
	}
	if result["total_balance"] != 150.25 {
		t.Errorf("total_balance = %v, want 150.25", result["total_balance"])
	}
}

func TestDailyBalanceTool_RequiresDate(t *testing.T) {
	r := newTestRegistry(&fakeRepo{})

	result := r.Dispatch(context.Background(), "daily_balance", map[string]any{})
	if result["status"] != "error" {
		t.Errorf("status = %v, want error for missing date_local", result["status"])
	}

	result = r.Dispatch(context.Background(), "daily_balance", map[string]any{"date_local": "2026-03-10"})
	if result["status"] != "ok" {
		t.Fatalf("status = %v, want ok", result["status"])
	}
	if result["daily_balance"] != -42.10 {
		t.Errorf("daily_balance = %v, want -42.10", result["daily_balance"])
	}
}

func TestUpdateTransactionTool_NoTargetNoFields(t *testing.T) {
	r := newTestRegistry(&fakeRepo{})

	result := r.Dispatch(context.Background(), "update_transaction", map[string]any{})
	if result["status"] != "error" {
		t.Errorf("status = %v, want error when nothing was supplied", result["status"])
	}
}

func TestUpdateTransactionTool_ByID(t *testing.T) {
	r := newTestRegistry(&fakeRepo{})

	result := r.Dispatch(context.Background(), "update_transaction", map[string]any{
		"id":     float64(7),
		"amount": float64(99.90),
	})

	if result["status"] != "ok" {
		t.Fatalf("status = %v, want ok (message: %v)", result["status"], result["message"])
	}
	if result["rows_affected"] != int64(1) {
		t.Errorf("rows_affected = %v, want 1", result["rows_affected"])
	}
	if result["id"] != int64(7) {
		t.Errorf("id = %v, want 7", result["id"])
	}
}

func TestOptNumber_JSONDecodedTypes(t *testing.T) {
	args := map[string]any{
		"float":  float64(1.5),
		"int":    int(2),
		"int64":  int64(3),
		"string": "4",
		"nil":    nil,
	}

	if v := optNumber(args, "float"); v == nil || *v != 1.5 {
		t.Errorf("optNumber(float) = %v, want 1.5", v)
	}
	if v := optNumber(args, "int"); v == nil || *v != 2 {
		t.Errorf("optNumber(int) = %v, want 2", v)
	}
	if v := optNumber(args, "int64"); v == nil || *v != 3 {
		t.Errorf("optNumber(int64) = %v, want 3", v)
	}
	if v := optNumber(args, "string"); v != nil {
		t.Errorf("optNumber(string) = %v, want nil", *v)
	}
	if v := optNumber(args, "nil"); v != nil {
		t.Errorf("optNumber(nil) = %v, want nil", *v)
	}
	if v := optNumber(args, "absent"); v != nil {
		t.Errorf("optNumber(absent) = %v, want nil", *v)
	}
}

func TestOptString_CoercesNonStrings(t *testing.T) {
	args := map[string]any{"n": float64(5)}

	if v := optString(args, "n"); v == nil || *v != "5" {
		t.Errorf("optString(n) = %v, want \"5\"", v)
	}
	if v := optString(args, "absent"); v != nil {
		t.Errorf("optString(absent) = %v, want nil", *v)
	}
}
