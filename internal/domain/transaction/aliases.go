package transaction

import "strings"

// Canonical type names as seeded in transaction_types.
const (
	TypeIncome   = "INCOME"
	TypeExpenses = "EXPENSES"
	TypeTransfer = "TRANSFER"
)

// typeAliases maps user-facing labels, including the Portuguese ones the
// assistant receives, to canonical type names. Keys are upper-case.
var typeAliases = map[string]string{
	"INCOME":         TypeIncome,
	"ENTRADA":        TypeIncome,
	"RECEITA":        TypeIncome,
	"SALÁRIO":        TypeIncome,
	"SALARIO":        TypeIncome,
	"EXPENSE":        TypeExpenses,
	"EXPENSES":       TypeExpenses,
	"SAÍDA":          TypeExpenses,
	"SAIDA":          TypeExpenses,
	"DESPESA":        TypeExpenses,
	"GASTO":          TypeExpenses,
	"TRANSFER":       TypeTransfer,
	"TRANSFERÊNCIA":  TypeTransfer,
	"TRANSFERENCIA":  TypeTransfer,
}

// NormalizeTypeName maps a loosely written type label to its canonical
// name. Unknown labels pass through upper-cased so the reference lookup
// still gets a chance to match them.
func NormalizeTypeName(label string) string {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	if canonical, ok := typeAliases[normalized]; ok {
		return canonical
	}
	return normalized
}
