package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"assessor/internal/domain/transaction"
)

// RegisterTransactionTools exposes the five transaction operations as
// agent-invocable tools. Field descriptions are in Portuguese because that
// is the language the assistant (and its users) speak.
func RegisterTransactionTools(r *Registry, svc *transaction.Service) {
	r.Register(Tool{Declaration: addTransactionDecl, Handler: addTransactionHandler(svc)})
	r.Register(Tool{Declaration: queryTransactionsDecl, Handler: queryTransactionsHandler(svc)})
	r.Register(Tool{Declaration: totalBalanceDecl, Handler: totalBalanceHandler(svc)})
	r.Register(Tool{Declaration: dailyBalanceDecl, Handler: dailyBalanceHandler(svc)})
	r.Register(Tool{Declaration: updateTransactionDecl, Handler: updateTransactionHandler(svc)})
}

var addTransactionDecl = &genai.FunctionDeclaration{
	Name:        "add_transaction",
	Description: "Insere uma transação financeira no banco de dados.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"amount":         {Type: genai.TypeNumber, Description: "Valor da transação (use positivo)."},
			"source_text":    {Type: genai.TypeString, Description: "Texto original do usuário."},
			"occurred_at":    {Type: genai.TypeString, Description: "Timestamp ISO 8601; se ausente, usa NOW() no banco."},
			"type_id":        {Type: genai.TypeInteger, Description: "ID em transaction_types (1=INCOME, 2=EXPENSES, 3=TRANSFER)."},
			"type_name":      {Type: genai.TypeString, Description: "Nome do tipo: INCOME | EXPENSES | TRANSFER (aliases em português aceitos)."},
			"category_id":    {Type: genai.TypeInteger, Description: "FK de categories (opcional)."},
			"category_name":  {Type: genai.TypeString, Description: "Nome da categoria (ex.: Alimentação)."},
			"description":    {Type: genai.TypeString, Description: "Descrição (opcional)."},
			"payment_method": {Type: genai.TypeString, Description: "Forma de pagamento (opcional)."},
		},
		Required: []string{"amount", "source_text"},
	},
}

func addTransactionHandler(svc *transaction.Service) Handler {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		amount, err := reqNumber(args, "amount")
		if err != nil {
			return nil, err
		}
		sourceText, err := reqString(args, "source_text")
		if err != nil {
			return nil, err
		}

		result, err := svc.Add(ctx, transaction.AddParams{
			Amount:        amount,
			SourceText:    sourceText,
			OccurredAt:    optString(args, "occurred_at"),
			TypeID:        optInt(args, "type_id"),
			TypeName:      optString(args, "type_name"),
			CategoryID:    optInt(args, "category_id"),
			CategoryName:  optString(args, "category_name"),
			Description:   optString(args, "description"),
			PaymentMethod: optString(args, "payment_method"),
		})
		if err != nil {
			return nil, err
		}

		return map[string]any{
			"id":          result.ID,
			"occurred_at": result.OccurredAt.Format(time.RFC3339),
		}, nil
	}
}

var queryTransactionsDecl = &genai.FunctionDeclaration{
	Name:        "query_transactions",
	Description: "Lista transações com filtros opcionais de texto, tipo e data local.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":            {Type: genai.TypeString, Description: "Trecho a procurar em source_text ou description."},
			"type_name":       {Type: genai.TypeString, Description: "Filtra por tipo: INCOME | EXPENSES | TRANSFER."},
			"date_local":      {Type: genai.TypeString, Description: "Dia exato (YYYY-MM-DD, fuso de São Paulo); tem prioridade sobre o intervalo."},
			"date_from_local": {Type: genai.TypeString, Description: "Início do intervalo (YYYY-MM-DD, inclusivo)."},
			"date_to_local":   {Type: genai.TypeString, Description: "Fim do intervalo (YYYY-MM-DD, inclusivo)."},
			"limit":           {Type: genai.TypeInteger, Description: "Máximo de linhas (padrão 20)."},
		},
	},
}

func queryTransactionsHandler(svc *transaction.Service) Handler {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		params := transaction.QueryParams{
			Text:          optString(args, "text"),
			TypeName:      optString(args, "type_name"),
			DateLocal:     optString(args, "date_local"),
			DateFromLocal: optString(args, "date_from_local"),
			DateToLocal:   optString(args, "date_to_local"),
		}
		if limit := optInt(args, "limit"); limit != nil {
			params.Limit = int(*limit)
		}

		views, err := svc.Query(ctx, params)
		if err != nil {
			return nil, err
		}
		if views == nil {
			views = []*transaction.View{}
		}
		return map[string]any{"transactions": views}, nil
	}
}

var totalBalanceDecl = &genai.FunctionDeclaration{
	Name:        "total_balance",
	Description: "Calcula o saldo total (receitas menos despesas; transferências não contam).",
	Parameters: &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{},
	},
}

func totalBalanceHandler(svc *transaction.Service) Handler {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		total, err := svc.TotalBalance(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"total_balance": total}, nil
	}
}

var dailyBalanceDecl = &genai.FunctionDeclaration{
	Name:        "daily_balance",
	Description: "Calcula o saldo de um dia local (receitas menos despesas do dia).",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"date_local": {Type: genai.TypeString, Description: "Dia (YYYY-MM-DD) no fuso de São Paulo."},
		},
		Required: []string{"date_local"},
	},
}

func dailyBalanceHandler(svc *transaction.Service) Handler {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		dateLocal, err := reqString(args, "date_local")
		if err != nil {
			return nil, err
		}
		total, err := svc.DailyBalance(ctx, dateLocal)
		if err != nil {
			return nil, err
		}
		return map[string]any{"daily_balance": total}, nil
	}
}

var updateTransactionDecl = &genai.FunctionDeclaration{
	Name:        "update_transaction",
	Description: "Atualiza campos de uma transação, localizada por id ou por texto + dia local.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":             {Type: genai.TypeInteger, Description: "ID da transação; se ausente, use match_text + date_local."},
			"match_text":     {Type: genai.TypeString, Description: "Trecho do source_text ou description da transação a alterar."},
			"date_local":     {Type: genai.TypeString, Description: "Dia local (YYYY-MM-DD) em que a transação ocorreu."},
			"amount":         {Type: genai.TypeNumber, Description: "Novo valor (positivo)."},
			"type_id":        {Type: genai.TypeInteger, Description: "Novo tipo por ID."},
			"type_name":      {Type: genai.TypeString, Description: "Novo tipo por nome: INCOME | EXPENSES | TRANSFER."},
			"category_id":    {Type: genai.TypeInteger, Description: "Nova categoria por ID."},
			"category_name":  {Type: genai.TypeString, Description: "Nova categoria por nome."},
			"description":    {Type: genai.TypeString, Description: "Nova descrição."},
			"payment_method": {Type: genai.TypeString, Description: "Nova forma de pagamento."},
			"occurred_at":    {Type: genai.TypeString, Description: "Novo timestamp ISO 8601."},
		},
	},
}

func updateTransactionHandler(svc *transaction.Service) Handler {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		result, err := svc.Update(ctx, transaction.UpdateParams{
			ID:            optInt(args, "id"),
			MatchText:     optString(args, "match_text"),
			DateLocal:     optString(args, "date_local"),
			Amount:        optNumber(args, "amount"),
			TypeID:        optInt(args, "type_id"),
			TypeName:      optString(args, "type_name"),
			CategoryID:    optInt(args, "category_id"),
			CategoryName:  optString(args, "category_name"),
			Description:   optString(args, "description"),
			PaymentMethod: optString(args, "payment_method"),
			OccurredAt:    optString(args, "occurred_at"),
		})
		if err != nil {
			return nil, err
		}

		out := map[string]any{
			"rows_affected": result.RowsAffected,
			"id":            result.ID,
		}
		if result.Updated != nil {
			out["updated"] = result.Updated
		} else {
			out["updated"] = nil
		}
		return out, nil
	}
}

// Argument access helpers. The model sends JSON-decoded values, so numbers
// arrive as float64 regardless of the declared schema type.

func reqString(args map[string]any, key string) (string, error) {
	v := optString(args, key)
	if v == nil || *v == "" {
		return "", errors.New("missing required argument: " + key)
	}
	return *v, nil
}

func reqNumber(args map[string]any, key string) (float64, error) {
	v := optNumber(args, key)
	if v == nil {
		return 0, errors.New("missing required argument: " + key)
	}
	return *v, nil
}

func optString(args map[string]any, key string) *string {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		s = fmt.Sprintf("%v", raw)
	}
	return &s
}

func optNumber(args map[string]any, key string) *float64 {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil
	}
	switch n := raw.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	default:
		return nil
	}
}

func optInt(args map[string]any, key string) *int64 {
	n := optNumber(args, key)
	if n == nil {
		return nil
	}
	i := int64(*n)
	return &i
}
