package tools

import (
	"context"

	"google.golang.org/genai"

	"assessor/internal/domain/faq"
)

var retrieveContextDecl = &genai.FunctionDeclaration{
	Name:        "retrieve_context",
	Description: "Busca no FAQ do assessor os trechos mais relevantes para uma pergunta.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question": {Type: genai.TypeString, Description: "Pergunta do usuário, em texto livre."},
		},
		Required: []string{"question"},
	},
}

// RegisterFAQTool exposes the FAQ retrieval collaborator as a tool. The
// registry only sees the Retriever contract; how the passages are indexed
// is not its business.
func RegisterFAQTool(r *Registry, retriever faq.Retriever) {
	r.Register(Tool{
		Declaration: retrieveContextDecl,
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			question, err := reqString(args, "question")
			if err != nil {
				return nil, err
			}
			passages, err := retriever.Retrieve(ctx, question)
			if err != nil {
				return nil, err
			}
			return map[string]any{"context": passages}, nil
		},
	})
}
