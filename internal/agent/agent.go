package agent

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"

	"assessor/internal/tools"
)

// systemPrompt frames the assistant for the model. The tools themselves
// carry the operational detail in their declarations.
const systemPrompt = "Você é um assessor financeiro pessoal. " +
	"Registre, consulte e atualize transações usando as ferramentas disponíveis, " +
	"e responda dúvidas gerais usando retrieve_context. " +
	"Valores são sempre positivos; a direção vem do tipo da transação. " +
	"Responda em português, de forma curta e direta."

// maxRounds bounds the tool-calling loop; each round is one model turn that
// may request any number of tool calls.
const maxRounds = 8

var ErrNoReply = errors.New("model returned no final reply")

// ModelCaller is the one Gemini capability the agent needs. Implemented by
// the gemini client; faked in tests.
type ModelCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Agent runs the function-calling conversation loop: it sends the user
// message with the tool declarations, executes whatever tools the model
// asks for, feeds the results back, and returns the model's final text.
type Agent struct {
	model     ModelCaller
	registry  *tools.Registry
	chatModel string
}

func New(model ModelCaller, registry *tools.Registry, chatModel string) *Agent {
	return &Agent{model: model, registry: registry, chatModel: chatModel}
}

// Run handles one user message to completion.
func (a *Agent) Run(ctx context.Context, message string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Tools: []*genai.Tool{
			{FunctionDeclarations: a.registry.Declarations()},
		},
	}

	contents := []*genai.Content{
		genai.NewContentFromText(message, genai.RoleUser),
	}

	for round := 0; round < maxRounds; round++ {
		resp, err := a.model.GenerateContent(ctx, a.chatModel, contents, config)
		if err != nil {
			return "", fmt.Errorf("model call failed: %w", err)
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			text := resp.Text()
			if text == "" {
				return "", ErrNoReply
			}
			return text, nil
		}

		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			contents = append(contents, resp.Candidates[0].Content)
		}

		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			log.Printf("Agent invoking tool %s", call.Name)
			result := a.registry.Dispatch(ctx, call.Name, call.Args)
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, result))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}

	return "", fmt.Errorf("tool loop did not settle within %d rounds", maxRounds)
}
