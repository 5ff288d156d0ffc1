package tools

import (
	"context"
	"log"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

var toolTracer = otel.Tracer("assessor.tools")

// Handler executes one tool call with JSON-decoded arguments and returns the
// operation-specific fields of an "ok" result. Errors are shaped into the
// wire result by the registry, never returned to the model raw.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

// Tool is one independently invocable operation: a declaration the model
// selects by, and the handler that runs it.
type Tool struct {
	Declaration *genai.FunctionDeclaration
	Handler     Handler
}

// Registry holds the tool set exposed to the agent. Registration happens
// once at startup; dispatch is read-only and safe for concurrent callers.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(t Tool) {
	name := t.Declaration.Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Declarations returns the tool declarations in registration order.
func (r *Registry) Declarations() []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(r.order))
	for _, name := range r.order {
		decls = append(decls, r.tools[name].Declaration)
	}
	return decls
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Dispatch runs one tool call and always produces a result map with a
// "status" field of "ok" or "error"; no error crosses this boundary.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) map[string]any {
	invocationID := uuid.NewString()

	ctx, span := toolTracer.Start(ctx, "tool."+name,
		trace.WithAttributes(attribute.String("tool.name", name)),
	)

	tool, ok := r.tools[name]
	if !ok {
		log.Printf("Tool call %s: unknown tool %q", invocationID, name)
		span.SetStatus(codes.Error, "unknown tool")
		span.End()
		return errorResult("unknown tool: " + name)
	}

	result, err := tool.Handler(ctx, args)
	if err != nil {
		log.Printf("Tool call %s: %s failed: %v", invocationID, name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return errorResult(err.Error())
	}
	span.End()

	if result == nil {
		result = map[string]any{}
	}
	result["status"] = "ok"
	return result
}

func errorResult(message string) map[string]any {
	return map[string]any{"status": "error", "message": message}
}
