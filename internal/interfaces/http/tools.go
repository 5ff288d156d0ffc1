package http

import (
	"encoding/json"
	"net/http"

	"assessor/internal/tools"
)

// ToolsHandler invokes registered tools by name. The agent is the usual
// caller, but exposing the registry directly makes every operation
// independently testable with curl.
type ToolsHandler struct {
	registry *tools.Registry
}

func NewToolsHandler(registry *tools.Registry) *ToolsHandler {
	return &ToolsHandler{registry: registry}
}

// HandleInvoke runs one tool. The body is the tool's JSON arguments; the
// response always carries the {status: ok|error} shape, so the HTTP status
// is 200 whenever the tool itself was reachable.
func (h *ToolsHandler) HandleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.PathValue("name")
	if name == "" {
		http.Error(w, "Tool name is required", http.StatusBadRequest)
		return
	}

	args := map[string]any{}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&args); err != nil && err.Error() != "EOF" {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
	}

	result := h.registry.Dispatch(r.Context(), name, args)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleList returns the registered tool names.
func (h *ToolsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"tools": h.registry.Names()})
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
