package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/genai"

	"assessor/internal/tools"
)

func testRegistry() *tools.Registry {
	r := tools.NewRegistry()
	r.Register(tools.Tool{
		Declaration: &genai.FunctionDeclaration{Name: "echo"},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"value": args["value"]}, nil
		},
	})
	r.Register(tools.Tool{
		Declaration: &genai.FunctionDeclaration{Name: "broken"},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return nil, errors.New("relation does not exist")
		},
	})
	return r
}

func invoke(t *testing.T, handler *ToolsHandler, name string, body []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tools/{name}", handler.HandleInvoke)

	req := httptest.NewRequest(http.MethodPost, "/api/tools/"+name, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var result map[string]any
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
	}
	return rec, result
}

func TestHandleInvoke_Success(t *testing.T) {
	handler := NewToolsHandler(testRegistry())

	rec, result := invoke(t, handler, "echo", []byte(`{"value":"oi"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if result["status"] != "ok" {
		t.Errorf("status field = %v, want ok", result["status"])
	}
	if result["value"] != "oi" {
		t.Errorf("value = %v, want oi", result["value"])
	}
}

func TestHandleInvoke_EmptyBodyMeansNoArguments(t *testing.T) {
	handler := NewToolsHandler(testRegistry())

	rec, result := invoke(t, handler, "echo", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if result["status"] != "ok" {
		t.Errorf("status field = %v, want ok", result["status"])
	}
}

func TestHandleInvoke_ToolErrorIsInBand(t *testing.T) {
	handler := NewToolsHandler(testRegistry())

	rec, result := invoke(t, handler, "broken", nil)

	// tool failures are data for the caller, not transport errors
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if result["status"] != "error" {
		t.Errorf("status field = %v, want error", result["status"])
	}
	if result["message"] != "relation does not exist" {
		t.Errorf("message = %v, want the tool error", result["message"])
	}
}

func TestHandleInvoke_UnknownToolIsInBand(t *testing.T) {
	handler := NewToolsHandler(testRegistry())

	rec, result := invoke(t, handler, "nonexistent", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if result["status"] != "error" {
		t.Errorf("status field = %v, want error", result["status"])
	}
}

func TestHandleInvoke_InvalidJSON(t *testing.T) {
	handler := NewToolsHandler(testRegistry())

	rec, _ := invoke(t, handler, "echo", []byte(`{not json`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleInvoke_MethodNotAllowed(t *testing.T) {
	handler := NewToolsHandler(testRegistry())

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tools/{name}", handler.HandleInvoke)

	req := httptest.NewRequest(http.MethodGet, "/api/tools/echo", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleList(t *testing.T) {
	handler := NewToolsHandler(testRegistry())

	req := httptest.NewRequest(http.MethodGet, "/api/tools", nil)
	rec := httptest.NewRecorder()
	handler.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result struct {
		Tools []string `json:"tools"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(result.Tools) != 2 || result.Tools[0] != "echo" {
		t.Errorf("tools = %v, want [echo broken]", result.Tools)
	}
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}
