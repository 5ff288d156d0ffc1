package main

import (
	"log"
	"net/http"

	httphandlers "assessor/internal/interfaces/http"
	"assessor/internal/shared/config"
	"assessor/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Protected routes
	authMiddleware := middleware.Auth(cfg.Auth.APITokenHash)
	if cfg.Auth.APITokenHash == "" {
		log.Println("API_TOKEN_HASH not set; API authentication disabled")
	}

	mux.Handle("/api/tools", authMiddleware(http.HandlerFunc(deps.ToolsHandler.HandleList)))
	mux.Handle("/api/tools/{name}", authMiddleware(http.HandlerFunc(deps.ToolsHandler.HandleInvoke)))
	mux.Handle("/api/chat", authMiddleware(http.HandlerFunc(deps.ChatHandler.HandleChat)))

	// Apply global middleware
	handler := middleware.Logging(mux)
	if cfg.Telemetry.Enabled {
		handler = middleware.Logging(middleware.Telemetry(mux))
	}

	return handler
}
