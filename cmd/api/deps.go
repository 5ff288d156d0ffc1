package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"assessor/internal/agent"
	"assessor/internal/domain/faq"
	"assessor/internal/domain/transaction"
	"assessor/internal/infrastructure/gemini"
	"assessor/internal/infrastructure/postgres"
	httphandlers "assessor/internal/interfaces/http"
	"assessor/internal/shared/config"
	"assessor/internal/tools"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB       *postgres.DB
	Registry *tools.Registry

	// Handlers
	ToolsHandler *httphandlers.ToolsHandler
	ChatHandler  *httphandlers.ChatHandler
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories and the transaction service
	refRepo := postgres.NewReferenceRepository(db)
	txRepo := postgres.NewTransactionRepository(db)
	resolver := transaction.NewResolver(refRepo)
	txService := transaction.NewService(txRepo, resolver)

	// Initialize the Gemini client (agent chat + FAQ embeddings)
	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbedModel)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Build the tool registry
	registry := tools.NewRegistry()
	tools.RegisterTransactionTools(registry, txService)

	if cfg.FAQ.DocumentPath != "" {
		retriever, err := buildFAQRetriever(ctx, cfg.FAQ, geminiClient)
		if err != nil {
			db.Close()
			return nil, err
		}
		tools.RegisterFAQTool(registry, retriever)
		log.Printf("FAQ index built from %s", cfg.FAQ.DocumentPath)
	} else {
		log.Println("FAQ_DOCUMENT_PATH not set; retrieve_context tool disabled")
	}

	// Initialize the agent and handlers
	assistant := agent.New(geminiClient, registry, cfg.Gemini.ChatModel)

	return &Dependencies{
		DB:           db,
		Registry:     registry,
		ToolsHandler: httphandlers.NewToolsHandler(registry),
		ChatHandler:  httphandlers.NewChatHandler(assistant),
	}, nil
}

func buildFAQRetriever(ctx context.Context, cfg config.FAQConfig, embedder faq.Embedder) (faq.Retriever, error) {
	document, err := os.ReadFile(cfg.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read FAQ document: %w", err)
	}
	index, err := faq.BuildIndex(ctx, string(document), embedder, cfg.ChunkSize, cfg.ChunkOverlap, cfg.TopK)
	if err != nil {
		return nil, err
	}
	return index, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
