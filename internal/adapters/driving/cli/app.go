package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aakifnehal/MedMind/internal/adapters/driven/config"
	"github.com/aakifnehal/MedMind/internal/adapters/driven/embedding/google"
	pdfextract "github.com/aakifnehal/MedMind/internal/adapters/driven/extractor/pdf"
	"github.com/aakifnehal/MedMind/internal/adapters/driven/llm/groq"
	"github.com/aakifnehal/MedMind/internal/adapters/driven/storage/local"
	"github.com/aakifnehal/MedMind/internal/adapters/driven/vectorstore/memory"
	"github.com/aakifnehal/MedMind/internal/adapters/driven/vectorstore/pinecone"
	"github.com/aakifnehal/MedMind/internal/adapters/driven/vectorstore/sqlite"
	"github.com/aakifnehal/MedMind/internal/chunker"
	"github.com/aakifnehal/MedMind/internal/core/ports/driven"
	"github.com/aakifnehal/MedMind/internal/core/ports/driving"
	"github.com/aakifnehal/MedMind/internal/core/services"
	"github.com/aakifnehal/MedMind/internal/logger"
)

// app bundles the wired services for the commands.
type app struct {
	cfg      config.Config
	log      *logger.Logger
	ingestor driving.Ingestor
	answerer driving.Answerer
	close    func()
}

// buildApp loads configuration and wires every adapter to the core
// services. Provider connectivity is probed but a failed probe only
// logs a warning; requests will surface the real error.
func buildApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	files, err := local.NewFileStore(cfg.Ingestion.UploadDir)
	if err != nil {
		return nil, err
	}

	embedder, err := google.NewEmbeddingService(google.Config{
		APIKey: cfg.Embedding.APIKey,
		Model:  cfg.Embedding.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding service: %w", err)
	}

	model, err := groq.NewModel(groq.Config{
		APIKey:    cfg.LLM.APIKey,
		ModelName: cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("generative model: %w", err)
	}

	store, closeStore, err := buildVectorStore(cfg.Vector)
	if err != nil {
		return nil, fmt.Errorf("vector store: %w", err)
	}

	probe(log, "embedding", embedder.Ping)
	probe(log, "llm", model.Ping)
	probe(log, "vector store", store.Ping)

	chk := chunker.New(
		chunker.WithChunkSize(cfg.Ingestion.ChunkSize),
		chunker.WithOverlap(cfg.Ingestion.ChunkOverlap),
	)

	ingestor := services.NewIngestionService(
		files, pdfextract.New(), chk, embedder, store, log, cfg.Ingestion.Concurrency)
	retriever := services.NewRetrievalService(embedder, store, log)
	answerer := services.NewAnswerService(retriever, model, log, cfg.Retrieval.TopK)

	return &app{
		cfg:      cfg,
		log:      log,
		ingestor: ingestor,
		answerer: answerer,
		close: func() {
			closeStore()
			log.Sync()
		},
	}, nil
}

func buildVectorStore(cfg config.VectorConfig) (driven.VectorStore, func(), error) {
	switch cfg.Backend {
	case "pinecone":
		store, err := pinecone.NewStore(pinecone.Config{
			IndexHost: cfg.IndexHost,
			APIKey:    cfg.APIKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case "sqlite":
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "memory":
		return memory.NewStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown vector backend %q", cfg.Backend)
	}
}

func probe(log *logger.Logger, name string, ping func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ping(ctx); err != nil {
		log.Warn("provider unreachable", "provider", name, "error", err)
	}
}
