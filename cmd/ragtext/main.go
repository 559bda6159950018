// Package main provides the ragtext server entry point
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ragtext/ragtext/api"
	"github.com/ragtext/ragtext/pkg/chat"
	"github.com/ragtext/ragtext/pkg/config"
	"github.com/ragtext/ragtext/pkg/embedders"
	"github.com/ragtext/ragtext/pkg/gutenberg"
	"github.com/ragtext/ragtext/pkg/ingest"
	"github.com/ragtext/ragtext/pkg/interfaces"
	"github.com/ragtext/ragtext/pkg/logger"
	"github.com/ragtext/ragtext/pkg/vectordb"
)

// Version information (set by build process)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile  = flag.String("config", "", "Path to configuration file")
	showVersion = flag.Bool("version", false, "Show version information")
	splitBook   = flag.String("split", "", "Split a Gutenberg anthology into per-story files and exit")
	splitOut    = flag.String("split-out", "", "Output directory for -split (default: data dir)")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("ragtext %s (%s)\n", Version, GitCommit)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("received shutdown signal, shutting down")
		cancel()
	}()

	if err := run(ctx); err != nil {
		log.Fatalf("ragtext failed: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.NewConsoleLogger(cfg.LogLevel)

	if *splitBook != "" {
		outDir := *splitOut
		if outDir == "" {
			outDir = cfg.DataDir
		}
		files, err := gutenberg.SplitFile(*splitBook, outDir, gutenberg.SplitOptions{})
		if err != nil {
			return fmt.Errorf("failed to split anthology: %w", err)
		}
		appLogger.Info("split anthology", map[string]interface{}{
			"stories": len(files),
			"out_dir": outDir,
		})
		return nil
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to build embedder: %w", err)
	}
	defer embedder.Close()

	store, err := vectordb.NewQdrantStore(&cfg.Qdrant)
	if err != nil {
		return fmt.Errorf("failed to build vector store: %w", err)
	}
	if err := store.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to vector store: %w", err)
	}
	defer store.Disconnect(context.Background())

	if err := store.EnsureCollection(ctx, cfg.Collection, embedder.GetDimension()); err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}

	pipeline, err := ingest.NewPipeline(ingest.PipelineOptions{
		Embedder:   embedder,
		Sparse:     embedders.NewSparseEmbedder(),
		Store:      store,
		Logger:     appLogger,
		Collection: cfg.Collection,
		Kind:       cfg.EmbeddingKind,
	})
	if err != nil {
		return fmt.Errorf("failed to build ingestion pipeline: %w", err)
	}

	var chatModel interfaces.ChatModel
	if cfg.OpenAI.APIKey != "" {
		chatModel, err = chat.NewOpenAIChatModel(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.ChatModel)
		if err != nil {
			return fmt.Errorf("failed to build chat model: %w", err)
		}
		defer chatModel.Close()
	} else {
		appLogger.Warn("no OpenAI API key configured, /chat endpoint will be unavailable")
	}

	chatService, err := chat.NewService(chat.ServiceOptions{
		Embedder:   embedder,
		Store:      store,
		Model:      chatModel,
		Logger:     appLogger,
		Collection: cfg.Collection,
		TopK:       cfg.TopK,
	})
	if err != nil {
		return fmt.Errorf("failed to build chat service: %w", err)
	}

	server := api.NewServer(cfg, pipeline, chatService, store, appLogger)
	return server.Start(ctx)
}

// buildEmbedder selects the dense embedding backend: OpenAI when a key is
// configured, the local Ollama server otherwise
func buildEmbedder(cfg *config.Config) (interfaces.Embedder, error) {
	if cfg.OpenAI.APIKey != "" {
		return embedders.NewEmbedder(&embedders.EmbedderConfig{
			Provider: embedders.ProviderOpenAI,
			APIKey:   cfg.OpenAI.APIKey,
			BaseURL:  cfg.OpenAI.BaseURL,
			Model:    cfg.OpenAI.EmbeddingModel,
		})
	}
	return embedders.NewEmbedder(&embedders.EmbedderConfig{
		Provider: embedders.ProviderOllama,
		BaseURL:  cfg.Ollama.BaseURL,
		Model:    cfg.Ollama.Model,
	})
}
