// Command groto serves a conversational agent over HTTP.
//
// The agent talks to a local Ollama instance, routes model-requested
// tool calls through a fixed registry, and keeps conversation history
// in memory. Document ingestion and similarity search run against a
// SQLite or pgvector-backed store.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	groto "github.com/Ritam-910/groto"
	"github.com/Ritam-910/groto/internal/config"
	"github.com/Ritam-910/groto/internal/httpapi"
	"github.com/Ritam-910/groto/observer"
	"github.com/Ritam-910/groto/provider/ollama"
	"github.com/Ritam-910/groto/store/postgres"
	"github.com/Ritam-910/groto/store/sqlite"
	"github.com/Ritam-910/groto/tools/calc"
	"github.com/Ritam-910/groto/tools/clock"
	"github.com/Ritam-910/groto/tools/summary"
	"github.com/Ritam-910/groto/tools/weather"
	"github.com/Ritam-910/groto/tools/websearch"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg := config.Load(*configPath)
	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Observability is opt-in; exporters come from OTEL env vars.
	var inst *observer.Instruments
	if cfg.Observer.Enabled {
		var shutdown func(context.Context) error
		var err error
		inst, shutdown, err = observer.Init(ctx, "groto")
		if err != nil {
			logger.Error("observer init failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := shutdown(shutCtx); err != nil {
				logger.Error("observer shutdown", "error", err)
			}
		}()
	}

	var provider groto.Provider = ollama.New(cfg.Ollama.BaseURL, cfg.Ollama.Model,
		ollama.WithLogger(logger))
	var embedding groto.EmbeddingProvider = ollama.NewEmbedder(
		cfg.Ollama.BaseURL, cfg.Embedding.Model, cfg.Embedding.Dimensions)
	if inst != nil {
		provider = observer.WrapProvider(provider, inst)
		embedding = observer.WrapEmbedding(embedding, inst)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("store init failed", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	retriever := groto.NewRetriever(store, embedding,
		groto.WithRetrieverLogger(logger))

	registry := groto.NewToolRegistry()
	clock.Register(registry)
	calc.Register(registry)
	websearch.New().Register(registry)
	weather.Register(registry)
	summary.Register(registry)

	var tools groto.ToolExecutor = registry
	if inst != nil {
		tools = observer.WrapTools(registry, inst)
	}

	agent := groto.NewAgent(provider,
		groto.WithTools(tools),
		groto.WithTemperature(cfg.Ollama.Temperature),
		groto.WithMaxTokens(cfg.Ollama.MaxTokens),
		groto.WithLogger(logger),
	)

	api := httpapi.New(agent, retriever, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.Handler(),
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "model", cfg.Ollama.Model)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("stopped")
}

// openStore selects the vector store from config. The returned close
// function also closes the pgx pool when postgres is selected.
func openStore(ctx context.Context, cfg config.Config) (groto.VectorStore, func(), error) {
	switch cfg.Database.Driver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.New(pool,
			postgres.WithEmbeddingDimension(cfg.Embedding.Dimensions))
		if err := store.Init(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	default:
		store := sqlite.New(cfg.Database.Path, sqlite.WithLogger(slog.Default()))
		if err := store.Init(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
