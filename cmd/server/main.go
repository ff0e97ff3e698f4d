// Command server runs the Kernel, Agent Scheduler, and WCP surface as a
// single process, wired together the way the teacher's cmd/server/main.go
// wires its own domain services (config -> logger -> db -> migrations ->
// repositories -> services -> transport branch -> graceful shutdown).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Solifugus/storysplicer/internal/config"
	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/character"
	"github.com/Solifugus/storysplicer/internal/domain/item"
	"github.com/Solifugus/storysplicer/internal/domain/world"
	"github.com/Solifugus/storysplicer/internal/kernel"
	"github.com/Solifugus/storysplicer/internal/llm"
	"github.com/Solifugus/storysplicer/internal/scheduler"
	"github.com/Solifugus/storysplicer/internal/session"
	"github.com/Solifugus/storysplicer/internal/store"
	"github.com/Solifugus/storysplicer/internal/transport"
	"github.com/Solifugus/storysplicer/internal/trigger"
	"github.com/Solifugus/storysplicer/internal/wcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Keep stdout clean for JSON-RPC frames in stdio mode; logs go to
	// stderr there, stdout otherwise.
	logWriter := os.Stdout
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.Open(ctx, store.Config{
		Host:           cfg.DB.Host,
		Port:           cfg.DB.Port,
		Name:           cfg.DB.Name,
		User:           cfg.DB.User,
		Password:       cfg.DB.Password,
		PoolMax:        cfg.DB.PoolMax,
		IdleTimeout:    cfg.DB.IdleTimeout,
		ConnectTimeout: cfg.DB.ConnectTimeout,
	})
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	worldRepo := store.NewWorldRepository(db)
	areaRepo := store.NewAreaRepository(db)
	characterRepo := store.NewCharacterRepository(db)
	itemRepo := store.NewItemRepository(db)

	worldSvc := world.NewService(worldRepo, logger)
	areaSvc := area.NewService(areaRepo, logger)
	characterSvc := character.NewService(characterRepo, logger)
	itemSvc := item.NewService(itemRepo, logger)

	sessions := session.NewStoreWithTTL(cfg.Session.TTL, logger)
	defer sessions.Close()

	engine := trigger.NewEngine()
	k := kernel.New(worldRepo, areaRepo, characterRepo, itemRepo, sessions, engine, logger)

	var router llm.Router
	if cfg.LLM.MinorEndpoint != "" || cfg.LLM.StoryEndpoint != "" {
		router = llm.NewHTTPRouter(cfg.LLM.MinorEndpoint, cfg.LLM.StoryEndpoint)
	} else {
		router = llm.NewStubRouter()
	}

	sched := scheduler.New(cfg.Scheduler.WorldID, cfg.Scheduler.CycleInterval, k, characterSvc, areaSvc, itemSvc, router, logger)
	go sched.Run(ctx)

	handler := wcp.NewHandler(k, sessions, worldSvc, areaSvc, characterSvc, itemSvc)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	if cfg.Transport.Mode == "stdio" {
		go func() {
			<-stop
			logger.Info("shutting down")
			cancel()
		}()
		if err := transport.RunStdio(ctx, handler, os.Stdin, os.Stdout, logger); err != nil {
			logger.Error("stdio server error", "error", err)
			os.Exit(1)
		}
		return
	}

	router2 := transport.NewServer(handler, logger)
	addr := fmt.Sprintf(":%d", cfg.Transport.Port)
	httpServer := &http.Server{Addr: addr, Handler: router2}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	<-stop
	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
