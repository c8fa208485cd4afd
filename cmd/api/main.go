package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"dogfood/internal/agent"
	"dogfood/internal/config"
	"dogfood/internal/db"
	"dogfood/internal/server"
)

func main() {
	cfg := config.Load()
	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      parseLevel(cfg.LogLevel),
		TimeFormat: time.DateTime,
	}))
	if err := cfg.Validate(); err != nil {
		fatal(log, "invalid config", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fatal(log, "database connect failed", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		fatal(log, "database ping failed", err)
	}
	if cfg.DBAutoMigrate {
		if err := db.EnsureSchema(ctx, pool); err != nil {
			fatal(log, "database migrate failed", err)
		}
	}
	if err := db.ValidateSchema(ctx, pool); err != nil {
		fatal(log, "database schema mismatch", err)
	}

	var suggester agent.Suggester
	if cfg.AgentUseMock || (cfg.IsLocal() && strings.TrimSpace(cfg.AgentEndpoint) == "") {
		log.Warn("using mock suggestion agent", slog.String("env", cfg.AppEnv))
		suggester = agent.MockClient{}
	} else {
		suggester = agent.NewClient(cfg, log)
	}

	app := server.New(cfg, server.NewPostgresFoodLogStore(pool), suggester, log)
	httpServer := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("dogfood api listening", slog.String("addr", "http://localhost:"+cfg.AppPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(log, "server failed", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.Any("err", err))
	}
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.Any("err", err))
	os.Exit(1)
}
