package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sharma-alok1/RailMate/backend/internal/config"
	"github.com/sharma-alok1/RailMate/backend/internal/handler"
	"github.com/sharma-alok1/RailMate/backend/internal/model/train"
	"github.com/sharma-alok1/RailMate/backend/internal/service/ai"
	chatService "github.com/sharma-alok1/RailMate/backend/internal/service/chat"
	trainService "github.com/sharma-alok1/RailMate/backend/internal/service/train"
	"github.com/sharma-alok1/RailMate/backend/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		log.Init("info", "console", "")
		log.Fatal("failed to load configuration", err)
	}

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	if envErr != nil {
		log.Warnw("no .env file loaded, continuing with system environment variables only", "error", envErr)
	}

	if cfg.Watch(func(updated *config.Config) {
		log.SetLevel(updated.Log.Level)
		log.Infow("log level applied", "level", log.Level())
	}) {
		log.Infow("watching configuration file", "path", cfg.File())
	}

	trainSvc := trainService.NewService(
		train.NewSeedStore(),
		trainService.NewAvailabilitySimulator(cfg.Trains.AvailabilitySeed),
	)

	chatSvc := chatService.NewService(chatService.WithHistoryLimit(cfg.Chat.HistoryLimit))

	aiSvc, err := ai.NewService(ctx, cfg.AI)
	if err != nil {
		log.Error("failed to initialize AI service, answering with fallback replies", err)
		aiSvc, _ = ai.NewServiceWithModel(ctx, nil, cfg.AI.Timeout)
	}
	if aiSvc.Enabled() {
		log.Infow("AI service initialized", "provider", cfg.AI.Provider, "model", cfg.AI.Model)
	} else {
		log.Warnw("AI credentials not configured, every chat turn gets the fallback reply", "provider", cfg.AI.Provider)
	}

	sweeper := chatService.NewSweeper(chatSvc, cfg.Chat.SweepInterval, cfg.Chat.MaxIdle)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	router := handler.NewRouter(chatSvc, aiSvc, trainSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Infof("RailMate backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatal("server error", err)
	}
	log.Info("server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
