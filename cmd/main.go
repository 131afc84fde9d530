package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geonote/chat-service/config"
	"github.com/geonote/chat-service/internal/pg"
	"github.com/geonote/chat-service/internal/postgres"
	"github.com/geonote/chat-service/internal/security"
	"github.com/geonote/chat-service/internal/service"
	httpx "github.com/geonote/chat-service/internal/transport/http"
	"github.com/geonote/chat-service/internal/transport/ws"
	"github.com/geonote/chat-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting chat-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- postgres ---
	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Postgres.ToPGConfig())
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// --- jwt ---
	pub, err := security.LoadRSAPublicKeyFromPEM(cfg.JWT.PublicKeyPath)
	if err != nil {
		log.Fatalf("jwt public key: %v", err)
	}
	verifier := security.NewVerifier(pub, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.ClockSkew)

	// --- repos ---
	roomRepo := postgres.NewRoomRepository(pool)
	msgRepo := postgres.NewMessageRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// --- services ---
	identitySvc := service.NewIdentityService(verifier, userRepo)
	accessSvc := service.NewAccessService(roomRepo)
	chatSvc := service.NewChatService(msgRepo, roomRepo, accessSvc)
	receiptSvc := service.NewReceiptService(msgRepo, accessSvc)
	roomSvc := service.NewRoomService(roomRepo)

	// --- WS hub, registry & server ---
	hub := ws.NewHub()
	registry := ws.NewRegistry()
	wsServer := ws.NewServer(hub, registry, identitySvc, accessSvc, chatSvc, receiptSvc)

	// --- HTTP ---
	handler := httpx.NewHandler(roomSvc, chatSvc)
	router := httpx.NewRouter(handler, identitySvc, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
