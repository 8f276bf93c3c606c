package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/oggyb/reelread/internal/app"
	"github.com/oggyb/reelread/internal/auth"
	"github.com/oggyb/reelread/internal/cache"
	"github.com/oggyb/reelread/internal/config"
	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/logger"
	"github.com/oggyb/reelread/internal/metrics"
	"github.com/oggyb/reelread/internal/push"
	"github.com/oggyb/reelread/internal/repository"
	"github.com/oggyb/reelread/internal/server"
	"github.com/oggyb/reelread/internal/service/collections"
	"github.com/oggyb/reelread/internal/service/library"
	"github.com/oggyb/reelread/internal/service/recaps"
	"github.com/oggyb/reelread/internal/service/reviews"
	"github.com/oggyb/reelread/internal/service/social"
	"github.com/oggyb/reelread/internal/storage"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}

// run wires every dependency and serves gRPC until ctx is done. Any init
// failure is returned so main can exit non-zero.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}

	opts := []app.Option{
		app.WithPush(push.NewDispatcher(cfg, repository.NewProfileRepository(database), log.With("component", "push"))),
	}
	// avatar uploads are optional, the rest of the API works without storage
	if avatars, err := storage.NewAvatars(cfg); err != nil {
		log.Warn("avatar storage disabled", "err", err)
	} else {
		opts = append(opts, app.WithAvatars(avatars))
	}

	appCtx := app.New(cfg, database, redisCache, log, opts...)

	registrars := []server.Registrar{
		reviews.NewRegistrar(appCtx),
		recaps.NewRegistrar(appCtx),
		collections.NewRegistrar(appCtx),
		library.NewRegistrar(appCtx),
		social.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	go func() {
		log.Info("serving metrics", "addr", cfg.Metrics.Addr)
		if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
			log.Error("metrics server stopped", "err", err)
		}
	}()

	addr := cfg.GRPC.Host + ":" + cfg.GRPC.Port
	log.Info("starting gRPC server", "addr", addr)

	grpcServer := server.NewGRPCServer(verifier, log, registrars...)
	if err := server.StartGRPCServer(ctx, cfg, grpcServer); err != nil {
		return fmt.Errorf("serve grpc: %w", err)
	}
	log.Info("gRPC server stopped")
	return nil
}
