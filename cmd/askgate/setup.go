package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/askgate/internal/config"
	"github.com/sandevgo/askgate/internal/providers/llm"
	"github.com/sandevgo/askgate/internal/providers/vision"
	"github.com/sandevgo/askgate/internal/storage/sqlite"
	"github.com/sandevgo/askgate/internal/transport/httpapi"
	"github.com/sandevgo/askgate/pkg/log"
	"github.com/sandevgo/askgate/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	ollamaCfg := config.NewOllamaConfig(ctx)
	visionCfg := config.NewVisionConfig(ctx)

	// 2. Storage
	db, repo, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Inference backends
	textGen := llm.NewOllama(ollamaCfg)
	visionGen := vision.NewProvider(appCfg, visionCfg)
	logger.Info().Str("vision_provider", appCfg.VisionProvider).Msg("configured backends")

	// 4. HTTP API
	services = append(services, httpapi.NewServer(ctx, appCfg, repo, textGen, visionGen))

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, *sqlite.InteractionsRepo, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return db, sqlite.NewInteractionsRepo(db), nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
