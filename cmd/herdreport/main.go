package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/camposur/herdtrack/internal/config"
	"github.com/camposur/herdtrack/internal/db"
	"github.com/camposur/herdtrack/internal/report"
	"github.com/camposur/herdtrack/internal/repository"
	"github.com/camposur/herdtrack/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", ".", "directory containing config.yaml")
		farmFlag   = flag.String("farm", "", "farm id to report on (required)")
		seasonFlag = flag.String("season", "", "breeding season id for season-scoped KPIs (optional)")
	)
	flag.Parse()

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	farmID, err := uuid.Parse(*farmFlag)
	if err != nil {
		baseLogger.Fatal("a valid -farm id is required", zap.Error(err))
	}

	var seasonID *uuid.UUID
	if *seasonFlag != "" {
		parsed, err := uuid.Parse(*seasonFlag)
		if err != nil {
			baseLogger.Fatal("invalid -season id", zap.Error(err))
		}
		seasonID = &parsed
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		baseLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conn, err := db.NewConnection(ctx, cfg.DB)
	if err != nil {
		baseLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.DB); err != nil {
		baseLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	animals := repository.NewAnimalRepository(conn.Pool)
	events := repository.NewReproEventRepository(conn.Pool)
	seasons := repository.NewSeasonRepository(conn.Pool)

	svc := report.NewService(animals, events, seasons, cfg.Thresholds,
		logger.Named(baseLogger, "svc.report"),
		report.WithOutputDir(cfg.Report.OutputDir),
	)

	built, err := svc.Build(ctx, farmID, seasonID)
	if err != nil {
		baseLogger.Fatal("failed to build herd report", zap.Error(err))
	}

	path, err := svc.WriteWorkbook(built)
	if err != nil {
		baseLogger.Fatal("failed to write herd report", zap.Error(err))
	}

	baseLogger.Info("herd report complete",
		zap.String("farm_id", farmID.String()),
		zap.Int("animals", built.Summary.Animals),
		zap.String("path", path),
	)
}
