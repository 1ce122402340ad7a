package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"fromtodk/internal/adapters/awsdk"
	"fromtodk/internal/adapters/repositories"
	"fromtodk/internal/config"
	"fromtodk/internal/platform/db"
	"fromtodk/internal/platform/obs"
	"log"
	"os"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", awsdk.DefaultAdresserPath(), "AWS.dk adresser CSV export")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	logger, err := obs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	if err := initAndImport(ctx, conn, *file, logger); err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}
}

func initAndImport(ctx context.Context, conn *sql.DB, path string, logger *zap.Logger) error {
	logger.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open adresser file: %w", err)
	}
	defer f.Close()

	reader, err := awsdk.NewAdresserReader(f)
	if err != nil {
		return err
	}

	logger.Info("reading addresses", zap.String("file", path))
	addresses, skipped, err := reader.AddressCoordinateMap()
	if err != nil {
		return err
	}

	n, err := repositories.NewPostgresAddressRepository(conn).ImportAddresses(ctx, addresses)
	if err != nil {
		return err
	}

	logger.Info("import complete",
		zap.Int("imported", n),
		zap.Int("skipped", skipped),
	)
	return nil
}
