// Command seeder imports the projection and ADP CSVs in DATA_DIR into the
// Postgres projections tables for PROJECTION_SEASON.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/draftkit/valuation-api/internal/config"
	"github.com/draftkit/valuation-api/internal/sources"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.PostgresURL == "" {
		log.Fatal("POSTGRES_URL is required")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to connect to Postgres", "error", err)
	}
	defer pool.Close()

	set, err := sources.NewDirProjections(cfg.DataDir).Load(ctx)
	if err != nil {
		sugar.Fatalw("Failed to read projection CSVs", "dir", cfg.DataDir, "error", err)
	}

	db := sources.NewPostgresProjections(pool, cfg.ProjectionSeason)
	if err := db.Migrate(ctx); err != nil {
		sugar.Fatalw("Schema migration failed", "error", err)
	}

	for _, table := range set.Tables {
		n, err := db.ReplaceTable(ctx, table)
		if err != nil {
			sugar.Fatalw("Failed to import table", "table", table.Name, "error", err)
		}
		sugar.Infow("Imported projections", "table", table.Name, "rows", n, "season", cfg.ProjectionSeason)
	}

	if len(set.ADP) > 0 {
		n, err := db.ReplaceADP(ctx, set.ADP)
		if err != nil {
			sugar.Fatalw("Failed to import ADP", "error", err)
		}
		sugar.Infow("Imported ADP", "rows", n, "season", cfg.ProjectionSeason)
	}
}
