package main

// Applies the denetron schema (members, analysis results, execution records)
// to the database behind DATABASE_URL:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/config"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("denetron migrate: connect: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("denetron migrate: %v", err)
		os.Exit(1)
	}
}
