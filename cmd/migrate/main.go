package main

// Run database migrations:
//   go run ./cmd/migrate [up|down|status|version|up-to <version>]

import (
	"context"
	"log"
	"os"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
)

func main() {
	command := db.CommandUp
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, command, args...); err != nil {
		log.Printf("migrate %s failed: %v", command, err)
		os.Exit(1)
	}
	log.Printf("migrate %s done", command)
}
