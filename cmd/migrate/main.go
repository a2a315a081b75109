package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/frontandrew/carrental/internal/pkg/config"
	"github.com/frontandrew/carrental/internal/pkg/database"
	"github.com/frontandrew/carrental/internal/pkg/logger"
)

// Использование: migrate [up|down|status]
func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [up|down|status]\n", os.Args[0])
	}
	flag.Parse()

	command := database.MigrateUp
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err,
		})
	}
	defer database.Close(db)

	if err := database.Migrate(ctx, db, command); err != nil {
		log.Error("Migration failed", map[string]interface{}{
			"command": command,
			"error":   err,
		})
		database.Close(db)
		os.Exit(1)
	}

	log.Info("Migration finished", map[string]interface{}{
		"command": command,
	})
}
