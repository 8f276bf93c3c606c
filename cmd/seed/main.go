package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/oggyb/reelread/internal/config"
	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/logger"
)

var force = kingpin.Flag("force", "Allow wiping a production database.").Bool()

func main() {
	kingpin.Parse()

	// Load configuration
	cfg := config.New()
	logger.InitFromConfig(cfg)
	log := logger.With("component", "seed")

	if cfg.App.ENV == "production" && !*force {
		log.Error("refusing to seed a production database without --force")
		os.Exit(1)
	}

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	if err := db.SeedTestData(database); err != nil {
		log.Error("failed to seed", "err", err)
		os.Exit(1)
	}

	log.Info("seeding completed", "driver", cfg.DB.Driver)
}
