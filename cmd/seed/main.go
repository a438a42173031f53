package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/yukikurage/progress-tracker-api/internal/config"
	"github.com/yukikurage/progress-tracker-api/internal/database"
	"github.com/yukikurage/progress-tracker-api/internal/seed"
	"github.com/yukikurage/progress-tracker-api/pkg/logger"
	"gorm.io/gorm"
)

func main() {
	file := flag.String("file", "", "YAML fixture to load (defaults to SEED_FILE, then the built-in demo data)")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		log := logger.Get()
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	path := *file
	if path == "" {
		path = cfg.SeedFile
	}
	fixture, err := seed.LoadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fixture")
	}

	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	code := 0
	if err := run(ctx, db, fixture); err != nil {
		if errors.Is(err, seed.ErrAlreadySeeded) {
			log.Warn().Msg("database already seeded, nothing to do")
		} else {
			log.Error().Err(err).Msg("seeding failed")
			code = 1
		}
	}

	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("failed to close database")
		code = 1
	}
	os.Exit(code)
}

func run(ctx context.Context, db *gorm.DB, fixture *seed.Fixture) error {
	log := logger.Get()
	if err := database.Migrate(db, log); err != nil {
		return err
	}
	_, err := seed.NewSeeder(db, log).Apply(ctx, fixture)
	return err
}
