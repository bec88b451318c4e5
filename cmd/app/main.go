package main

import (
	"github.com/rs/zerolog/log"

	"reservation/config"
	"reservation/di"
	"reservation/helper"
	"reservation/shared/logger"
	"reservation/shared/timezone"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Fatal().Err(err).Msg("Failed to load application timezone")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app := di.InitializeApp()
	app.Run()
}
