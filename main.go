package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"texbill/m/internal/api"
	"texbill/m/internal/config"
	"texbill/m/internal/database"
	"texbill/m/internal/logger"
	"texbill/m/internal/migrations"
	"texbill/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("invalid log configuration")
	}

	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.LoadDefaults(db)

	handler := api.New(db, cfg.Secret)

	log.Info().Str("port", cfg.HTTPPort).Msg("textile billing server starting")
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
