package main

import (
	"fmt"
	"net/http"

	"github.com/DillonStreator/safeid/storage"
	"github.com/eleanorhealth/milo"
	"github.com/go-pg/pg/v10"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if noEnvsSet(dbEnvs...) {
		log.Warn().Msg("no DB_* variables set, using local defaults")
	}

	db := pg.Connect(cfg.DB)
	defer db.Close()

	err = storage.CreateSchema(db)
	if err != nil {
		log.Fatal().Err(err).Msg("create schema")
	}

	users := storage.NewUsers(db, milo.NewStore(db, storage.MiloEntityModelMap))

	log.Info().Str("port", cfg.Port).Msg("listening")
	err = http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), getMux(users, defaultRates))
	if err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}
