package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_adlab/internal/adapters/observability"
	"hotel_adlab/internal/app"
	"hotel_adlab/internal/catalog"
	"hotel_adlab/internal/shared"
	mysqlrepo "hotel_adlab/internal/storage/mysql"
)

// seeder writes the built-in hotel catalog into MySQL so the API can run
// with CATALOG_SOURCE=mysql.
func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	repo := mysqlrepo.New(db)
	start := time.Now()
	if err := app.SeedCatalog(ctx, repo, catalog.Seed, cfg.SeedWorkers); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	st, err := catalog.Load(ctx, repo)
	if err != nil {
		log.Fatal().Err(err).Msg("reload failed")
	}
	log.Info().Int("hotels", st.Len()).Str("version", st.Version()).Dur("took", time.Since(start)).Msg("seed complete")
}
