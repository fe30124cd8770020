package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_adlab/internal/adapters/gemini"
	server "hotel_adlab/internal/adapters/http_server"
	"hotel_adlab/internal/adapters/memcache"
	"hotel_adlab/internal/adapters/observability"
	redisad "hotel_adlab/internal/adapters/redis"
	"hotel_adlab/internal/app"
	"hotel_adlab/internal/catalog"
	"hotel_adlab/internal/domain"
	"hotel_adlab/internal/shared"
	mysqlrepo "hotel_adlab/internal/storage/mysql"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// catalog (+ audit log when backed by mysql)
	var (
		cat   *catalog.Store
		audit domain.RecommendationLog
	)
	switch cfg.CatalogSource {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")

		repo := mysqlrepo.New(db)
		if cat, err = catalog.Load(ctx, repo); err != nil {
			log.Fatal().Err(err).Msg("catalog load failed")
		}
		audit = repo
	default:
		cat = catalog.MustSeed()
	}
	log.Info().Str("source", cfg.CatalogSource).Int("hotels", cat.Len()).Str("version", cat.Version()).Msg("catalog ready")

	// recommendation cache
	var cache domain.Cache
	mem := memcache.New(cfg.CacheCapacity)
	cache = mem
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rc.Ping(pctx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-process cache")
			_ = rc.Close()
		} else {
			defer rc.Close()
			cache = rc
		}
	}

	// ai
	var ai domain.AIClient
	if c, err := gemini.New(cfg.AIBaseURL, cfg.AIModel, cfg.AIKey, cfg.AIRPS); err != nil {
		log.Warn().Err(err).Msg("recommendations disabled")
		ai = gemini.Disabled{Reason: err}
	} else {
		ai = c
	}
	policy := gemini.DefaultRetryPolicy(cfg.RetryUnit)
	policy.Attempts = cfg.RetryAttempts
	ai = gemini.NewRetrying(ai, policy)

	rec := app.NewRecommender(ai, cache, audit, cfg.CacheTTL)
	sessions := app.NewSessionManager(cat, rec, cfg.PageSize)
	go reap(ctx, sessions, mem, cfg.SessionIdleTTL)

	// http
	srv := server.New(cfg.HTTPTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Sessions: sessions, Catalog: cat})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	sessions.CloseAll()
}

// reap closes idle sessions and sweeps expired in-process cache entries.
func reap(ctx context.Context, sessions *app.SessionManager, mem *memcache.Cache, idle time.Duration) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			sessions.Reap(now, idle)
			if n := mem.Sweep(); n > 0 {
				log.Debug().Int("evicted", n).Msg("cache sweep")
			}
		}
	}
}
