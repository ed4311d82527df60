// Command server runs the depicts HTTP API.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/depicts-backend/internal/config"
	httpapi "github.com/tbourn/depicts-backend/internal/http"
	"github.com/tbourn/depicts-backend/internal/observability"
	"github.com/tbourn/depicts-backend/internal/repo"
	"github.com/tbourn/depicts-backend/internal/search"
	"github.com/tbourn/depicts-backend/internal/sysutil"
)

// shutdownGrace bounds how long in-flight requests get after a signal.
const shutdownGrace = 15 * time.Second

// @title       Depicts API
// @version     1.0
// @description Cache of Wikidata depicts, artwork, human and language items plus the log of depicts edits and SPARQL queries.
// @BasePath    /api/v1
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	sysutil.SetLogLevel(cfg.LogLevel)
	log.Logger = sysutil.NewLogger(os.Stdout, cfg.LogPretty)
	zerolog.DefaultContextLogger = &log.Logger

	ctx, stop := sysutil.SignalContext(context.Background())
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	version := sysutil.Version()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, search.NewRanker(), cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", version).
			Str("db_driver", cfg.DBDriver).
			Str("base_path", cfg.APIBasePath).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(sctx)
}

// openStore opens the configured database, attaches tracing and migrates
// the schema.
func openStore(cfg config.Config) (*gorm.DB, error) {
	dsn := cfg.DBPath
	if cfg.DBDriver == repo.DriverPostgres {
		dsn = cfg.DBDSN
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if cfg.LogLevel == "debug" {
		gcfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := repo.Open(cfg.DBDriver, dsn, gcfg)
	if err != nil {
		return nil, err
	}
	if cfg.OTEL.Enabled {
		if err := observability.InstrumentDB(db); err != nil {
			return nil, err
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
