//go:generate swag init --parseDependency --output ./api

package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hearth-ledger/backend/pkg/config"
	v1 "github.com/hearth-ledger/backend/pkg/controllers/v1"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/hearth-ledger/backend/pkg/notify"
	"github.com/hearth-ledger/backend/pkg/recurring"
	"github.com/hearth-ledger/backend/pkg/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Configuration")
	}

	url, err := cfg.URL()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration")
	}

	if cfg.Postgres() {
		err = models.ConnectPostgres(cfg.PostgresDSN())
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLiteDSN()), os.ModePerm); err != nil {
			log.Fatal().Err(err).Msg("Data directory")
		}
		err = models.Connect(cfg.SQLiteDSN())
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Database")
	}

	co := v1.New(models.DB, cfg.AuthJWTSecret)

	if cfg.AMQPURL != "" {
		publisher, err := notify.Dial(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("AMQP")
		}
		defer publisher.Close()

		unsubscribe := co.Ledger.OnChange(publisher.Listener)
		defer unsubscribe()
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing ledger changes")
	}

	r, teardown, err := router.Config(url)
	defer teardown()
	if err != nil {
		log.Fatal().Err(err).Msg("Router")
	}
	router.AttachRoutes(co, r.Group(url.Path))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("backend startup complete")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		log.Info().Msg("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return recurring.NewScheduler(co.Recurring, cfg.RecurringInterval).Run(ctx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("backend stopped")
		os.Exit(1)
	}
}
