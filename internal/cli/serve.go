package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BruksfildServices01/receptionist/internal/audit"
	"github.com/BruksfildServices01/receptionist/internal/calendar"
	"github.com/BruksfildServices01/receptionist/internal/config"
	dbpkg "github.com/BruksfildServices01/receptionist/internal/db"
	"github.com/BruksfildServices01/receptionist/internal/lock"
	"github.com/BruksfildServices01/receptionist/internal/routes"
)

const shutdownTimeout = 15 * time.Second

func NewServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(v)
			if p := v.GetString("port"); p != "" {
				cfg.ServerPort = p
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("port", "", "listen port (SERVER_PORT)")
	_ = v.BindPFlag("port", cmd.Flags().Lookup("port"))
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	cal, err := calendar.Load(cfg.BusinessConfig)
	if err != nil {
		return err
	}
	holder := calendar.NewHolder(cal, cfg.BusinessConfig)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dispatcher := audit.NewDispatcher(audit.New(db))

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Calendar: holder,
		Locker:   locker,
		Audit:    dispatcher,
		Registry: registry,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("business", cal.BusinessName).
			Str("timezone", cal.Timezone).
			Msg("server running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
		return nil
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("audit drain")
	}
	return nil
}

// newLocker picks the Redis lease lock when REDIS_ADDR is set so several
// instances can share one database; otherwise an in-process lock is used.
func newLocker(ctx context.Context, cfg *config.Config) (lock.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info().Msg("using in-process booking lock")
		return lock.NewLocal(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("using redis booking lock")
	return lock.NewRedis(client), func() { _ = client.Close() }, nil
}
