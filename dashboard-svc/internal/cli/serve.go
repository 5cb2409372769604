package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodie-dashboard/config"
	httpapi "foodie-dashboard/dashboard-svc/internal/api/http"
	"foodie-dashboard/dashboard-svc/internal/domain"
	"foodie-dashboard/dashboard-svc/internal/events"
	"foodie-dashboard/dashboard-svc/internal/gateway"
	"foodie-dashboard/dashboard-svc/internal/page"
	"foodie-dashboard/dashboard-svc/internal/storage"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, getConfig(cmd.Context()))
		},
	}
	cmd.Flags().String("listen-addr", "", "address to listen on")
	cmd.Flags().String("public-url", "", "externally reachable base URL for share codes")
	cmd.Flags().Duration("page-ttl", 0, "drop page instances idle for this long")
	cmd.Flags().String("redis-addr", "", "Redis address for the refresh bus")
	cmd.Flags().String("kafka-broker", "", "Kafka broker for load events")
	cmd.Flags().String("postgres-dsn", "", "Postgres DSN for load history")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := newLogger(cfg.LogLevel)
	recorder := events.NewRecorder(logger)

	var history httpapi.LoadHistory
	if cfg.PostgresDSN != "" {
		db, err := config.InitPostgres(cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		store := storage.NewLoadHistory(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare load history: %w", err)
		}
		recorder.Attach("postgres", store)
		history = store
	}

	if cfg.KafkaBroker != "" {
		writer := config.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaTopic)
		defer writer.Close()
		recorder.Attach("kafka", events.NewKafkaSink(writer))
	}

	var bus *events.RefreshBus
	if cfg.RedisAddr != "" {
		rdb, err := config.InitRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		bus = events.NewRefreshBus(rdb, cfg.RefreshChannel, logger)
	}

	deps := pageDeps(cfg, recorder, logger)
	registry := page.NewRegistry(deps, cfg.PageTTL)

	proxy := gateway.NewGateway(gateway.Config{AnalyticsURL: cfg.APIBaseURL}, &http.Client{Timeout: 60 * time.Second}, logger)
	handler := httpapi.NewHandler(registry, history, deps.API, proxy, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("dashboard starting", "addr", cfg.ListenAddr, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return recorder.Run(ctx)
	})

	if cfg.PageTTL > 0 {
		g.Go(func() error {
			registry.Run(ctx, sweepInterval(cfg.PageTTL))
			return nil
		})
	}

	if bus != nil {
		g.Go(func() error {
			return bus.Subscribe(ctx, refreshHandler(registry, logger))
		})
	}

	return g.Wait()
}

func refreshHandler(registry *page.Registry, logger *slog.Logger) func(context.Context, domain.RefreshRequest) {
	return func(ctx context.Context, req domain.RefreshRequest) {
		n := registry.RefreshPanel(ctx, req.Panel)
		logger.Info("refresh requested", "panel", req.Panel, "by", req.RequestedBy, "pages", n)
	}
}

func sweepInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, time.Second)
}
