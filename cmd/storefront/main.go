package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/teetribe/teetribe-backend/api/routes"
	"github.com/teetribe/teetribe-backend/internal/cart"
	"github.com/teetribe/teetribe-backend/internal/localcart"
	"github.com/teetribe/teetribe-backend/pkg/cartapi"
	"github.com/teetribe/teetribe-backend/pkg/config"
	"github.com/teetribe/teetribe-backend/pkg/logger"
	"github.com/teetribe/teetribe-backend/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	resetLocal := flag.Bool("reset-local", false, "discard the locally persisted cart before hydrating")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.LoadStorefront()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	level := logger.ParseLevel(cfg.App.LogLevel)
	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       &level,
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg, *resetLocal); err != nil {
		logg.Error(context.Background(), "storefront stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger, resetLocal bool) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	localRepo, localDB, err := localcart.Open(ctx, cfg.Cart.LocalPath, cfg.Cart.LocalKey, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, localDB.Close()) }()

	if resetLocal {
		if err := localRepo.Clear(ctx); err != nil {
			return err
		}
		logg.Info(ctx, "local cart discarded")
	}

	client := cartapi.NewClient(cfg.Cart.RemoteBaseURL, cartapi.WithTimeout(cfg.Cart.RemoteTimeout))

	store, err := cart.NewStore(cart.StoreParams{
		UserID:   cfg.Cart.UserID,
		Local:    localRepo,
		Remote:   client,
		Notifier: cart.NotifierFunc(func(ctx context.Context, notice cart.Notice) {
			logg.Info(logg.WithField(ctx, "notice", string(notice)), "cart notice")
		}),
		Observer: metrics.NewCartMetrics(prometheus.DefaultRegisterer),
		Logger:   logg,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = multierr.Append(err, store.Flush(flushCtx))
		store.Close()
	}()

	source := store.Hydrate(ctx)
	logCtx := logg.WithFields(ctx, map[string]any{
		"user_id":          cfg.Cart.UserID,
		"hydration_source": string(source),
		"remote":           cfg.Cart.RemoteBaseURL,
		"addr":             ":" + cfg.Storefront.Port,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Storefront.Port,
		Handler:           routes.NewStorefrontRouter(logg, store, client, prometheus.DefaultGatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logg.Info(logCtx, "starting storefront")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logg.Info(logCtx, "shutting down storefront")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
