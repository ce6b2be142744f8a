package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/esperanzagt/donations/internal/api"
	"github.com/esperanzagt/donations/internal/clients/cybersource"
	"github.com/esperanzagt/donations/internal/clients/mailer"
	"github.com/esperanzagt/donations/internal/repository"
	"github.com/esperanzagt/donations/internal/service"
	"github.com/esperanzagt/donations/pkg/broker"
	"github.com/esperanzagt/donations/pkg/config"
	"github.com/esperanzagt/donations/pkg/job"
	"github.com/esperanzagt/donations/pkg/logger"
	"github.com/esperanzagt/donations/pkg/postgres"
	"github.com/esperanzagt/donations/pkg/ratelimit"
)

const (
	ReadTimeout  = 5 * time.Second
	WriteTimeout = 5 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l, err := logger.New(cfg.Logger.Level)
	panicOnErr("create logger", err)

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConn)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	err = postgres.UpMigrations(cfg.Postgres.DSN)
	panicOnErr("up migrations", err)

	repo := repository.New(pool)

	gateway := cybersource.NewClient(cfg.CyberSource)

	producer := broker.NewProducer(l, cfg.Kafka.Brokers, cfg.Kafka.DonationConfirmedTopic)
	defer producer.Close()

	mailClient := mailer.New(cfg.Mailer)

	s := service.New(repo, gateway, producer, mailClient, cfg.Environment)

	scheduler := job.NewScheduler().
		RegisterJob("resync donor aggregates", time.Hour, s.ResyncDonorAggregates)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	limiter := ratelimit.NewMemory(cfg.HTTP.CallbackRateLimit, time.Minute)

	handler := api.NewHandler(s, cfg.ResultPageURL)
	mw := api.NewMiddleware(cfg.HTTP.APIKeyEnabled, cfg.HTTP.APIKey, limiter)

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "service started", "port", cfg.HTTP.Port, "environment", cfg.Environment)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		err = server.Shutdown(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
