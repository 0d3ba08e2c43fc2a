package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

const shutdownTimeout = 10 * time.Second

func serve(parent context.Context) error {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := applog.Tee(cfg.LogFile)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
		}
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repos.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	pub, closePub := openPublisher(cfg)
	defer closePub()

	app := handlers.NewApp(cfg, handlers.NewDeps(store.Backend, pub))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		applog.Info(nil, "server.start", applog.Fields{"port": cfg.Port, "storage": cfg.Storage})
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		applog.Info(nil, "server.stop", nil)
		return app.ShutdownWithContext(sctx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openPublisher connects to the broker when one is configured. A broker that
// cannot be reached leaves events disabled rather than failing startup.
func openPublisher(cfg config.Config) (events.Publisher, func()) {
	if cfg.AMQPURL == "" {
		return events.Nop{}, func() {}
	}
	p, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		applog.Error(nil, "events.dial.fail", err, nil)
		return events.Nop{}, func() {}
	}
	return p, func() {
		if err := p.Close(); err != nil {
			applog.Error(nil, "events.close.fail", err, nil)
		}
	}
}
