// Package server assembles the HTTP application and its background
// collaborators from a Config.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ManuelReschke/PayHook/internal/pkg/broadcast"
	"github.com/ManuelReschke/PayHook/internal/pkg/cache"
	"github.com/ManuelReschke/PayHook/internal/pkg/config"
	"github.com/ManuelReschke/PayHook/internal/pkg/constants"
	"github.com/ManuelReschke/PayHook/internal/pkg/env"
	"github.com/ManuelReschke/PayHook/internal/pkg/gate"
	"github.com/ManuelReschke/PayHook/internal/pkg/history"
	"github.com/ManuelReschke/PayHook/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/PayHook/internal/pkg/middleware"
	"github.com/ManuelReschke/PayHook/internal/pkg/payments"
	"github.com/ManuelReschke/PayHook/internal/pkg/relay"
	"github.com/ManuelReschke/PayHook/internal/pkg/router"
	"github.com/ManuelReschke/PayHook/internal/pkg/webhook"
)

const bodyLimit = 4 * 1024 * 1024

type Application struct {
	App     *fiber.App
	Config  *config.Config
	Service *webhook.Service
	Relay   *relay.Dispatcher
	Counter *counter.Sink

	limiterStorage fiber.Storage
}

// NewFromEnv loads the .env file and the process environment, then builds
// the application from the resulting Config.
func NewFromEnv() (*Application, error) {
	env.SetupEnvFile()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return New(cfg)
}

// New builds the application. Redis, Kafka and NATS are only contacted
// when configured.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("server: nil config")
	}
	if cfg.RedisAddr() != "" {
		cache.SetupCache(cfg.RedisAddr(), cfg.Redis.Password)
	}

	var daily *counter.Sink
	if client := cache.GetClient(); client != nil {
		daily = counter.NewSink(client)
	}

	sinks := buildSinks(cfg)
	if daily != nil {
		sinks = append(sinks, daily)
	}
	dispatcher := relay.NewDispatcher(cfg.Relay.QueueSize, sinks...)
	svc := webhook.NewService(
		gate.New(),
		history.NewStore(cfg.HistoryCapacity),
		broadcast.NewHub(),
		payments.NewNormalizer(),
		dispatcher,
	)

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:               "PayHook",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	a := &Application{
		App:            app,
		Config:         cfg,
		Service:        svc,
		Relay:          dispatcher,
		Counter:        daily,
		limiterStorage: middleware.NewLimiterStorage(),
	}

	// ROUTER
	router.InstallRouter(app, router.Dependencies{
		Config:         cfg,
		Service:        svc,
		LimiterStorage: a.limiterStorage,
		Counter:        daily,
	})

	return a, nil
}

func buildSinks(cfg *config.Config) []relay.Sink {
	var sinks []relay.Sink

	if client := cache.GetClient(); client != nil {
		sinks = append(sinks, relay.NewRedisSink(client, cfg.Redis.Channel))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		sinks = append(sinks, relay.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic))
	}
	if cfg.Nats.URL != "" {
		sink, err := relay.NewNatsSink(cfg.Nats.URL, cfg.Nats.Subject)
		if err != nil {
			log.Warnf("[Relay] NATS unavailable, skipping sink: %v", err)
		} else {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}

// Listen starts the relay worker and serves HTTP until Shutdown.
func (a *Application) Listen() error {
	a.Relay.Start()

	mode := "DEVELOPMENT"
	if a.Config.IsProduction() {
		mode = "PRODUCTION"
	}
	log.Infof("[Server] PayHook starting: mode=%s addr=%s webhook=%s", mode, a.Config.Addr(), constants.WebhookRoute)
	log.Infof("[Server] Client build present: %t", a.Config.HasClientBuild())

	return a.App.Listen(a.Config.Addr())
}

// Shutdown stops accepting requests, drains the relay and closes Redis.
func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.App.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, err)
	}
	a.Relay.Stop()
	if a.limiterStorage != nil {
		if err := a.limiterStorage.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := cache.Close(); err != nil {
		errs = append(errs, err)
	}
	log.Info("[Server] Stopped")
	return errors.Join(errs...)
}
