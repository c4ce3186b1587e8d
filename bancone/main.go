package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	_ "github.com/taldoflemis/veggie-delight/docs"
	"github.com/taldoflemis/veggie-delight/verdura"
	"github.com/taldoflemis/veggie-delight/verdura/telemetry"
)

const ordersSubject = "orders.created"

// @title						Bancone
// @version					1.0
// @description				Counter API of the Veggie Delight pre-order platform.
// @host						localhost:8080
// @BasePath  					/
func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()
	retcode := 0
	defer func() {
		os.Exit(retcode)
	}()

	slog.InfoContext(ctx, "Launching bancone")

	slog.InfoContext(ctx, "Loading config")
	settings, err := LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", slog.Any("err", err))
		retcode = 1
		return
	}

	slog.InfoContext(ctx, "Setting up opentelemetry")
	otelShutdown, err := telemetry.SetupOTelSDK(ctx, settings.App, settings.OpenTelemetry)
	if err != nil {
		slog.Error("failed to setup telemetry", slog.Any("err", err))
		retcode = 1
		return
	}

	defer func() {
		err = errors.Join(err, otelShutdown(context.Background()))
		if err != nil {
			slog.ErrorContext(
				ctx,
				"failed to shutdown opentelemetry providers",
				slog.Any("err", err),
			)
			retcode = 1
		}
	}()

	errChan := make(chan error)
	server := echo.New()
	server.HideBanner = true

	gen := verdura.NewOrderNumberGenerator(uint64(time.Now().UnixNano()))

	healthChecks := make([]healthgo.Config, 0)

	var store OrderStore
	if settings.Postgres.Enabled {
		slog.InfoContext(ctx, "Connecting to Postgres")
		pool, err := settings.Postgres.GetPool(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to Postgres", slog.Any("err", err))
			retcode = 1
			return
		}
		defer pool.Close()

		pgStore := NewPostgresOrderStore(pool, gen)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to ensure orders schema", slog.Any("err", err))
			retcode = 1
			return
		}
		store = pgStore

		healthChecks = append(healthChecks, healthgo.Config{
			Name: "postgres",
			Check: func(ctx context.Context) error {
				return pool.Ping(ctx)
			},
		})
	} else {
		slog.InfoContext(ctx, "Using in-memory order store")
		store = NewMemoryOrderStore(gen)
	}

	var loyalty LoyaltyStore
	if settings.Redis.Enabled {
		slog.InfoContext(ctx, "Connecting to Redis")
		rdb := settings.Redis.GetRedisClient()
		defer rdb.Close()

		loyalty = NewRedisLoyaltyStore(rdb)
		healthChecks = append(healthChecks, healthgo.Config{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		})
	} else {
		slog.InfoContext(ctx, "Using in-memory loyalty store")
		loyalty = NewMemoryLoyaltyStore()
	}

	var publisher OrderPublisher
	if settings.Nats.Enabled {
		slog.InfoContext(ctx, "Connecting to NATS server")
		nc, err := settings.Nats.GetNatsClient()
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to NATS server", slog.Any("err", err))
			retcode = 1
			return
		}
		defer nc.Close()

		publisher = NewNATSOrderPublisher(nc, ordersSubject)
		healthChecks = append(healthChecks, healthgo.Config{
			Name: "nats",
			Check: func(ctx context.Context) error {
				if !nc.IsConnected() {
					return errors.New("NATS connection is not active")
				}
				return nil
			},
		})
	} else {
		slog.InfoContext(ctx, "Using in-process order publisher")
		publisher = NewGoChannelOrderPublisher()
	}

	slog.InfoContext(ctx, "Setting up health checker")
	health, err := healthgo.New(
		healthgo.WithComponent(healthgo.Component{
			Name:    settings.App.Name,
			Version: settings.App.Version,
		}),
		healthgo.WithChecks(healthChecks...),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create health checker", slog.Any("err", err))
		retcode = 1
		return
	}

	NewMainHandler(server, settings, store, loyalty, publisher, health)
	server.GET("/swagger/*", echoSwagger.WrapHandler)
	pprof.Register(server)

	go func() {
		slog.InfoContext(ctx, "listening for requests", slog.String("ip", settings.HTTP.IP), slog.String("port", settings.HTTP.Port))
		errChan <- server.Start(fmt.Sprintf("%s:%s", settings.HTTP.IP, settings.HTTP.Port))
	}()

	select {
	case err = <-errChan:
		slog.ErrorContext(ctx, "error when running server", slog.Any("err", err))
		retcode = 1
		return
	case <-ctx.Done():
		// Wait for first Signal arrives
	}

	err = server.Shutdown(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to shutdown gracefully the server", slog.Any("err", err))
	}
}
