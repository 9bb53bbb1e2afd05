// Package main is the customers service. It hosts the customers actor, which the orders service reaches through
// the customer-actor-system registration, and serves GET /customers/ behind the gateway.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mymesh/bootstrap"
	"mymesh/handlers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	logger := bootstrap.NewLogger(os.Getenv(bootstrap.EnvLogLevel))
	if err := run(logger); err != nil {
		level.Error(logger).Log("msg", "customers service stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(logger log.Logger) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service", cfg.Service.ServiceName,
		"registry", cfg.Registry.Backend,
		"actor_path", cfg.ActorPath,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ms, err := bootstrap.NewMeshService(ctx, cfg.Service, cfg.Registry, cfg.MailboxSize, logger)
	if err != nil {
		return err
	}
	defer ms.Close()

	if err := ms.Actors.Spawn(cfg.ActorPath, newCustomerActor(logger)); err != nil {
		return err
	}
	handlers.RegisterCustomersHandlers(ms.Echo)

	err = ms.Run(ctx)
	level.Info(logger).Log("msg", "Customers service stopped")
	return err
}
