// Package main is the orders service. GET /orders/talk-to-actor sends the customer id to the customers actor
// system through the registry; requests are validated against the embedded OpenAPI document.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mymesh/adapters/remote"
	"mymesh/bootstrap"
	"mymesh/handlers"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	logger := bootstrap.NewLogger(os.Getenv(bootstrap.EnvLogLevel))
	if err := run(logger); err != nil {
		level.Error(logger).Log("msg", "orders service stopped with error", "err", err)
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
		"target_service", cfg.TargetService,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ms, err := bootstrap.NewMeshService(ctx, cfg.Service, cfg.Registry, 0, logger)
	if err != nil {
		return err
	}
	defer ms.Close()

	balancer, err := service.NewBalancer(cfg.Balancer)
	if err != nil {
		return err
	}
	sender := remote.NewSender(remote.InsecureFactory, logger)
	ms.Node.OnShutdown("remote_sender", func(context.Context) error { return sender.Close() })
	messenger := service.NewMessenger(
		service.NewPeerResolver(ms.RegistryClient, balancer, logger),
		sender,
		bootstrap.Millis(cfg.SendTimeoutMs),
		logger,
	)

	doc, err := handlers.LoadOrdersOpenAPI()
	if err != nil {
		return err
	}
	validator, err := handlers.OpenAPIRequestValidator(doc)
	if err != nil {
		return err
	}
	ms.Echo.Use(validator)
	handlers.RegisterOrdersHandlers(ms.Echo, handlers.NewOrdersServer(messenger, cfg.TargetService, cfg.TargetActorPath, logger))

	err = ms.Run(ctx)
	level.Info(logger).Log("msg", "Orders service stopped")
	return err
}
