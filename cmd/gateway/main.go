// Package main is the mymesh API gateway. It keeps a routing table built from the registry (every instance tagged
// with the proxy tag, grouped by service) and forwards requests by longest path prefix through echo's proxy
// middleware. GET / and GET /_configurations are served by the gateway itself.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mymesh/bootstrap"
	"mymesh/domain"
	"mymesh/handlers"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := bootstrap.NewLogger(os.Getenv(bootstrap.EnvLogLevel))
	if err := run(logger); err != nil {
		level.Error(logger).Log("msg", "gateway stopped with error", "err", err)
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
		"service_port_http", cfg.HTTPPort,
		"registry", cfg.Registry.Backend,
		"proxy_tag", cfg.ProxyTag,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := bootstrap.NewRegistry(ctx, cfg.Registry, logger)
	if err != nil {
		return err
	}
	defer registry.Close()
	registryClient := bootstrap.NewRegistryClient(registry, cfg.Registry, logger)
	node := service.NewNode(registryClient, registry.Membership, logger)

	timeProvider := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })
	synchronizer := service.NewSynchronizer(registryClient, timeProvider, cfg.synchronizerConfig(), logger)
	synchronizer.OnChange(func(s *domain.RoutingSnapshot) {
		level.Info(logger).Log("msg", "routing table published", "version", s.Version, "routes", len(s.Routes))
	})

	balancer, err := service.NewBalancer(cfg.Balancer)
	if err != nil {
		return err
	}

	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		e.HidePort = true
		service.RegisterErrorHandler(e, logger)
		e.Use(handlers.NewGatewayProxy(synchronizer, balancer, logger, "/", "/_configurations", "/health", "/_health"))
		handlers.RegisterGatewayHandlers(e, handlers.NewGatewayServer(synchronizer, cfg.StaleAfterFailures, node.Members))
		handlers.RegisterHealthHandlers(e, handlers.NewHealthHandler(node.Serving))
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.HTTPPort))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	e.Listener = lis
	node.OnShutdown("http", e.Shutdown)

	if err := node.JoinCluster(ctx, cfg.Registry.Seeds); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return synchronizer.Run(gctx)
	})
	g.Go(func() error {
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", lis.Addr().String())
		if err := e.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		level.Info(logger).Log("msg", "Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.Millis(cfg.ShutdownTimeoutMs))
		defer cancel()
		return node.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	level.Info(logger).Log("msg", "Gateway stopped")
	return err
}
