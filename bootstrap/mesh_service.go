package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"mymesh/domain"
	"mymesh/handlers"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// MeshService is the shared runtime of a service binary: an echo server announced under ServiceName and an
// actor host reachable over gRPC, announced under ActorSystemName. Binaries add their routes and actors before Run.
type MeshService struct {
	Echo           *echo.Echo
	Actors         *service.ActorHost
	Node           *service.Node
	RegistryClient *service.RegistryClient

	cfg      ServiceConfig
	seeds    []string
	registry *Registry
	logger   log.Logger
}

// NewMeshService connects to the registry and prepares the servers. mailboxSize <= 0 takes the actor host default.
func NewMeshService(ctx context.Context, cfg ServiceConfig, registryCfg RegistryConfig, mailboxSize int, logger log.Logger) (*MeshService, error) {
	registry, err := NewRegistry(ctx, registryCfg, logger)
	if err != nil {
		return nil, err
	}
	return newMeshService(cfg, registry, registryCfg, mailboxSize, logger), nil
}

func newMeshService(cfg ServiceConfig, registry *Registry, registryCfg RegistryConfig, mailboxSize int, logger log.Logger) *MeshService {
	registryClient := NewRegistryClient(registry, registryCfg, logger)
	node := service.NewNode(registryClient, registry.Membership, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	service.RegisterErrorHandler(e, logger)
	handlers.RegisterHealthHandlers(e, handlers.NewHealthHandler(node.Serving))

	return &MeshService{
		Echo:           e,
		Actors:         service.NewActorHost(mailboxSize, logger),
		Node:           node,
		RegistryClient: registryClient,
		cfg:            cfg,
		seeds:          registryCfg.Seeds,
		registry:       registry,
		logger:         logger,
	}
}

// Close releases the registry client.
func (m *MeshService) Close() error {
	return m.registry.Close()
}

// Run binds both listeners, starts serving, announces both registrations and joins the cluster. When ctx ends
// it shuts the node down: registrations first, then the HTTP server, the gRPC server and the actor host.
// A failed announcement shuts down what was started and is returned.
func (m *MeshService) Run(ctx context.Context) error {
	httpLis, err := net.Listen("tcp", fmt.Sprintf(":%d", m.cfg.HTTPPort))
	if err != nil {
		return fmt.Errorf("listen http: %w", err)
	}
	remoteLis, err := net.Listen("tcp", fmt.Sprintf(":%d", m.cfg.RemotePort))
	if err != nil {
		_ = httpLis.Close()
		return fmt.Errorf("listen remote: %w", err)
	}
	return m.serve(ctx, httpLis, remoteLis)
}

func (m *MeshService) serve(ctx context.Context, httpLis, remoteLis net.Listener) error {
	grpcServer, healthServer := NewRemoteGRPCServer(m.Actors, m.logger)
	m.Echo.Listener = httpLis

	m.Node.OnShutdown("actors", m.Actors.Stop)
	m.Node.OnShutdown("remote", func(ctx context.Context) error {
		return StopGRPCServer(ctx, grpcServer, healthServer)
	})
	m.Node.OnShutdown("http", m.Echo.Shutdown)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		level.Info(m.logger).Log("msg", "Starting HTTP server", "addr", httpLis.Addr().String())
		if err := m.Echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		level.Info(m.logger).Log("msg", "Starting actor remoting server", "addr", remoteLis.Addr().String())
		if err := grpcServer.Serve(remoteLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		level.Info(m.logger).Log("msg", "Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), Millis(m.cfg.ShutdownTimeoutMs))
		defer cancel()
		return m.Node.Shutdown(shutdownCtx)
	})

	if err := m.announce(gctx, httpLis, remoteLis); err != nil {
		cancel()
		_ = g.Wait()
		return err
	}
	return g.Wait()
}

func (m *MeshService) announce(ctx context.Context, httpLis, remoteLis net.Listener) error {
	ttl := Millis(m.cfg.RegistrationTTLMs)
	if _, err := m.Node.Announce(ctx, m.cfg.ServiceName, m.cfg.HTTPTags(), httpLis, service.RegistrarOptions{
		Scheme: domain.SchemeHTTP,
		TTL:    ttl,
	}); err != nil {
		return fmt.Errorf("announce %s: %w", m.cfg.ServiceName, err)
	}
	if _, err := m.Node.Announce(ctx, m.cfg.ActorSystemName, nil, remoteLis, service.RegistrarOptions{
		Scheme: domain.SchemeGRPC,
		TTL:    ttl,
	}); err != nil {
		return fmt.Errorf("announce %s: %w", m.cfg.ActorSystemName, err)
	}
	return m.Node.JoinCluster(ctx, m.seeds)
}
