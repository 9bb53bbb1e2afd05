package bootstrap

import (
	"context"

	apiremote "mymesh/api/remote"
	"mymesh/handlers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// NewRemoteGRPCServer builds the actor remoting server: ActorRemote delivering into deliverer, the MyError
// interceptor and grpc.health.v1 for registry probes.
func NewRemoteGRPCServer(deliverer interfaces.ActorDeliverer, logger log.Logger) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(service.MyErrorToGRPCInterceptor(logger)))
	apiremote.RegisterActorRemoteServer(srv, handlers.NewRemoteServer(deliverer))
	hs := health.NewServer()
	hs.SetServingStatus(apiremote.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

// StopGRPCServer reports NOT_SERVING, then stops srv gracefully, falling back to a hard stop when ctx ends first.
func StopGRPCServer(ctx context.Context, srv *grpc.Server, hs *health.Server) error {
	if hs != nil {
		hs.Shutdown()
	}
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		srv.Stop()
		return ctx.Err()
	}
}
