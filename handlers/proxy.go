package handlers

import (
	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// snapshotBalancer picks proxy targets from the routing snapshot current at the time of the request.
// Targets are never added or removed by hand; a new snapshot replaces them as a whole.
type snapshotBalancer struct {
	source   interfaces.SnapshotSource
	balancer interfaces.Balancer
	logger   log.Logger
}

var (
	_ middleware.ProxyBalancer  = (*snapshotBalancer)(nil)
	_ middleware.TargetProvider = (*snapshotBalancer)(nil)
)

func (b *snapshotBalancer) AddTarget(*middleware.ProxyTarget) bool { return false }

func (b *snapshotBalancer) RemoveTarget(string) bool { return false }

func (b *snapshotBalancer) Next(ectx echo.Context) *middleware.ProxyTarget {
	t, _ := b.NextTarget(ectx)
	return t
}

// NextTarget returns not_found when no route covers the request path and service_unavailable when the route's
// cluster has no healthy member.
func (b *snapshotBalancer) NextTarget(ectx echo.Context) (*middleware.ProxyTarget, error) {
	path := ectx.Request().URL.Path
	snap := b.source.Current()
	route, ok := snap.Match(path)
	if !ok {
		return nil, service.NewNotFoundError("no route for "+path, nil)
	}
	members, _ := snap.Cluster(route.Cluster)
	if len(members) == 0 {
		return nil, service.NewServiceUnavailableError("no healthy destination for route "+route.ID, nil)
	}
	inst, err := b.balancer.Pick(members)
	if err != nil {
		return nil, err
	}
	level.Debug(b.logger).Log("msg", "forwarding", "path", path, "route", route.ID, "destination", inst.ID, "version", snap.Version)
	return &middleware.ProxyTarget{
		Name: inst.ID,
		URL:  inst.URL(),
		Meta: echo.Map{"route": route.ID, "cluster": string(route.Cluster)},
	}, nil
}

// NewGatewayProxy returns echo's reverse-proxy middleware fed from source. Requests whose path is in ownPaths are
// left to the gateway's own handlers. Upstream failures are reported as delivery_failed.
func NewGatewayProxy(source interfaces.SnapshotSource, balancer interfaces.Balancer, logger log.Logger, ownPaths ...string) echo.MiddlewareFunc {
	own := make(map[string]struct{}, len(ownPaths))
	for _, p := range ownPaths {
		own[p] = struct{}{}
	}
	b := &snapshotBalancer{
		source:   helpers.NilPanic(source, "handlers.proxy.go: source is required"),
		balancer: helpers.NilPanic(balancer, "handlers.proxy.go: balancer is required"),
		logger:   log.With(helpers.NilPanic(logger, "handlers.proxy.go: logger is required"), "component", "gateway_proxy"),
	}
	return middleware.ProxyWithConfig(middleware.ProxyConfig{
		Skipper: func(ectx echo.Context) bool {
			_, ok := own[ectx.Request().URL.Path]
			return ok
		},
		Balancer: b,
		ErrorHandler: func(_ echo.Context, err error) error {
			if service.ToMyError(err) != nil {
				return err
			}
			return service.NewDeliveryFailedError("upstream request failed", err)
		},
	})
}
