// Package handlers contains the echo HTTP handlers of the gateway, orders and customers binaries and the
// gRPC server that receives remote actor messages.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HealthHandler answers registry health probes.
type HealthHandler struct {
	serving func() bool
}

// NewHealthHandler creates a health handler. serving reports whether the process still accepts traffic.
func NewHealthHandler(serving func() bool) *HealthHandler {
	return &HealthHandler{serving: helpers.NilPanic(serving, "handlers.http.go: serving is required")}
}

// Health (GET /health, GET /_health) returns 200 while serving and 503 once the process started to deregister.
func (h *HealthHandler) Health(ectx echo.Context) error {
	if !h.serving() {
		return service.NewServiceUnavailableError("instance is shutting down", nil)
	}
	return ectx.JSON(http.StatusOK, HealthResponse{Status: "serving"})
}

// RegisterHealthHandlers mounts GET /health and its /_health alias.
func RegisterHealthHandlers(e *echo.Echo, h *HealthHandler) {
	e.GET("/health", h.Health)
	e.GET("/_health", h.Health)
}

// GatewayServer serves the gateway's own endpoints.
type GatewayServer struct {
	source     interfaces.SnapshotSource
	staleAfter int
	members    func(ctx context.Context) ([]string, error)
}

// NewGatewayServer creates the gateway endpoints. staleAfter is the consecutive refresh failures after which the
// served table is reported as stale. members lists the cluster members known to this node.
func NewGatewayServer(source interfaces.SnapshotSource, staleAfter int, members func(ctx context.Context) ([]string, error)) *GatewayServer {
	return &GatewayServer{
		source:     helpers.NilPanic(source, "handlers.http.go: source is required"),
		staleAfter: staleAfter,
		members:    helpers.NilPanic(members, "handlers.http.go: members is required"),
	}
}

// Index (GET /).
func (g *GatewayServer) Index(ectx echo.Context) error {
	return ectx.String(http.StatusOK, "Api Gateway")
}

// Configurations (GET /_configurations) returns the routing table currently served and the cluster members.
// A membership failure does not hide the routing table; it is reported in members_error.
func (g *GatewayServer) Configurations(ectx echo.Context) error {
	stale := g.staleAfter > 0 && g.source.ConsecutiveFailures() >= g.staleAfter
	resp := toConfigurationsResponse(g.source.Current(), stale)
	members, err := g.members(ectx.Request().Context())
	if err != nil {
		resp.MembersError = err.Error()
	} else {
		resp.Members = append(resp.Members, members...)
	}
	return ectx.JSON(http.StatusOK, resp)
}

// RegisterGatewayHandlers mounts the gateway endpoints.
func RegisterGatewayHandlers(e *echo.Echo, g *GatewayServer) {
	e.GET("/", g.Index)
	e.GET("/_configurations", g.Configurations)
}

// DefaultCustomerID is sent by talk-to-actor when the request names no customer.
const DefaultCustomerID = 100

// OrdersServer serves the orders endpoints. talk-to-actor messages the customers actor system.
type OrdersServer struct {
	messenger     interfaces.Messenger
	targetService string
	actorPath     string
	logger        log.Logger
}

// NewOrdersServer creates the orders endpoints.
func NewOrdersServer(messenger interfaces.Messenger, targetService, actorPath string, logger log.Logger) *OrdersServer {
	return &OrdersServer{
		messenger:     helpers.NilPanic(messenger, "handlers.http.go: messenger is required"),
		targetService: helpers.StrPanic(targetService, "handlers.http.go: targetService is required"),
		actorPath:     helpers.StrPanic(actorPath, "handlers.http.go: actorPath is required"),
		logger:        log.WithPrefix(helpers.NilPanic(logger, "handlers.http.go: logger is required"), "component", "OrdersServer"),
	}
}

// Index (GET /orders/).
func (o *OrdersServer) Index(ectx echo.Context) error {
	return ectx.String(http.StatusOK, "Hello World!")
}

// TalkToActor (GET /orders/talk-to-actor?customer_id=N) sends N to the customers actor. Returns 200 once the
// message is accepted, 404 when no customers instance is registered and 502 when delivery fails.
func (o *OrdersServer) TalkToActor(ectx echo.Context) error {
	customerID := int64(DefaultCustomerID)
	if raw := ectx.QueryParam("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return service.NewBadParameterError("customer_id must be an integer", err)
		}
		customerID = id
	}

	if err := o.messenger.Send(ectx.Request().Context(), o.targetService, o.actorPath, customerID); err != nil {
		return err
	}
	level.Debug(o.logger).Log("msg", "message accepted", "service", o.targetService, "actor", o.actorPath, "customer_id", customerID)
	return ectx.NoContent(http.StatusOK)
}

// RegisterOrdersHandlers mounts the orders endpoints under /orders.
func RegisterOrdersHandlers(e *echo.Echo, o *OrdersServer) {
	g := e.Group("/orders")
	g.GET("/", o.Index)
	g.GET("/talk-to-actor", o.TalkToActor)
}

// CustomersIndex (GET /customers/).
func CustomersIndex(ectx echo.Context) error {
	return ectx.String(http.StatusOK, "Customers Services Working...")
}

// RegisterCustomersHandlers mounts the customers endpoints under /customers.
func RegisterCustomersHandlers(e *echo.Echo) {
	e.GET("/customers/", CustomersIndex)
}
