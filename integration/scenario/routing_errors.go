package scenario

import (
	"context"
	"net/http"
	"time"
)

const scenarioRoutingErrors = "routing_errors"

func init() {
	Register(scenarioRoutingErrors, runRoutingErrors)
}

// runRoutingErrors checks the gateway's own errors and request validation in the orders service.
func runRoutingErrors(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// No route: the prefix must match on a segment boundary.
	if err := expectError(ctx, cfg, "/ordersx/", http.StatusNotFound, "not_found"); err != nil {
		return err
	}
	if err := expectError(ctx, cfg, "/unknown", http.StatusNotFound, "not_found"); err != nil {
		return err
	}
	return eventually(ctx, "orders validation", func() error {
		return expectError(ctx, cfg, talkToActorPath+"?customer_id=abc", http.StatusBadRequest, "bad_parameter")
	})
}
