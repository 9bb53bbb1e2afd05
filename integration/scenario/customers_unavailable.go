package scenario

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const scenarioCustomersUnavailable = "customers_unavailable"

func init() {
	Register(scenarioCustomersUnavailable, runCustomersUnavailable)
}

// runCustomersUnavailable stops the customers service. Its graceful shutdown deregisters both registrations, so
// the gateway keeps the /customers route with no members (503) and orders finds no actor system (404).
// After the service starts again both paths recover.
func runCustomersUnavailable(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	if cfg.Compose == nil {
		return fmt.Errorf("compose file is required for this scenario (set --compose-file or COMPOSE_FILE)")
	}

	if err := cfg.Compose.StopService(customersServiceName); err != nil {
		return fmt.Errorf("stop customers: %w", err)
	}
	started := false
	defer func() {
		if started {
			return
		}
		if err := cfg.Compose.StartService(customersServiceName); err != nil {
			fmt.Printf("Warning: failed to start customers after scenario: %v\n", err)
		}
	}()

	if err := eventually(ctx, "customers route drained", func() error {
		return expectError(ctx, cfg, customersPath, http.StatusServiceUnavailable, "service_unavailable")
	}); err != nil {
		return err
	}
	if err := eventually(ctx, "customers actor system gone", func() error {
		return expectError(ctx, cfg, talkToActor(7), http.StatusNotFound, "not_found")
	}); err != nil {
		return err
	}

	if err := cfg.Compose.StartService(customersServiceName); err != nil {
		return fmt.Errorf("start customers: %w", err)
	}
	started = true

	if err := eventually(ctx, "customers route recovered", func() error {
		return expectText(ctx, cfg, customersPath, "Customers Services Working...")
	}); err != nil {
		return err
	}
	return eventually(ctx, "talk-to-actor recovered", func() error {
		resp, err := get(ctx, cfg, talkToActor(7))
		if err != nil {
			return err
		}
		if resp.status != http.StatusOK {
			return fmt.Errorf("talk-to-actor: status=%d (body %q)", resp.status, resp.body)
		}
		return nil
	})
}
