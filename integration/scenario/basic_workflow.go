package scenario

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const scenarioBasicWorkflow = "basic_workflow"

func init() {
	Register(scenarioBasicWorkflow, runBasicWorkflow)
}

// runBasicWorkflow calls every service through the gateway and sends messages to the customers actor.
func runBasicWorkflow(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := expectText(ctx, cfg, "/", "Api Gateway"); err != nil {
		return err
	}
	if err := eventually(ctx, "orders route", func() error {
		return expectText(ctx, cfg, ordersPath, "Hello World!")
	}); err != nil {
		return err
	}
	if err := eventually(ctx, "customers route", func() error {
		return expectText(ctx, cfg, customersPath, "Customers Services Working...")
	}); err != nil {
		return err
	}

	for i := 0; i < 10; i++ {
		resp, err := get(ctx, cfg, talkToActor(100+i))
		if err != nil {
			return err
		}
		if resp.status != http.StatusOK {
			return fmt.Errorf("talk-to-actor (iteration %d): status=%d (body %q)", i, resp.status, resp.body)
		}
	}
	return nil
}
