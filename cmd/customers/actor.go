package main

import (
	"context"
	"fmt"

	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// newCustomerActor logs every customer id it receives.
func newCustomerActor(logger log.Logger) service.ActorHandler {
	logger = log.With(logger, "actor", "customers")
	return func(_ context.Context, payload any) {
		level.Info(logger).Log("msg", fmt.Sprintf("new customer in-query invoked: for customer id: %v", payload))
	}
}
