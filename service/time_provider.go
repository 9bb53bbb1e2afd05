package service

import (
	"time"

	"mymesh/helpers"
	"mymesh/interfaces"
)

// timeProvider implements interfaces.TimeProvider with an injected now func.
// Used by the synchronizer to stamp snapshots; tests pin the clock with helpers.TestNow.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider that returns time via the given now func. Panics on nil now.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

func (t *timeProvider) Now() time.Time {
	return t.now()
}
