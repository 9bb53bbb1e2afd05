package interfaces

import "time"

// TimeProvider supplies the current time for snapshot and registration timestamps,
// so tests can pin the clock.
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	Now() time.Time
}
