package helpers

import (
	"time"
)

// TestNow returns a fixed UTC instant for tests that stamp snapshots or registrations.
func TestNow() time.Time {
	return time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
}
