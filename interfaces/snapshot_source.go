package interfaces

import "mymesh/domain"

// SnapshotSource exposes the latest published routing snapshot to the forwarding side.
// Current never blocks and never returns nil. Implemented by service.Synchronizer.
//
//go:generate moq -stub -out mock/snapshot_source.go -pkg mock . SnapshotSource
type SnapshotSource interface {
	Current() *domain.RoutingSnapshot
	ConsecutiveFailures() int
}
