package interfaces

import "context"

// Messenger delivers msg to the actor at actorPath on some healthy instance of serviceName.
// nil means accepted by the transport (at-most-once, no acknowledgment of processing); otherwise a
// not_found, delivery_failed or registry_unavailable MyError. Implemented by service.Messenger.
//
//go:generate moq -stub -out mock/messenger.go -pkg mock . Messenger
type Messenger interface {
	Send(ctx context.Context, serviceName string, actorPath string, msg any) error
}
