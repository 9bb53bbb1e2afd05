package interfaces

// ActorDeliverer enqueues payload into the mailbox of the local actor at path.
// Returns a not_found MyError for an unknown path and service_unavailable when the mailbox cannot take it.
// Implemented by service.ActorHost; called by the remoting gRPC server.
//
//go:generate moq -stub -out mock/actor_deliverer.go -pkg mock . ActorDeliverer
type ActorDeliverer interface {
	Deliver(path string, payload any) error
}
