package interfaces

import "context"

// RemoteSender is the actor transport: hand payload to the actor at path inside the process listening on target
// (host:port). A nil error means the transport accepted the message, nothing more.
// Implemented by adapters/remote.Sender.
//
//go:generate moq -stub -out mock/remote_sender.go -pkg mock . RemoteSender
type RemoteSender interface {
	SendRaw(ctx context.Context, target string, path string, payload any) error
}
