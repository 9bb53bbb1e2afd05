package handlers

import (
	"context"

	apiremote "mymesh/api/remote"
	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ apiremote.ActorRemoteServer = (*RemoteServer)(nil)

// RemoteServer receives Tell calls from other processes and puts the payload into the local actor's mailbox.
// Errors are MyErrors; service.MyErrorToGRPCInterceptor turns them into gRPC statuses.
type RemoteServer struct {
	deliverer interfaces.ActorDeliverer
}

func NewRemoteServer(deliverer interfaces.ActorDeliverer) *RemoteServer {
	return &RemoteServer{deliverer: helpers.NilPanic(deliverer, "handlers.grpc.go: deliverer is required")}
}

func (s *RemoteServer) Tell(_ context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	path, payload, err := apiremote.ParseTellRequest(req)
	if err != nil {
		return nil, service.NewBadParameterError("invalid tell request", err)
	}
	if err := s.deliverer.Deliver(path, payload); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}
