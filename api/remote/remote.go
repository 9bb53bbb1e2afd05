// Package remote describes the actor remoting gRPC service mymesh.remote.v1.ActorRemote.
//
// The service has a single unary method, Tell. Its request is a google.protobuf.Struct with the fields
// "path" (string, the actor path inside the receiving process), "payload" (any JSON-like value) and an optional
// "kind". google.protobuf.Value only has doubles, so integers travel as decimal strings with kind "int64" or
// "uint64" and are parsed back on receipt.
// The response is google.protobuf.Empty and is sent once the message sits in the actor's mailbox.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName    = "mymesh.remote.v1.ActorRemote"
	TellFullMethod = "/" + ServiceName + "/Tell"

	fieldPath    = "path"
	fieldPayload = "payload"
	fieldKind    = "kind"

	kindInt64  = "int64"
	kindUint64 = "uint64"
)

// ActorRemoteServer is the server API for the ActorRemote service.
type ActorRemoteServer interface {
	Tell(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
}

// ActorRemoteClient is the client API for the ActorRemote service.
type ActorRemoteClient interface {
	Tell(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type actorRemoteClient struct {
	cc grpc.ClientConnInterface
}

func NewActorRemoteClient(cc grpc.ClientConnInterface) ActorRemoteClient {
	return &actorRemoteClient{cc: cc}
}

func (c *actorRemoteClient) Tell(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, TellFullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterActorRemoteServer registers srv on s.
func RegisterActorRemoteServer(s grpc.ServiceRegistrar, srv ActorRemoteServer) {
	s.RegisterService(&ActorRemoteServiceDesc, srv)
}

func tellHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ActorRemoteServer).Tell(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TellFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ActorRemoteServer).Tell(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ActorRemoteServiceDesc is the grpc.ServiceDesc for the ActorRemote service.
var ActorRemoteServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ActorRemoteServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Tell",
			Handler:    tellHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mymesh/remote/v1/remote.proto",
}

// NewTellRequest builds a Tell request. payload must be an integer or representable as a google.protobuf.Value
// (nil, bool, floats, string, []byte, []any, map[string]any).
func NewTellRequest(path string, payload any) (*structpb.Struct, error) {
	if path == "" {
		return nil, errors.New("actor path is empty")
	}
	fields := map[string]any{fieldPath: path, fieldPayload: payload}
	if raw, kind, ok := encodeInteger(payload); ok {
		fields[fieldPayload] = raw
		fields[fieldKind] = kind
	}
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("payload of type %T cannot be sent: %w", payload, err)
	}
	return req, nil
}

func encodeInteger(payload any) (string, string, bool) {
	switch v := payload.(type) {
	case int:
		return strconv.FormatInt(int64(v), 10), kindInt64, true
	case int8:
		return strconv.FormatInt(int64(v), 10), kindInt64, true
	case int16:
		return strconv.FormatInt(int64(v), 10), kindInt64, true
	case int32:
		return strconv.FormatInt(int64(v), 10), kindInt64, true
	case int64:
		return strconv.FormatInt(v, 10), kindInt64, true
	case uint:
		return strconv.FormatUint(uint64(v), 10), kindUint64, true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), kindUint64, true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), kindUint64, true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), kindUint64, true
	case uint64:
		return strconv.FormatUint(v, 10), kindUint64, true
	}
	return "", "", false
}

// ParseTellRequest extracts path and payload from a Tell request. Integers come back as int64 or uint64,
// other numbers as float64.
func ParseTellRequest(req *structpb.Struct) (string, any, error) {
	if req == nil {
		return "", nil, errors.New("request is empty")
	}
	fields := req.GetFields()
	path := fields[fieldPath].GetStringValue()
	if path == "" {
		return "", nil, errors.New("actor path is missing")
	}
	v, ok := fields[fieldPayload]
	if !ok {
		return path, nil, nil
	}

	switch kind := fields[fieldKind].GetStringValue(); kind {
	case "":
		return path, v.AsInterface(), nil
	case kindInt64:
		n, err := strconv.ParseInt(v.GetStringValue(), 10, 64)
		if err != nil {
			return "", nil, fmt.Errorf("payload is not an int64: %w", err)
		}
		return path, n, nil
	case kindUint64:
		n, err := strconv.ParseUint(v.GetStringValue(), 10, 64)
		if err != nil {
			return "", nil, fmt.Errorf("payload is not a uint64: %w", err)
		}
		return path, n, nil
	default:
		return "", nil, fmt.Errorf("unknown payload kind %q", kind)
	}
}
