package remote

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	apiremote "mymesh/api/remote"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type tellServer struct {
	got chan *structpb.Struct
	err error
}

func (s *tellServer) Tell(_ context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.got <- req
	return &emptypb.Empty{}, nil
}

func startTellServer(t *testing.T, srvImpl *tellServer) (string, *grpc.Server) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := grpc.NewServer()
	apiremote.RegisterActorRemoteServer(srv, srvImpl)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis.Addr().String(), srv
}

func TestNewSender_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "remote.sender.go: factory is required", func() {
		NewSender(nil, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "remote.sender.go: logger is required", func() {
		NewSender(InsecureFactory, nil)
	})
}

func TestSender_SendRaw(t *testing.T) {
	t.Run("delivers_path_and_payload", func(t *testing.T) {
		impl := &tellServer{got: make(chan *structpb.Struct, 1)}
		target, _ := startTellServer(t, impl)
		s := NewSender(InsecureFactory, log.NewNopLogger())
		defer s.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		require.NoError(t, s.SendRaw(ctx, target, "/user/customers-actor", 100))

		path, payload, err := apiremote.ParseTellRequest(<-impl.got)
		require.NoError(t, err)
		assert.Equal(t, "/user/customers-actor", path)
		assert.Equal(t, int64(100), payload)
		assert.True(t, s.cached(target))
	})

	t.Run("reuses_connection", func(t *testing.T) {
		impl := &tellServer{got: make(chan *structpb.Struct, 2)}
		target, _ := startTellServer(t, impl)
		dials := 0
		s := NewSender(func(ctx context.Context, target string) (*grpc.ClientConn, error) {
			dials++
			return InsecureFactory(ctx, target)
		}, log.NewNopLogger())
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.SendRaw(ctx, target, "/user/a", "x"))
		require.NoError(t, s.SendRaw(ctx, target, "/user/a", "y"))
		assert.Equal(t, 1, dials)
	})

	t.Run("remote_error_keeps_connection", func(t *testing.T) {
		impl := &tellServer{err: status.Error(codes.NotFound, "no actor")}
		target, _ := startTellServer(t, impl)
		s := NewSender(InsecureFactory, log.NewNopLogger())
		defer s.Close()

		err := s.SendRaw(context.Background(), target, "/user/missing", 1)
		require.Error(t, err)
		assert.Equal(t, codes.NotFound, status.Code(err))
		assert.True(t, s.cached(target))
	})

	t.Run("unreachable_target_drops_connection", func(t *testing.T) {
		lis, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		target := lis.Addr().String()
		require.NoError(t, lis.Close())

		s := NewSender(InsecureFactory, log.NewNopLogger())
		defer s.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err = s.SendRaw(ctx, target, "/user/a", 1)
		require.Error(t, err)
		assert.False(t, s.cached(target))
	})

	t.Run("invalid_payload_is_bad_parameter", func(t *testing.T) {
		s := NewSender(InsecureFactory, log.NewNopLogger())
		defer s.Close()
		err := s.SendRaw(context.Background(), "127.0.0.1:1", "/user/a", struct{}{})
		assert.True(t, service.IsBadParameterError(err))
	})

	t.Run("factory_error_is_returned", func(t *testing.T) {
		s := NewSender(func(context.Context, string) (*grpc.ClientConn, error) {
			return nil, errors.New("dial refused")
		}, log.NewNopLogger())
		err := s.SendRaw(context.Background(), "127.0.0.1:1", "/user/a", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dial refused")
	})
}

func TestSender_Close(t *testing.T) {
	s := NewSender(InsecureFactory, log.NewNopLogger())
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	err := s.SendRaw(context.Background(), "127.0.0.1:1", "/user/a", 1)
	assert.True(t, service.IsServiceUnavailableError(err))
}
