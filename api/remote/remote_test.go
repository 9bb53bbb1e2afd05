package remote

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestNewTellRequest(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		payload any
		wantErr bool
	}{
		{name: "int_payload", path: "/user/customers-actor", payload: 100},
		{name: "string_payload", path: "/user/customers-actor", payload: "hello"},
		{name: "map_payload", path: "/user/customers-actor", payload: map[string]any{"id": "7"}},
		{name: "nil_payload", path: "/user/customers-actor", payload: nil},
		{name: "empty_path", path: "", payload: 1, wantErr: true},
		{name: "unsupported_payload", path: "/user/a", payload: struct{ X int }{1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewTellRequest(tt.path, tt.payload)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			path, _, err := ParseTellRequest(req)
			require.NoError(t, err)
			assert.Equal(t, tt.path, path)
		})
	}
}

func TestParseTellRequest(t *testing.T) {
	t.Run("integers_keep_their_value", func(t *testing.T) {
		tests := []struct {
			name    string
			payload any
			want    any
		}{
			{name: "int", payload: 100, want: int64(100)},
			{name: "millions", payload: int64(1234567), want: int64(1234567)},
			{name: "above_2_pow_53", payload: int64(9007199254740993), want: int64(9007199254740993)},
			{name: "negative", payload: int32(-42), want: int64(-42)},
			{name: "max_uint64", payload: uint64(18446744073709551615), want: uint64(18446744073709551615)},
			{name: "float_stays_float", payload: 2.5, want: 2.5},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req, err := NewTellRequest("/user/customers-actor", tt.payload)
				require.NoError(t, err)
				_, payload, err := ParseTellRequest(req)
				require.NoError(t, err)
				assert.Equal(t, tt.want, payload)
			})
		}
	})

	t.Run("bad_integer_payload", func(t *testing.T) {
		req, err := structpb.NewStruct(map[string]any{"path": "/user/a", "payload": "1e6", "kind": "int64"})
		require.NoError(t, err)
		_, _, err = ParseTellRequest(req)
		require.Error(t, err)
	})

	t.Run("unknown_kind", func(t *testing.T) {
		req, err := structpb.NewStruct(map[string]any{"path": "/user/a", "payload": "1", "kind": "decimal"})
		require.NoError(t, err)
		_, _, err = ParseTellRequest(req)
		require.Error(t, err)
	})

	t.Run("nil_request", func(t *testing.T) {
		_, _, err := ParseTellRequest(nil)
		require.Error(t, err)
	})

	t.Run("missing_path", func(t *testing.T) {
		req, err := structpb.NewStruct(map[string]any{"payload": 1})
		require.NoError(t, err)
		_, _, err = ParseTellRequest(req)
		require.Error(t, err)
	})

	t.Run("missing_payload_is_nil", func(t *testing.T) {
		req, err := structpb.NewStruct(map[string]any{"path": "/user/a"})
		require.NoError(t, err)
		path, payload, err := ParseTellRequest(req)
		require.NoError(t, err)
		assert.Equal(t, "/user/a", path)
		assert.Nil(t, payload)
	})
}

type recordingServer struct {
	got chan *structpb.Struct
}

func (s *recordingServer) Tell(_ context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	s.got <- req
	return &emptypb.Empty{}, nil
}

func TestActorRemote_RoundTrip(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := grpc.NewServer()
	rec := &recordingServer{got: make(chan *structpb.Struct, 1)}
	RegisterActorRemoteServer(srv, rec)
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	for _, sent := range []any{"42", int64(1234567), int64(9007199254740993)} {
		req, err := NewTellRequest("/user/customers-actor", sent)
		require.NoError(t, err)
		_, err = NewActorRemoteClient(conn).Tell(context.Background(), req)
		require.NoError(t, err)

		path, payload, err := ParseTellRequest(<-rec.got)
		require.NoError(t, err)
		assert.Equal(t, "/user/customers-actor", path)
		assert.Equal(t, sent, payload)
	}
}
