// Package remote sends actor messages to other processes over the ActorRemote gRPC service.
package remote

import (
	"context"
	"fmt"
	"sync"

	apiremote "mymesh/api/remote"
	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

var _ interfaces.RemoteSender = (*Sender)(nil)

// ConnFactory creates a client connection to target (host:port).
type ConnFactory func(ctx context.Context, target string) (*grpc.ClientConn, error)

// InsecureFactory creates plaintext connections. Mesh traffic stays inside the cluster network.
func InsecureFactory(_ context.Context, target string) (*grpc.ClientConn, error) {
	return grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

// Sender implements interfaces.RemoteSender. It keeps one connection per target and drops it once a call to
// that target fails at the transport level, so the next send dials again.
type Sender struct {
	factory ConnFactory
	logger  log.Logger

	mu     sync.Mutex
	conns  map[string]*grpc.ClientConn
	closed bool
}

// NewSender creates a sender. Panics on nil factory or logger.
func NewSender(factory ConnFactory, logger log.Logger) *Sender {
	return &Sender{
		factory: helpers.NilPanic(factory, "remote.sender.go: factory is required"),
		logger:  log.With(helpers.NilPanic(logger, "remote.sender.go: logger is required"), "component", "remote_sender"),
		conns:   make(map[string]*grpc.ClientConn),
	}
}

// SendRaw calls Tell on target. A nil error means the remote process put payload into the actor's mailbox.
func (s *Sender) SendRaw(ctx context.Context, target string, path string, payload any) error {
	req, err := apiremote.NewTellRequest(path, payload)
	if err != nil {
		return service.NewBadParameterError("invalid actor message", err)
	}

	conn, err := s.getOrCreateConn(ctx, target)
	if err != nil {
		return err
	}

	if _, err := apiremote.NewActorRemoteClient(conn).Tell(ctx, req); err != nil {
		if transportFailure(err) {
			s.drop(target, conn)
		}
		return fmt.Errorf("tell %s at %s: %w", path, target, err)
	}
	return nil
}

func (s *Sender) getOrCreateConn(ctx context.Context, target string) (*grpc.ClientConn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, service.NewServiceUnavailableError("remote sender is closed", nil)
	}
	if conn := s.conns[target]; conn != nil {
		return conn, nil
	}
	conn, err := s.factory(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	s.conns[target] = conn
	return conn, nil
}

// drop closes conn if it is still the cached connection for target.
func (s *Sender) drop(target string, conn *grpc.ClientConn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns[target] != conn {
		return
	}
	delete(s.conns, target)
	_ = conn.Close()
	level.Debug(s.logger).Log("msg", "dropped connection", "target", target)
}

func transportFailure(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return true
	default:
		return false
	}
}

// Close closes every cached connection. Idempotent.
func (s *Sender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for target, conn := range s.conns {
		_ = conn.Close()
		delete(s.conns, target)
	}
	return nil
}

// cached reports whether a connection to target is cached.
func (s *Sender) cached(target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns[target] != nil
}
