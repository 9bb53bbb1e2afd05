package service

import (
	"context"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// messenger implements interfaces.Messenger: resolve a peer, address the actor inside it, hand the message to
// the transport once. There is no retry, so a message is delivered at most once.
type messenger struct {
	resolver    interfaces.PeerResolver
	sender      interfaces.RemoteSender
	sendTimeout time.Duration
	logger      log.Logger
}

// NewMessenger creates a messenger. sendTimeout bounds each transport call; zero means 5s.
func NewMessenger(resolver interfaces.PeerResolver, sender interfaces.RemoteSender, sendTimeout time.Duration, logger log.Logger) interfaces.Messenger {
	if sendTimeout <= 0 {
		sendTimeout = 5 * time.Second
	}
	return &messenger{
		resolver:    helpers.NilPanic(resolver, "service.messenger.go: resolver is required"),
		sender:      helpers.NilPanic(sender, "service.messenger.go: sender is required"),
		sendTimeout: sendTimeout,
		logger:      log.With(helpers.NilPanic(logger, "service.messenger.go: logger is required"), "component", "messenger"),
	}
}

// Send returns nil once the transport accepted msg. not_found (no healthy peer, nothing sent) and
// registry_unavailable come from resolution; a transport failure is a delivery_failed MyError.
func (m *messenger) Send(ctx context.Context, serviceName string, actorPath string, msg any) error {
	if serviceName == "" || actorPath == "" {
		return NewBadParameterError("service name and actor path are required", nil)
	}
	inst, err := m.resolver.Resolve(ctx, serviceName)
	if err != nil {
		return err
	}

	addr := domain.ActorAddress{
		ServiceName: serviceName,
		HostAddress: inst.HostPort(),
		ActorPath:   actorPath,
	}
	sendCtx, cancel := context.WithTimeout(ctx, m.sendTimeout)
	defer cancel()
	if err := m.sender.SendRaw(sendCtx, addr.HostAddress, addr.ActorPath, msg); err != nil {
		level.Warn(m.logger).Log("msg", "delivery failed", "address", addr.String(), "err", err)
		return NewDeliveryFailedError("send to "+addr.String(), err)
	}
	level.Debug(m.logger).Log("msg", "message sent", "address", addr.String())
	return nil
}
