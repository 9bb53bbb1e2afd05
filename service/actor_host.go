package service

import (
	"context"
	"sync"

	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ActorHandler processes one message taken from an actor mailbox.
type ActorHandler func(ctx context.Context, payload any)

type localActor struct {
	path    string
	handler ActorHandler
	mailbox chan any
	done    chan struct{}
}

// ActorHost runs the local actors of one actor system. Every actor owns a bounded mailbox drained by a
// single goroutine, so a handler never runs concurrently with itself.
type ActorHost struct {
	mailboxSize int
	logger      log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	actors  map[string]*localActor
	stopped bool
}

var _ interfaces.ActorDeliverer = (*ActorHost)(nil)

// NewActorHost creates an empty host. mailboxSize <= 0 means 64.
func NewActorHost(mailboxSize int, logger log.Logger) *ActorHost {
	if mailboxSize <= 0 {
		mailboxSize = 64
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ActorHost{
		mailboxSize: mailboxSize,
		logger:      log.With(helpers.NilPanic(logger, "service.actor_host.go: logger is required"), "component", "actor_host"),
		ctx:         ctx,
		cancel:      cancel,
		actors:      make(map[string]*localActor),
	}
}

// Spawn starts the actor at path, e.g. "/user/customers-actor".
func (h *ActorHost) Spawn(path string, handler ActorHandler) error {
	if path == "" || path[0] != '/' {
		return NewBadParameterError("actor path must start with /", nil)
	}
	if handler == nil {
		return NewBadParameterError("actor handler is required", nil)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return NewServiceUnavailableError("actor host is stopped", nil)
	}
	if _, exists := h.actors[path]; exists {
		return NewBadParameterError("actor "+path+" already exists", nil)
	}
	a := &localActor{
		path:    path,
		handler: handler,
		mailbox: make(chan any, h.mailboxSize),
		done:    make(chan struct{}),
	}
	h.actors[path] = a
	go h.loop(a)
	level.Info(h.logger).Log("msg", "actor spawned", "path", path)
	return nil
}

// Deliver enqueues payload without blocking. The message counts as delivered once it is in the mailbox.
func (h *ActorHost) Deliver(path string, payload any) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.stopped {
		return NewServiceUnavailableError("actor host is stopped", nil)
	}
	a, ok := h.actors[path]
	if !ok {
		return NewNotFoundError("no actor at "+path, nil)
	}
	select {
	case a.mailbox <- payload:
		return nil
	default:
		return NewServiceUnavailableError("mailbox of "+path+" is full", nil)
	}
}

func (h *ActorHost) loop(a *localActor) {
	defer close(a.done)
	for payload := range a.mailbox {
		h.handle(a, payload)
	}
}

func (h *ActorHost) handle(a *localActor, payload any) {
	defer func() {
		if r := recover(); r != nil {
			level.Error(h.logger).Log("msg", "actor handler panicked", "path", a.path, "panic", r)
		}
	}()
	a.handler(h.ctx, payload)
}

// Stop refuses new messages, lets every actor finish what is already in its mailbox and waits for that, or for
// ctx to end. Calling Stop again is a no-op.
func (h *ActorHost) Stop(ctx context.Context) error {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return nil
	}
	h.stopped = true
	actors := make([]*localActor, 0, len(h.actors))
	for _, a := range h.actors {
		close(a.mailbox)
		actors = append(actors, a)
	}
	h.mu.Unlock()

	defer h.cancel()
	for _, a := range actors {
		select {
		case <-a.done:
		case <-ctx.Done():
			level.Warn(h.logger).Log("msg", "actor did not drain in time", "path", a.path)
			return ctx.Err()
		}
	}
	return nil
}
