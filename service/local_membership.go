package service

import (
	"context"
	"sync"

	"mymesh/interfaces"
)

var _ interfaces.Membership = (*LocalMembership)(nil)

// LocalMembership is the single-node membership used when no membership protocol is configured.
// Members reports only the addresses the process set for itself.
type LocalMembership struct {
	mu   sync.RWMutex
	self []string
}

func NewLocalMembership(self ...string) *LocalMembership {
	return &LocalMembership{self: append([]string(nil), self...)}
}

// Add records another local address, e.g. once a listener is bound.
func (m *LocalMembership) Add(addr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.self = append(m.self, addr)
}

// Join has nothing to join: every seed is ignored.
func (m *LocalMembership) Join(context.Context, []string) error { return nil }

func (m *LocalMembership) Leave(context.Context) error { return nil }

func (m *LocalMembership) Members(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string{}, m.self...), nil
}
