package consul

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/hashicorp/consul/api"
)

var _ interfaces.Membership = (*Membership)(nil)

// Membership delegates cluster membership to the local Consul agent's gossip pool.
type Membership struct {
	client *api.Client
}

func NewMembership(client *api.Client) *Membership {
	return &Membership{client: helpers.NilPanic(client, "consul.membership.go: client is required")}
}

// Join asks the agent to join every seed; it succeeds when at least one seed was joined.
func (m *Membership) Join(ctx context.Context, seeds []string) error {
	var errs []error
	joined := 0
	for _, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.client.Agent().Join(seed, false); err != nil {
			errs = append(errs, fmt.Errorf("join %s: %w", seed, err))
			continue
		}
		joined++
	}
	if joined == 0 && len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (m *Membership) Leave(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.client.Agent().Leave(); err != nil {
		return fmt.Errorf("consul leave: %w", err)
	}
	return nil
}

// Members returns the gossip addresses ("host:port") of the LAN members.
func (m *Membership) Members(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	members, err := m.client.Agent().Members(false)
	if err != nil {
		return nil, fmt.Errorf("consul members: %w", err)
	}
	out := make([]string, 0, len(members))
	for _, member := range members {
		out = append(out, net.JoinHostPort(member.Addr, strconv.Itoa(int(member.Port))))
	}
	return out, nil
}
