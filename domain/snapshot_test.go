package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingSnapshot_Cluster(t *testing.T) {
	a := ServiceInstance{ID: "orders-a", ServiceName: "orders-service", Address: "10.0.0.1", Port: 5000, Healthy: true}
	s := &RoutingSnapshot{
		Version: 3,
		Routes: []RouteRule{
			{ID: "orders-service", Prefix: "/orders", Cluster: "orders-service"},
			{ID: "customers-service", Prefix: "/customers", Cluster: "customers-service"},
		},
		Clusters: map[ClusterID][]ServiceInstance{
			"orders-service":    {a},
			"customers-service": {},
		},
	}

	t.Run("known_with_members", func(t *testing.T) {
		members, ok := s.Cluster("orders-service")
		require.True(t, ok)
		assert.Equal(t, []ServiceInstance{a}, members)
	})
	t.Run("known_with_zero_members_is_distinct_from_unknown", func(t *testing.T) {
		members, ok := s.Cluster("customers-service")
		require.True(t, ok)
		assert.Empty(t, members)

		_, ok = s.Cluster("billing-service")
		assert.False(t, ok)
	})
	t.Run("returned_members_are_a_copy", func(t *testing.T) {
		members, _ := s.Cluster("orders-service")
		members[0].Address = "changed"
		again, _ := s.Cluster("orders-service")
		assert.Equal(t, "10.0.0.1", again[0].Address)
	})
	t.Run("match_uses_route_order", func(t *testing.T) {
		r, ok := s.Match("/customers/1")
		require.True(t, ok)
		assert.Equal(t, ClusterID("customers-service"), r.Cluster)
		_, ok = s.Match("/billing")
		assert.False(t, ok)
	})
}

func TestEmptySnapshot(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	s := EmptySnapshot(now)
	assert.Zero(t, s.Version)
	assert.Equal(t, now, s.BuiltAt)
	assert.NotNil(t, s.Routes)
	assert.NotNil(t, s.Clusters)
}

func TestServiceInstance_Address(t *testing.T) {
	i := ServiceInstance{Address: "10.0.0.7", Port: 41234, Tags: []string{"mymesh-proxy"}}
	assert.Equal(t, "10.0.0.7:41234", i.HostPort())
	assert.Equal(t, "http://10.0.0.7:41234", i.URL().String())
	assert.True(t, i.HasTag("mymesh-proxy"))
	assert.False(t, i.HasTag("other"))

	i.Scheme = SchemeGRPC
	assert.Equal(t, "grpc://10.0.0.7:41234", i.URL().String())
}

func TestActorAddress_String(t *testing.T) {
	a := ActorAddress{ServiceName: "customer-actor-system", HostAddress: "10.0.0.7:41234", ActorPath: "/user/customers-actor"}
	assert.Equal(t, "mesh.grpc://customer-actor-system@10.0.0.7:41234/user/customers-actor", a.String())

	a.ActorPath = "user/customers-actor"
	assert.Equal(t, "mesh.grpc://customer-actor-system@10.0.0.7:41234/user/customers-actor", a.String())
}

func TestRegistrationState(t *testing.T) {
	tests := []struct {
		state   RegistrationState
		name    string
		serving bool
	}{
		{StateUnregistered, "unregistered", true},
		{StateRegistering, "registering", true},
		{StateRegistered, "registered", true},
		{StateDeregistering, "deregistering", false},
		{StateDeregistered, "deregistered", false},
		{RegistrationState(42), "unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.state.String())
			assert.Equal(t, tt.serving, tt.state.Serving())
		})
	}
}
