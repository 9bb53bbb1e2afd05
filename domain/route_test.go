package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRouteRule(t *testing.T) {
	tests := []struct {
		name        string
		rule        RouteRule
		wantErr     bool
		wantContain string
	}{
		{
			name:    "valid_rule",
			rule:    RouteRule{ID: "orders-service", Prefix: "/orders", Cluster: "orders-service"},
			wantErr: false,
		},
		{
			name:        "empty_id",
			rule:        RouteRule{Prefix: "/orders", Cluster: "orders-service"},
			wantErr:     true,
			wantContain: "id must be non-empty",
		},
		{
			name:        "empty_prefix",
			rule:        RouteRule{ID: "orders-service", Cluster: "orders-service"},
			wantErr:     true,
			wantContain: "prefix must be non-empty",
		},
		{
			name:        "prefix_without_slash",
			rule:        RouteRule{ID: "orders-service", Prefix: "orders", Cluster: "orders-service"},
			wantErr:     true,
			wantContain: "prefix must start with /",
		},
		{
			name:        "root_prefix",
			rule:        RouteRule{ID: "orders-service", Prefix: "/", Cluster: "orders-service"},
			wantErr:     true,
			wantContain: "root path",
		},
		{
			name:        "empty_cluster",
			rule:        RouteRule{ID: "orders-service", Prefix: "/orders"},
			wantErr:     true,
			wantContain: "cluster must be non-empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRouteRule(tt.rule)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var rcErr *RouteConfigError
			require.ErrorAs(t, err, &rcErr)
			assert.Contains(t, rcErr.Error(), tt.wantContain)
			assert.Contains(t, rcErr.Error(), "route["+tt.rule.ID+"]")
		})
	}
}

func TestRouteRuleFor(t *testing.T) {
	t.Run("default_prefix_is_service_name", func(t *testing.T) {
		r := RouteRuleFor("orders-service", []string{"mymesh-proxy"})
		assert.Equal(t, RouteRule{ID: "orders-service", Prefix: "/orders-service", Cluster: "orders-service"}, r)
	})
	t.Run("urlprefix_tag_wins", func(t *testing.T) {
		r := RouteRuleFor("orders-service", []string{"mymesh-proxy", "urlprefix=orders*"})
		assert.Equal(t, "/orders", r.Prefix)
		assert.Equal(t, ClusterID("orders-service"), r.Cluster)
	})
	t.Run("several_urlprefix_tags_pick_sorted_first", func(t *testing.T) {
		a := RouteRuleFor("svc", []string{"urlprefix=/b", "urlprefix=/a"})
		b := RouteRuleFor("svc", []string{"urlprefix=/a", "urlprefix=/b"})
		assert.Equal(t, "/a", a.Prefix)
		assert.Equal(t, a, b)
	})
}

func TestRouteRule_Matches(t *testing.T) {
	r := RouteRule{ID: "orders-service", Prefix: "/orders", Cluster: "orders-service"}
	assert.True(t, r.Matches("/orders"))
	assert.True(t, r.Matches("/orders/talk-to-actor"))
	assert.False(t, r.Matches("/ordersx"))
	assert.False(t, r.Matches("/customers"))

	withSlash := RouteRule{ID: "x", Prefix: "/api/", Cluster: "x"}
	assert.True(t, withSlash.Matches("/api/anything"))
}

func TestSortRoutes(t *testing.T) {
	routes := []RouteRule{
		{ID: "a", Prefix: "/a"},
		{ID: "abc", Prefix: "/a/b/c"},
		{ID: "ab", Prefix: "/a/b"},
		{ID: "z", Prefix: "/z"},
	}
	SortRoutes(routes)
	ids := make([]string, 0, len(routes))
	for _, r := range routes {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"abc", "ab", "a", "z"}, ids)
}
