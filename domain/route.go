package domain

import (
	"sort"
	"strings"
)

// ClusterID identifies the set of instances a route forwards to. Derived routes use the service name.
type ClusterID string

// RouteTagPrefix marks the tag carrying an explicit route prefix, e.g. "urlprefix=/orders".
const RouteTagPrefix = "urlprefix="

// RouteRule maps a path prefix to a cluster. ID is the service the rule was derived from.
type RouteRule struct {
	ID      string
	Prefix  string
	Cluster ClusterID
}

// Matches reports whether path falls under the rule prefix on a segment boundary:
// "/orders" matches "/orders" and "/orders/42" but not "/ordersx".
func (r RouteRule) Matches(path string) bool {
	if !strings.HasPrefix(path, r.Prefix) {
		return false
	}
	if len(path) == len(r.Prefix) || strings.HasSuffix(r.Prefix, "/") {
		return true
	}
	return path[len(r.Prefix)] == '/'
}

// RouteRuleFor derives the rule for a service from its tags. The first "urlprefix=" tag in sorted order wins;
// without one the prefix is "/" + serviceName.
func RouteRuleFor(serviceName string, tags []string) RouteRule {
	prefix := "/" + serviceName
	candidates := make([]string, 0, 1)
	for _, tag := range tags {
		if strings.HasPrefix(tag, RouteTagPrefix) {
			candidates = append(candidates, NormalizePrefix(strings.TrimPrefix(tag, RouteTagPrefix)))
		}
	}
	if len(candidates) > 0 {
		sort.Strings(candidates)
		prefix = candidates[0]
	}
	return RouteRule{ID: serviceName, Prefix: prefix, Cluster: ClusterID(serviceName)}
}

// NormalizePrefix trims spaces and a trailing "*", and adds the leading "/".
func NormalizePrefix(prefix string) string {
	p := strings.TrimSpace(prefix)
	p = strings.TrimSuffix(p, "*")
	if p != "" && p[0] != '/' {
		p = "/" + p
	}
	return p
}

// ValidateRouteRule checks that a derived rule can be served: non-empty ID and cluster, prefix starting with "/"
// and not the bare root (which would shadow every other route).
func ValidateRouteRule(r RouteRule) error {
	switch {
	case r.ID == "":
		return &RouteConfigError{Route: r.ID, Reason: "id must be non-empty"}
	case r.Prefix == "":
		return &RouteConfigError{Route: r.ID, Reason: "prefix must be non-empty"}
	case r.Prefix[0] != '/':
		return &RouteConfigError{Route: r.ID, Reason: "prefix must start with /"}
	case r.Prefix == "/":
		return &RouteConfigError{Route: r.ID, Reason: "prefix must not be the root path"}
	case r.Cluster == "":
		return &RouteConfigError{Route: r.ID, Reason: "cluster must be non-empty"}
	}
	return nil
}

// RouteConfigError is returned by ValidateRouteRule. Error() renders "route[orders-service]: reason".
type RouteConfigError struct {
	Route  string
	Reason string
}

func (e *RouteConfigError) Error() string {
	return "route[" + e.Route + "]: " + e.Reason
}

// SortRoutes orders rules for longest-prefix matching: longer prefixes first, ties broken by prefix then ID.
func SortRoutes(routes []RouteRule) {
	sort.SliceStable(routes, func(i, j int) bool {
		if len(routes[i].Prefix) != len(routes[j].Prefix) {
			return len(routes[i].Prefix) > len(routes[j].Prefix)
		}
		if routes[i].Prefix != routes[j].Prefix {
			return routes[i].Prefix < routes[j].Prefix
		}
		return routes[i].ID < routes[j].ID
	})
}
