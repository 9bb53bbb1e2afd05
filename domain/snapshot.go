package domain

import "time"

// RoutingSnapshot is one fully built routing table. It is published as a whole and never modified afterwards;
// readers may hold on to it for as long as they like.
//
// Clusters has an entry for every route's cluster. An entry with zero members means the service was seen
// before and currently has no healthy instance; a cluster with no entry was never seen.
type RoutingSnapshot struct {
	Version  uint64
	BuiltAt  time.Time
	Routes   []RouteRule
	Clusters map[ClusterID][]ServiceInstance
}

// EmptySnapshot is the version 0 snapshot served before the first successful refresh.
func EmptySnapshot(builtAt time.Time) *RoutingSnapshot {
	return &RoutingSnapshot{
		BuiltAt:  builtAt,
		Routes:   []RouteRule{},
		Clusters: map[ClusterID][]ServiceInstance{},
	}
}

// Cluster returns a copy of the members of id and whether the cluster is known at all.
func (s *RoutingSnapshot) Cluster(id ClusterID) ([]ServiceInstance, bool) {
	members, ok := s.Clusters[id]
	if !ok {
		return nil, false
	}
	out := make([]ServiceInstance, len(members))
	copy(out, members)
	return out, true
}

// Match returns the first route whose prefix covers path. Routes are stored longest prefix first.
func (s *RoutingSnapshot) Match(path string) (RouteRule, bool) {
	for _, r := range s.Routes {
		if r.Matches(path) {
			return r, true
		}
	}
	return RouteRule{}, false
}
