package handlers

import (
	"sort"
	"time"

	"mymesh/domain"
)

// HealthResponse is the body of a healthy /health answer.
type HealthResponse struct {
	Status string `json:"status"`
}

// ConfigurationsResponse is the body of GET /_configurations.
type ConfigurationsResponse struct {
	Version      uint64                       `json:"version"`
	BuiltAt      time.Time                    `json:"built_at"`
	Stale        bool                         `json:"stale"`
	Routes       []RouteInfo                  `json:"routes"`
	Clusters     map[string][]DestinationInfo `json:"clusters"`
	Members      []string                     `json:"members"`
	MembersError string                       `json:"members_error,omitempty"`
}

type RouteInfo struct {
	ID      string `json:"id"`
	Prefix  string `json:"prefix"`
	Cluster string `json:"cluster"`
}

type DestinationInfo struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

// toConfigurationsResponse converts a routing snapshot to the API response. Destinations are sorted by ID.
func toConfigurationsResponse(s *domain.RoutingSnapshot, stale bool) ConfigurationsResponse {
	routes := make([]RouteInfo, 0, len(s.Routes))
	for _, r := range s.Routes {
		routes = append(routes, RouteInfo{ID: r.ID, Prefix: r.Prefix, Cluster: string(r.Cluster)})
	}

	clusters := make(map[string][]DestinationInfo, len(s.Clusters))
	for id, members := range s.Clusters {
		out := make([]DestinationInfo, 0, len(members))
		for _, m := range members {
			out = append(out, DestinationInfo{ID: m.ID, Address: m.URL().String()})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		clusters[string(id)] = out
	}

	return ConfigurationsResponse{
		Version:  s.Version,
		BuiltAt:  s.BuiltAt,
		Stale:    stale,
		Routes:   routes,
		Clusters: clusters,
		Members:  []string{},
	}
}
