package consul

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/require"
)

// fakeConsul serves the subset of the agent, catalog and health HTTP API the adapter uses.
type fakeConsul struct {
	mu       sync.Mutex
	services map[string]*api.AgentServiceRegistration
	status   map[string]string
	index    uint64
	joined   []string
	left     bool
	failWith int
}

func newFakeConsul(t *testing.T) (*fakeConsul, *api.Client) {
	t.Helper()
	f := &fakeConsul{
		services: make(map[string]*api.AgentServiceRegistration),
		status:   make(map[string]string),
		index:    1,
	}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{Address: srv.URL})
	require.NoError(t, err)
	return f, client
}

func (f *fakeConsul) setStatus(id, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[id] = status
	f.index++
}

func (f *fakeConsul) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Consul-Index", strconv.FormatUint(f.index, 10))
	w.Header().Set("X-Consul-LastContact", "0")
	w.Header().Set("X-Consul-KnownLeader", "true")
	w.Header().Set("Content-Type", "application/json")

	if f.failWith != 0 {
		http.Error(w, "fake failure", f.failWith)
		return
	}

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPut && path == "/v1/agent/service/register":
		var reg api.AgentServiceRegistration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil || reg.Name == "" {
			http.Error(w, "Invalid service definition", http.StatusBadRequest)
			return
		}
		f.services[reg.ID] = &reg
		f.status[reg.ID] = api.HealthPassing
		f.index++
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/v1/agent/service/deregister/"):
		id := strings.TrimPrefix(path, "/v1/agent/service/deregister/")
		if _, ok := f.services[id]; !ok {
			http.Error(w, "Unknown service ID \""+id+"\". Ensure that the service ID is passed, not the service name.", http.StatusNotFound)
			return
		}
		delete(f.services, id)
		delete(f.status, id)
		f.index++
	case r.Method == http.MethodGet && path == "/v1/catalog/services":
		out := map[string][]string{"consul": {}}
		for _, s := range f.services {
			out[s.Name] = append(out[s.Name], s.Tags...)
		}
		_ = json.NewEncoder(w).Encode(out)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/v1/health/service/"):
		name := strings.TrimPrefix(path, "/v1/health/service/")
		out := make([]*api.ServiceEntry, 0)
		for id, s := range f.services {
			if s.Name != name {
				continue
			}
			out = append(out, &api.ServiceEntry{
				Node: &api.Node{Node: "node-1", Address: "10.0.0.9"},
				Service: &api.AgentService{
					ID:      s.ID,
					Service: s.Name,
					Tags:    s.Tags,
					Address: s.Address,
					Port:    s.Port,
					Meta:    s.Meta,
				},
				Checks: api.HealthChecks{{ServiceID: id, Status: f.status[id]}},
			})
		}
		_ = json.NewEncoder(w).Encode(out)
	case r.Method == http.MethodGet && path == "/v1/health/state/any":
		_ = json.NewEncoder(w).Encode(api.HealthChecks{})
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/v1/agent/join/"):
		addr := strings.TrimPrefix(path, "/v1/agent/join/")
		if strings.HasPrefix(addr, "unreachable") {
			http.Error(w, "no route to host", http.StatusInternalServerError)
			return
		}
		f.joined = append(f.joined, addr)
	case r.Method == http.MethodPut && path == "/v1/agent/leave":
		f.left = true
	case r.Method == http.MethodGet && path == "/v1/agent/members":
		_ = json.NewEncoder(w).Encode([]*api.AgentMember{
			{Name: "node-1", Addr: "10.0.0.9", Port: 8301},
			{Name: "node-2", Addr: "10.0.0.10", Port: 8301},
		})
	default:
		http.NotFound(w, r)
	}
}
