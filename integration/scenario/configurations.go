package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const scenarioConfigurations = "configurations"

func init() {
	Register(scenarioConfigurations, runConfigurations)
}

type configurations struct {
	Version uint64 `json:"version"`
	Stale   bool   `json:"stale"`
	Routes  []struct {
		Prefix  string `json:"prefix"`
		Cluster string `json:"cluster"`
	} `json:"routes"`
	Clusters map[string][]struct {
		ID      string `json:"id"`
		Address string `json:"address"`
	} `json:"clusters"`
}

// runConfigurations checks that the published routing table routes /orders and /customers to live members.
func runConfigurations(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return eventually(ctx, "routing table", func() error {
		resp, err := get(ctx, cfg, "/_configurations")
		if err != nil {
			return err
		}
		if resp.status != http.StatusOK {
			return fmt.Errorf("status=%d", resp.status)
		}
		var c configurations
		if err := json.Unmarshal([]byte(resp.body), &c); err != nil {
			return fmt.Errorf("decode configurations: %w", err)
		}
		if c.Stale {
			return fmt.Errorf("routing table version %d is stale", c.Version)
		}
		for _, prefix := range []string{"/orders", "/customers"} {
			cluster := ""
			for _, r := range c.Routes {
				if r.Prefix == prefix {
					cluster = r.Cluster
				}
			}
			if cluster == "" {
				return fmt.Errorf("no route for %s", prefix)
			}
			if len(c.Clusters[cluster]) == 0 {
				return fmt.Errorf("cluster %s of %s has no members", cluster, prefix)
			}
		}
		return nil
	})
}
