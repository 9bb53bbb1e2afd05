package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	ordersPath      = "/orders/"
	talkToActorPath = "/orders/talk-to-actor"
	customersPath   = "/customers/"

	customersServiceName = "customers"

	pollInterval = 500 * time.Millisecond
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// response is a fully read gateway response.
type response struct {
	status int
	body   string
}

// errorBody mirrors the error JSON returned by the gateway and the services.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func get(ctx context.Context, cfg *Config, path string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(cfg.GatewayURL, "/")+path, nil)
	if err != nil {
		return response{}, fmt.Errorf("build request %s: %w", path, err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("read %s: %w", path, err)
	}
	return response{status: resp.StatusCode, body: string(body)}, nil
}

// expectText checks status 200 and an exact text body.
func expectText(ctx context.Context, cfg *Config, path, want string) error {
	resp, err := get(ctx, cfg, path)
	if err != nil {
		return err
	}
	if resp.status != http.StatusOK {
		return fmt.Errorf("GET %s: status=%d, want 200 (body %q)", path, resp.status, resp.body)
	}
	if resp.body != want {
		return fmt.Errorf("GET %s: body=%q, want %q", path, resp.body, want)
	}
	return nil
}

// expectError checks the status and the error code of an error response.
func expectError(ctx context.Context, cfg *Config, path string, wantStatus int, wantCode string) error {
	resp, err := get(ctx, cfg, path)
	if err != nil {
		return err
	}
	if resp.status != wantStatus {
		return fmt.Errorf("GET %s: status=%d, want %d (body %q)", path, resp.status, wantStatus, resp.body)
	}
	var body errorBody
	if err := json.Unmarshal([]byte(resp.body), &body); err != nil {
		return fmt.Errorf("GET %s: decode error body %q: %w", path, resp.body, err)
	}
	if body.Error.Code != wantCode {
		return fmt.Errorf("GET %s: code=%q, want %q", path, body.Error.Code, wantCode)
	}
	return nil
}

// eventually retries check until it succeeds or ctx ends, returning the last failure.
func eventually(ctx context.Context, what string, check func() error) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	var last error
	for {
		if last = check(); last == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", what, last)
		case <-ticker.C:
		}
	}
}

func talkToActor(customerID int) string {
	return fmt.Sprintf("%s?customer_id=%d", talkToActorPath, customerID)
}
