package scenario

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	names := Names()
	assert.Contains(t, names, scenarioBasicWorkflow)
	assert.Contains(t, names, scenarioRoutingErrors)
	assert.Contains(t, names, scenarioConfigurations)
	assert.Contains(t, names, scenarioCustomersUnavailable)
	assert.IsNonDecreasing(t, names)

	err := Run(context.Background(), "no_such_scenario", &Config{})
	var unknown *UnknownScenarioError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "no_such_scenario", unknown.Name)
}

func TestCustomersUnavailable_RequiresCompose(t *testing.T) {
	err := Run(context.Background(), scenarioCustomersUnavailable, &Config{GatewayURL: "http://127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compose file is required")
}

func TestExpectations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte("Api Gateway"))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":"not_found","message":"no route"}}`))
		}
	}))
	defer srv.Close()
	cfg := &Config{GatewayURL: srv.URL + "/"}
	ctx := context.Background()

	assert.NoError(t, expectText(ctx, cfg, "/", "Api Gateway"))
	assert.Error(t, expectText(ctx, cfg, "/", "Hello World!"))
	assert.Error(t, expectText(ctx, cfg, "/missing", "Api Gateway"))

	assert.NoError(t, expectError(ctx, cfg, "/missing", http.StatusNotFound, "not_found"))
	assert.Error(t, expectError(ctx, cfg, "/missing", http.StatusNotFound, "bad_parameter"))
	assert.Error(t, expectError(ctx, cfg, "/", http.StatusNotFound, "not_found"))
}

func TestEventually(t *testing.T) {
	t.Run("succeeds_after_retries", func(t *testing.T) {
		var calls atomic.Int32
		err := eventually(context.Background(), "flaky", func() error {
			if calls.Add(1) < 3 {
				return errors.New("not yet")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("returns_last_failure_on_timeout", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		err := eventually(ctx, "never", func() error { return errors.New("still down") })
		require.Error(t, err)
		assert.Equal(t, "never: still down", err.Error())
	})
}

func TestTalkToActor(t *testing.T) {
	assert.Equal(t, "/orders/talk-to-actor?customer_id=42", talkToActor(42))
}
