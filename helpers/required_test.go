package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrPanic(t *testing.T) {
	t.Run("empty_panics", func(t *testing.T) {
		assert.PanicsWithValue(t, "service name is required", func() {
			StrPanic("", "service name is required")
		})
	})
	t.Run("non_empty_returns_value", func(t *testing.T) {
		require.Equal(t, "orders-service", StrPanic("orders-service", "service name is required"))
	})
}

func TestNilPanic(t *testing.T) {
	t.Run("nil_interface_panics", func(t *testing.T) {
		var v any
		assert.PanicsWithValue(t, "registry is required", func() {
			NilPanic(v, "registry is required")
		})
	})
	t.Run("nil_func_panics", func(t *testing.T) {
		var f func() time.Time
		assert.PanicsWithValue(t, "now is required", func() {
			NilPanic(f, "now is required")
		})
	})
	t.Run("nil_map_panics", func(t *testing.T) {
		var m map[string]int
		assert.PanicsWithValue(t, "map is required", func() {
			NilPanic(m, "map is required")
		})
	})
	t.Run("typed_nil_pointer_panics", func(t *testing.T) {
		var p *int
		assert.PanicsWithValue(t, "pointer is required", func() {
			NilPanic(p, "pointer is required")
		})
	})
	t.Run("non_nil_returns_value", func(t *testing.T) {
		s := []string{"mymesh-proxy"}
		require.Equal(t, []string{"mymesh-proxy"}, NilPanic(s, "tags are required"))
	})
}
