package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalMembership(t *testing.T) {
	ctx := context.Background()
	m := NewLocalMembership("10.0.0.5:5001")

	require.NoError(t, m.Join(ctx, []string{"10.0.0.9:8301"}))
	m.Add("10.0.0.5:5002")

	members, err := m.Members(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.5:5001", "10.0.0.5:5002"}, members)

	members[0] = "mutated"
	again, _ := m.Members(ctx)
	assert.Equal(t, "10.0.0.5:5001", again[0])

	require.NoError(t, m.Leave(ctx))
}

func TestLocalMembership_Empty(t *testing.T) {
	members, err := NewLocalMembership().Members(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, members)
	assert.Empty(t, members)
}
