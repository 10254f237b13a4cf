package roll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRoster_Deterministic(t *testing.T) {
	first := SeedRoster()
	second := SeedRoster()
	assert.Equal(t, first, second)
}

func TestSeedRoster_ContainsClashPair(t *testing.T) {
	byID := make(map[string]Voter)
	for _, v := range SeedRoster() {
		byID[v.ID] = v
	}

	x1, ok := byID["EPIC-DUP-X1"]
	require.True(t, ok)
	x2, ok := byID["EPIC-DUP-X2"]
	require.True(t, ok)

	anchor1, ok := x1.IdentityAnchor()
	require.True(t, ok)
	anchor2, ok := x2.IdentityAnchor()
	require.True(t, ok)
	assert.Equal(t, anchor1, anchor2)
	assert.NotEqual(t, x1.State, x2.State)
	assert.True(t, x1.IsFlagged)
	assert.True(t, x2.IsFlagged)
}

func TestSeedStore_LoadsRoster(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	require.NoError(t, SeedStore(ctx, store))

	voters, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SeedRoster()), len(voters))

	// Insertion order matches generation order.
	assert.Equal(t, SeedRoster()[0].ID, voters[0].ID)
}
