package session

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	store, err := NewRedisStore("redis://"+mr.Addr(), logger)
	if err != nil {
		t.Fatalf("Failed to create redis store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func TestRedisStore_SessionLifecycle(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	id, err := store.Open(ctx, "TestPlayer")
	require.NoError(t, err)

	require.NoError(t, store.RecordDecision(ctx, id, "move_from_forest_start", "north_trail"))
	require.NoError(t, store.RecordDecision(ctx, id, "move_from_north_trail", "goblin_camp"))

	require.NoError(t, store.End(ctx, id, 250, "victory", 4))

	sum, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.TotalSessions)
	assert.Equal(t, 1, sum.Victories)
	assert.InDelta(t, 250.0, sum.AverageScore, 0.001)

	fields, err := store.client.HGetAll(ctx, sessionKey(id)).Result()
	require.NoError(t, err)
	assert.Equal(t, "TestPlayer", fields["player_name"])
	assert.Equal(t, "2", fields["total_decisions"])
	assert.Equal(t, "4", fields["items_collected"])
	assert.NotEmpty(t, fields["end_time"])

	// Decisions are append-only, in order.
	decisions, err := store.client.LRange(ctx, decisionsKey(id), 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	assert.Contains(t, decisions[0], "move_from_forest_start")
	assert.Contains(t, decisions[1], "goblin_camp")
}

func TestRedisStore_UnendedSessionHasNoScore(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	_, err := store.Open(ctx, "Ghost")
	require.NoError(t, err)

	sum, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.TotalSessions)
	assert.Equal(t, 0, sum.Victories)
	assert.Zero(t, sum.AverageScore)

	players, err := store.TopPlayers(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestRedisStore_TopPlayers(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	scores := map[string][]int{
		"Alice": {100, 400},
		"Bob":   {250},
		"Carol": {50, 60, 70},
	}
	for name, runs := range scores {
		for _, score := range runs {
			id, err := store.Open(ctx, name)
			require.NoError(t, err)
			require.NoError(t, store.End(ctx, id, score, "game_over", 0))
		}
	}

	players, err := store.TopPlayers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, PlayerScore{PlayerName: "Alice", BestScore: 400}, players[0])
	assert.Equal(t, PlayerScore{PlayerName: "Bob", BestScore: 250}, players[1])
}

func TestRedisStore_Purge(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	id, err := store.Open(ctx, "TestPlayer")
	require.NoError(t, err)
	require.NoError(t, store.RecordDecision(ctx, id, "move_from_forest_start", "west_river"))

	require.NoError(t, store.Purge(ctx))

	sum, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum.TotalSessions)

	exists, err := store.client.Exists(ctx, sessionKey(id), decisionsKey(id)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}
