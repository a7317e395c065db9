package game

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/adventure-quest/internal/session"
	"github.com/jwebster45206/adventure-quest/pkg/world"
)

// scriptedRand replays a fixed sequence of rolls. When the script runs
// out, Float64 returns 0.99 (no encounter, failed flee) and Intn
// returns 0.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func newTestEngine(t *testing.T, rng Rand) (*Engine, *session.MockStore) {
	t.Helper()
	store := session.NewMockStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := New(world.New(), "Tester", store, rng, t.TempDir(), logger)
	e.Start(context.Background())
	return e, store
}

func submit(t *testing.T, e *Engine, input string) string {
	t.Helper()
	out, err := e.Submit(context.Background(), input)
	require.NoError(t, err)
	return out
}

func TestStart(t *testing.T) {
	store := session.NewMockStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := New(world.New(), "Tester", store, &scriptedRand{}, t.TempDir(), logger)

	out := e.Start(context.Background())
	assert.Contains(t, out, "Welcome, Tester!")
	assert.Contains(t, out, "Mysterious Forest Entrance")

	require.Len(t, store.Sessions, 1)
	for _, rec := range store.Sessions {
		assert.Equal(t, "Tester", rec.PlayerName)
		assert.Equal(t, "playing", rec.GameState)
	}
}

func TestMovePartialMatch(t *testing.T) {
	e, store := newTestEngine(t, &scriptedRand{})

	out := submit(t, e, "go north")
	assert.Contains(t, out, "You travel to Winding Forest Trail")
	assert.Equal(t, "north_trail", e.Location().ID)
	assert.Equal(t, 1, e.Decisions())

	require.Len(t, store.Decisions, 1)
	assert.Equal(t, "move_from_forest_start", store.Decisions[0].DecisionPoint)
	assert.Equal(t, "north_trail", store.Decisions[0].ChoiceMade)
}

func TestMoveNoMatch(t *testing.T) {
	e, store := newTestEngine(t, &scriptedRand{})

	out := submit(t, e, "go xyzzy")
	assert.Contains(t, out, `You can't go to "xyzzy" from here.`)
	assert.Equal(t, world.StartLocation, e.Location().ID)
	assert.Empty(t, store.Decisions)
	assert.Equal(t, 0, e.Decisions())
}

func TestMoveDanglingExit(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{})

	submit(t, e, "go north")
	out := submit(t, e, "go hidden")
	assert.Contains(t, out, "The path toward Hidden Cave is blocked")
	assert.Equal(t, "north_trail", e.Location().ID)
	assert.Equal(t, 1, e.Decisions())
}

func TestTakeItem(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{})

	out := submit(t, e, "take rusty")
	assert.Contains(t, out, "You picked up: Rusty Sword!")
	assert.Equal(t, 25, e.Score())
	require.Len(t, e.Inventory(), 1)

	// Items never respawn.
	out = submit(t, e, "take rusty")
	assert.Contains(t, out, `There's no "rusty" here.`)
	assert.Equal(t, 25, e.Score())
	assert.Len(t, e.Inventory(), 1)
}

func TestTakeUnknownItemID(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{})
	// Simulate a content bug: the location lists an item the item
	// table does not define.
	e.Location().Items = append(e.Location().Items, "phantom_gem")

	out := submit(t, e, "take phantom")
	assert.Contains(t, out, "You can't take that.")
	assert.Empty(t, e.Inventory())
	assert.Equal(t, 0, e.Score())
}

func TestUseEquipmentOnce(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{})
	submit(t, e, "take sword")

	out := submit(t, e, "use sword")
	assert.Contains(t, out, "Attack increased by 10!")
	assert.Equal(t, 30, e.Player().AttackPower)
	assert.Empty(t, e.Inventory())

	out = submit(t, e, "use sword")
	assert.Contains(t, out, `You don't have "sword".`)
	assert.Equal(t, 30, e.Player().AttackPower)
}

func TestUsePotionHealsCapped(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{})
	potion, _ := e.world.Item("health_potion")
	e.inventory = append(e.inventory, potion)
	e.player.Health = 90

	out := submit(t, e, "use potion")
	assert.Contains(t, out, "restore 10 health")
	assert.Equal(t, 100, e.Player().Health)
	assert.Empty(t, e.Inventory(), "potion is consumed")
}

func TestUseUnusableItem(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{})
	crystal, _ := e.world.Item("magic_crystal")
	key, _ := e.world.Item("ancient_key")
	e.inventory = append(e.inventory, crystal, key)

	out := submit(t, e, "use crystal")
	assert.Contains(t, out, "You can't use the Magic Crystal.")
	assert.Len(t, e.Inventory(), 2)

	// Usable but with no effect hook: kept, nothing happens.
	out = submit(t, e, "use key")
	assert.Contains(t, out, "nothing happens")
	assert.Len(t, e.Inventory(), 2)
}

func TestUnknownCommand(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{})
	out := submit(t, e, "dance wildly")
	assert.Contains(t, out, "I don't understand")
	assert.Contains(t, out, "help")
}

func TestQuitEndsSession(t *testing.T) {
	e, store := newTestEngine(t, &scriptedRand{})

	out := submit(t, e, "quit")
	assert.Contains(t, out, "Thanks for playing!")
	assert.Contains(t, out, "Final Score: 0")
	assert.Equal(t, StateGameOver, e.State())

	require.Equal(t, 1, store.EndCalls)
	for _, rec := range store.Sessions {
		assert.Equal(t, "game_over", rec.GameState)
		require.NotNil(t, rec.FinalScore)
		assert.Equal(t, 0, *rec.FinalScore)
	}

	out = submit(t, e, "look")
	assert.Contains(t, out, "The adventure is over")
	assert.Equal(t, 1, store.EndCalls)
}

func TestPersistenceFailuresDoNotStopPlay(t *testing.T) {
	store := session.NewMockStore()
	store.OpenError = assert.AnError
	store.RecordError = assert.AnError
	store.EndError = assert.AnError
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := New(world.New(), "Tester", store, &scriptedRand{}, t.TempDir(), logger)

	out := e.Start(context.Background())
	assert.Contains(t, out, "Welcome, Tester!")

	out = submit(t, e, "go north")
	assert.Contains(t, out, "You travel to Winding Forest Trail")
	assert.Equal(t, 1, e.Decisions(), "local decision count still advances")

	out = submit(t, e, "quit")
	assert.Contains(t, out, "Thanks for playing!")
	assert.Equal(t, StateGameOver, e.State())
}

func TestShutdownClosesSessionInAnyMode(t *testing.T) {
	e, store := newTestEngine(t, &scriptedRand{floats: []float64{0.1}})
	submit(t, e, "go north")
	require.True(t, e.InCombat())

	// A typed "quit" is just an invalid menu choice here; only
	// Shutdown ends the session from non-explore modes.
	out := submit(t, e, "quit")
	assert.Contains(t, out, "Invalid choice!")
	assert.Equal(t, 0, store.EndCalls)

	e.Shutdown(context.Background())
	assert.Equal(t, StateGameOver, e.State())
	require.Equal(t, 1, store.EndCalls)
	for _, rec := range store.Sessions {
		assert.Equal(t, "game_over", rec.GameState)
	}

	// Idempotent once the game has ended.
	e.Shutdown(context.Background())
	assert.Equal(t, 1, store.EndCalls)
}

func TestShutdownDuringMerchant(t *testing.T) {
	e, store := newTestEngine(t, &scriptedRand{})
	submit(t, e, "go east")

	e.Shutdown(context.Background())
	assert.Equal(t, StateGameOver, e.State())
	assert.Equal(t, 1, store.EndCalls)
}

func TestDiscardStoreEngine(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := New(world.New(), "Tester", nil, &scriptedRand{}, t.TempDir(), logger)

	e.Start(context.Background())
	out := submit(t, e, "go east")
	assert.Contains(t, out, "You travel to Sunlit Clearing")
}
