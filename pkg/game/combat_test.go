package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Walking north with a low encounter roll always spawns the forest
// wolf, the trail's only enemy.
func enterWolfFight(t *testing.T, e *Engine) string {
	t.Helper()
	out := submit(t, e, "go north")
	require.Contains(t, out, "A wild Forest Wolf appears!")
	require.True(t, e.InCombat())
	return out
}

func TestCombatToVictory(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{floats: []float64{0.1}})
	enterWolfFight(t, e)

	// Player: 20 attack vs 3 defense = 17 per strike.
	// Wolf: 15 attack vs 5 defense = 10 per counter.
	out := submit(t, e, "1")
	assert.Contains(t, out, "You strike the Forest Wolf for 17 damage!")
	assert.Contains(t, out, "The Forest Wolf hits you for 10 damage!")
	assert.Equal(t, 90, e.Player().Health)

	submit(t, e, "1") // wolf at 6, player at 80

	out = submit(t, e, "1")
	assert.Contains(t, out, "You defeated the Forest Wolf!")
	assert.Contains(t, out, "You gain 25 experience and 50 score!")
	assert.Contains(t, out, "Winding Forest Trail", "location redescribed after combat")
	assert.False(t, e.InCombat())
	assert.Equal(t, 80, e.Player().Health)
	assert.Equal(t, 25, e.Player().Experience)
	assert.Equal(t, 50, e.Score())
	assert.Equal(t, 1, e.Player().Level, "25 XP is not enough for level 2")
}

func TestCombatDeath(t *testing.T) {
	e, store := newTestEngine(t, &scriptedRand{floats: []float64{0.1}})
	e.player.Health = 5
	enterWolfFight(t, e)

	out := submit(t, e, "1")
	assert.Contains(t, out, "You have been defeated!")
	assert.Contains(t, out, "ADVENTURE COMPLETE")
	assert.Equal(t, StateGameOver, e.State())
	assert.False(t, e.InCombat())

	require.Equal(t, 1, store.EndCalls)
	for _, rec := range store.Sessions {
		assert.Equal(t, "game_over", rec.GameState)
	}

	out = submit(t, e, "1")
	assert.Contains(t, out, "The adventure is over")
}

func TestFleeFailureCostsAHit(t *testing.T) {
	// 0.1 encounter, then 0.9 >= fleeChance so the attempt fails.
	e, _ := newTestEngine(t, &scriptedRand{floats: []float64{0.1, 0.9}})
	enterWolfFight(t, e)

	out := submit(t, e, "3")
	assert.Contains(t, out, "You failed to escape!")
	assert.Contains(t, out, "hits you for 10 damage")
	assert.Equal(t, 90, e.Player().Health)
	assert.True(t, e.InCombat(), "failed flee stays in combat")
}

func TestFleeSuccess(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{floats: []float64{0.1, 0.2}})
	enterWolfFight(t, e)

	out := submit(t, e, "3")
	assert.Contains(t, out, "You successfully flee")
	assert.Contains(t, out, "Winding Forest Trail", "exploration resumes where the fight was")
	assert.False(t, e.InCombat())
	assert.Equal(t, 100, e.Player().Health)
}

func TestCombatItemIsFreeAction(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{floats: []float64{0.1}})
	potion, _ := e.world.Item("health_potion")
	e.inventory = append(e.inventory, potion)
	e.player.Health = 60
	enterWolfFight(t, e)

	out := submit(t, e, "2")
	assert.Contains(t, out, "1. Health Potion")
	assert.Contains(t, out, "0. Cancel")

	out = submit(t, e, "1")
	assert.Contains(t, out, "restore 30 health")
	assert.NotContains(t, out, "hits you", "using an item does not cost a turn")
	assert.Equal(t, 90, e.Player().Health)
	assert.Empty(t, e.Inventory())
	assert.True(t, e.InCombat())
}

func TestCombatItemCancel(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{floats: []float64{0.1}})
	potion, _ := e.world.Item("health_potion")
	e.inventory = append(e.inventory, potion)
	enterWolfFight(t, e)

	submit(t, e, "2")
	out := submit(t, e, "0")
	assert.Contains(t, out, "You close your pack.")
	assert.Contains(t, out, "1. Attack")
	assert.Len(t, e.Inventory(), 1)
}

func TestCombatNoUsableItems(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{floats: []float64{0.1}})
	enterWolfFight(t, e)

	out := submit(t, e, "2")
	assert.Contains(t, out, "You have no usable items!")
	assert.Contains(t, out, "1. Attack", "back at the combat menu")
	assert.Equal(t, 100, e.Player().Health, "no counter-attack")
}

func TestCombatInvalidChoice(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{floats: []float64{0.1}})
	enterWolfFight(t, e)

	out := submit(t, e, "attack")
	assert.Contains(t, out, "Invalid choice!")
	assert.Equal(t, 100, e.Player().Health)
	assert.True(t, e.InCombat())
}

func TestCombatWinLevelsUp(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedRand{floats: []float64{0.1}})
	e.player.Experience = 90
	enterWolfFight(t, e)

	submit(t, e, "1")
	submit(t, e, "1")
	out := submit(t, e, "1")
	assert.Contains(t, out, "LEVEL UP! You are now level 2.")
	assert.Equal(t, 2, e.Player().Level)
	assert.Equal(t, 120, e.Player().MaxHealth)
	assert.Equal(t, 120, e.Player().Health, "level up fully heals")
	assert.Equal(t, 25, e.Player().AttackPower)
	assert.Equal(t, 7, e.Player().Defense)
}

func TestDamageFloor(t *testing.T) {
	assert.Equal(t, 17, attackDamage(20, 3))
	assert.Equal(t, 1, attackDamage(5, 10), "damage never drops below 1")
	assert.Equal(t, 1, attackDamage(10, 10))
}
