package actor

import (
	"github.com/jwebster45206/adventure-quest/pkg/world"
)

// Enemy is an ephemeral combat encounter. It is spawned fresh from a
// static template, lives for a single combat, and is never persisted or
// shared across encounters.
type Enemy struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"max_health"`
	Attack    int    `json:"attack"`
	Defense   int    `json:"defense"`
}

// SpawnEnemy creates an encounter instance from a template.
func SpawnEnemy(t world.EnemyTemplate) *Enemy {
	return &Enemy{
		ID:        t.ID,
		Name:      world.DisplayName(t.ID),
		Health:    t.Health,
		MaxHealth: t.Health,
		Attack:    t.Attack,
		Defense:   t.Defense,
	}
}

// TakeDamage reduces the enemy's health by n. Health cannot go below 0.
func (e *Enemy) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	e.Health -= n
	if e.Health < 0 {
		e.Health = 0
	}
}

// IsDefeated returns true if the enemy's health is 0 or less.
func (e *Enemy) IsDefeated() bool {
	return e.Health <= 0
}
