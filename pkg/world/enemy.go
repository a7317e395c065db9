package world

// EnemyTemplate is the static stat block an encounter is spawned from.
// Encounters get a fresh copy of these stats; templates are never
// mutated.
type EnemyTemplate struct {
	ID      string `json:"id"`
	Health  int    `json:"health"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
}
