package actor

// Starting stats for a fresh character.
const (
	StartingHealth  = 100
	StartingAttack  = 20
	StartingDefense = 5
)

// Level-up rewards. Experience needed for the next level is Level * 100.
const (
	xpPerLevel      = 100
	healthPerLevel  = 20
	attackPerLevel  = 5
	defensePerLevel = 2
)

// Character is the mutable player state. Health always stays within
// [0, MaxHealth]; Experience and Level only ever increase.
type Character struct {
	Name        string `json:"name"`
	Health      int    `json:"health"`
	MaxHealth   int    `json:"max_health"`
	AttackPower int    `json:"attack_power"`
	Defense     int    `json:"defense"`
	Experience  int    `json:"experience"`
	Level       int    `json:"level"`
}

// NewCharacter creates a level-1 character with starting stats.
func NewCharacter(name string) *Character {
	return &Character{
		Name:        name,
		Health:      StartingHealth,
		MaxHealth:   StartingHealth,
		AttackPower: StartingAttack,
		Defense:     StartingDefense,
		Level:       1,
	}
}

// ApplyDamage reduces health by n, flooring at 0.
func (c *Character) ApplyDamage(n int) {
	if n <= 0 {
		return
	}
	c.Health -= n
	if c.Health < 0 {
		c.Health = 0
	}
}

// Heal increases health by n, capped at MaxHealth. It returns the
// amount actually restored.
func (c *Character) Heal(n int) int {
	if n <= 0 {
		return 0
	}
	healed := min(n, c.MaxHealth-c.Health)
	c.Health += healed
	return healed
}

// GainExperience adds n experience points. Callers run LevelUp
// afterwards to apply any pending level gains.
func (c *Character) GainExperience(n int) {
	if n <= 0 {
		return
	}
	c.Experience += n
}

// LevelUp applies every level the character has earned and returns the
// number of levels gained. A large experience jump can cascade through
// several levels in one call. Each level grants +20 max health, +5
// attack, +2 defense, and restores health to the new maximum.
func (c *Character) LevelUp() int {
	gained := 0
	for c.Experience >= c.Level*xpPerLevel {
		c.Level++
		c.MaxHealth += healthPerLevel
		c.Health = c.MaxHealth
		c.AttackPower += attackPerLevel
		c.Defense += defensePerLevel
		gained++
	}
	return gained
}

// IsDead reports whether the character's health has reached 0. Death is
// terminal for the session.
func (c *Character) IsDead() bool {
	return c.Health <= 0
}
