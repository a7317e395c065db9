package game

// State is the lifecycle of a game session. GameOver and Victory are
// terminal; the engine rejects further play once either is reached.
type State string

const (
	StatePlaying  State = "playing"
	StateGameOver State = "game_over"
	StateVictory  State = "victory"
	StatePaused   State = "paused"
)

// Terminal reports whether the game has ended.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateVictory
}

// mode tracks what kind of input the engine expects next. Interactive
// events and combat pause normal command parsing until they resolve.
type mode int

const (
	modeExplore mode = iota
	modeCombat
	modeCombatItem
	modeMerchant
	modeRiddle
)
