package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one play-through from name entry to quit, death or victory.
// EndTime and FinalScore stay nil until the session is ended. A session
// that is never ended (process crash) is an accepted durability gap.
type Record struct {
	ID             uuid.UUID  `json:"id"`
	PlayerName     string     `json:"player_name"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	FinalScore     *int       `json:"final_score,omitempty"`
	GameState      string     `json:"game_state"`
	TotalDecisions int        `json:"total_decisions"`
	ItemsCollected int        `json:"items_collected"`
}

// Decision is one logged player choice, currently only location
// transitions. Decisions are append-only.
type Decision struct {
	SessionID     uuid.UUID `json:"session_id"`
	DecisionPoint string    `json:"decision_point"`
	ChoiceMade    string    `json:"choice_made"`
	Timestamp     time.Time `json:"timestamp"`
}

// Store persists session lifecycle and the decision log. The engine
// treats it as a write-only side channel: it never reads session data
// back during play.
type Store interface {
	// Open starts a new session for playerName and returns its ID.
	Open(ctx context.Context, playerName string) (uuid.UUID, error)

	// RecordDecision appends a decision to the session's log and bumps
	// its decision counter.
	RecordDecision(ctx context.Context, id uuid.UUID, decisionPoint, choice string) error

	// End closes a session exactly once with its final score, terminal
	// state tag and item count.
	End(ctx context.Context, id uuid.UUID, finalScore int, gameState string, itemsCollected int) error

	Ping(ctx context.Context) error
	Close() error
}

// Summary aggregates historical sessions for the statistics viewer.
type Summary struct {
	TotalSessions int
	Victories     int
	AverageScore  float64 // over ended sessions only
}

// PlayerScore is a leaderboard row.
type PlayerScore struct {
	PlayerName string
	BestScore  int
}

// Reporter reads historical session data. Reporting is a collaborator
// of the launcher tooling, not of the engine.
type Reporter interface {
	Summary(ctx context.Context) (*Summary, error)
	TopPlayers(ctx context.Context, limit int) ([]PlayerScore, error)

	// Purge deletes all session and decision data.
	Purge(ctx context.Context) error
}
