package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ddlSessions = `
CREATE TABLE IF NOT EXISTS game_sessions (
    id               UUID         PRIMARY KEY,
    player_name      TEXT         NOT NULL,
    start_time       TIMESTAMPTZ  NOT NULL DEFAULT now(),
    end_time         TIMESTAMPTZ,
    final_score      INTEGER,
    game_state       TEXT         NOT NULL,
    total_decisions  INTEGER      NOT NULL DEFAULT 0,
    items_collected  INTEGER      NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_game_sessions_player_name
    ON game_sessions (player_name);

CREATE TABLE IF NOT EXISTS player_decisions (
    id              BIGSERIAL    PRIMARY KEY,
    session_id      UUID         NOT NULL REFERENCES game_sessions (id) ON DELETE CASCADE,
    decision_point  TEXT         NOT NULL,
    choice_made     TEXT         NOT NULL,
    timestamp       TIMESTAMPTZ  NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_player_decisions_session_id
    ON player_decisions (session_id);
`

// PostgresStore implements Store and Reporter on a pgx connection pool.
// All methods are safe for concurrent use, though the game drives the
// store strictly sequentially.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var (
	_ Store    = (*PostgresStore)(nil)
	_ Reporter = (*PostgresStore)(nil)
)

// Migrate creates the session tables if they do not exist. It is
// idempotent and safe to run on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, ddlSessions); err != nil {
		return fmt.Errorf("session store: migrate: %w", err)
	}
	return nil
}

// NewPostgresStore connects to the database at dsn and runs Migrate.
func NewPostgresStore(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("session store: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("session store: ping: %w", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) Open(ctx context.Context, playerName string) (uuid.UUID, error) {
	id := uuid.New()
	const q = `
		INSERT INTO game_sessions (id, player_name, start_time, game_state)
		VALUES ($1, $2, $3, 'playing')`

	if _, err := s.pool.Exec(ctx, q, id, playerName, time.Now()); err != nil {
		return uuid.Nil, fmt.Errorf("session store: open: %w", err)
	}

	s.logger.Info("New game session started", "session_id", id, "player", playerName)
	return id, nil
}

func (s *PostgresStore) RecordDecision(ctx context.Context, id uuid.UUID, decisionPoint, choice string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("session store: record decision: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // No-op after commit
	}()

	const insert = `
		INSERT INTO player_decisions (session_id, decision_point, choice_made, timestamp)
		VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, insert, id, decisionPoint, choice, time.Now()); err != nil {
		return fmt.Errorf("session store: insert decision: %w", err)
	}

	const bump = `
		UPDATE game_sessions
		SET    total_decisions = total_decisions + 1
		WHERE  id = $1`
	if _, err := tx.Exec(ctx, bump, id); err != nil {
		return fmt.Errorf("session store: bump decision counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("session store: record decision: %w", err)
	}
	return nil
}

func (s *PostgresStore) End(ctx context.Context, id uuid.UUID, finalScore int, gameState string, itemsCollected int) error {
	const q = `
		UPDATE game_sessions
		SET    end_time = $2, final_score = $3, game_state = $4, items_collected = $5
		WHERE  id = $1`

	if _, err := s.pool.Exec(ctx, q, id, time.Now(), finalScore, gameState, itemsCollected); err != nil {
		return fmt.Errorf("session store: end: %w", err)
	}

	s.logger.Info("Game session ended", "session_id", id, "state", gameState, "score", finalScore)
	return nil
}

func (s *PostgresStore) Summary(ctx context.Context) (*Summary, error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE game_state = 'victory'),
		       COALESCE(AVG(final_score) FILTER (WHERE final_score IS NOT NULL), 0)
		FROM   game_sessions`

	var sum Summary
	if err := s.pool.QueryRow(ctx, q).Scan(&sum.TotalSessions, &sum.Victories, &sum.AverageScore); err != nil {
		return nil, fmt.Errorf("session store: summary: %w", err)
	}
	return &sum, nil
}

func (s *PostgresStore) TopPlayers(ctx context.Context, limit int) ([]PlayerScore, error) {
	const q = `
		SELECT   player_name, MAX(final_score) AS best_score
		FROM     game_sessions
		WHERE    final_score IS NOT NULL
		GROUP BY player_name
		ORDER BY best_score DESC
		LIMIT    $1`

	rows, err := s.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("session store: top players: %w", err)
	}

	players, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (PlayerScore, error) {
		var p PlayerScore
		err := row.Scan(&p.PlayerName, &p.BestScore)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("session store: scan top players: %w", err)
	}
	return players, nil
}

func (s *PostgresStore) Purge(ctx context.Context) error {
	// Decisions cascade from sessions.
	if _, err := s.pool.Exec(ctx, `DELETE FROM game_sessions`); err != nil {
		return fmt.Errorf("session store: purge: %w", err)
	}
	s.logger.Info("Session data purged")
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("session store: ping: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	s.logger.Info("Postgres connection closed")
	return nil
}
