package session

import (
	"context"

	"github.com/google/uuid"
)

// Discard is a no-op Store used when persistence is unavailable. The
// game degrades to an unrecorded session rather than refusing to run.
type Discard struct{}

var _ Store = Discard{}

func (Discard) Open(ctx context.Context, playerName string) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (Discard) RecordDecision(ctx context.Context, id uuid.UUID, decisionPoint, choice string) error {
	return nil
}

func (Discard) End(ctx context.Context, id uuid.UUID, finalScore int, gameState string, itemsCollected int) error {
	return nil
}

func (Discard) Ping(ctx context.Context) error { return nil }

func (Discard) Close() error { return nil }
