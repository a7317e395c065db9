package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockStore is an in-memory Store for tests. It records every call so
// tests can assert on the session lifecycle and decision log. Errors
// can be injected to exercise degradation paths.
type MockStore struct {
	Sessions  map[uuid.UUID]*Record
	Decisions []Decision

	// EndCalls counts calls to End, including failed ones.
	EndCalls int

	// When set, the corresponding method returns this error.
	OpenError   error
	RecordError error
	EndError    error
}

var _ Store = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{Sessions: make(map[uuid.UUID]*Record)}
}

func (m *MockStore) Open(ctx context.Context, playerName string) (uuid.UUID, error) {
	if m.OpenError != nil {
		return uuid.Nil, m.OpenError
	}
	id := uuid.New()
	m.Sessions[id] = &Record{
		ID:         id,
		PlayerName: playerName,
		StartTime:  time.Now(),
		GameState:  "playing",
	}
	return id, nil
}

func (m *MockStore) RecordDecision(ctx context.Context, id uuid.UUID, decisionPoint, choice string) error {
	if m.RecordError != nil {
		return m.RecordError
	}
	rec, ok := m.Sessions[id]
	if !ok {
		return fmt.Errorf("mock store: unknown session %s", id)
	}
	m.Decisions = append(m.Decisions, Decision{
		SessionID:     id,
		DecisionPoint: decisionPoint,
		ChoiceMade:    choice,
		Timestamp:     time.Now(),
	})
	rec.TotalDecisions++
	return nil
}

func (m *MockStore) End(ctx context.Context, id uuid.UUID, finalScore int, gameState string, itemsCollected int) error {
	m.EndCalls++
	if m.EndError != nil {
		return m.EndError
	}
	rec, ok := m.Sessions[id]
	if !ok {
		return fmt.Errorf("mock store: unknown session %s", id)
	}
	now := time.Now()
	rec.EndTime = &now
	rec.FinalScore = &finalScore
	rec.GameState = gameState
	rec.ItemsCollected = itemsCollected
	return nil
}

func (m *MockStore) Ping(ctx context.Context) error { return nil }

func (m *MockStore) Close() error { return nil }
