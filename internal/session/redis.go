package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store and Reporter on Redis. Sessions live in
// hashes, decisions in append-only lists, and a set of session IDs
// supports reporting.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var (
	_ Store    = (*RedisStore)(nil)
	_ Reporter = (*RedisStore)(nil)
)

const sessionIndexKey = "sessions"

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func decisionsKey(id uuid.UUID) string {
	return "decisions:" + id.String()
}

// NewRedisStore creates a Redis-backed session store. redisURL uses the
// redis:// scheme.
func NewRedisStore(redisURL string, logger *slog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("session store: parse redis URL: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opt), logger: logger}, nil
}

func (s *RedisStore) Open(ctx context.Context, playerName string) (uuid.UUID, error) {
	id := uuid.New()

	fields := map[string]interface{}{
		"player_name":     playerName,
		"start_time":      time.Now().Format(time.RFC3339),
		"game_state":      "playing",
		"total_decisions": 0,
		"items_collected": 0,
	}
	if err := s.client.HSet(ctx, sessionKey(id), fields).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("session store: open: %w", err)
	}
	if err := s.client.SAdd(ctx, sessionIndexKey, id.String()).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("session store: index session: %w", err)
	}

	s.logger.Info("New game session started", "session_id", id, "player", playerName)
	return id, nil
}

func (s *RedisStore) RecordDecision(ctx context.Context, id uuid.UUID, decisionPoint, choice string) error {
	d := Decision{
		SessionID:     id,
		DecisionPoint: decisionPoint,
		ChoiceMade:    choice,
		Timestamp:     time.Now(),
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("session store: marshal decision: %w", err)
	}

	if err := s.client.RPush(ctx, decisionsKey(id), data).Err(); err != nil {
		return fmt.Errorf("session store: append decision: %w", err)
	}
	if err := s.client.HIncrBy(ctx, sessionKey(id), "total_decisions", 1).Err(); err != nil {
		return fmt.Errorf("session store: bump decision counter: %w", err)
	}
	return nil
}

func (s *RedisStore) End(ctx context.Context, id uuid.UUID, finalScore int, gameState string, itemsCollected int) error {
	fields := map[string]interface{}{
		"end_time":        time.Now().Format(time.RFC3339),
		"final_score":     finalScore,
		"game_state":      gameState,
		"items_collected": itemsCollected,
	}
	if err := s.client.HSet(ctx, sessionKey(id), fields).Err(); err != nil {
		return fmt.Errorf("session store: end: %w", err)
	}

	s.logger.Info("Game session ended", "session_id", id, "state", gameState, "score", finalScore)
	return nil
}

func (s *RedisStore) Summary(ctx context.Context) (*Summary, error) {
	ids, err := s.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("session store: summary: %w", err)
	}

	sum := &Summary{}
	scored := 0
	total := 0
	for _, raw := range ids {
		fields, err := s.client.HGetAll(ctx, "session:"+raw).Result()
		if err != nil {
			return nil, fmt.Errorf("session store: read session %s: %w", raw, err)
		}
		if len(fields) == 0 {
			continue
		}
		sum.TotalSessions++
		if fields["game_state"] == "victory" {
			sum.Victories++
		}
		if v, ok := fields["final_score"]; ok {
			score, err := strconv.Atoi(v)
			if err == nil {
				scored++
				total += score
			}
		}
	}
	if scored > 0 {
		sum.AverageScore = float64(total) / float64(scored)
	}
	return sum, nil
}

func (s *RedisStore) TopPlayers(ctx context.Context, limit int) ([]PlayerScore, error) {
	ids, err := s.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("session store: top players: %w", err)
	}

	best := make(map[string]int)
	for _, raw := range ids {
		fields, err := s.client.HGetAll(ctx, "session:"+raw).Result()
		if err != nil {
			return nil, fmt.Errorf("session store: read session %s: %w", raw, err)
		}
		v, ok := fields["final_score"]
		if !ok {
			continue
		}
		score, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		name := fields["player_name"]
		if cur, ok := best[name]; !ok || score > cur {
			best[name] = score
		}
	}

	players := make([]PlayerScore, 0, len(best))
	for name, score := range best {
		players = append(players, PlayerScore{PlayerName: name, BestScore: score})
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].BestScore != players[j].BestScore {
			return players[i].BestScore > players[j].BestScore
		}
		return players[i].PlayerName < players[j].PlayerName
	})
	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}

func (s *RedisStore) Purge(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return fmt.Errorf("session store: purge: %w", err)
	}

	keys := make([]string, 0, len(ids)*2+1)
	for _, raw := range ids {
		keys = append(keys, "session:"+raw, "decisions:"+raw)
	}
	keys = append(keys, sessionIndexKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("session store: purge: %w", err)
	}
	s.logger.Info("Session data purged", "sessions", len(ids))
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("session store: ping: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		s.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	s.logger.Info("Redis connection closed")
	return nil
}
