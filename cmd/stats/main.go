package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jwebster45206/adventure-quest/internal/config"
	"github.com/jwebster45206/adventure-quest/internal/logger"
	"github.com/jwebster45206/adventure-quest/internal/session"
)

// reporter is a session backend that can both report and be closed.
type reporter interface {
	session.Reporter
	Close() error
}

// Prints aggregate statistics over all recorded sessions: totals,
// victories, average score and a top-5 leaderboard.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	ctx := context.Background()
	rep, err := dialReporter(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to session backend: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = rep.Close()
	}()

	summary, err := rep.Summary(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load summary: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== GAME STATISTICS ===")
	fmt.Printf("Total Sessions: %d\n", summary.TotalSessions)
	fmt.Printf("Victories:      %d\n", summary.Victories)
	fmt.Printf("Average Score:  %.1f\n", summary.AverageScore)

	top, err := rep.TopPlayers(ctx, 5)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load leaderboard: %v\n", err)
		os.Exit(1)
	}

	if len(top) == 0 {
		fmt.Println("\nNo completed sessions yet.")
		return
	}

	fmt.Println("\n=== TOP PLAYERS ===")
	for i, p := range top {
		fmt.Printf("%d. %s - %d\n", i+1, p.PlayerName, p.BestScore)
	}
}

func dialReporter(ctx context.Context, cfg *config.Config, log *slog.Logger) (reporter, error) {
	switch cfg.SessionBackend {
	case config.BackendPostgres:
		return session.NewPostgresStore(ctx, cfg.PostgresDSN, log)
	case config.BackendRedis:
		return session.NewRedisStore(cfg.RedisURL, log)
	default:
		return nil, fmt.Errorf("SESSION_BACKEND %q records no sessions to report on", cfg.SessionBackend)
	}
}
