package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/adventure-quest/internal/config"
	"github.com/jwebster45206/adventure-quest/internal/logger"
	"github.com/jwebster45206/adventure-quest/internal/session"
	"github.com/jwebster45206/adventure-quest/pkg/game"
)

// purger is a session backend whose data can be purged.
type purger interface {
	Purge(ctx context.Context) error
	Close() error
}

// Deletes save snapshots from the save directory and, with -sessions,
// all recorded session history. Asks for confirmation unless -yes is
// given.
func main() {
	purgeSessions := flag.Bool("sessions", false, "also purge all recorded session history")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	saves, err := filepath.Glob(filepath.Join(cfg.SaveDir, game.SaveFilePattern))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list save files: %v\n", err)
		os.Exit(1)
	}

	if len(saves) == 0 && !*purgeSessions {
		fmt.Println("Nothing to clean up.")
		return
	}

	for _, path := range saves {
		fmt.Printf("  %s\n", path)
	}
	fmt.Printf("\n%d save file(s) will be deleted", len(saves))
	if *purgeSessions {
		fmt.Print(", along with ALL recorded session history")
	}
	fmt.Println(".")

	if !*yes && !confirm() {
		fmt.Println("Aborted.")
		return
	}

	deleted := 0
	for _, path := range saves {
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete %s: %v\n", path, err)
			continue
		}
		deleted++
	}
	fmt.Printf("Deleted %d save file(s).\n", deleted)

	if *purgeSessions {
		if err := purgeBackend(context.Background(), cfg, log); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to purge sessions: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Session history purged.")
	}
}

func confirm() bool {
	fmt.Print("Continue? (yes/no): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "yes" || answer == "y"
}

func purgeBackend(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	var (
		p   purger
		err error
	)
	switch cfg.SessionBackend {
	case config.BackendPostgres:
		p, err = session.NewPostgresStore(ctx, cfg.PostgresDSN, log)
	case config.BackendRedis:
		p, err = session.NewRedisStore(cfg.RedisURL, log)
	default:
		return fmt.Errorf("SESSION_BACKEND %q stores no session history", cfg.SessionBackend)
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = p.Close()
	}()
	return p.Purge(ctx)
}
