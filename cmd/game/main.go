package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/adventure-quest/internal/config"
	"github.com/jwebster45206/adventure-quest/internal/logger"
	"github.com/jwebster45206/adventure-quest/internal/session"
	"github.com/jwebster45206/adventure-quest/pkg/game"
	"github.com/jwebster45206/adventure-quest/pkg/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to a file so they don't tear up the TUI.
	var logSink io.Writer = io.Discard
	logPath := filepath.Join(cfg.SaveDir, "adventure_quest.log")
	if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		defer f.Close()
		logSink = f
	}
	log := logger.SetupWithWriter(cfg, logSink)

	ctx := context.Background()
	store := dialStore(ctx, cfg, log)
	defer func() {
		_ = store.Close()
	}()

	fmt.Print("Enter your name, adventurer: ")
	reader := bufio.NewReader(os.Stdin)
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Adventurer"
	}

	eng := game.New(world.New(), name, store, game.NewRand(cfg.GameSeed), cfg.SaveDir, log)

	p := tea.NewProgram(NewGameUI(ctx, eng),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// dialStore connects the configured session backend. Persistence is
// best-effort: if the backend is unreachable the game still runs, it
// just records nothing.
func dialStore(ctx context.Context, cfg *config.Config, log *slog.Logger) session.Store {
	switch cfg.SessionBackend {
	case config.BackendPostgres:
		s, err := session.NewPostgresStore(ctx, cfg.PostgresDSN, log)
		if err != nil {
			log.Error("postgres unavailable, sessions will not be recorded", "error", err)
			return session.Discard{}
		}
		return s
	case config.BackendRedis:
		s, err := session.NewRedisStore(cfg.RedisURL, log)
		if err != nil {
			log.Error("redis unavailable, sessions will not be recorded", "error", err)
			return session.Discard{}
		}
		return s
	default:
		return session.Discard{}
	}
}
