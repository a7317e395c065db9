package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/adventure-quest/internal/session"
	"github.com/jwebster45206/adventure-quest/pkg/actor"
	"github.com/jwebster45206/adventure-quest/pkg/world"
)

// Probability of rolling an encounter on arrival at a location with
// enemies, and of a flee attempt succeeding.
const (
	encounterChance = 0.6
	fleeChance      = 0.4
)

// Rewards for winning a combat and for reaching the treasure chamber.
const (
	combatExperience = 25
	combatScore      = 50
	victoryScore     = 500
)

// Engine runs one game session. It consumes one line of player input at
// a time through Submit and returns the narration to display. All game
// state lives here; the session store is a write-only side channel and
// its failures never interrupt play.
//
// Engine is not safe for concurrent use.
type Engine struct {
	world     *world.World
	player    *actor.Character
	inventory []world.Item
	location  string
	score     int
	decisions int

	state State
	mode  mode

	// combat is non-nil while mode is modeCombat or modeCombatItem.
	combat *actor.Enemy

	// pendingEvents holds location events waiting to fire. Combat and
	// interactive events (merchant, riddle) defer the rest of the queue
	// until they resolve.
	pendingEvents []string

	store         session.Store
	sessionID     uuid.UUID
	sessionClosed bool

	rng     Rand
	logger  *slog.Logger
	saveDir string
}

// New creates an engine for a fresh playthrough. A nil store disables
// session tracking and a nil rng falls back to a clock-seeded source.
func New(w *world.World, playerName string, store session.Store, rng Rand, saveDir string, logger *slog.Logger) *Engine {
	if store == nil {
		store = session.Discard{}
	}
	if rng == nil {
		rng = NewRand(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if saveDir == "" {
		saveDir = "."
	}
	return &Engine{
		world:    w,
		player:   actor.NewCharacter(playerName),
		location: world.StartLocation,
		state:    StatePlaying,
		store:    store,
		rng:      rng,
		logger:   logger,
		saveDir:  saveDir,
	}
}

// Start opens the session and returns the opening narration.
func (e *Engine) Start(ctx context.Context) string {
	id, err := e.store.Open(ctx, e.player.Name)
	if err != nil {
		e.logger.Error("failed to open session, continuing without tracking", "error", err)
	} else {
		e.sessionID = id
		e.logger.Info("session started", "session_id", id, "player", e.player.Name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Welcome, %s! Your adventure begins...\n", e.player.Name)
	fmt.Fprintf(&sb, "Health: %d | Attack: %d | Defense: %d\n\n",
		e.player.Health, e.player.AttackPower, e.player.Defense)
	e.describeLocation(&sb)
	return strings.TrimRight(sb.String(), "\n")
}

// Submit feeds one line of player input to the engine and returns the
// resulting narration. Input handling depends on the current mode:
// combat and event prompts read menu choices, exploration reads
// commands.
func (e *Engine) Submit(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if e.state.Terminal() {
		return "The adventure is over. Start a new game to play again.", nil
	}

	var sb strings.Builder
	var err error
	switch e.mode {
	case modeCombat:
		e.handleCombatInput(ctx, input, &sb)
	case modeCombatItem:
		e.handleCombatItemInput(input, &sb)
	case modeMerchant:
		e.handleMerchantInput(ctx, input, &sb)
	case modeRiddle:
		e.handleRiddleInput(ctx, input, &sb)
	default:
		err = e.handleCommand(ctx, input, &sb)
	}
	return strings.TrimRight(sb.String(), "\n"), err
}

func (e *Engine) handleCommand(ctx context.Context, input string, sb *strings.Builder) error {
	verb, arg := parseCommand(input)
	switch verb {
	case "":
		// nothing typed
	case "help":
		e.writeHelp(sb)
	case "status":
		e.writeStatus(sb)
	case "inventory", "inv":
		e.writeInventory(sb)
	case "look":
		e.describeLocation(sb)
	case "go":
		if arg == "" {
			sb.WriteString("Go where? Try 'go north_trail' or part of a path name.\n")
			return nil
		}
		e.move(ctx, arg, sb)
	case "take":
		if arg == "" {
			sb.WriteString("Take what?\n")
			return nil
		}
		e.take(arg, sb)
	case "use":
		if arg == "" {
			sb.WriteString("Use what?\n")
			return nil
		}
		e.useItem(arg, sb)
	case "save":
		return e.save(sb)
	case "quit":
		e.quit(ctx, sb)
	default:
		fmt.Fprintf(sb, "I don't understand %q. Type 'help' for commands.\n", input)
	}
	return nil
}

// parseCommand splits input into a lowercase verb and its argument.
func parseCommand(input string) (verb, arg string) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// matchOne returns the first candidate containing query as a
// case-insensitive substring, or "" when nothing matches.
func matchOne(candidates []string, query string) string {
	query = strings.ToLower(query)
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), query) {
			return c
		}
	}
	return ""
}

func (e *Engine) move(ctx context.Context, query string, sb *strings.Builder) {
	loc := e.currentLocation()
	exit := matchOne(loc.Exits, query)
	if exit == "" {
		fmt.Fprintf(sb, "You can't go to %q from here.\n", query)
		sb.WriteString("Paths lead to: " + exitNames(loc.Exits) + "\n")
		return
	}

	dest, ok := e.world.Location(exit)
	if !ok {
		// Exit names a location that was never built. The path exists
		// in the fiction but cannot be traveled.
		fmt.Fprintf(sb, "The path toward %s is blocked. You cannot go that way.\n", world.DisplayName(exit))
		e.logger.Warn("exit leads nowhere", "from", loc.ID, "exit", exit)
		return
	}

	from := e.location
	e.location = dest.ID
	e.decisions++
	e.recordDecision(ctx, "move_from_"+from, dest.ID)
	e.logger.Info("player moved", "from", from, "to", dest.ID, "decisions", e.decisions)

	fmt.Fprintf(sb, "You travel to %s...\n\n", dest.Name)
	e.pendingEvents = append([]string(nil), dest.Events...)

	if len(dest.Enemies) > 0 && e.rng.Float64() < encounterChance {
		id := dest.Enemies[e.rng.Intn(len(dest.Enemies))]
		e.enterCombat(ctx, id, sb)
		return
	}
	e.resume(ctx, sb)
}

// resume drains the pending event queue and, if the engine is back in
// normal exploration, describes the surroundings. Called after movement
// and whenever combat or an interactive event finishes.
func (e *Engine) resume(ctx context.Context, sb *strings.Builder) {
	e.fireEvents(ctx, sb)
	if e.mode == modeExplore && e.state == StatePlaying {
		e.describeLocation(sb)
	}
}

func (e *Engine) take(query string, sb *strings.Builder) {
	loc := e.currentLocation()
	id := matchOne(loc.Items, query)
	if id == "" {
		fmt.Fprintf(sb, "There's no %q here.\n", query)
		return
	}

	item, ok := e.world.Item(id)
	if !ok {
		e.logger.Error("location references unknown item", "location", loc.ID, "item", id)
		sb.WriteString("You can't take that.\n")
		return
	}
	if err := e.world.RemoveItem(loc.ID, id); err != nil {
		e.logger.Error("failed to remove item from location", "location", loc.ID, "item", id, "error", err)
		fmt.Fprintf(sb, "There's no %q here.\n", query)
		return
	}
	e.inventory = append(e.inventory, item)
	e.score += item.Value
	fmt.Fprintf(sb, "You picked up: %s!\n", item.Name)
	fmt.Fprintf(sb, "%s\n", item.Description)
	e.logger.Info("item collected", "item", id, "score", e.score)
}

func (e *Engine) useItem(query string, sb *strings.Builder) {
	idx := e.findInventoryItem(query)
	if idx < 0 {
		fmt.Fprintf(sb, "You don't have %q.\n", query)
		return
	}
	if e.applyItemUse(e.inventory[idx], sb) {
		e.inventory = append(e.inventory[:idx], e.inventory[idx+1:]...)
	}
}

// findInventoryItem matches query against item names, first match wins.
func (e *Engine) findInventoryItem(query string) int {
	query = strings.ToLower(query)
	for i, item := range e.inventory {
		if strings.Contains(strings.ToLower(item.Name), query) {
			return i
		}
	}
	return -1
}

// applyItemUse applies an item's effect and reports whether the item
// should be removed from inventory. Equipment bonuses are permanent;
// the item is gone once equipped.
func (e *Engine) applyItemUse(item world.Item, sb *strings.Builder) bool {
	if !item.Usable {
		fmt.Fprintf(sb, "You can't use the %s.\n", item.Name)
		return false
	}

	switch item.ID {
	case "health_potion":
		healed := e.player.Heal(30)
		fmt.Fprintf(sb, "You drink the Health Potion and restore %d health! (%d/%d)\n",
			healed, e.player.Health, e.player.MaxHealth)
		return true
	case "leather_armor":
		e.player.Defense += 3
		fmt.Fprintf(sb, "You equip the Leather Armor. Defense increased by 3! (now %d)\n", e.player.Defense)
		return true
	case "rusty_sword":
		e.player.AttackPower += 10
		fmt.Fprintf(sb, "You equip the Rusty Sword. Attack increased by 10! (now %d)\n", e.player.AttackPower)
		return true
	default:
		// Usable in principle, but nothing here responds to it.
		fmt.Fprintf(sb, "You fiddle with the %s, but nothing happens.\n", item.Name)
		return false
	}
}

func (e *Engine) quit(ctx context.Context, sb *strings.Builder) {
	sb.WriteString("Thanks for playing! Your adventure ends here.\n\n")
	e.state = StateGameOver
	e.closeSession(ctx)
	e.writeFinalSummary(sb)
}

// Shutdown ends the game immediately, whatever input mode the engine
// is in. The UI calls this on interrupt so the session is closed even
// mid-combat or mid-event. Safe to call after the game has ended.
func (e *Engine) Shutdown(ctx context.Context) {
	if e.state.Terminal() {
		return
	}
	e.state = StateGameOver
	e.combat = nil
	e.mode = modeExplore
	e.closeSession(ctx)
}

// die ends the game after the player's health reaches zero.
func (e *Engine) die(ctx context.Context, sb *strings.Builder) {
	sb.WriteString("\nYou have been defeated! Your adventure ends here.\n\n")
	e.state = StateGameOver
	e.combat = nil
	e.mode = modeExplore
	e.closeSession(ctx)
	e.writeFinalSummary(sb)
}

// recordDecision logs a decision to the store. Failures are logged and
// swallowed; gameplay never stops for persistence.
func (e *Engine) recordDecision(ctx context.Context, point, choice string) {
	if e.sessionID == uuid.Nil {
		return
	}
	if err := e.store.RecordDecision(ctx, e.sessionID, point, choice); err != nil {
		e.logger.Error("failed to record decision", "decision_point", point, "error", err)
	}
}

// closeSession ends the stored session exactly once, tagged with the
// engine's terminal state.
func (e *Engine) closeSession(ctx context.Context) {
	if e.sessionClosed {
		return
	}
	e.sessionClosed = true
	if e.sessionID == uuid.Nil {
		return
	}
	if err := e.store.End(ctx, e.sessionID, e.score, string(e.state), len(e.inventory)); err != nil {
		e.logger.Error("failed to end session", "session_id", e.sessionID, "error", err)
		return
	}
	e.logger.Info("session ended", "session_id", e.sessionID, "state", e.state, "score", e.score)
}

func (e *Engine) currentLocation() *world.Location {
	loc, ok := e.world.Location(e.location)
	if !ok {
		// Unreachable: movement only ever lands on known locations.
		panic(fmt.Sprintf("engine at unknown location %q", e.location))
	}
	return loc
}

// Accessors for the UI layer.

func (e *Engine) Player() *actor.Character  { return e.player }
func (e *Engine) State() State              { return e.state }
func (e *Engine) Score() int                { return e.score }
func (e *Engine) Decisions() int            { return e.decisions }
func (e *Engine) Inventory() []world.Item   { return e.inventory }
func (e *Engine) Location() *world.Location { return e.currentLocation() }
func (e *Engine) InCombat() bool            { return e.combat != nil }
