package game

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/adventure-quest/pkg/world"
)

func (e *Engine) describeLocation(sb *strings.Builder) {
	loc := e.currentLocation()
	fmt.Fprintf(sb, "=== %s ===\n", loc.Name)
	fmt.Fprintf(sb, "%s\n", loc.Description)

	if len(loc.Items) > 0 {
		names := make([]string, 0, len(loc.Items))
		for _, id := range loc.Items {
			if item, ok := e.world.Item(id); ok {
				names = append(names, item.Name)
			}
		}
		fmt.Fprintf(sb, "\nYou can see: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(sb, "\nPaths lead to: %s\n", exitNames(loc.Exits))
}

func exitNames(exits []string) string {
	names := make([]string, len(exits))
	for i, id := range exits {
		names[i] = world.DisplayName(id)
	}
	return strings.Join(names, ", ")
}

func (e *Engine) writeStatus(sb *strings.Builder) {
	p := e.player
	sb.WriteString("=== CHARACTER STATUS ===\n")
	fmt.Fprintf(sb, "Name: %s\n", p.Name)
	fmt.Fprintf(sb, "Level: %d (XP: %d/%d)\n", p.Level, p.Experience, p.Level*100)
	fmt.Fprintf(sb, "Health: %d/%d\n", p.Health, p.MaxHealth)
	fmt.Fprintf(sb, "Attack: %d | Defense: %d\n", p.AttackPower, p.Defense)
	fmt.Fprintf(sb, "Score: %d\n", e.score)
	fmt.Fprintf(sb, "Location: %s\n", e.currentLocation().Name)
}

func (e *Engine) writeInventory(sb *strings.Builder) {
	if len(e.inventory) == 0 {
		sb.WriteString("Your inventory is empty.\n")
		return
	}
	sb.WriteString("=== INVENTORY ===\n")
	for _, item := range e.inventory {
		fmt.Fprintf(sb, "- %s: %s\n", item.Name, item.Description)
	}
}

func (e *Engine) writeHelp(sb *strings.Builder) {
	sb.WriteString(`=== COMMANDS ===
go <place>   - travel along a path (partial names work)
take <item>  - pick up an item
use <item>   - use an item from your inventory
look         - describe your surroundings
status       - show character status
inventory    - list what you carry
save         - write a save snapshot to disk
help         - show this text
quit         - end the adventure
`)
}

func (e *Engine) writeFinalSummary(sb *strings.Builder) {
	sb.WriteString("=== ADVENTURE COMPLETE ===\n")
	fmt.Fprintf(sb, "Player: %s\n", e.player.Name)
	fmt.Fprintf(sb, "Final Score: %d\n", e.score)
	fmt.Fprintf(sb, "Level Reached: %d\n", e.player.Level)
	fmt.Fprintf(sb, "Items Collected: %d\n", len(e.inventory))
	fmt.Fprintf(sb, "Decisions Made: %d\n", e.decisions)
	if e.state == StateVictory {
		sb.WriteString("\nCongratulations on completing your quest!\n")
	}
}

// goldCount returns how many gold coins the player carries.
func (e *Engine) goldCount() int {
	n := 0
	for _, item := range e.inventory {
		if item.ID == "gold_coin" {
			n++
		}
	}
	return n
}

// removeGold removes n gold coins from the inventory. Callers check
// goldCount first; removing more than the player has is a bug.
func (e *Engine) removeGold(n int) {
	kept := e.inventory[:0]
	for _, item := range e.inventory {
		if n > 0 && item.ID == "gold_coin" {
			n--
			continue
		}
		kept = append(kept, item)
	}
	e.inventory = kept
}
