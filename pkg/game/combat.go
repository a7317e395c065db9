package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/adventure-quest/pkg/actor"
)

// attackDamage is the single damage formula for both sides: attack
// minus defense, never less than 1.
func attackDamage(attack, defense int) int {
	dmg := attack - defense
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

func (e *Engine) enterCombat(ctx context.Context, enemyID string, sb *strings.Builder) {
	tmpl, ok := e.world.Enemy(enemyID)
	if !ok {
		e.logger.Error("location references unknown enemy", "enemy", enemyID)
		e.resume(ctx, sb)
		return
	}
	e.combat = actor.SpawnEnemy(tmpl)
	e.mode = modeCombat
	e.logger.Info("combat started", "enemy", enemyID, "location", e.location)

	fmt.Fprintf(sb, "A wild %s appears!\n\n", e.combat.Name)
	e.writeCombatMenu(sb)
}

func (e *Engine) writeCombatMenu(sb *strings.Builder) {
	fmt.Fprintf(sb, "=== COMBAT ===\n")
	fmt.Fprintf(sb, "Your Health: %d/%d | %s: %d/%d\n",
		e.player.Health, e.player.MaxHealth,
		e.combat.Name, e.combat.Health, e.combat.MaxHealth)
	sb.WriteString("1. Attack\n2. Use Item\n3. Flee\n")
}

func (e *Engine) handleCombatInput(ctx context.Context, input string, sb *strings.Builder) {
	switch input {
	case "1":
		e.playerAttack(ctx, sb)
	case "2":
		e.openCombatPack(sb)
	case "3":
		e.attemptFlee(ctx, sb)
	default:
		sb.WriteString("Invalid choice! Pick 1, 2 or 3.\n\n")
		e.writeCombatMenu(sb)
	}
}

func (e *Engine) playerAttack(ctx context.Context, sb *strings.Builder) {
	dmg := attackDamage(e.player.AttackPower, e.combat.Defense)
	e.combat.TakeDamage(dmg)
	fmt.Fprintf(sb, "You strike the %s for %d damage!\n", e.combat.Name, dmg)

	if e.combat.IsDefeated() {
		e.winCombat(ctx, sb)
		return
	}
	e.enemyAttack(ctx, sb)
	if e.state == StatePlaying {
		sb.WriteString("\n")
		e.writeCombatMenu(sb)
	}
}

// enemyAttack is the counter-attack after any player turn that does not
// end the fight, and the punishment for a failed flee.
func (e *Engine) enemyAttack(ctx context.Context, sb *strings.Builder) {
	dmg := attackDamage(e.combat.Attack, e.player.Defense)
	e.player.ApplyDamage(dmg)
	fmt.Fprintf(sb, "The %s hits you for %d damage! (%d/%d)\n",
		e.combat.Name, dmg, e.player.Health, e.player.MaxHealth)
	if e.player.IsDead() {
		e.die(ctx, sb)
	}
}

func (e *Engine) winCombat(ctx context.Context, sb *strings.Builder) {
	fmt.Fprintf(sb, "\nYou defeated the %s!\n", e.combat.Name)
	e.player.GainExperience(combatExperience)
	e.score += combatScore
	fmt.Fprintf(sb, "You gain %d experience and %d score!\n", combatExperience, combatScore)

	if gained := e.player.LevelUp(); gained > 0 {
		fmt.Fprintf(sb, "LEVEL UP! You are now level %d. Health fully restored! (%d/%d)\n",
			e.player.Level, e.player.Health, e.player.MaxHealth)
	}
	e.logger.Info("combat won", "enemy", e.combat.ID, "score", e.score, "level", e.player.Level)

	e.combat = nil
	e.mode = modeExplore
	sb.WriteString("\n")
	e.resume(ctx, sb)
}

// openCombatPack lists usable inventory items. Using an item does not
// cost a turn; the enemy only strikes on attack or a failed flee.
func (e *Engine) openCombatPack(sb *strings.Builder) {
	usable := e.usableItems()
	if len(usable) == 0 {
		sb.WriteString("You have no usable items!\n\n")
		e.writeCombatMenu(sb)
		return
	}
	e.mode = modeCombatItem
	e.writeCombatPack(sb)
}

func (e *Engine) writeCombatPack(sb *strings.Builder) {
	sb.WriteString("=== USABLE ITEMS ===\n")
	for i, idx := range e.usableItems() {
		fmt.Fprintf(sb, "%d. %s\n", i+1, e.inventory[idx].Name)
	}
	sb.WriteString("0. Cancel\n")
}

// usableItems returns inventory indices of items that can be used.
func (e *Engine) usableItems() []int {
	var idxs []int
	for i, item := range e.inventory {
		if item.Usable {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (e *Engine) handleCombatItemInput(input string, sb *strings.Builder) {
	usable := e.usableItems()
	n, err := strconv.Atoi(input)
	if err != nil || n < 0 || n > len(usable) {
		sb.WriteString("Invalid choice!\n\n")
		e.writeCombatPack(sb)
		return
	}

	e.mode = modeCombat
	if n == 0 {
		sb.WriteString("You close your pack.\n\n")
		e.writeCombatMenu(sb)
		return
	}

	idx := usable[n-1]
	if e.applyItemUse(e.inventory[idx], sb) {
		e.inventory = append(e.inventory[:idx], e.inventory[idx+1:]...)
	}
	sb.WriteString("\n")
	e.writeCombatMenu(sb)
}

func (e *Engine) attemptFlee(ctx context.Context, sb *strings.Builder) {
	if e.rng.Float64() < fleeChance {
		fmt.Fprintf(sb, "You successfully flee from the %s!\n\n", e.combat.Name)
		e.logger.Info("fled combat", "enemy", e.combat.ID)
		e.combat = nil
		e.mode = modeExplore
		e.resume(ctx, sb)
		return
	}

	sb.WriteString("You failed to escape!\n")
	e.enemyAttack(ctx, sb)
	if e.state == StatePlaying {
		sb.WriteString("\n")
		e.writeCombatMenu(sb)
	}
}
