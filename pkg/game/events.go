package game

import (
	"context"
	"fmt"
	"strings"
)

// Event names locations may reference. The world validator uses this
// list to catch references to events that were never implemented.
func EventNames() []string {
	return []string{
		"tutorial_guide",
		"merchant_encounter",
		"bridge_puzzle",
		"final_victory",
	}
}

// Shop prices, in gold coins.
const (
	potionPrice = 2
	armorPrice  = 3
)

// fireEvents drains the pending event queue. Events fire on every
// arrival, not just the first. Interactive events switch the input mode
// and leave the rest of the queue pending until they resolve.
func (e *Engine) fireEvents(ctx context.Context, sb *strings.Builder) {
	for len(e.pendingEvents) > 0 {
		name := e.pendingEvents[0]
		e.pendingEvents = e.pendingEvents[1:]

		switch name {
		case "tutorial_guide":
			sb.WriteString("An old hermit emerges from behind a tree.\n")
			sb.WriteString("\"Welcome, brave adventurer! Collect items, defeat enemies, and\n")
			sb.WriteString("find the hidden treasure chamber to complete your quest!\"\n\n")
		case "merchant_encounter":
			e.mode = modeMerchant
			sb.WriteString("A traveling merchant waves you over.\n")
			sb.WriteString("\"Welcome, friend! Care to trade?\"\n\n")
			e.writeMerchantMenu(sb)
			return
		case "bridge_puzzle":
			e.mode = modeRiddle
			sb.WriteString("An old bridge keeper blocks your path.\n")
			sb.WriteString("\"Answer my riddle to pass: What has keys but no locks, space\n")
			sb.WriteString("but no room, and you can enter but not go in?\"\n")
			return
		case "final_victory":
			e.triggerVictory(ctx, sb)
			return
		default:
			e.logger.Warn("location references unknown event", "event", name, "location", e.location)
		}
	}
}

func (e *Engine) writeMerchantMenu(sb *strings.Builder) {
	fmt.Fprintf(sb, "1. Health Potion (%d gold)\n", potionPrice)
	fmt.Fprintf(sb, "2. Leather Armor (%d gold)\n", armorPrice)
	sb.WriteString("3. Leave\n")
	fmt.Fprintf(sb, "You have %d gold.\n", e.goldCount())
}

func (e *Engine) handleMerchantInput(ctx context.Context, input string, sb *strings.Builder) {
	e.mode = modeExplore
	switch input {
	case "1":
		e.buy("health_potion", potionPrice, sb)
	case "2":
		e.buy("leather_armor", armorPrice, sb)
	default:
		sb.WriteString("You decide not to trade. The merchant nods and moves on.\n")
	}
	sb.WriteString("\n")
	e.resume(ctx, sb)
}

// buy exchanges gold for an item. The purchase is atomic: either the
// full price is paid and the item granted, or nothing changes.
func (e *Engine) buy(itemID string, price int, sb *strings.Builder) {
	if e.goldCount() < price {
		fmt.Fprintf(sb, "You don't have enough gold! (need %d, have %d)\n", price, e.goldCount())
		return
	}
	item, ok := e.world.Item(itemID)
	if !ok {
		e.logger.Error("merchant sells unknown item", "item", itemID)
		sb.WriteString("The merchant rummages through his pack and comes up empty.\n")
		return
	}
	e.removeGold(price)
	e.inventory = append(e.inventory, item)
	fmt.Fprintf(sb, "You bought a %s!\n", item.Name)
	e.logger.Info("item purchased", "item", itemID, "price", price)
}

func (e *Engine) handleRiddleInput(ctx context.Context, input string, sb *strings.Builder) {
	e.mode = modeExplore
	answer := strings.ToLower(strings.TrimSpace(input))
	if answer == "keyboard" || answer == "a keyboard" {
		sb.WriteString("\"Correct!\" The keeper steps aside and presses something into your hand.\n")
		if item, ok := e.world.Item("magic_crystal"); ok {
			e.inventory = append(e.inventory, item)
			e.score += 100
			fmt.Fprintf(sb, "You received: %s! (+100 score)\n", item.Name)
		}
	} else {
		sb.WriteString("\"Wrong!\" The bridge shakes violently and falling stones batter you\n")
		sb.WriteString("for 10 damage!\n")
		// The keeper's punishment hurts but never kills.
		e.player.Health -= 10
		if e.player.Health < 1 {
			e.player.Health = 1
		}
		fmt.Fprintf(sb, "Health: %d/%d\n", e.player.Health, e.player.MaxHealth)
	}
	sb.WriteString("\n")
	e.resume(ctx, sb)
}

func (e *Engine) triggerVictory(ctx context.Context, sb *strings.Builder) {
	sb.WriteString("You have found the legendary treasure chamber! Mountains of gold\n")
	sb.WriteString("and jewels sparkle before you. Your quest is complete!\n")
	e.score += victoryScore
	fmt.Fprintf(sb, "+%d score!\n\n", victoryScore)

	e.state = StateVictory
	e.pendingEvents = nil
	e.closeSession(ctx)
	e.writeFinalSummary(sb)
}
