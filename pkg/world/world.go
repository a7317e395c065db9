package world

import (
	"fmt"
	"slices"
)

// World holds the item, location and enemy tables. The tables are fully
// hardcoded; nothing is loaded from disk. Location item lists are the
// only state that changes after construction.
type World struct {
	items     map[string]Item
	locations map[string]*Location
	enemies   map[string]EnemyTemplate
}

// StartLocation is where every new game begins.
const StartLocation = "forest_start"

// VictoryLocation ends the game when reached.
const VictoryLocation = "treasure_chamber"

// New builds a fresh world with all items in place.
func New() *World {
	w := &World{
		items: map[string]Item{
			"rusty_sword":   {ID: "rusty_sword", Name: "Rusty Sword", Description: "An old but functional sword", Value: 25, Usable: true},
			"health_potion": {ID: "health_potion", Name: "Health Potion", Description: "Restores 30 health points", Value: 30, Usable: true, Consumable: true},
			"magic_crystal": {ID: "magic_crystal", Name: "Magic Crystal", Description: "A mysterious glowing crystal", Value: 100},
			"ancient_key":   {ID: "ancient_key", Name: "Ancient Key", Description: "Opens mysterious doors", Value: 50, Usable: true},
			"leather_armor": {ID: "leather_armor", Name: "Leather Armor", Description: "Provides basic protection", Value: 40, Usable: true},
			"gold_coin":     {ID: "gold_coin", Name: "Gold Coin", Description: "Currency of the realm", Value: 10},
			"enchanted_bow": {ID: "enchanted_bow", Name: "Enchanted Bow", Description: "A bow with magical properties", Value: 75, Usable: true},
		},
		enemies: map[string]EnemyTemplate{
			"forest_wolf":       {ID: "forest_wolf", Health: 40, Attack: 15, Defense: 3},
			"goblin_warrior":    {ID: "goblin_warrior", Health: 60, Attack: 20, Defense: 5},
			"river_serpent":     {ID: "river_serpent", Health: 50, Attack: 25, Defense: 2},
			"treasure_guardian": {ID: "treasure_guardian", Health: 100, Attack: 30, Defense: 10},
		},
		locations: map[string]*Location{
			"forest_start": {
				ID:          "forest_start",
				Name:        "Mysterious Forest Entrance",
				Description: "Ancient trees tower above you, their branches creating a natural canopy. Sunlight filters through, creating dancing shadows on the forest floor.",
				Exits:       []string{"north_trail", "east_clearing", "west_river"},
				Items:       []string{"rusty_sword"},
				Events:      []string{"tutorial_guide"},
			},
			"north_trail": {
				ID:          "north_trail",
				Name:        "Winding Forest Trail",
				Description: "The path winds deeper into the forest. You hear strange sounds echoing from the darkness ahead.",
				Exits:       []string{"goblin_camp", "forest_start", "hidden_cave"},
				Items:       []string{"health_potion"},
				Enemies:     []string{"forest_wolf"},
			},
			"east_clearing": {
				ID:          "east_clearing",
				Name:        "Sunlit Clearing",
				Description: "A peaceful clearing bathed in golden sunlight. Wildflowers bloom around a crystal-clear spring.",
				Exits:       []string{"forest_start", "ancient_ruins"},
				Items:       []string{"magic_crystal", "gold_coin"},
				Events:      []string{"merchant_encounter"},
			},
			"west_river": {
				ID:          "west_river",
				Name:        "Babbling Brook",
				Description: "A gentle stream flows through smooth stones. The water is crystal clear and surprisingly deep.",
				Exits:       []string{"forest_start", "waterfall_cave"},
				Items:       []string{"ancient_key"},
				Enemies:     []string{"river_serpent"},
				Events:      []string{"bridge_puzzle"},
			},
			"goblin_camp": {
				ID:          "goblin_camp",
				Name:        "Abandoned Goblin Camp",
				Description: "Crude tents and smoldering fire pits suggest recent goblin activity. The air smells of smoke and danger.",
				Exits:       []string{"north_trail", "treasure_chamber"},
				Items:       []string{"leather_armor", "gold_coin"},
				Enemies:     []string{"goblin_warrior"},
			},
			"treasure_chamber": {
				ID:          "treasure_chamber",
				Name:        "Hidden Treasure Chamber",
				Description: "A magnificent chamber filled with gleaming treasures and ancient artifacts. This is clearly the end of your quest!",
				Exits:       []string{"goblin_camp"},
				Items:       []string{"enchanted_bow", "magic_crystal", "gold_coin"},
				Enemies:     []string{"treasure_guardian"},
				Events:      []string{"final_victory"},
			},
		},
	}
	return w
}

// Item returns the item template for id.
func (w *World) Item(id string) (Item, bool) {
	item, ok := w.items[id]
	return item, ok
}

// Location returns the location for id. The returned pointer is shared;
// callers must not mutate it directly.
func (w *World) Location(id string) (*Location, bool) {
	loc, ok := w.locations[id]
	return loc, ok
}

// Enemy returns the enemy stat block for id.
func (w *World) Enemy(id string) (EnemyTemplate, bool) {
	e, ok := w.enemies[id]
	return e, ok
}

// RemoveItem takes itemID out of the location's item list. Items never
// respawn, so a second removal of the same ID fails.
func (w *World) RemoveItem(locationID, itemID string) error {
	loc, ok := w.locations[locationID]
	if !ok {
		return fmt.Errorf("unknown location %q", locationID)
	}
	idx := slices.Index(loc.Items, itemID)
	if idx < 0 {
		return fmt.Errorf("item %q not present in %q", itemID, locationID)
	}
	loc.Items = slices.Delete(loc.Items, idx, idx+1)
	return nil
}

// LocationIDs returns all location identifiers, unordered.
func (w *World) LocationIDs() []string {
	ids := make([]string, 0, len(w.locations))
	for id := range w.locations {
		ids = append(ids, id)
	}
	return ids
}
