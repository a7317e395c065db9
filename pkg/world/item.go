package world

// Item is an immutable item template. Inventory entries are references
// to these shared templates; two copies of the same item are
// indistinguishable.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       int    `json:"value"`      // score awarded on pickup, trade worth
	Usable      bool   `json:"usable"`     // can be activated by the player
	Consumable  bool   `json:"consumable"` // removed from inventory after use
}
