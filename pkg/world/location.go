package world

// Location is a node in the world graph. Exits are directed and not
// necessarily symmetric. Items is the only mutable field: entries are
// removed as the player picks them up and never respawn.
type Location struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Exits       []string `json:"exits"`
	Items       []string `json:"items,omitempty"`
	Enemies     []string `json:"enemies,omitempty"`
	Events      []string `json:"events,omitempty"` // fired in order on every arrival
}
