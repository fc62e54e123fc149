package game

import (
	"github.com/wanderlands/backend/internal/entity"
	"github.com/wanderlands/backend/internal/model"
)

// Player is an active game participant. It exists only between a game
// start and the owning connection's disconnect; chat presence alone never
// creates one.
type Player struct {
	Entity EntityState

	Username  string
	Admin     bool
	HP        int
	HPMax     int
	Score     int
	Room      string
	Continent Continent
	MaxSpd    float64

	PressingLeft  bool
	PressingRight bool
	PressingUp    bool
	PressingDown  bool

	// Inventory is exclusively owned by this player. It is loaded from the
	// progress store at game start and persisted on disconnect.
	Inventory []entity.InventoryItem

	// Loaded is set once the stored inventory has been attached. Progress
	// is only ever saved back for loaded players, so a disconnect during
	// game start cannot overwrite the stored inventory.
	Loaded bool
}

// UpdateVelocity derives the velocity from the currently pressed input
// flags. Called by the tick loop right before integration.
func (p *Player) UpdateVelocity() {
	p.Entity.SpdX = 0
	p.Entity.SpdY = 0

	if p.PressingLeft {
		p.Entity.SpdX = -p.MaxSpd
	}
	if p.PressingRight {
		p.Entity.SpdX = p.MaxSpd
	}
	if p.PressingUp {
		p.Entity.SpdY = -p.MaxSpd
	}
	if p.PressingDown {
		p.Entity.SpdY = p.MaxSpd
	}
}

// State snapshots the player for the wire.
func (p *Player) State() model.PlayerState {
	return model.PlayerState{
		ID:        p.Entity.ID,
		Username:  p.Username,
		X:         p.Entity.X,
		Y:         p.Entity.Y,
		Map:       p.Entity.Map,
		HP:        p.HP,
		HPMax:     p.HPMax,
		Score:     p.Score,
		Room:      p.Room,
		Continent: string(p.Continent),
	}
}
