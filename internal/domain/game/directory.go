package game

// PlayerDirectory is the authoritative registry of active players, keyed
// by connection id. Iteration follows insertion order, which callers may
// rely on for determinism in tests but not for correctness.
//
// The directory is not internally synchronized; all access goes through
// the owning State lock.
type PlayerDirectory struct {
	order   []string
	players map[string]*Player
}

func NewPlayerDirectory() *PlayerDirectory {
	return &PlayerDirectory{
		players: make(map[string]*Player),
	}
}

// Insert adds the player, replacing any existing player under the same id.
// A replacement keeps its original position in iteration order.
func (d *PlayerDirectory) Insert(p *Player) {
	if _, ok := d.players[p.Entity.ID]; !ok {
		d.order = append(d.order, p.Entity.ID)
	}

	d.players[p.Entity.ID] = p
}

func (d *PlayerDirectory) Remove(id string) *Player {
	p, ok := d.players[id]
	if !ok {
		return nil
	}

	delete(d.players, id)
	for i, existing := range d.order {
		if existing == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}

	return p
}

func (d *PlayerDirectory) ByID(id string) *Player {
	return d.players[id]
}

// ByUsername returns the first player with the given username, or nil.
// Linear scan; directory sizes are tens, not thousands.
func (d *PlayerDirectory) ByUsername(username string) *Player {
	for _, id := range d.order {
		if d.players[id].Username == username {
			return d.players[id]
		}
	}

	return nil
}

func (d *PlayerDirectory) InRoom(room string) []*Player {
	var result []*Player
	for _, id := range d.order {
		if d.players[id].Room == room {
			result = append(result, d.players[id])
		}
	}

	return result
}

func (d *PlayerDirectory) All() []*Player {
	result := make([]*Player, 0, len(d.order))
	for _, id := range d.order {
		result = append(result, d.players[id])
	}

	return result
}

func (d *PlayerDirectory) Count() int {
	return len(d.players)
}
