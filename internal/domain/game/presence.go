package game

// PresenceEntry records chat-room membership for one connection. It
// exists as soon as the user joins a room, independent of whether a game
// has started.
type PresenceEntry struct {
	ConnID   string
	Username string
	Room     string
}

// PresenceTracker is the chat-membership ledger, decoupled from
// PlayerDirectory so that lobby chat works before any game state exists.
// At most one entry per connection; a room change replaces the prior
// entry in place.
//
// Not internally synchronized; access goes through the owning State lock.
type PresenceTracker struct {
	order   []string
	entries map[string]*PresenceEntry
}

func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{
		entries: make(map[string]*PresenceEntry),
	}
}

func (t *PresenceTracker) Join(connID, username, room string) *PresenceEntry {
	entry, ok := t.entries[connID]
	if !ok {
		entry = &PresenceEntry{ConnID: connID}
		t.entries[connID] = entry
		t.order = append(t.order, connID)
	}

	entry.Username = username
	entry.Room = room
	return entry
}

func (t *PresenceTracker) Leave(connID string) *PresenceEntry {
	entry, ok := t.entries[connID]
	if !ok {
		return nil
	}

	delete(t.entries, connID)
	for i, id := range t.order {
		if id == connID {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}

	return entry
}

func (t *PresenceTracker) Current(connID string) *PresenceEntry {
	return t.entries[connID]
}

func (t *PresenceTracker) UsersIn(room string) []*PresenceEntry {
	var result []*PresenceEntry
	for _, id := range t.order {
		if t.entries[id].Room == room {
			result = append(result, t.entries[id])
		}
	}

	return result
}
