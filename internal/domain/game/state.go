package game

import (
	"sync"

	"github.com/wanderlands/backend/config"
)

// State bundles the shared mutable registries of the session layer under
// one lock. Lifecycle transitions and the broadcast tick both serialize
// through it, so a tick never observes a player mid-construction.
//
// State is constructed per process (or per test) and passed in
// explicitly; there are no package-level singletons.
type State struct {
	mu sync.Mutex

	Players  *PlayerDirectory
	Rooms    *RoomRegistry
	Presence *PresenceTracker
}

func NewState(cfg config.GameConfigs) *State {
	return &State{
		Players:  NewPlayerDirectory(),
		Rooms:    NewRoomRegistry(cfg.LobbyRoom),
		Presence: NewPresenceTracker(),
	}
}

func (s *State) Lock() {
	s.mu.Lock()
}

func (s *State) Unlock() {
	s.mu.Unlock()
}
