package game

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Room is a named chat/game instance. Rooms are never destroyed during
// the process lifetime.
type Room struct {
	Name      string
	Creator   string
	CreatedAt time.Time
}

// RoomRegistry holds every room of the process, including the default
// lobby room created at construction. Lookup is case-insensitive; display
// names are title-cased. Two rooms whose names normalize equal may both
// exist (known gap, kept deliberately).
//
// Not internally synchronized; access goes through the owning State lock.
type RoomRegistry struct {
	rooms []*Room
	lobby string
}

func NewRoomRegistry(lobbyName string) *RoomRegistry {
	r := &RoomRegistry{lobby: titleCase(lobbyName)}
	r.rooms = append(r.rooms, &Room{
		Name:      r.lobby,
		Creator:   "server",
		CreatedAt: time.Now(),
	})

	return r
}

// Create registers a new room. An empty name gets a generated short name.
func (r *RoomRegistry) Create(creator, name string) *Room {
	name = titleCase(strings.TrimSpace(name))
	if name == "" {
		name = r.shortName()
	}

	room := &Room{
		Name:      name,
		Creator:   creator,
		CreatedAt: time.Now(),
	}
	r.rooms = append(r.rooms, room)
	return room
}

// FindByName matches case-insensitively regardless of display casing.
func (r *RoomRegistry) FindByName(name string) *Room {
	for _, room := range r.rooms {
		if strings.EqualFold(room.Name, name) {
			return room
		}
	}

	return nil
}

func (r *RoomRegistry) List() []*Room {
	return slices.Clone(r.rooms)
}

func (r *RoomRegistry) Lobby() string {
	return r.lobby
}

// IsLobby reports whether name refers to the default room, where no game
// is ever started.
func (r *RoomRegistry) IsLobby(name string) bool {
	return strings.EqualFold(name, r.lobby)
}

var ordinals = []string{
	"First", "Second", "Third", "Fourth", "Fifth",
	"Sixth", "Seventh", "Eighth", "Ninth", "Tenth",
}

// shortName generates a display name based on how many rooms exist: the
// first created room after the lobby becomes "Second Chat".
func (r *RoomRegistry) shortName() string {
	n := len(r.rooms)
	if n < len(ordinals) {
		return ordinals[n] + " Chat"
	}

	return fmt.Sprintf("Chat %d", n+1)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}

	return strings.Join(words, " ")
}
