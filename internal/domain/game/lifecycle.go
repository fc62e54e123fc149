package game

import (
	"context"
	"errors"

	"github.com/wanderlands/backend/config"
	"github.com/wanderlands/backend/internal/domain/statistic"
	"github.com/wanderlands/backend/internal/entity"
	"github.com/wanderlands/backend/internal/model"
	"github.com/wanderlands/backend/internal/repository"
	"github.com/wanderlands/backend/pkg/errorx"
	"github.com/wanderlands/backend/pkg/logger"
)

const serverUsername = "server"

// session is the per-connection record kept from authentication until
// disconnect, before any room or player exists.
type session struct {
	Username string
	Admin    bool
}

// Lifecycle orchestrates join/leave/start-game/disconnect transitions
// over the shared State. Intent processing serializes through the State
// lock; only progress-store I/O happens outside it.
type Lifecycle struct {
	cfg    config.GameConfigs
	logger logger.Logger

	state       *State
	allocator   *ContinentAllocator
	emitter     Emitter
	broadcaster *Broadcaster

	users       repository.UserRepository
	inventories repository.InventoryRepository
	leaderboard statistic.Leaderboard

	sessions map[string]*session
	commands map[CommandKind]CommandHandler
}

func NewLifecycle(
	cfg config.GameConfigs,
	logger logger.Logger,
	state *State,
	allocator *ContinentAllocator,
	emitter Emitter,
	broadcaster *Broadcaster,
	users repository.UserRepository,
	inventories repository.InventoryRepository,
	leaderboard statistic.Leaderboard,
) *Lifecycle {
	l := &Lifecycle{
		cfg:         cfg,
		logger:      logger,
		state:       state,
		allocator:   allocator,
		emitter:     emitter,
		broadcaster: broadcaster,
		users:       users,
		inventories: inventories,
		leaderboard: leaderboard,
		sessions:    make(map[string]*session),
	}
	l.commands = defaultCommands()

	return l
}

// Lobby returns the name of the default room.
func (l *Lifecycle) Lobby() string {
	return l.state.Rooms.Lobby()
}

// Connect registers an authenticated connection. The caller is expected
// to follow up with a JoinRoom intent (usually for the lobby).
func (l *Lifecycle) Connect(ctx context.Context, connID, username string) error {
	admin, err := l.users.IsAdmin(ctx, username)
	if err != nil {
		l.logger.Errorf("Cannot check admin flag of %s: %v", username, err)
		admin = false
	}

	l.state.Lock()
	l.sessions[connID] = &session{Username: username, Admin: admin}
	l.state.Unlock()

	l.logger.Infof("User %s connected as %s", username, connID)
	return nil
}

// JoinRoom moves the connection into the named room. Joining a
// non-default room that already has active players triggers a
// single-player game start for the joiner.
func (l *Lifecycle) JoinRoom(ctx context.Context, connID, roomName string) error {
	l.state.Lock()

	sess, ok := l.sessions[connID]
	if !ok {
		l.state.Unlock()
		return errorx.New(errorx.Unauthenticated, "Unknown connection")
	}

	room := l.state.Rooms.FindByName(roomName)
	if room == nil {
		l.state.Unlock()
		l.statusTo(connID, "No such room: "+roomName)
		return errorx.New(errorx.InvalidRoom, "Not found room %s", roomName)
	}

	var prevRoom string
	if cur := l.state.Presence.Current(connID); cur != nil {
		prevRoom = cur.Room
	}
	if prevRoom == room.Name {
		l.state.Unlock()
		return nil
	}

	// Switching rooms while in a game means leaving that game: the player
	// must not stay in the old directory holding a continent there.
	removed := l.removePlayerLocked(connID)

	l.state.Presence.Join(connID, sess.Username, room.Name)
	l.emitter.Subscribe(connID, room.Name)

	roomSnapshot := l.roomUsersLocked(room.Name)
	var prevSnapshot model.RoomUsersEvent
	if prevRoom != "" {
		prevSnapshot = l.roomUsersLocked(prevRoom)
	}

	lateStart := !l.state.Rooms.IsLobby(room.Name) &&
		len(l.state.Players.InRoom(room.Name)) > 0

	l.state.Unlock()

	l.persistRemoved(ctx, removed)

	l.statusTo(connID, "Welcome to "+room.Name)
	l.statusRoom(room.Name, sess.Username+" joined the room")
	l.emitter.EmitRoom(room.Name, model.EventRoomUsers, roomSnapshot)

	if prevRoom != "" {
		l.statusRoom(prevRoom, sess.Username+" left the room")
		l.emitter.EmitRoom(prevRoom, model.EventRoomUsers, prevSnapshot)
	}

	if lateStart {
		// The existing roster is already established, so the joiner starts
		// alone without the batch coordination step.
		l.startPlayers(ctx, room.Name, []string{connID})
	}

	return nil
}

// LeaveRoom takes the connection out of its current room and back into
// the lobby. Leaving the lobby itself is a no-op.
func (l *Lifecycle) LeaveRoom(ctx context.Context, connID string) error {
	l.state.Lock()

	sess, ok := l.sessions[connID]
	cur := l.state.Presence.Current(connID)
	if !ok || cur == nil || l.state.Rooms.IsLobby(cur.Room) {
		l.state.Unlock()
		return nil
	}

	prevRoom := cur.Room
	removed := l.removePlayerLocked(connID)

	lobby := l.state.Rooms.Lobby()
	l.state.Presence.Join(connID, sess.Username, lobby)
	l.emitter.Subscribe(connID, lobby)

	prevSnapshot := l.roomUsersLocked(prevRoom)
	lobbySnapshot := l.roomUsersLocked(lobby)

	l.state.Unlock()

	l.persistRemoved(ctx, removed)

	l.statusRoom(prevRoom, sess.Username+" left the room")
	l.emitter.EmitRoom(prevRoom, model.EventRoomUsers, prevSnapshot)

	l.emitter.EmitTo(connID, model.EventJoinRoom, model.JoinRoomEvent{Room: lobby})
	l.statusTo(connID, "Welcome to "+lobby)
	l.statusRoom(lobby, sess.Username+" joined the room")
	l.emitter.EmitRoom(lobby, model.EventRoomUsers, lobbySnapshot)

	return nil
}

// CreateRoom registers a new room and moves the creator into it. Room
// names are not deduplicated case-insensitively on creation; racing
// creators may produce twins (known gap).
func (l *Lifecycle) CreateRoom(ctx context.Context, connID, name string) error {
	l.state.Lock()

	sess, ok := l.sessions[connID]
	if !ok {
		l.state.Unlock()
		return errorx.New(errorx.Unauthenticated, "Unknown connection")
	}

	room := l.state.Rooms.Create(sess.Username, name)
	l.state.Unlock()

	l.logger.Infof("User %s created room %s", sess.Username, room.Name)
	l.emitter.EmitTo(connID, model.EventJoinRoom, model.JoinRoomEvent{Room: room.Name})

	return l.JoinRoom(ctx, connID, room.Name)
}

// StartGame starts the game for every presence entry in the requester's
// room that is not yet playing. On the lobby it only produces a notice.
func (l *Lifecycle) StartGame(ctx context.Context, connID string) error {
	l.state.Lock()

	cur := l.state.Presence.Current(connID)
	if cur == nil {
		l.state.Unlock()
		return errorx.New(errorx.BadRequest, "Join a room before starting a game")
	}

	if l.state.Rooms.IsLobby(cur.Room) {
		l.state.Unlock()
		l.statusTo(connID, "Games cannot be started in "+l.state.Rooms.Lobby())
		return nil
	}

	var ids []string
	for _, entry := range l.state.Presence.UsersIn(cur.Room) {
		if l.state.Players.ByID(entry.ConnID) == nil {
			ids = append(ids, entry.ConnID)
		}
	}
	room := cur.Room

	l.state.Unlock()

	l.startPlayers(ctx, room, ids)
	return nil
}

// startPlayers runs the three-phase game start for the given connections:
// allocation and directory commit under the lock, inventory loading
// outside it, then one coordinated init snapshot per surviving
// participant containing the full roster. A continent allocation failure
// rejects only that participant; a disconnect between the phases drops
// the participant from the init it would have received.
func (l *Lifecycle) startPlayers(ctx context.Context, room string, ids []string) {
	l.state.Lock()

	var started []*Player
	for _, id := range ids {
		sess, ok := l.sessions[id]
		if !ok || l.state.Players.ByID(id) != nil {
			continue
		}

		continent, err := l.allocator.Allocate(room, l.state.Players)
		if err != nil {
			l.logger.Debugf("Rejecting game start of %s: %v", sess.Username, err)
			l.notifyRoomFull(id, err)
			continue
		}

		x, y := l.allocator.Spawn(continent)
		player := &Player{
			Entity:    EntityState{ID: id, Map: "main", X: x, Y: y},
			Username:  sess.Username,
			Admin:     sess.Admin,
			HP:        l.cfg.PlayerHP,
			HPMax:     l.cfg.PlayerHP,
			Room:      room,
			Continent: continent,
			MaxSpd:    l.cfg.PlayerSpeed,
		}
		l.state.Players.Insert(player)
		started = append(started, player)
	}

	l.state.Unlock()

	if len(started) == 0 {
		return
	}

	// Slow store I/O happens with no lock held so it cannot stall intents
	// or the tick loop.
	inventories := make(map[string][]entity.InventoryItem, len(started))
	for _, p := range started {
		items, err := l.inventories.LoadProgress(ctx, p.Username)
		if err != nil {
			// The in-memory game proceeds with an empty inventory.
			l.logger.Errorf("Cannot load progress of %s: %v", p.Username, err)
			items = nil
		}

		inventories[p.Entity.ID] = items
	}

	l.state.Lock()

	var survivors []*Player
	for _, p := range started {
		// Drop participants that disconnected while inventories loaded.
		if l.state.Players.ByID(p.Entity.ID) == nil {
			continue
		}

		p.Inventory = inventories[p.Entity.ID]
		p.Loaded = true
		survivors = append(survivors, p)
	}

	roster := make([]model.PlayerState, 0)
	for _, p := range l.state.Players.InRoom(room) {
		roster = append(roster, p.State())
	}

	l.state.Unlock()

	for _, p := range survivors {
		l.emitter.EmitTo(p.Entity.ID, model.EventGameStarted, model.GameStartedEvent{})
		l.emitter.EmitTo(p.Entity.ID, model.EventInit, model.InitEvent{
			SelfID: p.Entity.ID,
			Player: roster,
		})
	}
}

// Input records a pressed or released movement key. The tick loop turns
// the flags into velocity.
func (l *Lifecycle) Input(connID, key string, pressed bool) {
	l.state.Lock()
	defer l.state.Unlock()

	p := l.state.Players.ByID(connID)
	if p == nil {
		return
	}

	switch key {
	case "left":
		p.PressingLeft = pressed
	case "right":
		p.PressingRight = pressed
	case "up":
		p.PressingUp = pressed
	case "down":
		p.PressingDown = pressed
	}
}

// Chat forwards a chat line to the sender's current room.
func (l *Lifecycle) Chat(ctx context.Context, connID, text string) error {
	l.state.Lock()
	sess, ok := l.sessions[connID]
	cur := l.state.Presence.Current(connID)
	l.state.Unlock()

	if !ok || cur == nil {
		return errorx.New(errorx.BadRequest, "Join a room before chatting")
	}

	l.emitter.EmitRoom(cur.Room, model.EventMessage, model.MessageEvent{
		Username: sess.Username,
		Text:     text,
		Type:     model.MessageTypeChat,
		Room:     cur.Room,
	})

	return nil
}

// Disconnect is the terminal transition. It removes the player (if any)
// and the presence entry, queues the remove delta, and persists progress.
// Safe to call at any point, including mid game start.
func (l *Lifecycle) Disconnect(ctx context.Context, connID string) {
	l.state.Lock()

	sess := l.sessions[connID]
	delete(l.sessions, connID)
	entry := l.state.Presence.Leave(connID)
	removed := l.removePlayerLocked(connID)

	var snapshot model.RoomUsersEvent
	if entry != nil {
		snapshot = l.roomUsersLocked(entry.Room)
	}

	l.state.Unlock()

	l.emitter.Unsubscribe(connID)
	l.persistRemoved(ctx, removed)

	if entry != nil {
		l.statusRoom(entry.Room, entry.Username+" left the room")
		l.emitter.EmitRoom(entry.Room, model.EventRoomUsers, snapshot)
	}

	if sess != nil {
		l.logger.Infof("User %s disconnected", sess.Username)
	}
}

// removePlayerLocked takes the player out of the directory and queues its
// remove delta. Caller holds the State lock. The freed continent becomes
// allocatable immediately.
func (l *Lifecycle) removePlayerLocked(connID string) *Player {
	removed := l.state.Players.Remove(connID)
	if removed != nil {
		l.broadcaster.QueueRemove(connID)
	}

	return removed
}

// persistRemoved saves the removed player's progress. A save failure is
// logged, never silently dropped; the disconnect itself proceeds. A player
// whose inventory was never attached is skipped entirely: SaveProgress
// replaces all rows, and replacing them with nothing would destroy the
// stored inventory.
func (l *Lifecycle) persistRemoved(ctx context.Context, removed *Player) {
	if removed == nil || !removed.Loaded {
		return
	}

	if err := l.inventories.SaveProgress(ctx, removed.Username, removed.Inventory); err != nil {
		l.logger.Errorf("Cannot save progress of %s: %v", removed.Username, err)
	}

	if l.leaderboard != nil {
		err := l.leaderboard.AddScore(ctx, removed.Room, removed.Username, removed.Score)
		if err != nil {
			l.logger.Errorf("Cannot record score of %s: %v", removed.Username, err)
		}
	}
}

func (l *Lifecycle) notifyRoomFull(connID string, err error) {
	var xerr errorx.Error
	msg := "Room is full"
	if errors.As(err, &xerr) {
		msg = xerr.Message
	}

	l.emitter.EmitTo(connID, model.EventRoomFull, model.RoomFullEvent{Message: msg})
	l.statusTo(connID, msg)
}

// roomUsersLocked snapshots the chat roster of a room. Caller holds the
// State lock.
func (l *Lifecycle) roomUsersLocked(room string) model.RoomUsersEvent {
	entries := l.state.Presence.UsersIn(room)
	users := make([]string, 0, len(entries))
	for _, entry := range entries {
		users = append(users, entry.Username)
	}

	return model.RoomUsersEvent{Room: room, Users: users, UsersCount: len(users)}
}

func (l *Lifecycle) statusTo(connID, text string) {
	l.emitter.EmitTo(connID, model.EventMessage, model.MessageEvent{
		Username: serverUsername,
		Text:     text,
		Type:     model.MessageTypeStatus,
	})
}

func (l *Lifecycle) statusRoom(room, text string) {
	l.emitter.EmitRoom(room, model.EventMessage, model.MessageEvent{
		Username: serverUsername,
		Text:     text,
		Type:     model.MessageTypeStatus,
		Room:     room,
	})
}
