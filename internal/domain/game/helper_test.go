package game

import (
	"context"
	"sync"

	"github.com/wanderlands/backend/config"
	"github.com/wanderlands/backend/internal/entity"
	"github.com/wanderlands/backend/pkg/logger"
)

type emittedEvent struct {
	Target  string
	Room    string
	Event   string
	Payload any
}

// recordEmitter captures every emitted event for assertions.
type recordEmitter struct {
	mu     sync.Mutex
	events []emittedEvent
	subs   map[string]string
}

func newRecordEmitter() *recordEmitter {
	return &recordEmitter{subs: make(map[string]string)}
}

func (e *recordEmitter) EmitTo(connID string, event string, payload any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emittedEvent{Target: connID, Event: event, Payload: payload})
}

func (e *recordEmitter) EmitRoom(room string, event string, payload any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emittedEvent{Room: room, Event: event, Payload: payload})
}

func (e *recordEmitter) EmitAll(event string, payload any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emittedEvent{Event: event, Payload: payload})
}

func (e *recordEmitter) Subscribe(connID, room string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs[connID] = room
}

func (e *recordEmitter) Unsubscribe(connID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.subs, connID)
}

func (e *recordEmitter) eventsTo(connID, event string) []emittedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result []emittedEvent
	for _, ev := range e.events {
		if ev.Target == connID && ev.Event == event {
			result = append(result, ev)
		}
	}

	return result
}

func (e *recordEmitter) broadcasts(event string) []emittedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result []emittedEvent
	for _, ev := range e.events {
		if ev.Target == "" && ev.Room == "" && ev.Event == event {
			result = append(result, ev)
		}
	}

	return result
}

type fakeUserRepo struct {
	admins map[string]bool
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	return nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return &entity.User{Username: username, IsAdmin: r.admins[username]}, nil
}

func (r *fakeUserRepo) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func (r *fakeUserRepo) IsAdmin(ctx context.Context, username string) (bool, error) {
	return r.admins[username], nil
}

type fakeInventoryRepo struct {
	mu      sync.Mutex
	items   map[string][]entity.InventoryItem
	loadErr map[string]error
	saved   map[string][]entity.InventoryItem
	saveErr error

	// onLoad runs before each LoadProgress returns, outside any game
	// lock, so tests can inject disconnects mid game start.
	onLoad func(username string)
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		items:   make(map[string][]entity.InventoryItem),
		loadErr: make(map[string]error),
		saved:   make(map[string][]entity.InventoryItem),
	}
}

func (r *fakeInventoryRepo) LoadProgress(
	ctx context.Context, username string,
) ([]entity.InventoryItem, error) {
	if r.onLoad != nil {
		r.onLoad(username)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadErr[username]; err != nil {
		return nil, err
	}

	return r.items[username], nil
}

func (r *fakeInventoryRepo) SaveProgress(
	ctx context.Context, username string, items []entity.InventoryItem,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return r.saveErr
	}

	r.saved[username] = items
	return nil
}

type testEnv struct {
	lifecycle   *Lifecycle
	state       *State
	broadcaster *Broadcaster
	emitter     *recordEmitter
	users       *fakeUserRepo
	inventories *fakeInventoryRepo
	cfg         config.GameConfigs
}

func newTestEnv() *testEnv {
	cfg := config.Default().Game
	log := logger.NewLogger(logger.SILENCE)

	state := NewState(cfg)
	emitter := newRecordEmitter()
	broadcaster := NewBroadcaster(state, emitter, log, cfg)
	users := &fakeUserRepo{admins: map[string]bool{"alice": true}}
	inventories := newFakeInventoryRepo()

	lifecycle := NewLifecycle(
		cfg,
		log,
		state,
		NewContinentAllocator(cfg, log),
		emitter,
		broadcaster,
		users,
		inventories,
		nil,
	)

	return &testEnv{
		lifecycle:   lifecycle,
		state:       state,
		broadcaster: broadcaster,
		emitter:     emitter,
		users:       users,
		inventories: inventories,
		cfg:         cfg,
	}
}

// joinAll connects every (connID, username) pair in order and joins it
// to room.
func (env *testEnv) joinAll(ctx context.Context, room string, conns [][2]string) {
	for _, conn := range conns {
		if err := env.lifecycle.Connect(ctx, conn[0], conn[1]); err != nil {
			panic(err)
		}
		if err := env.lifecycle.JoinRoom(ctx, conn[0], room); err != nil {
			panic(err)
		}
	}
}
