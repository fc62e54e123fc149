package game

import (
	"context"
	"sync"
	"time"

	"github.com/wanderlands/backend/config"
	"github.com/wanderlands/backend/internal/model"
	"github.com/wanderlands/backend/pkg/logger"
)

// Broadcaster runs the fixed-period tick loop. Each tick integrates every
// active player and fans out a fresh update pack plus the accumulated
// remove pack to all connections. Init snapshots are emitted by the
// lifecycle at game start, not here.
//
// Updates carry the global population; they are deliberately not filtered
// per room.
type Broadcaster struct {
	state   *State
	emitter Emitter
	logger  logger.Logger

	interval time.Duration

	mu      sync.Mutex
	removed []string
}

func NewBroadcaster(
	state *State, emitter Emitter, logger logger.Logger, cfg config.GameConfigs,
) *Broadcaster {
	return &Broadcaster{
		state:    state,
		emitter:  emitter,
		logger:   logger,
		interval: cfg.TickInterval,
	}
}

// QueueRemove schedules a one-shot remove delta for id. The caller must
// already have removed the player from the directory, which guarantees
// the id never reappears in a later update pack.
func (b *Broadcaster) QueueRemove(id string) {
	b.mu.Lock()
	b.removed = append(b.removed, id)
	b.mu.Unlock()
}

// Run ticks until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	b.logger.Infof("Frame broadcaster started at %s per tick", b.interval)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infof("Frame broadcaster stopped")
			return
		case <-ticker.C:
			b.Tick()
		}
	}
}

// Tick performs one broadcast iteration. Exported so tests can drive the
// loop deterministically.
func (b *Broadcaster) Tick() {
	dt := b.interval.Seconds()

	b.state.Lock()
	players := b.state.Players.All()
	update := make([]model.PlayerState, 0, len(players))
	for _, p := range players {
		b.tickPlayer(p, dt, &update)
	}
	b.state.Unlock()

	b.mu.Lock()
	removed := b.removed
	b.removed = nil
	b.mu.Unlock()

	b.emitter.EmitAll(model.EventUpdate, model.UpdateEvent{Player: update})
	if len(removed) > 0 {
		b.emitter.EmitAll(model.EventRemove, model.RemoveEvent{Player: removed})
	}
}

// tickPlayer integrates and snapshots one player. A failure here is
// isolated so one malformed player cannot halt the broadcast for
// everyone else.
func (b *Broadcaster) tickPlayer(p *Player, dt float64, update *[]model.PlayerState) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf("Skipping player %s during tick: %v", p.Entity.ID, r)
		}
	}()

	p.UpdateVelocity()
	p.Entity.Integrate(dt)
	*update = append(*update, p.State())
}
