package game

import (
	"math/rand"
	"time"

	"github.com/wanderlands/backend/config"
	"github.com/wanderlands/backend/pkg/enum"
	"github.com/wanderlands/backend/pkg/errorx"
	"github.com/wanderlands/backend/pkg/logger"
)

// Continent is one of the five fixed spawn regions of a room. Within one
// room each continent is held by at most one active player.
type Continent string

var (
	NorthWest = enum.New(Continent("northWest"))
	NorthEast = enum.New(Continent("northEast"))
	SouthWest = enum.New(Continent("southWest"))
	SouthEast = enum.New(Continent("southEast"))
	Middle    = enum.New(Continent("middle"))
)

// ContinentAllocator hands out free continents per room. An allocation is
// advisory until the caller commits the player under the same State lock;
// nothing is marked occupied by the allocator itself.
type ContinentAllocator struct {
	cfg    config.GameConfigs
	logger logger.Logger
	rng    *rand.Rand
}

func NewContinentAllocator(cfg config.GameConfigs, logger logger.Logger) *ContinentAllocator {
	return &ContinentAllocator{
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Allocate picks uniformly at random among the continents not held by any
// active player in room. It fails with a RoomFull error when the room is
// at capacity or no continent is free.
func (a *ContinentAllocator) Allocate(room string, directory *PlayerDirectory) (Continent, error) {
	occupants := directory.InRoom(room)
	if len(occupants) >= a.cfg.RoomCapacity {
		return "", errorx.New(errorx.RoomFull, "Room %s is full", room)
	}

	occupied := make(map[Continent]bool, len(occupants))
	for _, p := range occupants {
		occupied[p.Continent] = true
	}

	var free []Continent
	for _, c := range enum.All[Continent]() {
		if !occupied[c] {
			free = append(free, c)
		}
	}

	if len(free) == 0 {
		return "", errorx.New(errorx.RoomFull, "Room %s is full", room)
	}

	return free[a.rng.Intn(len(free))], nil
}

// Spawn returns the spawn coordinate of a continent. A missing mapping is
// a configuration mistake; it falls back to the center coordinate with a
// warning instead of failing.
func (a *ContinentAllocator) Spawn(c Continent) (float64, float64) {
	point, ok := a.cfg.Spawns[string(c)]
	if !ok {
		a.logger.Warnf("No spawn coordinate configured for continent %s, using fallback", c)
		point = a.cfg.FallbackSpawn
	}

	return point.X, point.Y
}
