package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wanderlands/backend/internal/domain/statistic"
	"github.com/wanderlands/backend/internal/model"
	"github.com/wanderlands/backend/pkg/errorx"
)

func startedArena(t *testing.T, env *testEnv, conns [][2]string) {
	t.Helper()

	ctx := context.Background()
	env.state.Rooms.Create("server", "Arena")
	env.joinAll(ctx, "Arena", conns)
	require.NoError(t, env.lifecycle.StartGame(ctx, conns[0][0]))
}

func TestCommandUnknownToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	require.NoError(t, env.lifecycle.Connect(ctx, "c1", "alice"))

	err := env.lifecycle.Command(ctx, "c1", "frobnicate", "")
	require.ErrorIs(t, err, errorx.Error{Code: errorx.BadRequest})

	notices := env.emitter.eventsTo("c1", model.EventMessage)
	require.NotEmpty(t, notices)
	last := notices[len(notices)-1].Payload.(model.MessageEvent)
	require.Equal(t, "Unknown command: frobnicate", last.Text)
}

func TestCommandAdminToggle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	startedArena(t, env, [][2]string{{"c1", "alice"}, {"c2", "bob"}})

	require.False(t, env.state.Players.ByID("c2").Admin)

	require.NoError(t, env.lifecycle.Command(ctx, "c1", "admin", "bob"))
	require.True(t, env.state.Players.ByID("c2").Admin)

	// The toggled player can now act as admin, e.g. toggle back.
	require.NoError(t, env.lifecycle.Command(ctx, "c2", "admin", "bob"))
	require.False(t, env.state.Players.ByID("c2").Admin)
}

func TestCommandAdminDenied(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	startedArena(t, env, [][2]string{{"c1", "alice"}, {"c2", "bob"}})

	err := env.lifecycle.Command(ctx, "c2", "admin", "alice")
	require.ErrorIs(t, err, errorx.Error{Code: errorx.PermissionDenied})
	require.True(t, env.state.Players.ByID("c1").Admin)
}

func TestCommandAdminUnknownTarget(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	startedArena(t, env, [][2]string{{"c1", "alice"}})

	err := env.lifecycle.Command(ctx, "c1", "admin", "nobody")
	require.ErrorIs(t, err, errorx.Error{Code: errorx.NotFound})
}

func TestCommandTeleport(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	startedArena(t, env, [][2]string{{"c1", "alice"}})

	require.NoError(t, env.lifecycle.Command(ctx, "c1", "teleport", "middle"))

	p := env.state.Players.ByID("c1")
	point := env.cfg.Spawns["middle"]
	require.Equal(t, point.X, p.Entity.X)
	require.Equal(t, point.Y, p.Entity.Y)
}

func TestCommandTeleportUnknownContinent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	startedArena(t, env, [][2]string{{"c1", "alice"}})

	err := env.lifecycle.Command(ctx, "c1", "teleport", "atlantis")
	require.ErrorIs(t, err, errorx.Error{Code: errorx.BadRequest})
}

func TestCommandTeleportDenied(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	startedArena(t, env, [][2]string{{"c1", "alice"}, {"c2", "bob"}})

	err := env.lifecycle.Command(ctx, "c2", "teleport", "middle")
	require.ErrorIs(t, err, errorx.Error{Code: errorx.PermissionDenied})
}

type fakeLeaderboard struct {
	top []statistic.Score
}

func (f *fakeLeaderboard) AddScore(ctx context.Context, room, username string, score int) error {
	return nil
}

func (f *fakeLeaderboard) TopPlayers(
	ctx context.Context, room string, limit int,
) ([]statistic.Score, error) {
	return f.top, nil
}

func TestCommandScore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	startedArena(t, env, [][2]string{{"c1", "alice"}})

	env.lifecycle.leaderboard = &fakeLeaderboard{top: []statistic.Score{
		{Username: "bob", Score: 12},
		{Username: "alice", Score: 7},
	}}
	env.state.Players.ByID("c1").Score = 7

	require.NoError(t, env.lifecycle.Command(ctx, "c1", "score", ""))

	notices := env.emitter.eventsTo("c1", model.EventMessage)
	var texts []string
	for _, n := range notices {
		texts = append(texts, n.Payload.(model.MessageEvent).Text)
	}

	require.Contains(t, texts, "Your score: 7")
	require.Contains(t, texts, "#1 bob: 12")
	require.Contains(t, texts, "#2 alice: 7")
}

func TestCommandScoreOutsideGame(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	require.NoError(t, env.lifecycle.Connect(ctx, "c1", "alice"))
	require.NoError(t, env.lifecycle.JoinRoom(ctx, "c1", "Global"))

	err := env.lifecycle.Command(ctx, "c1", "score", "")
	require.ErrorIs(t, err, errorx.Error{Code: errorx.BadRequest})
}
