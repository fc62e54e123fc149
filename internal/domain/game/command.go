package game

import (
	"context"
	"fmt"

	"github.com/wanderlands/backend/pkg/enum"
	"github.com/wanderlands/backend/pkg/errorx"
)

// CommandKind enumerates the chat commands the session layer accepts.
// Tokens are validated against the enum before any handler runs;
// unrecognized tokens never reach a handler.
type CommandKind string

var (
	CommandAdmin    = enum.New(CommandKind("admin"))
	CommandTeleport = enum.New(CommandKind("teleport"))
	CommandScore    = enum.New(CommandKind("score"))
)

type CommandHandler func(ctx context.Context, l *Lifecycle, connID, arg string) error

func defaultCommands() map[CommandKind]CommandHandler {
	return map[CommandKind]CommandHandler{
		CommandAdmin:    handleAdmin,
		CommandTeleport: handleTeleport,
		CommandScore:    handleScore,
	}
}

// Command dispatches a chat command by validated kind.
func (l *Lifecycle) Command(ctx context.Context, connID, token, arg string) error {
	kind, err := enum.ToEnum[CommandKind](token)
	if err != nil {
		l.statusTo(connID, "Unknown command: "+token)
		return errorx.New(errorx.BadRequest, "Unknown command %s", token)
	}

	handler, ok := l.commands[kind]
	if !ok {
		return errorx.New(errorx.Internal, "No handler for command %s", kind)
	}

	return handler(ctx, l, connID, arg)
}

// handleAdmin toggles the admin flag of the named player. Unauthorized
// attempts are denied without a user-facing notice, only logged.
func handleAdmin(ctx context.Context, l *Lifecycle, connID, arg string) error {
	l.state.Lock()

	sess, ok := l.sessions[connID]
	if !ok || !sess.Admin {
		l.state.Unlock()
		l.logger.Warnf("Denied admin command from %s", connID)
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	target := l.state.Players.ByUsername(arg)
	if target == nil {
		l.state.Unlock()
		l.statusTo(connID, "No such player: "+arg)
		return errorx.New(errorx.NotFound, "Not found player %s", arg)
	}

	target.Admin = !target.Admin
	if targetSess, ok := l.sessions[target.Entity.ID]; ok {
		targetSess.Admin = target.Admin
	}
	targetID := target.Entity.ID
	nowAdmin := target.Admin

	l.state.Unlock()

	if nowAdmin {
		l.statusTo(targetID, "You are now an admin")
	} else {
		l.statusTo(targetID, "You are no longer an admin")
	}

	return nil
}

// handleTeleport moves the acting player to a continent's spawn point.
func handleTeleport(ctx context.Context, l *Lifecycle, connID, arg string) error {
	continent, err := enum.ToEnum[Continent](arg)
	if err != nil {
		l.statusTo(connID, "Unknown continent: "+arg)
		return errorx.New(errorx.BadRequest, "Unknown continent %s", arg)
	}

	l.state.Lock()
	defer l.state.Unlock()

	sess, ok := l.sessions[connID]
	if !ok || !sess.Admin {
		l.logger.Warnf("Denied teleport command from %s", connID)
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	p := l.state.Players.ByID(connID)
	if p == nil {
		return errorx.New(errorx.BadRequest, "Not in a game")
	}

	p.Entity.X, p.Entity.Y = l.allocator.Spawn(continent)
	return nil
}

// handleScore reports the acting player's score, plus the room's top
// scorers when a leaderboard is configured.
func handleScore(ctx context.Context, l *Lifecycle, connID, arg string) error {
	l.state.Lock()
	p := l.state.Players.ByID(connID)
	l.state.Unlock()

	if p == nil {
		return errorx.New(errorx.BadRequest, "Not in a game")
	}

	l.statusTo(connID, fmt.Sprintf("Your score: %d", p.Score))

	if l.leaderboard != nil {
		top, err := l.leaderboard.TopPlayers(ctx, p.Room, 3)
		if err != nil {
			l.logger.Errorf("Cannot get top players of %s: %v", p.Room, err)
			return nil
		}

		for i, score := range top {
			l.statusTo(connID, fmt.Sprintf("#%d %s: %d", i+1, score.Username, score.Score))
		}
	}

	return nil
}
