package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wanderlands/backend/internal/domain/game"
	"github.com/wanderlands/backend/internal/model"
	"github.com/wanderlands/backend/pkg/logger"
	"github.com/wanderlands/backend/pkg/ws"
)

// SessionDomain serves one websocket connection for its whole lifetime:
// register with the hub, join the lobby, dispatch intents in arrival
// order, and tear everything down on disconnect.
type SessionDomain interface {
	ServeClient(ctx context.Context, username string, conn *websocket.Conn)
}

type sessionDomain struct {
	logger    logger.Logger
	hub       *ws.Hub
	lifecycle *game.Lifecycle
}

func NewSessionDomain(
	logger logger.Logger, hub *ws.Hub, lifecycle *game.Lifecycle,
) *sessionDomain {
	return &sessionDomain{
		logger:    logger,
		hub:       hub,
		lifecycle: lifecycle,
	}
}

func (d *sessionDomain) ServeClient(ctx context.Context, username string, conn *websocket.Conn) {
	connID := uuid.NewString()
	client := ws.NewClient(conn)

	if err := d.hub.Register(connID, client); err != nil {
		d.logger.Errorf("Cannot register client %s: %v", connID, err)
		client.Close()
		return
	}

	defer func() {
		d.lifecycle.Disconnect(ctx, connID)
		if err := d.hub.Unregister(connID); err != nil {
			d.logger.Debugf("Cannot unregister client %s: %v", connID, err)
		}
	}()

	if err := d.lifecycle.Connect(ctx, connID, username); err != nil {
		d.logger.Errorf("Cannot connect user %s: %v", username, err)
		return
	}

	if err := d.lifecycle.JoinRoom(ctx, connID, d.lifecycle.Lobby()); err != nil {
		d.logger.Errorf("Cannot join lobby: %v", err)
		return
	}

	for raw := range client.R {
		frame, err := model.ParseClientFrame(raw)
		if err != nil {
			d.logger.Debugf("Cannot parse frame from %s: %v", connID, err)
			continue
		}

		if err := d.dispatch(ctx, connID, frame); err != nil {
			d.logger.Debugf("Intent %s from %s failed: %v", frame.Type, connID, err)
		}
	}
}

func (d *sessionDomain) dispatch(ctx context.Context, connID string, frame model.ClientFrame) error {
	switch frame.Type {
	case model.IntentJoinRoom:
		intent, err := model.DecodeIntent[model.JoinRoomIntent](frame)
		if err != nil {
			return err
		}
		return d.lifecycle.JoinRoom(ctx, connID, intent.Room)

	case model.IntentLeaveRoom:
		return d.lifecycle.LeaveRoom(ctx, connID)

	case model.IntentCreateRoom:
		intent, err := model.DecodeIntent[model.CreateRoomIntent](frame)
		if err != nil {
			return err
		}
		return d.lifecycle.CreateRoom(ctx, connID, intent.Room)

	case model.IntentStartGame:
		return d.lifecycle.StartGame(ctx, connID)

	case model.IntentInput:
		intent, err := model.DecodeIntent[model.InputIntent](frame)
		if err != nil {
			return err
		}
		d.lifecycle.Input(connID, intent.Key, intent.Pressed)
		return nil

	case model.IntentChat:
		intent, err := model.DecodeIntent[model.ChatIntent](frame)
		if err != nil {
			return err
		}
		return d.lifecycle.Chat(ctx, connID, intent.Text)

	case model.IntentCommand:
		intent, err := model.DecodeIntent[model.CommandIntent](frame)
		if err != nil {
			return err
		}
		return d.lifecycle.Command(ctx, connID, intent.Token, intent.Arg)
	}

	d.logger.Debugf("Unknown intent type %s from %s", frame.Type, connID)
	return nil
}
