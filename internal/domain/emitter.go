package domain

import (
	"encoding/json"

	"github.com/wanderlands/backend/internal/model"
	"github.com/wanderlands/backend/pkg/logger"
	"github.com/wanderlands/backend/pkg/ws"
)

// hubEmitter adapts the websocket hub to the game.Emitter contract,
// wrapping every logical event into a wire envelope.
type hubEmitter struct {
	hub    *ws.Hub
	logger logger.Logger
}

func NewHubEmitter(hub *ws.Hub, logger logger.Logger) *hubEmitter {
	return &hubEmitter{hub: hub, logger: logger}
}

func (e *hubEmitter) EmitTo(connID string, event string, payload any) {
	msg, ok := e.marshal(event, payload)
	if !ok {
		return
	}

	if err := e.hub.SendTo(connID, msg); err != nil {
		e.logger.Debugf("Cannot send %s to %s: %v", event, connID, err)
	}
}

func (e *hubEmitter) EmitRoom(room string, event string, payload any) {
	if msg, ok := e.marshal(event, payload); ok {
		e.hub.SendRoom(room, msg)
	}
}

func (e *hubEmitter) EmitAll(event string, payload any) {
	if msg, ok := e.marshal(event, payload); ok {
		e.hub.SendAll(msg)
	}
}

func (e *hubEmitter) Subscribe(connID, room string) {
	e.hub.Subscribe(connID, room)
}

func (e *hubEmitter) Unsubscribe(connID string) {
	e.hub.Unsubscribe(connID)
}

func (e *hubEmitter) marshal(event string, payload any) ([]byte, bool) {
	msg, err := json.Marshal(model.Envelope{Event: event, Data: payload})
	if err != nil {
		e.logger.Errorf("Cannot marshal %s event: %v", event, err)
		return nil, false
	}

	return msg, true
}
