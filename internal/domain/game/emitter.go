package game

// Emitter is the transport boundary of the session layer. The core only
// produces logical events; frame construction and delivery belong to the
// implementation.
type Emitter interface {
	// EmitTo delivers an event to a single connection.
	EmitTo(connID string, event string, payload any)

	// EmitRoom delivers an event to every connection subscribed to room.
	EmitRoom(room string, event string, payload any)

	// EmitAll delivers an event to every connected client.
	EmitAll(event string, payload any)

	// Subscribe associates a connection with a room, replacing any prior
	// association.
	Subscribe(connID, room string)

	// Unsubscribe drops the connection's room association.
	Unsubscribe(connID string)
}
