package model

// Event names on the server-to-client stream.
const (
	EventRoomUsers   = "roomUsers"
	EventMessage     = "message"
	EventInit        = "init"
	EventUpdate      = "update"
	EventRemove      = "remove"
	EventRoomFull    = "roomFull"
	EventGameStarted = "gameStarted"
	EventJoinRoom    = "joinRoom"
)

// Message types inside a MessageEvent.
const (
	MessageTypeChat   = "chat"
	MessageTypeStatus = "status"
)

// Envelope wraps every frame sent to a client.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type RoomUsersEvent struct {
	Room       string   `json:"room"`
	Users      []string `json:"users"`
	UsersCount int      `json:"usersCount"`
}

type MessageEvent struct {
	Username string `json:"username"`
	Text     string `json:"text"`
	Type     string `json:"type"`
	Room     string `json:"room,omitempty"`
}

// PlayerState is the per-player payload of init and update events.
type PlayerState struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Map       string  `json:"map"`
	HP        int     `json:"hp"`
	HPMax     int     `json:"hpMax"`
	Score     int     `json:"score"`
	Room      string  `json:"room"`
	Continent string  `json:"continent,omitempty"`
}

type InitEvent struct {
	SelfID string        `json:"selfId"`
	Player []PlayerState `json:"player"`
}

type UpdateEvent struct {
	Player []PlayerState `json:"player"`
}

type RemoveEvent struct {
	Player []string `json:"player"`
}

type RoomFullEvent struct {
	Message string `json:"message"`
}

type GameStartedEvent struct{}

type JoinRoomEvent struct {
	Room string `json:"room"`
}
