package model

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Intent types on the client-to-server stream.
const (
	IntentJoinRoom   = "joinRoom"
	IntentLeaveRoom  = "leaveRoom"
	IntentCreateRoom = "createRoom"
	IntentStartGame  = "startGame"
	IntentInput      = "keyPress"
	IntentChat       = "chat"
	IntentCommand    = "command"
)

// ClientFrame is the raw envelope read from a websocket. Data is decoded
// into a typed intent with DecodeIntent once the type is known.
type ClientFrame struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func ParseClientFrame(raw []byte) (ClientFrame, error) {
	var frame ClientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return ClientFrame{}, err
	}

	if frame.Type == "" {
		return ClientFrame{}, fmt.Errorf("missing intent type")
	}

	return frame, nil
}

// DecodeIntent maps the loose data object of a frame into a typed intent.
func DecodeIntent[T any](frame ClientFrame) (T, error) {
	var intent T
	if err := mapstructure.Decode(frame.Data, &intent); err != nil {
		return intent, err
	}

	return intent, nil
}

type JoinRoomIntent struct {
	Room string `mapstructure:"room"`
}

type CreateRoomIntent struct {
	Room string `mapstructure:"room"`
}

type InputIntent struct {
	Key     string `mapstructure:"key"`
	Pressed bool   `mapstructure:"pressed"`
}

type ChatIntent struct {
	Text string `mapstructure:"text"`
}

type CommandIntent struct {
	Token string `mapstructure:"token"`
	Arg   string `mapstructure:"arg"`
}
