package ws

import (
	"encoding/json"

	"github.com/modestbazar/storefront/internal/usecase/view"
)

// Client operations.
const (
	OpToggle = "toggle"
	OpPrice  = "price"
	OpClear  = "clear"
	OpScope  = "scope"
)

// Server message types.
const (
	TypeView  = "view"
	TypeError = "error"
)

// ClientMessage is one edit sent by the shopper's page.
//
//	{"op":"toggle","group":"colors","value":"black"}
//	{"op":"price","bound":"min","value":500}
//	{"op":"price","bound":"max","value":null}
//	{"op":"clear"}
//	{"op":"scope","store":"abbaya"}
type ClientMessage struct {
	Op    string          `json:"op"`
	Group string          `json:"group,omitempty"`
	Bound string          `json:"bound,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
	Store string          `json:"store,omitempty"`
}

// ServerMessage is either a view snapshot or an error.
type ServerMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	*view.Snapshot
}

func viewMessage(s view.Snapshot) ServerMessage {
	return ServerMessage{Type: TypeView, Snapshot: &s}
}

func errorMessage(msg string) ServerMessage {
	return ServerMessage{Type: TypeError, Message: msg}
}
