package websocket

import (
	"encoding/json"
)

// MessageWriter is the outbound half of a connection as services see it.
type MessageWriter interface {
	WriteJSON(v any) error
}

type Service interface {
	HandleTextMessage(id string, action string, data json.RawMessage)
	Name() string
	Cleanup(err error)
	Register(conn MessageWriter)
}

// ServiceMessage is the envelope of every text frame in both directions.
// Replies echo Service, Id and Action; a failed request sets Error and,
// when the failure came from the filesystem, Kind.
type ServiceMessage struct {
	Service string          `json:"service"`
	Id      string          `json:"id,omitempty"`
	Action  string          `json:"action,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Kind    string          `json:"kind,omitempty"`
}
