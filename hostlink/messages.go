package hostlink

import (
	"encoding/json"

	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/scene"
)

// clientMessage is everything a host can send. Zone is a zone spec object
// for createZone and a zone id string for toggle.
type clientMessage struct {
	Type   string          `json:"type"`
	Token  string          `json:"token,omitempty"`
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	Zone   json.RawMessage `json:"zone,omitempty"`
	Paused bool            `json:"paused"`
}

type eventMessage struct {
	Type  string        `json:"type"`
	Event ecs.EventType `json:"event"`
	Data  any           `json:"data,omitempty"`
}

type snapshotMessage struct {
	Type   string       `json:"type"`
	Scene  *scene.Scene `json:"scene"`
	Paused bool         `json:"paused"`
}

type zoneCreatedMessage struct {
	Type string `json:"type"`
	Zone string `json:"zone"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newEventMessage(evt ecs.Event) eventMessage {
	return eventMessage{Type: "event", Event: evt.Type, Data: evt.Data}
}

func newErrorMessage(err error) errorMessage {
	return errorMessage{Type: "error", Message: err.Error()}
}
