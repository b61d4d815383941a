package component

import "github.com/1000nettles/heywait/geom"

// Payloads carried by ecs events. JSON tags are the host link wire format.

type ZoneTriggered struct {
	ZoneID       string     `json:"zone"`
	ZoneName     string     `json:"name,omitempty"`
	Token        string     `json:"token"`
	Intersection geom.Point `json:"intersection"`
	Stop         geom.Point `json:"stop"`
	HasStop      bool       `json:"has_stop"`
}

type ZoneReset struct {
	ZoneID    string `json:"zone"`
	Triggered bool   `json:"triggered"`
}

type TokenCorrected struct {
	Token     string     `json:"token"`
	Requested geom.Point `json:"requested"`
	Stop      geom.Point `json:"stop"`
}

type PauseChanged struct {
	Paused bool   `json:"paused"`
	Reason string `json:"reason,omitempty"`
}

type CameraPan struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Scale    float64 `json:"scale"`
	Duration float32 `json:"duration"`
}

type ScriptMessage struct {
	ZoneID  string `json:"zone"`
	Token   string `json:"token"`
	Message string `json:"message"`
}
