// Package hostlink connects a tabletop host to the engine over websockets.
// The host forwards token moves and game master commands; every engine event
// is broadcast back to all connected hosts.
package hostlink

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	nethttp "net/http"

	"github.com/gorilla/websocket"

	"github.com/1000nettles/heywait/game"
	"github.com/1000nettles/heywait/scene"
)

var ErrGameMasterOnly = errors.New("hostlink: game master only")

type HandlerConfig struct {
	Logger *log.Logger
}

type Handler struct {
	engine   *game.Engine
	hub      *Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHandler(engine *game.Engine, hub *Hub, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}

	return &Handler{
		engine:   engine,
		hub:      hub,
		logger:   logger,
		upgrader: upgrader,
	}
}

// Handle serves one host connection. Connections opened with ?role=gm may run
// game master commands.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("hostlink: upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	sess := &session{conn: conn, gm: r.URL.Query().Get("role") == "gm"}
	h.hub.add(sess)
	defer func() {
		if h.hub.remove(sess) {
			conn.Close()
		}
	}()

	if err := sess.writeJSON(h.snapshot()); err != nil {
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Printf("hostlink: discarding malformed message from %s: %v", r.RemoteAddr, err)
			continue
		}

		reply, err := h.dispatch(sess, msg)
		if err != nil {
			reply = newErrorMessage(err)
		}
		if reply == nil {
			continue
		}
		if err := sess.writeJSON(reply); err != nil {
			return
		}
	}
}

// dispatch applies one command and returns an optional direct reply.
func (h *Handler) dispatch(sess *session, msg clientMessage) (any, error) {
	switch msg.Type {
	case "move":
		return nil, h.engine.MoveToken(msg.Token, msg.X, msg.Y)
	case "snapshot":
		return h.snapshot(), nil
	}

	if h.engine.Settings().GMOnly && !sess.gm {
		return nil, fmt.Errorf("%w: %s", ErrGameMasterOnly, msg.Type)
	}

	switch msg.Type {
	case "createZone":
		var spec scene.ZoneSpec
		if err := json.Unmarshal(msg.Zone, &spec); err != nil {
			return nil, fmt.Errorf("hostlink: createZone: %w", err)
		}
		id, err := h.engine.CreateZone(spec)
		if err != nil {
			return nil, err
		}
		return zoneCreatedMessage{Type: "zoneCreated", Zone: id}, nil
	case "toggle":
		var id string
		if err := json.Unmarshal(msg.Zone, &id); err != nil {
			return nil, fmt.Errorf("hostlink: toggle: %w", err)
		}
		_, err := h.engine.ToggleTriggered(id)
		return nil, err
	case "pause":
		h.engine.SetPaused(msg.Paused)
		return nil, nil
	case "reset":
		h.engine.ResetAll()
		return nil, nil
	default:
		return nil, fmt.Errorf("hostlink: unknown message type %q", msg.Type)
	}
}

func (h *Handler) snapshot() snapshotMessage {
	return snapshotMessage{Type: "snapshot", Scene: h.engine.Snapshot(), Paused: h.engine.Paused()}
}
