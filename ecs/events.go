package ecs

// EventType names what happened. Values are stable and double as the wire
// names used by the host link.
type EventType string

const (
	EventZoneTriggered  EventType = "zone_triggered"
	EventZoneReset      EventType = "zone_reset"
	EventTokenCorrected EventType = "token_corrected"
	EventPaused         EventType = "paused"
	EventCameraPan      EventType = "camera_pan"
	EventScriptMessage  EventType = "script_message"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// EventQueue is a simple FIFO queue. Systems push; the owner of the world
// drains after each tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
