package component

import "github.com/1000nettles/heywait/geom"

// AABB is an axis-aligned bounding box in scene pixels, anchored top-left.
type AABB struct {
	X float64
	Y float64
	W float64
	H float64
}

func (b AABB) Rect() geom.Rect {
	return geom.Rect{X: b.X, Y: b.Y, Width: b.W, Height: b.H}
}

func AABBFromRect(r geom.Rect) AABB {
	return AABB{X: r.X, Y: r.Y, W: r.Width, H: r.Height}
}

// TriggerZone is a hidden rectangle that pauses play the first time a token's
// move crosses its boundary.
type TriggerZone struct {
	// ID identifies the zone within its scene.
	ID   string
	Name string
	// Bounds is the zone rectangle in scene pixels.
	Bounds AABB
	// Unlimited zones let a token that starts inside leave without firing.
	Unlimited bool
	// Enabled zones take part in trigger checks. Disabled zones are kept in
	// the scene but ignored.
	Enabled bool
	// Triggered flips to true once, when the zone fires. Only an explicit
	// toggle or reset clears it.
	Triggered bool
	// Hidden zones are not shown to players.
	Hidden bool
	// Image is the marker image that reflects Triggered.
	Image string
	// Script names an optional tengo script run when the zone fires.
	Script string
}

var TriggerZoneComponent = NewComponent[TriggerZone]()
