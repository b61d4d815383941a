package component

import "github.com/1000nettles/heywait/geom"

// MoveRequest is a one-shot request asking the TriggerSystem to move a token
// to a new anchor, checking every zone on the way. The path starts wherever
// the token stands when the request is applied.
type MoveRequest struct {
	Token string
	To    geom.Point
	// Seq orders requests created within the same tick.
	Seq uint64
}

var MoveRequestComponent = NewComponent[MoveRequest]()
