package component

// Pause is the singleton game pause state.
type Pause struct {
	Paused bool
}

var PauseComponent = NewComponent[Pause]()

// PauseRequest is a one-shot request consumed by the PauseSystem.
type PauseRequest struct {
	Paused bool
	Reason string
}

var PauseRequestComponent = NewComponent[PauseRequest]()
