package component

// Camera is the singleton view: the scene point at the screen center and
// the zoom scale.
type Camera struct {
	X     float64
	Y     float64
	Scale float64
}

var CameraComponent = NewComponent[Camera]()

// CameraPanRequest asks the CameraSystem to animate the camera to a point.
type CameraPanRequest struct {
	X        float64
	Y        float64
	Scale    float64
	Duration float32 // seconds
}

var CameraPanRequestComponent = NewComponent[CameraPanRequest]()
