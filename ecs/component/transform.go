package component

// Transform is the top-left anchor of an entity in scene pixels.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
