package component

// SceneGrid holds the pixel size of one grid cell for the loaded scene.
type SceneGrid struct {
	Size float64
}

var SceneGridComponent = NewComponent[SceneGrid]()
