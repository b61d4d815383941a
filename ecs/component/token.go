package component

// Token is a movable piece. Its anchor is the owning entity's Transform and
// its footprint is measured in grid units.
type Token struct {
	Name   string
	Width  float64
	Height float64
}

var TokenComponent = NewComponent[Token]()
