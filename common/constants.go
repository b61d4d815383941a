package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed tick rate of the simulation.
	TPS = 60
	// TickSeconds is the simulated time that passes in one tick.
	TickSeconds = 1.0 / TPS

	// DefaultGridSize is used when a scene does not set one.
	DefaultGridSize = 100.0
)
