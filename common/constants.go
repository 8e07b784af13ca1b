package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity is world gravity in units/s^2. The world is y-up.
	Gravity = -9.81

	// PixelsPerUnit converts world units to screen pixels.
	PixelsPerUnit = 24.0

	// TPS is the fixed simulation rate.
	TPS = 60
)
