package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration for
// a dynamic character body.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
	Layer    uint

	// Contact results of the last physics step.
	Grounded      bool
	GroundNormalX float64
	GroundNormalY float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
