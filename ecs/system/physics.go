package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/locomotion"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
)

// characterGroup keeps character shapes out of their own ground rays.
const characterGroup uint = 1

// maxRayDistance stands in for an unbounded ray; segment queries need
// finite endpoints.
const maxRayDistance = 1e4

// groundNormalMinY is the smallest upward normal component that counts as
// standing on something.
const groundNormalMinY = 0.05

const defaultLayer uint = 1

type PhysicsSystem struct {
	space *cp.Space
	dt    float64

	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		dt:       1.0 / common.TPS,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Step is the fixed simulation step in seconds.
func (ps *PhysicsSystem) Step() float64 {
	if ps == nil {
		return 0
	}
	return ps.dt
}

// Reset drops every body and shape, e.g. before a level rebuild.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.space = newSpace()
	ps.entities = make(map[ecs.Entity]*bodyInfo)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.Reset()
	}

	ps.syncEntities(w)
	ps.space.Step(ps.dt)
	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach(w, component.StaticSegmentComponent, func(e ecs.Entity, seg *component.StaticSegment) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		shape := cp.NewSegment(ps.space.StaticBody, cp.Vector{X: seg.AX, Y: seg.AY}, cp.Vector{X: seg.BX, Y: seg.BY}, seg.Radius)
		shape.SetFriction(seg.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, layerOrDefault(seg.Layer), cp.ALL_CATEGORIES))
		ps.space.AddShape(shape)
		seg.Shape = shape
		ps.entities[e] = &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	})

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info, ok := ps.entities[e]; ok {
			bodyComp.Body = info.body
			if len(info.shapes) > 0 {
				bodyComp.Shape = info.shapes[0]
			}
			return
		}
		info := ps.createCharacterBody(transform, bodyComp)
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	})
}

// createCharacterBody builds a dynamic box that never rotates and ignores
// space gravity. Its velocity is owned by whatever Mover drives it.
func (ps *PhysicsSystem) createCharacterBody(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 2
	}
	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(0)
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(cp.NewShapeFilter(characterGroup, layerOrDefault(bodyComp.Layer), cp.ALL_CATEGORIES))

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	})
}

// flushContacts records whether each character touches a surface below it
// after the step.
func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent, func(_ ecs.Entity, bodyComp *component.PhysicsBody) {
		bodyComp.Grounded = false
		bodyComp.GroundNormalX, bodyComp.GroundNormalY = 0, 0
		if bodyComp.Body == nil {
			return
		}
		body := bodyComp.Body
		body.EachArbiter(func(arb *cp.Arbiter) {
			a, _ := arb.Shapes()
			n := arb.Normal()
			if a.Body() == body {
				n = n.Neg()
			}
			if n.Y > groundNormalMinY && n.Y > bodyComp.GroundNormalY {
				bodyComp.Grounded = true
				bodyComp.GroundNormalX = n.X
				bodyComp.GroundNormalY = n.Y
			}
		})
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent) || ecs.Has(w, e, component.StaticSegmentComponent)) {
			continue
		}
		for _, shape := range info.shapes {
			if shape != nil {
				ps.space.RemoveShape(shape)
			}
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

// Raycast returns the first surface on the layer mask between start and
// end, ignoring character shapes.
func (ps *PhysicsSystem) Raycast(start, end cp.Vector, layer uint) (cp.SegmentQueryInfo, bool) {
	if ps == nil || ps.space == nil {
		return cp.SegmentQueryInfo{}, false
	}
	info := ps.space.SegmentQueryFirst(start, end, 0, cp.NewShapeFilter(characterGroup, cp.ALL_CATEGORIES, layer))
	return info, info.Shape != nil
}

// GroundSensor adapts a character body to locomotion ground sensing.
func (ps *PhysicsSystem) GroundSensor(body *component.PhysicsBody) locomotion.GroundSensor {
	return groundSensor{physics: ps, body: body}
}

// Mover adapts a character body to locomotion displacement. A displacement
// becomes the body velocity for the next step, minus any part that pushes
// into the ground contact so a grounded body slides along it.
func (ps *PhysicsSystem) Mover(body *component.PhysicsBody) locomotion.Mover {
	return bodyMover{body: body, dt: ps.Step()}
}

type groundSensor struct {
	physics *PhysicsSystem
	body    *component.PhysicsBody
}

func (g groundSensor) Grounded() bool {
	return g.body != nil && g.body.Grounded
}

func (g groundSensor) Position() mgl64.Vec3 {
	if g.body == nil || g.body.Body == nil {
		return mgl64.Vec3{}
	}
	p := g.body.Body.Position()
	return mgl64.Vec3{p.X, p.Y, 0}
}

func (g groundSensor) SurfaceNormal(origin mgl64.Vec3, maxDistance float64, layer uint) (mgl64.Vec3, bool) {
	if maxDistance <= 0 {
		return mgl64.Vec3{}, false
	}
	dist := math.Min(maxDistance, maxRayDistance)
	start := cp.Vector{X: origin.X(), Y: origin.Y()}
	end := cp.Vector{X: origin.X(), Y: origin.Y() - dist}
	hit, ok := g.physics.Raycast(start, end, layer)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{hit.Normal.X, hit.Normal.Y, 0}, true
}

type bodyMover struct {
	body *component.PhysicsBody
	dt   float64
}

func (m bodyMover) Move(dx, dy float64) {
	if m.body == nil || m.body.Body == nil || m.dt <= 0 {
		return
	}
	vx, vy := dx/m.dt, dy/m.dt
	if m.body.Grounded {
		nx, ny := m.body.GroundNormalX, m.body.GroundNormalY
		if dot := vx*nx + vy*ny; dot < 0 {
			vx -= dot * nx
			vy -= dot * ny
		}
	}
	m.body.Body.SetVelocity(vx, vy)
	m.body.Body.Activate()
}

func layerOrDefault(layer uint) uint {
	if layer == 0 {
		return defaultLayer
	}
	return layer
}
