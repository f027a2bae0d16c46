package liquidfun

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a body's position and orientation, matching the b2Transform
// convention: translation plus a single rotation angle (2D has no quaternion).
type Transform struct {
	Position mgl64.Vec2
	Angle    float64
}

// ToWorld maps a point local to t into world space: b2Mul(t, local).
func (t Transform) ToWorld(local mgl64.Vec2) mgl64.Vec2 {
	c, s := math.Cos(t.Angle), math.Sin(t.Angle)
	return t.Position.Add(rotate(c, s, local))
}

// ToLocal maps a world point into t's local space: b2MulT(t, world).
func (t Transform) ToLocal(world mgl64.Vec2) mgl64.Vec2 {
	c, s := math.Cos(t.Angle), math.Sin(t.Angle)
	d := world.Sub(t.Position)
	return rotate(c, -s, d)
}

// AABB is an axis-aligned bounding box used for spatial queries, both the
// core's own tag-hash index and the external query_aabb contract below.
type AABB struct {
	LowerBound mgl64.Vec2
	UpperBound mgl64.Vec2
}

func (a AABB) Contains(other AABB) bool {
	return a.LowerBound[0] <= other.LowerBound[0] && a.LowerBound[1] <= other.LowerBound[1] &&
		other.UpperBound[0] <= a.UpperBound[0] && other.UpperBound[1] <= a.UpperBound[1]
}

func (a AABB) Overlaps(other AABB) bool {
	return a.LowerBound[0] <= other.UpperBound[0] && other.LowerBound[0] <= a.UpperBound[0] &&
		a.LowerBound[1] <= other.UpperBound[1] && other.LowerBound[1] <= a.UpperBound[1]
}

// RayCastInput describes a segment cast from P1 to P2, truncated at MaxFraction.
type RayCastInput struct {
	P1, P2      mgl64.Vec2
	MaxFraction float64
}

// RayCastOutput is the hit result of a successful ray cast against a shape.
type RayCastOutput struct {
	Normal   mgl64.Vec2
	Fraction float64
}

// ShapeType enumerates the fixed set of convex primitives the world exposes.
type ShapeType int

const (
	ShapeTypeCircle ShapeType = iota
	ShapeTypePolygon
	ShapeTypeEdge
	ShapeTypeChain
)

// Shape is the minimal geometric contract the core needs from a collider,
// independent of whatever rigid-body engine backs it.
type Shape interface {
	GetType() ShapeType
	GetChildCount() int
	ComputeAABB(xf Transform, childIndex int) AABB
	TestPoint(xf Transform, p mgl64.Vec2) bool
	// GetChildEdge returns the two local-space endpoints of an edge/chain
	// shape's childIndex-th segment, for stroke-style particle emission
	// (spec.md §4.7, §6's chain.get_child_edge). ok is false for non-edge
	// shapes, which are filled rather than stroked.
	GetChildEdge(childIndex int) (v1, v2 mgl64.Vec2, ok bool)
}

// Body is the minimal contract the core needs from a rigid body it may
// create body-contacts against or apply impulses to.
type Body interface {
	GetMass() float64
	GetInertia() float64
	GetLocalCenter() mgl64.Vec2
	GetWorldCenter() mgl64.Vec2
	GetLinearVelocity() mgl64.Vec2
	GetAngularVelocity() float64
	SetLinearVelocity(v mgl64.Vec2)
	SetAngularVelocity(w float64)
	GetTransform() Transform
	GetPreviousTransform() Transform
	ApplyLinearImpulse(impulse, point mgl64.Vec2, wake bool)
	GetLinearVelocityFromWorldPoint(point mgl64.Vec2) mgl64.Vec2
}

// Fixture is a shape attached to a body with material properties, the unit
// that query_aabb and body-contact detection operate over.
type Fixture interface {
	TestPoint(p mgl64.Vec2) bool
	ComputeDistance(p mgl64.Vec2) (distance float64, normal mgl64.Vec2)
	RayCast(input RayCastInput, childIndex int) (RayCastOutput, bool)
	GetAABB(childIndex int) AABB
	IsSensor() bool
	GetShape() Shape
	GetDensity() float64
	GetBody() Body
}

// Query is the surrounding world's spatial index, used by body-contact
// detection and by ParticleSystem.QueryAABB/RayCast/QueryShapeAABB.
type Query interface {
	QueryAABB(aabb AABB, callback func(fixture Fixture) bool)
	RayCast(input RayCastInput, callback func(fixture Fixture, point, normal mgl64.Vec2, fraction float64) float64)
	GetGravity() mgl64.Vec2
}

// DestructionListener is notified just before a particle or group is
// physically removed from the system. Either method may be left unset by
// embedding DestructionListenerBase; notification is then a silent no-op.
type DestructionListener interface {
	SayGoodbyeParticle(index int)
	SayGoodbyeParticleGroup(group *ParticleGroup)
}

// DestructionListenerBase gives callers a zero-cost embeddable default so
// they only need to override the callback they care about.
type DestructionListenerBase struct{}

func (DestructionListenerBase) SayGoodbyeParticle(index int)                {}
func (DestructionListenerBase) SayGoodbyeParticleGroup(group *ParticleGroup) {}
