package world

import (
	"github.com/NorhsArk/liquidfun"
	"github.com/NorhsArk/liquidfun/world/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// bodyFixture adapts a single-shape RigidBody to liquidfun.Fixture and
// liquidfun.Body. Bodies in this world carry exactly one shape, so the
// fixture and the body it belongs to share the same underlying value.
type bodyFixture struct {
	body *actor.RigidBody
}

func fixtureOf(body *actor.RigidBody) liquidfun.Fixture {
	return bodyFixture{body: body}
}

func toTransform(t actor.Transform) liquidfun.Transform {
	return liquidfun.Transform{Position: t.Position, Angle: t.Angle}
}

func (f bodyFixture) TestPoint(p mgl64.Vec2) bool {
	return f.body.Shape.TestPoint(f.body.Transform, p)
}

func (f bodyFixture) ComputeDistance(p mgl64.Vec2) (float64, mgl64.Vec2) {
	worldDir := p.Sub(f.body.Transform.Position)
	if worldDir.Len() < 1e-12 {
		worldDir = mgl64.Vec2{0, 1}
	} else {
		worldDir = worldDir.Normalize()
	}
	localDir := f.body.Transform.InverseRotate(worldDir)
	support := f.body.Shape.Support(localDir)
	closest := f.body.Transform.ToWorld(support)
	delta := p.Sub(closest)
	distance := delta.Len()
	if distance < 1e-12 {
		return 0, worldDir
	}
	return distance, delta.Mul(1 / distance)
}

func (f bodyFixture) RayCast(input liquidfun.RayCastInput, childIndex int) (liquidfun.RayCastOutput, bool) {
	hit, fraction, normal := f.body.Shape.RayCast(f.body.Transform, input.P1, input.P2)
	if !hit || fraction > input.MaxFraction {
		return liquidfun.RayCastOutput{}, false
	}
	return liquidfun.RayCastOutput{Normal: normal, Fraction: fraction}, true
}

func (f bodyFixture) GetAABB(childIndex int) liquidfun.AABB {
	aabb := f.body.Shape.ComputeAABB(f.body.Transform)
	return liquidfun.AABB{LowerBound: aabb.Min, UpperBound: aabb.Max}
}

func (f bodyFixture) IsSensor() bool {
	return f.body.IsTrigger
}

func (f bodyFixture) GetShape() liquidfun.Shape {
	return shapeOf(f.body.Shape)
}

func (f bodyFixture) GetDensity() float64 {
	return f.body.Material.Density
}

func (f bodyFixture) GetBody() liquidfun.Body {
	return f
}

func (f bodyFixture) GetMass() float64 {
	return f.body.Material.GetMass()
}

func (f bodyFixture) GetInertia() float64 {
	return f.body.InertiaLocal
}

func (f bodyFixture) GetLocalCenter() mgl64.Vec2 {
	return mgl64.Vec2{0, 0}
}

func (f bodyFixture) GetWorldCenter() mgl64.Vec2 {
	return f.body.Transform.Position
}

func (f bodyFixture) GetLinearVelocity() mgl64.Vec2 {
	return f.body.Velocity
}

func (f bodyFixture) GetAngularVelocity() float64 {
	return f.body.AngularVelocity
}

func (f bodyFixture) SetLinearVelocity(v mgl64.Vec2) {
	f.body.Velocity = v
}

func (f bodyFixture) SetAngularVelocity(w float64) {
	f.body.AngularVelocity = w
}

func (f bodyFixture) GetTransform() liquidfun.Transform {
	return toTransform(f.body.Transform)
}

func (f bodyFixture) GetPreviousTransform() liquidfun.Transform {
	return toTransform(f.body.PreviousTransform)
}

func (f bodyFixture) ApplyLinearImpulse(impulse, point mgl64.Vec2, wake bool) {
	if f.body.BodyType == actor.BodyTypeStatic {
		return
	}
	if wake && f.body.IsSleeping {
		f.body.Awake()
	}
	mass := f.body.Material.GetMass()
	if mass <= 0 {
		return
	}
	f.body.Velocity = f.body.Velocity.Add(impulse.Mul(1 / mass))
	r := point.Sub(f.body.Transform.Position)
	torqueImpulse := actor.Cross2(r, impulse)
	if f.body.InverseInertiaLocal > 0 {
		f.body.AngularVelocity += f.body.InverseInertiaLocal * torqueImpulse
	}
}

func (f bodyFixture) GetLinearVelocityFromWorldPoint(point mgl64.Vec2) mgl64.Vec2 {
	return f.body.LinearVelocityAtPoint(point)
}

// shapeAdapter exposes an actor.ShapeInterface through liquidfun.Shape.
type shapeAdapter struct {
	shape actor.ShapeInterface
}

func shapeOf(shape actor.ShapeInterface) liquidfun.Shape {
	return shapeAdapter{shape: shape}
}

func (s shapeAdapter) GetType() liquidfun.ShapeType {
	switch s.shape.Type() {
	case actor.ShapeTypeCircle:
		return liquidfun.ShapeTypeCircle
	case actor.ShapeTypePolygon:
		return liquidfun.ShapeTypePolygon
	case actor.ShapeTypeEdge:
		return liquidfun.ShapeTypeEdge
	default:
		return liquidfun.ShapeTypeChain
	}
}

func (s shapeAdapter) GetChildCount() int {
	return 1
}

func (s shapeAdapter) ComputeAABB(xf liquidfun.Transform, childIndex int) liquidfun.AABB {
	aabb := s.shape.ComputeAABB(actor.Transform{Position: xf.Position, Angle: xf.Angle})
	return liquidfun.AABB{LowerBound: aabb.Min, UpperBound: aabb.Max}
}

func (s shapeAdapter) TestPoint(xf liquidfun.Transform, p mgl64.Vec2) bool {
	return s.shape.TestPoint(actor.Transform{Position: xf.Position, Angle: xf.Angle}, p)
}

func (s shapeAdapter) GetChildEdge(childIndex int) (mgl64.Vec2, mgl64.Vec2, bool) {
	edge, ok := s.shape.(*actor.Edge)
	if !ok {
		return mgl64.Vec2{}, mgl64.Vec2{}, false
	}
	return edge.V1, edge.V2, true
}
