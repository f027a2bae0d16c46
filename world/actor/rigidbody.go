package actor

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType distinguishes bodies the solver may move from immovable ones.
type BodyType int

const (
	// BodyTypeDynamic bodies carry finite mass and respond to forces and collisions.
	BodyTypeDynamic BodyType = iota
	// BodyTypeStatic bodies have infinite mass and never move (ground, walls).
	BodyTypeStatic
)

type Material struct {
	Density     float64
	mass        float64
	Restitution float64

	StaticFriction  float64
	DynamicFriction float64
	LinearDamping   float64
	AngularDamping  float64
}

func (m Material) GetMass() float64 {
	return m.mass
}

// RigidBody is a 2D rigid body: position/angle rather than a 3D quaternion,
// following the Box2D convention of scalar angle and scalar moment of inertia.
type RigidBody struct {
	PreviousTransform Transform
	Transform         Transform

	PresolveVelocity mgl64.Vec2
	Velocity         mgl64.Vec2

	PresolveAngularVelocity float64
	AngularVelocity         float64

	InertiaLocal        float64
	InverseInertiaLocal float64

	accumulatedForce  mgl64.Vec2
	accumulatedTorque float64

	IsSleeping bool
	SleepTimer float64

	// IsTrigger marks a body whose contacts are reported but never resolved,
	// matching trigger semantics in the world's event system.
	IsTrigger bool

	Material Material
	BodyType BodyType

	Shape ShapeInterface

	// Mutex guards Transform/Velocity/AngularVelocity during parallel
	// constraint solving across independent body pairs.
	Mutex sync.Mutex

	// UserData lets the particle core's body-contact fixtures attach a
	// reference back to a particle-system owner, mirroring Box2D's
	// b2Body::SetUserData.
	UserData interface{}
}

// NewRigidBody creates a body whose mass/inertia are derived from shape and density
// for dynamic bodies; static bodies get infinite mass and zero friction.
func NewRigidBody(transform Transform, shape ShapeInterface, bodyType BodyType, density float64) *RigidBody {
	rb := &RigidBody{
		PreviousTransform: transform,
		Transform:         transform,
		Shape:             shape,
		BodyType:          bodyType,
	}

	if bodyType == BodyTypeStatic {
		rb.Material = Material{Density: 0, mass: math.Inf(1)}
	} else {
		mass := shape.ComputeMass(density)
		rb.Material = Material{Density: density, mass: mass}
	}

	rb.InertiaLocal = shape.ComputeInertia(rb.Material.mass)
	if rb.InertiaLocal > 1e-12 {
		rb.InverseInertiaLocal = 1.0 / rb.InertiaLocal
	}

	return rb
}

func (rb *RigidBody) TrySleep(dt, timeThreshold, velocityThreshold float64) {
	if rb.Velocity.Len() < velocityThreshold && math.Abs(rb.AngularVelocity) < velocityThreshold {
		rb.SleepTimer += dt
		if rb.SleepTimer >= timeThreshold {
			rb.Sleep()
		}
	} else {
		rb.Awake()
	}
}

func (rb *RigidBody) Sleep() {
	rb.IsSleeping = true
	rb.SleepTimer = 0
	rb.ClearForces()
	rb.Velocity = mgl64.Vec2{}
	rb.AngularVelocity = 0
}

func (rb *RigidBody) Awake() {
	rb.IsSleeping = false
	rb.SleepTimer = 0
}

func (rb *RigidBody) Integrate(dt float64, gravity mgl64.Vec2) {
	if rb.BodyType == BodyTypeStatic || rb.IsSleeping {
		return
	}

	rb.PreviousTransform = rb.Transform

	invMass := 1.0 / rb.Material.GetMass()
	rb.Velocity = rb.Velocity.Add(gravity.Mul(dt)).Add(rb.accumulatedForce.Mul(invMass * dt))
	rb.Velocity = rb.Velocity.Mul(math.Exp(-rb.Material.LinearDamping * dt))
	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))

	angularAccel := rb.InverseInertiaLocal * rb.accumulatedTorque
	rb.AngularVelocity += angularAccel * dt
	rb.AngularVelocity *= math.Exp(-rb.Material.AngularDamping * dt)
	rb.Transform.Angle += rb.AngularVelocity * dt

	rb.PresolveVelocity = rb.Velocity
	rb.PresolveAngularVelocity = rb.AngularVelocity

	rb.ClearForces()
}

// Update recomputes velocity from the position delta committed by position
// solving, in the PBD/XPBD style: velocity is derived, not integrated twice.
func (rb *RigidBody) Update(dt float64) {
	if rb.BodyType == BodyTypeStatic || rb.IsSleeping {
		return
	}
	rb.Velocity = rb.Transform.Position.Sub(rb.PreviousTransform.Position).Mul(1.0 / dt)
	rb.AngularVelocity = (rb.Transform.Angle - rb.PreviousTransform.Angle) / dt
}

// AddForce accepts a force in kN (1000x), matching the teacher's convention
// of scaling user-facing force units.
func (rb *RigidBody) AddForce(force mgl64.Vec2) {
	if rb.BodyType != BodyTypeStatic {
		rb.Awake()
		rb.accumulatedForce = rb.accumulatedForce.Add(force.Mul(1000))
	}
}

func (rb *RigidBody) AddTorque(torque float64) {
	if rb.BodyType != BodyTypeStatic {
		rb.Awake()
		rb.accumulatedTorque += torque * 1000
	}
}

func (rb *RigidBody) ClearForces() {
	rb.accumulatedForce = mgl64.Vec2{}
	rb.accumulatedTorque = 0
}

func (rb *RigidBody) SupportWorld(direction mgl64.Vec2) mgl64.Vec2 {
	localDirection := rb.Transform.InverseRotate(direction)
	localSupport := rb.Shape.Support(localDirection)
	return rb.Transform.ToWorld(localSupport)
}

func (rb *RigidBody) GetInverseInertiaWorld() float64 {
	if rb.BodyType == BodyTypeStatic {
		return 0
	}
	return rb.InverseInertiaLocal
}

// LinearVelocityAtPoint returns the velocity of the material point of the
// body located at world-space point p, matching Box2D's
// GetLinearVelocityFromWorldPoint.
func (rb *RigidBody) LinearVelocityAtPoint(p mgl64.Vec2) mgl64.Vec2 {
	r := p.Sub(rb.Transform.Position)
	return rb.Velocity.Add(CrossScalarVec(rb.AngularVelocity, r))
}
