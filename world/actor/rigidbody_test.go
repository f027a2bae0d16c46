package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewRigidBodyDynamicMass(t *testing.T) {
	shape := &Circle{Radius: 1}
	rb := NewRigidBody(NewTransform(), shape, BodyTypeDynamic, 2.0)

	wantMass := 2.0 * math.Pi
	if !floatEqual(rb.Material.GetMass(), wantMass, 1e-9) {
		t.Errorf("mass = %v, want %v", rb.Material.GetMass(), wantMass)
	}
	if rb.InertiaLocal <= 0 {
		t.Error("dynamic body should have positive inertia")
	}
}

func TestNewRigidBodyStaticIsImmovable(t *testing.T) {
	shape := NewBoxPolygon(5, 1)
	rb := NewRigidBody(NewTransform(), shape, BodyTypeStatic, 1.0)

	if !math.IsInf(rb.Material.GetMass(), 1) {
		t.Error("static body should have infinite mass")
	}
	if rb.InverseInertiaLocal != 0 {
		t.Error("static body should have zero inverse inertia")
	}
}

func TestRigidBodyIntegrateAppliesGravity(t *testing.T) {
	rb := NewRigidBody(NewTransform(), &Circle{Radius: 1}, BodyTypeDynamic, 1.0)
	gravity := mgl64.Vec2{0, -10}

	rb.Integrate(0.1, gravity)

	if !floatEqual(rb.Velocity[1], -1.0, 1e-9) {
		t.Errorf("velocity.y = %v, want -1.0 after one step under gravity", rb.Velocity[1])
	}
	if !floatEqual(rb.Transform.Position[1], -0.1, 1e-9) {
		t.Errorf("position.y = %v, want -0.1", rb.Transform.Position[1])
	}
}

func TestRigidBodyIntegrateSkipsStaticAndSleeping(t *testing.T) {
	rb := NewRigidBody(NewTransform(), &Circle{Radius: 1}, BodyTypeStatic, 1.0)
	rb.Integrate(0.1, mgl64.Vec2{0, -10})
	if rb.Velocity.Len() != 0 {
		t.Error("static body should not accumulate velocity")
	}

	dyn := NewRigidBody(NewTransform(), &Circle{Radius: 1}, BodyTypeDynamic, 1.0)
	dyn.Sleep()
	dyn.Integrate(0.1, mgl64.Vec2{0, -10})
	if dyn.Velocity.Len() != 0 {
		t.Error("sleeping body should not accumulate velocity")
	}
}

func TestRigidBodyTrySleep(t *testing.T) {
	rb := NewRigidBody(NewTransform(), &Circle{Radius: 1}, BodyTypeDynamic, 1.0)
	rb.Velocity = mgl64.Vec2{0.001, 0}

	for i := 0; i < 10; i++ {
		rb.TrySleep(0.02, 0.1, 0.05)
	}

	if !rb.IsSleeping {
		t.Error("slow body should fall asleep after enough time below threshold")
	}
}

func TestRigidBodyAwakeOnForce(t *testing.T) {
	rb := NewRigidBody(NewTransform(), &Circle{Radius: 1}, BodyTypeDynamic, 1.0)
	rb.Sleep()

	rb.AddForce(mgl64.Vec2{1, 0})

	if rb.IsSleeping {
		t.Error("applying a force should wake the body")
	}
}

func TestRigidBodyLinearVelocityAtPoint(t *testing.T) {
	rb := NewRigidBody(NewTransform(), &Circle{Radius: 1}, BodyTypeDynamic, 1.0)
	rb.Velocity = mgl64.Vec2{1, 0}
	rb.AngularVelocity = 1.0

	v := rb.LinearVelocityAtPoint(mgl64.Vec2{1, 0})

	want := mgl64.Vec2{1, 1}
	if !vec2Equal(v, want, 1e-9) {
		t.Errorf("LinearVelocityAtPoint() = %v, want %v", v, want)
	}
}

func TestRigidBodyUpdateDerivesVelocityFromPositionDelta(t *testing.T) {
	rb := NewRigidBody(NewTransform(), &Circle{Radius: 1}, BodyTypeDynamic, 1.0)
	rb.PreviousTransform = rb.Transform
	rb.Transform.Position = mgl64.Vec2{1, 0}
	rb.Transform.Angle = 0.5

	rb.Update(0.5)

	if !vec2Equal(rb.Velocity, mgl64.Vec2{2, 0}, 1e-9) {
		t.Errorf("Velocity = %v, want (2,0)", rb.Velocity)
	}
	if !floatEqual(rb.AngularVelocity, 1.0, 1e-9) {
		t.Errorf("AngularVelocity = %v, want 1.0", rb.AngularVelocity)
	}
}
