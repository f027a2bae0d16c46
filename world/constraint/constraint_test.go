package constraint

import (
	"math"
	"testing"

	"github.com/NorhsArk/liquidfun/world/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func TestComputeRestitution(t *testing.T) {
	tests := []struct {
		name     string
		matA     actor.Material
		matB     actor.Material
		expected float64
	}{
		{"both zero", actor.Material{Restitution: 0.0}, actor.Material{Restitution: 0.0}, 0.0},
		{"average of zero and high", actor.Material{Restitution: 0.0}, actor.Material{Restitution: 0.8}, 0.4},
		{"both equal", actor.Material{Restitution: 0.5}, actor.Material{Restitution: 0.5}, 0.5},
		{"both perfect", actor.Material{Restitution: 1.0}, actor.Material{Restitution: 1.0}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeRestitution(tt.matA, tt.matB)
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("ComputeRestitution() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestComputeFriction(t *testing.T) {
	matA := actor.Material{StaticFriction: 0.5, DynamicFriction: 0.2}
	matB := actor.Material{StaticFriction: 0.5, DynamicFriction: 0.8}

	if got := ComputeStaticFriction(matA, matB); math.Abs(got-0.5) > 1e-10 {
		t.Errorf("ComputeStaticFriction() = %v, want 0.5", got)
	}
	if got := ComputeDynamicFriction(matA, matB); math.Abs(got-math.Sqrt(0.16)) > 1e-10 {
		t.Errorf("ComputeDynamicFriction() = %v, want %v", got, math.Sqrt(0.16))
	}
}

func TestClampSmallVelocities(t *testing.T) {
	tests := []struct {
		name             string
		initialVelocity  mgl64.Vec2
		initialAngular   float64
		expectedVelocity mgl64.Vec2
		expectedAngular  float64
	}{
		{"zero stays zero", mgl64.Vec2{0, 0}, 0, mgl64.Vec2{0, 0}, 0},
		{"tiny velocity clamped", mgl64.Vec2{1e-9, 1e-9}, 1e-9, mgl64.Vec2{0, 0}, 0},
		{"normal velocity unchanged", mgl64.Vec2{1.0, 2.0}, 0.5, mgl64.Vec2{1.0, 2.0}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := &actor.RigidBody{Velocity: tt.initialVelocity, AngularVelocity: tt.initialAngular}
			clampSmallVelocities(rb)

			if rb.Velocity != tt.expectedVelocity {
				t.Errorf("Velocity = %v, want %v", rb.Velocity, tt.expectedVelocity)
			}
			if rb.AngularVelocity != tt.expectedAngular {
				t.Errorf("AngularVelocity = %v, want %v", rb.AngularVelocity, tt.expectedAngular)
			}
		})
	}
}
