package liquidfun

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Energy non-positive change law (§8): damping must not increase kinetic
// energy of approaching particles.
func TestSolveDamping_EnergyDoesNotIncrease(t *testing.T) {
	s := newTestSystem(0.5)
	s.def.DampingStrength = 1.0
	s.CreateParticle(ParticleDef{Position: mgl64.Vec2{0, 0}, Velocity: mgl64.Vec2{1, 0}})
	s.CreateParticle(ParticleDef{Position: mgl64.Vec2{0.4, 0}, Velocity: mgl64.Vec2{-1, 0}})

	s.UpdateContacts(true)
	before := s.kineticEnergy()

	s.SolveDamping(TimeStep{Dt: 0.016, InvDt: 62.5, ParticleIterations: 1})

	after := s.kineticEnergy()
	if after > before+1e-9 {
		t.Fatalf("damping increased kinetic energy: before=%v after=%v", before, after)
	}
}

// Energy non-positive change law (§8): wall must not increase kinetic energy.
func TestSolveWall_EnergyDoesNotIncrease(t *testing.T) {
	s := newTestSystem(0.5)
	s.CreateParticle(ParticleDef{Flags: FlagWall, Position: mgl64.Vec2{0, 0}, Velocity: mgl64.Vec2{5, -3}})
	before := s.kineticEnergy()

	s.SolveWall()

	after := s.kineticEnergy()
	if after > before+1e-9 {
		t.Fatalf("wall increased kinetic energy: before=%v after=%v", before, after)
	}
	if after != 0 {
		t.Fatalf("expected wall particle energy to be exactly zero, got %v", after)
	}
}

// Energy non-positive change law (§8): limit_velocity must not increase
// kinetic energy.
func TestLimitVelocity_EnergyDoesNotIncrease(t *testing.T) {
	s := newTestSystem(0.5)
	s.CreateParticle(ParticleDef{Position: mgl64.Vec2{0, 0}, Velocity: mgl64.Vec2{1000, 0}})
	s.CreateParticle(ParticleDef{Position: mgl64.Vec2{5, 0}, Velocity: mgl64.Vec2{0.1, 0}})
	before := s.kineticEnergy()

	step := TimeStep{Dt: 0.016, InvDt: 62.5, ParticleIterations: 1}
	s.LimitVelocity(step)

	after := s.kineticEnergy()
	if after > before+1e-9 {
		t.Fatalf("limit_velocity increased kinetic energy: before=%v after=%v", before, after)
	}

	critical := s.def.CriticalVelocity(step.InvDt)
	for i := 0; i < s.count; i++ {
		if s.velocity.Get(i).Len() > critical+1e-9 {
			t.Fatalf("particle %d speed %v exceeds critical velocity %v", i, s.velocity.Get(i).Len(), critical)
		}
	}
}
