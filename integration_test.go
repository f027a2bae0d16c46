package liquidfun

import (
	"testing"

	"github.com/NorhsArk/liquidfun/world"
	"github.com/NorhsArk/liquidfun/world/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// TestSystem_StepAgainstWorld exercises the body-contact, collision, and
// gravity paths end-to-end against a real *world.World, rather than the
// nil Query used by the rest of the root package's tests: particles fall
// under the world's gravity, pick up body contacts against a static ground
// fixture, and must not sink through it.
func TestSystem_StepAgainstWorld(t *testing.T) {
	w := &world.World{
		Gravity:     mgl64.Vec2{0, -10},
		Substeps:    4,
		SpatialGrid: world.NewSpatialGrid(4.0, 64),
		Workers:     1,
		Events:      world.NewEvents(),
	}
	ground := actor.NewRigidBody(actor.Transform{Position: mgl64.Vec2{0, -1}}, actor.NewBoxPolygon(10, 1), actor.BodyTypeStatic, 1.0)
	w.AddBody(ground)

	s := NewSystem(Def{Radius: 0.1, Density: 1, StrictContactCheck: true}, w)
	s.CreateParticle(ParticleDef{Position: mgl64.Vec2{0, 1}})
	s.CreateParticle(ParticleDef{Position: mgl64.Vec2{0.15, 1.2}})

	step := TimeStep{Dt: 1.0 / 60.0, InvDt: 60, ParticleIterations: 1}
	sawBodyContact := false
	for i := 0; i < 180; i++ {
		s.Step(step)
		if len(s.bodyContacts) > 0 {
			sawBodyContact = true
		}
	}

	if !sawBodyContact {
		t.Fatal("expected particles to accumulate at least one body contact against the ground fixture")
	}

	groundTop := -1.0 + 1.0
	for i := 0; i < s.count; i++ {
		p := s.position.Get(i)
		if p[1] < groundTop-s.def.Diameter() {
			t.Errorf("particle %d sank through the ground: y = %v, ground top at %v", i, p[1], groundTop)
		}
	}
}
