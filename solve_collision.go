package liquidfun

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SolveCollision detects particles crossing into a body's shape during this
// sub-step, pulls them back to just outside the boundary, reports the
// reaction impulse to the body, and clamps the body's kinetic energy if the
// reaction made it unreasonably fast (spec.md §4.10.o).
func (s *System) SolveCollision(step TimeStep) {
	if s.world == nil || s.count == 0 {
		return
	}

	box := AABB{
		LowerBound: mgl64.Vec2{math.Inf(1), math.Inf(1)},
		UpperBound: mgl64.Vec2{math.Inf(-1), math.Inf(-1)},
	}
	for i := 0; i < s.count; i++ {
		v := s.velocity.Get(i)
		p1 := s.position.Get(i)
		p2 := p1.Add(v.Mul(step.Dt))
		box.LowerBound = vecMin(box.LowerBound, vecMin(p1, p2))
		box.UpperBound = vecMax(box.UpperBound, vecMax(p1, p2))
	}

	diameter := s.def.Diameter()
	criticalVelocitySq := s.def.CriticalVelocity(step.InvDt)
	criticalVelocitySq *= criticalVelocitySq
	inverseDensity := 0.0
	if s.def.Density > 0 {
		inverseDensity = 1.0 / s.def.Density
	}

	s.world.QueryAABB(box, func(fixture Fixture) bool {
		if fixture.IsSensor() {
			return true
		}
		shape := fixture.GetShape()
		body := fixture.GetBody()
		limitBodyVelocity := false

		for child := 0; child < shape.GetChildCount(); child++ {
			childBox := fixture.GetAABB(child)
			childBox.LowerBound = childBox.LowerBound.Sub(mgl64.Vec2{diameter, diameter})
			childBox.UpperBound = childBox.UpperBound.Add(mgl64.Vec2{diameter, diameter})

			s.queryProxyRange(childBox, func(a int) {
				ap := s.position.Get(a)
				av := s.velocity.Get(a)

				var p1 mgl64.Vec2
				if s.iterationIndex == 0 {
					p1 = body.GetTransform().ToWorld(body.GetPreviousTransform().ToLocal(ap))
				} else {
					p1 = ap
				}
				p2 := ap.Add(av.Mul(step.Dt))

				output, hit := fixture.RayCast(RayCastInput{P1: p1, P2: p2, MaxFraction: 1}, child)
				if !hit {
					return
				}

				p := p1.Mul(1 - output.Fraction).Add(p2.Mul(output.Fraction)).Add(output.Normal.Mul(LinearSlop))
				v := p.Sub(ap).Mul(step.InvDt)
				s.velocity.Set(a, v)

				f := av.Sub(v).Mul(s.def.ParticleMass())
				f = output.Normal.Mul(f.Dot(output.Normal))

				densityRatio := fixture.GetDensity() * inverseDensity
				if densityRatio < 1 {
					f = f.Mul(densityRatio)
				}
				body.ApplyLinearImpulse(f, p, true)
				limitBodyVelocity = true
			})
		}

		if limitBodyVelocity {
			lc := body.GetLocalCenter()
			m := body.GetMass()
			inertia := body.GetInertia() - m*lc.Dot(lc)
			v := body.GetLinearVelocity()
			w := body.GetAngularVelocity()
			energy := 0.5*m*v.Dot(v) + 0.5*inertia*w*w
			energy0 := m * criticalVelocitySq
			if energy > energy0 {
				scale := energy0 / energy
				body.SetLinearVelocity(v.Mul(scale))
				body.SetAngularVelocity(scale * w)
			}
		}
		return true
	})
}
