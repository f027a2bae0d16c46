package liquidfun

import "github.com/go-gl/mathgl/mgl64"

// SolveTensile models surface tension in two passes: first accumulating a
// per-particle weighted-normal imbalance over tensile contacts, then
// applying an impulse combining a cohesion term (from total contact weight)
// and a curvature term (from the imbalance difference) along each contact
// normal (spec.md §4.10.c).
func (s *System) SolveTensile(step TimeStep) {
	for i := range s.accumulation2 {
		s.accumulation2[i] = mgl64.Vec2{}
	}
	for _, c := range s.contacts {
		if c.Flags&FlagTensile == 0 {
			continue
		}
		a, b := c.IndexA, c.IndexB
		weightedNormal := c.Normal.Mul((1 - c.Weight) * c.Weight)
		s.accumulation2[a] = s.accumulation2[a].Sub(weightedNormal)
		s.accumulation2[b] = s.accumulation2[b].Add(weightedNormal)
	}

	criticalVelocity := s.def.CriticalVelocity(step.InvDt)
	pressureStrength := s.def.SurfaceTensionPressureStrength * criticalVelocity
	normalStrength := s.def.SurfaceTensionNormalStrength * criticalVelocity

	for _, c := range s.contacts {
		if c.Flags&FlagTensile == 0 {
			continue
		}
		a, b := c.IndexA, c.IndexB
		h := s.weight[a] + s.weight[b]
		sVec := s.accumulation2[b].Sub(s.accumulation2[a])
		fn := (pressureStrength*(h-2) + normalStrength*sVec.Dot(c.Normal)) * c.Weight
		f := c.Normal.Mul(fn)
		s.velocity.Set(a, s.velocity.Get(a).Sub(f))
		s.velocity.Set(b, s.velocity.Get(b).Add(f))
	}
}
