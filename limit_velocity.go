package liquidfun

import "math"

// LimitVelocity clamps every particle's speed to the critical velocity for
// this sub-step, preventing fast particles from tunnelling through
// neighbors or bodies in a single sub-step (spec.md §4.10.m).
func (s *System) LimitVelocity(step TimeStep) {
	criticalVelocitySq := s.def.CriticalVelocity(step.InvDt)
	criticalVelocitySq *= criticalVelocitySq
	for i := 0; i < s.count; i++ {
		v := s.velocity.Get(i)
		v2 := v.Dot(v)
		if v2 > criticalVelocitySq {
			s.velocity.Set(i, v.Mul(math.Sqrt(criticalVelocitySq/v2)))
		}
	}
}
