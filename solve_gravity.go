package liquidfun

// SolveGravity applies one sub-step of world gravity, scaled by the
// system's own gravity_scale tunable (spec.md §4.10.f).
func (s *System) SolveGravity(step TimeStep) {
	if s.world == nil {
		return
	}
	gravity := s.world.GetGravity().Mul(step.Dt * s.def.GravityScale)
	for i := 0; i < s.count; i++ {
		s.velocity.Set(i, s.velocity.Get(i).Add(gravity))
	}
}
