package liquidfun

// SolveSolid applies an extra cross-group ejection force proportional to
// combined depth, keeping solid particle groups from interpenetrating
// (spec.md §4.10.d). Requires the depth buffer to already be current for
// this sub-step.
func (s *System) SolveSolid(step TimeStep) {
	depth := s.requestDepthBuffer()
	ejectionStrength := step.InvDt * s.def.EjectionStrength

	for _, c := range s.contacts {
		a, b := c.IndexA, c.IndexB
		if s.group[a] == s.group[b] {
			continue
		}
		h := depth[a] + depth[b]
		f := c.Normal.Mul(ejectionStrength * h * c.Weight)
		s.velocity.Set(a, s.velocity.Get(a).Sub(f))
		s.velocity.Set(b, s.velocity.Get(b).Add(f))
	}
}
