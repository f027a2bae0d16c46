package liquidfun

// SolveSpring pulls each spring-flagged pair toward its rest distance,
// predicting position one sub-step ahead for stability (spec.md §4.10.l).
func (s *System) SolveSpring(step TimeStep) {
	springStrength := step.InvDt * s.def.SpringStrength
	for _, pair := range s.pairs {
		if pair.Flags&FlagSpring == 0 {
			continue
		}
		a, b := pair.IndexA, pair.IndexB
		va, vb := s.velocity.Get(a), s.velocity.Get(b)
		pa := s.position.Get(a).Add(va.Mul(step.Dt))
		pb := s.position.Get(b).Add(vb.Mul(step.Dt))

		d := pb.Sub(pa)
		r1 := d.Len()
		if r1 <= 0 {
			continue
		}
		strength := springStrength * pair.Strength
		f := d.Mul(strength * (pair.RestDistance - r1) / r1)

		s.velocity.Set(a, va.Sub(f))
		s.velocity.Set(b, vb.Add(f))
	}
}
