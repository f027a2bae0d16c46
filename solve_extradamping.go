package liquidfun

// SolveExtraDamping applies a second body-contact damping pass restricted to
// particles carrying an extra-damping flag (spec.md §4.10.j); repeated
// damping suppresses vibration for particles prone to strong repulsion.
func (s *System) SolveExtraDamping() {
	for _, bc := range s.bodyContacts {
		a := bc.Index
		if s.flags.Get(a)&extraDampingFlags == 0 {
			continue
		}
		m := bc.Mass
		n := bc.Normal
		p := s.position.Get(a)
		v := bc.Body.GetLinearVelocityFromWorldPoint(p).Sub(s.velocity.Get(a))
		vn := v.Dot(n)
		if vn >= 0 {
			continue
		}
		f := n.Mul(0.5 * m * vn)
		s.velocity.Set(a, s.velocity.Get(a).Add(f.Mul(s.def.ParticleInvMass())))
		bc.Body.ApplyLinearImpulse(f.Mul(-1), p, true)
	}
}
