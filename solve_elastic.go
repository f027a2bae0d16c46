package liquidfun

import "math"

// SolveElastic fits the rigid rotation that best maps each triad's rest
// shape (PA/PB/PC, centered on the rest midpoint) onto its predicted
// current shape, then nudges velocities toward that rotated rest shape
// (spec.md §4.10.k). Runs late in the pipeline because it reads
// current velocities for numerical stability.
//
// The precomputed KA/KB/KC/S coefficients on Triad are not consulted here,
// matching the original: they describe the rest-shape edge geometry but
// SolveElastic's rotation fit works directly from PA/PB/PC.
func (s *System) SolveElastic(step TimeStep) {
	elasticStrength := step.InvDt * s.def.ElasticStrength
	for _, triad := range s.triads {
		if triad.Flags&FlagElastic == 0 {
			continue
		}
		a, b, c := triad.IndexA, triad.IndexB, triad.IndexC
		oa, ob, oc := triad.PA, triad.PB, triad.PC

		va, vb, vc := s.velocity.Get(a), s.velocity.Get(b), s.velocity.Get(c)
		pa := s.position.Get(a).Add(va.Mul(step.Dt))
		pb := s.position.Get(b).Add(vb.Mul(step.Dt))
		pc := s.position.Get(c).Add(vc.Mul(step.Dt))

		mid := pa.Add(pb).Add(pc).Mul(1.0 / 3.0)
		pa = pa.Sub(mid)
		pb = pb.Sub(mid)
		pc = pc.Sub(mid)

		rs := cross(oa, pa) + cross(ob, pb) + cross(oc, pc)
		rc := oa.Dot(pa) + ob.Dot(pb) + oc.Dot(pc)
		r2 := rs*rs + rc*rc
		invR := 1.0
		if r2 > 0 {
			invR = 1.0 / math.Sqrt(r2)
		}
		rs *= invR
		rc *= invR

		strength := elasticStrength * triad.Strength
		va = va.Add(rotate(rc, rs, oa).Sub(pa).Mul(strength))
		vb = vb.Add(rotate(rc, rs, ob).Sub(pb).Mul(strength))
		vc = vc.Add(rotate(rc, rs, oc).Sub(pc).Mul(strength))

		s.velocity.Set(a, va)
		s.velocity.Set(b, vb)
		s.velocity.Set(c, vc)
	}
}
