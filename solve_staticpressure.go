package liquidfun

// SolveStaticPressure relaxes a Poisson-like pressure field over
// static-pressure-flagged contacts by Jacobi iteration (spec.md §4.10.g):
//
//	p_i = (sum_j(w_ij*p_j) + pressurePerWeight*(w_i - minWeight)) / (w_i + relaxation)
func (s *System) SolveStaticPressure(step TimeStep) {
	buf := s.requestStaticPressureBuffer()
	criticalPressure := s.def.CriticalPressure(step.InvDt)
	pressurePerWeight := s.def.StaticPressureStrength * criticalPressure
	maxPressure := MaxParticlePressure * criticalPressure
	relaxation := s.def.StaticPressureRelaxation

	for t := 0; t < s.def.StaticPressureIterations; t++ {
		for i := range s.accumulation {
			s.accumulation[i] = 0
		}
		for _, c := range s.contacts {
			if c.Flags&FlagStaticPressure == 0 {
				continue
			}
			a, b := c.IndexA, c.IndexB
			s.accumulation[a] += c.Weight * buf[b]
			s.accumulation[b] += c.Weight * buf[a]
		}
		for i := 0; i < s.count; i++ {
			w := s.weight[i]
			if s.flags.Get(i)&FlagStaticPressure == 0 {
				buf[i] = 0
				continue
			}
			wh := s.accumulation[i]
			h := (wh + pressurePerWeight*(w-MinParticleWeight)) / (w + relaxation)
			buf[i] = clamp(h, 0, maxPressure)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
