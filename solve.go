package liquidfun

// TimeStep mirrors b2TimeStep: the outer time step handed in by the
// surrounding rigid-body world, from which each sub-step's dt/invDt are
// derived (spec.md §6).
type TimeStep struct {
	Dt                 float64
	InvDt              float64
	ParticleIterations int
}

func (t TimeStep) subStep() TimeStep {
	iterations := t.ParticleIterations
	if iterations <= 0 {
		iterations = 1
	}
	return TimeStep{
		Dt:                 t.Dt / float64(iterations),
		InvDt:              t.InvDt * float64(iterations),
		ParticleIterations: iterations,
	}
}

// Step advances the system by one outer time step: zombie compaction (if
// needed) followed by step.ParticleIterations sub-steps, each rebuilding
// contacts and running the fixed-order solver pipeline of spec.md §4.10.
func (s *System) Step(step TimeStep) {
	if s.count == 0 {
		return
	}
	if s.allParticleFlags&FlagZombie != 0 {
		s.SolveZombie()
	}
	if s.staleFlags {
		s.recomputeAllParticleFlags()
	}

	subStep := step.subStep()
	for iter := 0; iter < subStep.ParticleIterations; iter++ {
		s.iterationIndex = iter
		s.timestamp++

		s.UpdateBodyContacts(subStep.InvDt)
		s.UpdateContacts(false)
		s.ComputeWeight()
		if s.allGroupFlags&GroupFlagNeedsUpdateDepth != 0 {
			s.ComputeDepth()
		}

		if s.allParticleFlags&FlagViscous != 0 {
			s.SolveViscous()
		}
		if s.allParticleFlags&FlagPowder != 0 {
			s.SolvePowder(subStep)
		}
		if s.allParticleFlags&FlagTensile != 0 {
			s.SolveTensile(subStep)
		}
		if s.allGroupFlags&GroupFlagSolid != 0 {
			s.SolveSolid(subStep)
		}
		if s.allParticleFlags&FlagColorMixing != 0 {
			s.SolveColorMixing()
		}
		s.SolveGravity(subStep)
		if s.allParticleFlags&FlagStaticPressure != 0 {
			s.SolveStaticPressure(subStep)
		}
		s.SolvePressure(subStep)
		s.SolveDamping(subStep)
		if s.allParticleFlags&extraDampingFlags != 0 {
			s.SolveExtraDamping()
		}
		// Elastic and spring read current velocities for numerical
		// stability and must run as late as possible among the force
		// passes.
		if s.allParticleFlags&FlagElastic != 0 {
			s.SolveElastic(subStep)
		}
		if s.allParticleFlags&FlagSpring != 0 {
			s.SolveSpring(subStep)
		}
		s.LimitVelocity(subStep)
		if s.allParticleFlags&FlagBarrier != 0 {
			s.SolveBarrier(subStep)
		}
		// Collision, rigid, and wall run last because they may require
		// particles to end the sub-step with specific velocities.
		s.SolveCollision(subStep)
		if s.allGroupFlags&GroupFlagRigid != 0 {
			s.SolveRigid(subStep)
		}
		if s.allParticleFlags&FlagWall != 0 {
			s.SolveWall()
		}

		for i := 0; i < s.count; i++ {
			s.position.Set(i, s.position.Get(i).Add(s.velocity.Get(i).Mul(subStep.Dt)))
		}
	}
}
