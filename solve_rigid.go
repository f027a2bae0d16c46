package liquidfun

import (
	"math"
)

// SolveRigid advances every rigid-flagged group's cached transform by one
// sub-step of its own angular/linear velocity, then overwrites each of its
// particles' velocities with the rigid motion implied by the transform
// delta, so the group moves as a single solid body this sub-step (spec.md
// §4.10.p).
func (s *System) SolveRigid(step TimeStep) {
	for g := s.groupList; g != nil; g = g.next {
		if g.Flags&GroupFlagRigid == 0 {
			continue
		}
		g.updateStatistics(s)

		rotAngle := step.Dt * g.AngularVelocity
		c, sn := math.Cos(rotAngle), math.Sin(rotAngle)
		deltaPos := g.Center.Add(g.LinearVelocity.Mul(step.Dt)).Sub(rotate(c, sn, g.Center))

		g.Transform = Transform{
			Position: deltaPos.Add(rotate(c, sn, g.Transform.Position)),
			Angle:    rotAngle + g.Transform.Angle,
		}

		velQc, velQs := step.InvDt*(c-1), step.InvDt*sn
		velP := deltaPos.Mul(step.InvDt)
		for i := g.First; i < g.Last; i++ {
			v := rotate(velQc, velQs, s.position.Get(i)).Add(velP)
			s.velocity.Set(i, v)
		}
	}
}
