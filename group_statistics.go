package liquidfun

import "github.com/go-gl/mathgl/mgl64"

// updateStatistics recomputes the group's center of mass, linear velocity,
// rotational inertia, and angular velocity from its current particle range,
// caching the result against the system's timestamp so repeated calls
// within the same sub-step are free. Grounded on LiquidFun's
// `b2ParticleGroup::UpdateStatistics` (not present in the retrieved
// original_source, reconstructed from the documented algorithm: mass-weighted
// centroid and velocity, then inertia and angular velocity about that
// centroid).
func (g *ParticleGroup) updateStatistics(s *System) {
	if g.timestamp == s.timestamp {
		return
	}

	mass := s.def.ParticleMass()
	var totalMass float64
	var center, linearVelocity mgl64.Vec2
	for i := g.First; i < g.Last; i++ {
		totalMass += mass
		center = center.Add(s.position.Get(i).Mul(mass))
		linearVelocity = linearVelocity.Add(s.velocity.Get(i).Mul(mass))
	}
	if totalMass > 0 {
		center = center.Mul(1 / totalMass)
		linearVelocity = linearVelocity.Mul(1 / totalMass)
	}

	var inertia, angularVelocity float64
	for i := g.First; i < g.Last; i++ {
		p := s.position.Get(i).Sub(center)
		v := s.velocity.Get(i).Sub(linearVelocity)
		inertia += mass * p.Dot(p)
		angularVelocity += mass * cross(p, v)
	}
	if inertia > 0 {
		angularVelocity /= inertia
	}

	g.Mass = totalMass
	g.Center = center
	g.LinearVelocity = linearVelocity
	g.Inertia = inertia
	g.AngularVelocity = angularVelocity
	g.timestamp = s.timestamp
}
