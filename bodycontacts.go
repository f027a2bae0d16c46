package liquidfun

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// UpdateBodyContacts rebuilds the particle-fixture contact list by querying
// the external world over the union AABB of live particles, expanded by one
// diameter (spec.md §4.3).
func (s *System) UpdateBodyContacts(invDt float64) {
	s.bodyContacts = s.bodyContacts[:0]
	if s.world == nil || s.count == 0 {
		return
	}

	diameter := s.def.Diameter()
	box := s.liveParticlesAABB()
	box.LowerBound = box.LowerBound.Sub(mgl64.Vec2{diameter, diameter})
	box.UpperBound = box.UpperBound.Add(mgl64.Vec2{diameter, diameter})

	s.world.QueryAABB(box, func(fixture Fixture) bool {
		if fixture.IsSensor() {
			return true
		}
		shape := fixture.GetShape()
		for child := 0; child < shape.GetChildCount(); child++ {
			s.addBodyContactsForChild(fixture, shape, child, diameter, invDt)
		}
		return true
	})

	if s.def.StrictContactCheck {
		s.RemoveSpuriousBodyContacts()
	}
}

func (s *System) liveParticlesAABB() AABB {
	min := mgl64.Vec2{math.Inf(1), math.Inf(1)}
	max := mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for i := 0; i < s.count; i++ {
		if s.flags.Get(i)&FlagZombie != 0 {
			continue
		}
		p := s.position.Get(i)
		min[0] = math.Min(min[0], p[0])
		min[1] = math.Min(min[1], p[1])
		max[0] = math.Max(max[0], p[0])
		max[1] = math.Max(max[1], p[1])
	}
	if min[0] > max[0] {
		return AABB{}
	}
	return AABB{LowerBound: min, UpperBound: max}
}

// addBodyContactsForChild scans the proxy tag range covering the child
// shape's AABB (expanded by one diameter) and appends a body contact for
// every particle whose distance from the fixture is within one diameter.
func (s *System) addBodyContactsForChild(fixture Fixture, shape Shape, child int, diameter, invDt float64) {
	childAABB := shape.ComputeAABB(fixture.GetBody().GetTransform(), child)
	childAABB.LowerBound = childAABB.LowerBound.Sub(mgl64.Vec2{diameter, diameter})
	childAABB.UpperBound = childAABB.UpperBound.Add(mgl64.Vec2{diameter, diameter})

	body := fixture.GetBody()
	invMassBody, invIBody := bodyInverses(body)

	s.queryProxyRange(childAABB, func(index int) {
		p := s.position.Get(index)
		distance, normal := fixture.ComputeDistance(p)
		if distance >= diameter {
			return
		}

		outward := normal.Mul(-1)
		particleInvMass := 0.0
		if s.flags.Get(index)&FlagWall == 0 {
			particleInvMass = s.def.ParticleInvMass()
		}

		r := p.Sub(body.GetWorldCenter())
		rCrossN := r[0]*outward[1] - r[1]*outward[0]
		denom := particleInvMass + invMassBody + invIBody*rCrossN*rCrossN
		mass := 0.0
		if denom > 0 {
			mass = 1.0 / denom
		}

		s.bodyContacts = append(s.bodyContacts, BodyContact{
			Index:   index,
			Body:    body,
			Fixture: fixture,
			Weight:  1 - distance/diameter,
			Normal:  outward,
			Mass:    mass,
		})
	})
}

func bodyInverses(body Body) (invMass, invInertia float64) {
	mass := body.GetMass()
	lc := body.GetLocalCenter()
	inertia := body.GetInertia() - mass*lc.Dot(lc)
	if mass > 0 {
		invMass = 1.0 / mass
	}
	if inertia > 0 {
		invInertia = 1.0 / inertia
	}
	return
}

// RemoveSpuriousBodyContacts implements the strict-contact filter of
// spec.md §4.4: keeps at most the first K contacts per particle (ordered by
// descending weight) and discards any whose back-projected point falls
// outside the fixture.
func (s *System) RemoveSpuriousBodyContacts() {
	const maxKeptPerParticle = 3
	diameter := s.def.Diameter()

	sort.SliceStable(s.bodyContacts, func(i, j int) bool {
		if s.bodyContacts[i].Index != s.bodyContacts[j].Index {
			return s.bodyContacts[i].Index < s.bodyContacts[j].Index
		}
		return s.bodyContacts[i].Weight > s.bodyContacts[j].Weight
	})

	n := 0
	kept := 0
	lastIndex := -1
	for _, bc := range s.bodyContacts {
		if bc.Index != lastIndex {
			lastIndex = bc.Index
			kept = 0
		}
		if kept >= maxKeptPerParticle {
			continue
		}

		testPoint := s.position.Get(bc.Index).Add(bc.Normal.Mul(diameter * (1 - bc.Weight)))
		if !bc.Fixture.TestPoint(testPoint) {
			continue
		}

		s.bodyContacts[n] = bc
		n++
		kept++
	}
	s.bodyContacts = s.bodyContacts[:n]
}
