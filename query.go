package liquidfun

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// QueryAABB reports every live particle whose position falls strictly
// inside box, in ascending tag order, until callback returns false (spec.md
// §4.11's external contract).
func (s *System) QueryAABB(box AABB, callback func(index int) bool) {
	if len(s.proxies) == 0 {
		return
	}
	loTag, hiTag := s.aabbTagBounds(box)
	lo, hi := s.proxyTagRange(loTag, hiTag)
	for i := lo; i < hi; i++ {
		idx := s.proxies[i].index
		p := s.position.Get(idx)
		if box.LowerBound[0] < p[0] && p[0] < box.UpperBound[0] &&
			box.LowerBound[1] < p[1] && p[1] < box.UpperBound[1] {
			if !callback(idx) {
				return
			}
		}
	}
}

// QueryShapeAABB is QueryAABB restricted to shape's own bounding box.
func (s *System) QueryShapeAABB(shape Shape, xf Transform, callback func(index int) bool) {
	s.QueryAABB(shape.ComputeAABB(xf, 0), callback)
}

// RayCast casts the segment [p1,p2] against every live particle (treated as
// a disc of the system's particle diameter), reporting hits in proxy tag
// order, not sorted by fraction.
// callback returns the fraction to continue searching up to (matching the
// b2RayCastCallback convention): a value <1 shortens the remaining segment,
// 0 stops the cast immediately (spec.md §4.11).
func (s *System) RayCast(p1, p2 mgl64.Vec2, callback func(index int, point, normal mgl64.Vec2, fraction float64) float64) {
	if len(s.proxies) == 0 {
		return
	}

	invDiameter := 1.0 / s.def.Diameter()
	diameter := s.def.Diameter()
	squaredDiameter := diameter * diameter

	loTag := computeTag(invDiameter, min(p1[0], p2[0])-diameter, min(p1[1], p2[1])-diameter)
	hiTag := computeTag(invDiameter, max(p1[0], p2[0])+diameter, max(p1[1], p2[1])+diameter)
	lo, hi := s.proxyTagRange(loTag, hiTag)

	fraction := 1.0
	v := p2.Sub(p1)
	v2 := v.Dot(v)
	if v2 == 0 {
		return
	}

	for i := lo; i < hi; i++ {
		idx := s.proxies[i].index
		p := p1.Sub(s.position.Get(idx))
		pv := p.Dot(v)
		p2dot := p.Dot(p)
		determinant := pv*pv - v2*(p2dot-squaredDiameter)
		if determinant < 0 {
			continue
		}
		sqrtDet := math.Sqrt(determinant)
		t := (-pv - sqrtDet) / v2
		if t > fraction {
			continue
		}
		if t < 0 {
			t = (-pv + sqrtDet) / v2
			if t < 0 || t > fraction {
				continue
			}
		}
		n := p.Add(v.Mul(t))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		f := callback(idx, p1.Add(v.Mul(t)), n, t)
		fraction = min(fraction, f)
		if fraction <= 0 {
			break
		}
	}
}

// ComputeParticleCollisionEnergy sums kinetic energy contributed by
// approaching particle-particle contacts, the original's witness for the
// §8 energy-non-increase testable property.
func (s *System) ComputeParticleCollisionEnergy() float64 {
	sum := 0.0
	for _, c := range s.contacts {
		v := s.velocity.Get(c.IndexB).Sub(s.velocity.Get(c.IndexA))
		vn := v.Dot(c.Normal)
		if vn < 0 {
			sum += vn * vn
		}
	}
	return 0.5 * s.def.ParticleMass() * sum
}
