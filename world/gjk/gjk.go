// Package gjk implements the Gilbert-Johnson-Keerthi algorithm for 2D convex
// overlap testing between rigid bodies.
//
// GJK tests whether the Minkowski difference of two convex shapes contains
// the origin, building a simplex incrementally. In 2D the simplex never
// exceeds 3 points: a triangle containing the origin is the terminal case,
// where 3D GJK needs a tetrahedron.
package gjk

import (
	"sync"

	"github.com/NorhsArk/liquidfun/world/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Simplex holds 1-3 points of the Minkowski difference.
type Simplex struct {
	Points [3]mgl64.Vec2
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}

// MinkowskiSupport returns the support point of A-B in the given direction.
func MinkowskiSupport(a, b *actor.RigidBody, direction mgl64.Vec2) mgl64.Vec2 {
	return a.SupportWorld(direction).Sub(b.SupportWorld(direction.Mul(-1)))
}

// GJK reports whether the convex bodies a and b overlap, leaving the final
// simplex in simplex for EPA to expand from.
func GJK(a, b *actor.RigidBody, simplex *Simplex) bool {
	direction := b.Transform.Position.Sub(a.Transform.Position)
	if direction.LenSqr() < 1e-12 {
		direction = mgl64.Vec2{1, 0}
	}

	simplex.Points[0] = MinkowskiSupport(a, b, direction)
	simplex.Count = 1

	direction = simplex.Points[0].Mul(-1)
	if direction.LenSqr() < 1e-16 {
		return true
	}

	const maxIterations = 32
	for i := 0; i < maxIterations; i++ {
		newPoint := MinkowskiSupport(a, b, direction)
		if newPoint.Dot(direction) <= 0 {
			return false
		}

		simplex.Points[simplex.Count] = newPoint
		simplex.Count++

		if containsOrigin(simplex, &direction) {
			return true
		}
	}
	return false
}

func containsOrigin(simplex *Simplex, direction *mgl64.Vec2) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	}
	return false
}

// line handles the 2-point simplex: either the origin is beyond A (reduce to
// point A) or it lies in the Voronoi region of edge AB.
func line(simplex *Simplex, direction *mgl64.Vec2) bool {
	a := simplex.Points[1]
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ab.LenSqr() < 1e-12 {
		simplex.Points[0] = a
		simplex.Count = 1
		*direction = ao
		return ao.LenSqr() < 1e-12
	}

	if ab.Dot(ao) <= 0 {
		simplex.Points[0] = a
		simplex.Count = 1
		*direction = ao
		return false
	}

	// perp(ab) pointing toward the origin
	perp := mgl64.Vec2{-ab[1], ab[0]}
	if perp.Dot(ao) < 0 {
		perp = perp.Mul(-1)
	}
	if perp.LenSqr() < 1e-16 {
		return true
	}
	*direction = perp
	return false
}

// triangle handles the 3-point simplex: the terminal case in 2D. If the
// origin is outside an edge, the simplex reduces to that edge; otherwise the
// origin is inside the triangle and the bodies overlap.
func triangle(simplex *Simplex, direction *mgl64.Vec2) bool {
	a := simplex.Points[2]
	b := simplex.Points[1]
	c := simplex.Points[0]

	ao := a.Mul(-1)

	ab := b.Sub(a)
	ac := c.Sub(a)

	abPerp := mgl64.Vec2{-ab[1], ab[0]}
	if abPerp.Dot(ac) > 0 {
		abPerp = abPerp.Mul(-1)
	}
	if abPerp.Dot(ao) > 0 {
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		return line(simplex, direction)
	}

	acPerp := mgl64.Vec2{-ac[1], ac[0]}
	if acPerp.Dot(ab) > 0 {
		acPerp = acPerp.Mul(-1)
	}
	if acPerp.Dot(ao) > 0 {
		simplex.Points[0] = c
		simplex.Points[1] = a
		simplex.Count = 2
		return line(simplex, direction)
	}

	return true
}
