// Package epa implements the Expanding Polytope Algorithm for 2D penetration
// depth and contact manifold computation, run after GJK detects overlap.
//
// In 2D the polytope is a convex polygon (a loop of points) rather than a
// triangulated hull; expansion inserts one new vertex per iteration between
// the two vertices of the edge closest to the origin.
package epa

import (
	"fmt"
	"math"

	"github.com/NorhsArk/liquidfun/world/actor"
	"github.com/NorhsArk/liquidfun/world/constraint"
	"github.com/NorhsArk/liquidfun/world/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	MaxIterations                 = 32
	ConvergenceTolerance          = 0.001
	MinEdgeDistance               = 0.0001
	DegeneratePenetrationEstimate = 0.01
)

// EPA computes the contact normal, penetration depth and manifold points for
// two bodies whose GJK simplex contains the origin.
func EPA(a, b *actor.RigidBody, simplex *gjk.Simplex) (constraint.ContactConstraint, error) {
	if simplex.Count < 3 {
		return handleDegenerateSimplex(a, b, simplex), nil
	}

	polytope := []mgl64.Vec2{simplex.Points[0], simplex.Points[1], simplex.Points[2]}
	ensureCCW(polytope)

	for i := 0; i < MaxIterations; i++ {
		edgeIndex, normal, distance := closestEdge(polytope)

		support := gjk.MinkowskiSupport(a, b, normal)
		newDistance := support.Dot(normal)

		if newDistance-distance < ConvergenceTolerance {
			points := GenerateManifold(a, b, normal, distance)
			return constraint.ContactConstraint{BodyA: a, BodyB: b, Points: points, Normal: normal}, nil
		}

		next := make([]mgl64.Vec2, 0, len(polytope)+1)
		next = append(next, polytope[:edgeIndex+1]...)
		next = append(next, support)
		next = append(next, polytope[edgeIndex+1:]...)
		polytope = next
	}

	return constraint.ContactConstraint{}, fmt.Errorf("EPA failed to converge after %d iterations", MaxIterations)
}

// closestEdge finds the polygon edge closest to the origin and returns its
// index, outward normal, and distance from the origin to its supporting line.
func closestEdge(polytope []mgl64.Vec2) (int, mgl64.Vec2, float64) {
	bestIndex := 0
	bestDistance := math.Inf(1)
	var bestNormal mgl64.Vec2

	n := len(polytope)
	for i := 0; i < n; i++ {
		a := polytope[i]
		b := polytope[(i+1)%n]
		edge := b.Sub(a)

		normal := mgl64.Vec2{edge[1], -edge[0]}
		length := normal.Len()
		if length < 1e-12 {
			continue
		}
		normal = normal.Mul(1.0 / length)

		distance := a.Dot(normal)
		if distance < 0 {
			normal = normal.Mul(-1)
			distance = -distance
		}

		if distance < bestDistance {
			bestDistance = distance
			bestNormal = normal
			bestIndex = i
		}
	}

	if bestDistance < MinEdgeDistance {
		bestDistance = MinEdgeDistance
	}
	return bestIndex, bestNormal, bestDistance
}

// ensureCCW reorders a triangle's vertices to counter-clockwise winding so
// edge normals computed by closestEdge point outward consistently.
func ensureCCW(polytope []mgl64.Vec2) {
	area := 0.0
	n := len(polytope)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += actor.Cross2(polytope[i], polytope[j])
	}
	if area < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			polytope[i], polytope[j] = polytope[j], polytope[i]
		}
	}
}

func handleDegenerateSimplex(bodyA, bodyB *actor.RigidBody, simplex *gjk.Simplex) constraint.ContactConstraint {
	if simplex.Count >= 2 {
		a := simplex.Points[0]
		b := simplex.Points[1]

		distA := a.Len()
		distB := b.Len()

		var penetration float64
		var normal mgl64.Vec2
		if distA < distB {
			penetration, normal = distA, normalizeOrDefault(a)
		} else {
			penetration, normal = distB, normalizeOrDefault(b)
		}

		points := []constraint.ContactPoint{{Position: bodyA.SupportWorld(normal), Penetration: penetration}}
		return constraint.ContactConstraint{BodyA: bodyA, BodyB: bodyB, Points: points, Normal: normal}
	}

	normal := bodyB.Transform.Position.Sub(bodyA.Transform.Position)
	if normal.Len() < 1e-8 {
		normal = mgl64.Vec2{0, 1}
	} else {
		normal = normal.Normalize()
	}

	points := []constraint.ContactPoint{{Position: bodyA.SupportWorld(normal), Penetration: DegeneratePenetrationEstimate}}
	return constraint.ContactConstraint{BodyA: bodyA, BodyB: bodyB, Points: points, Normal: normal}
}

func normalizeOrDefault(v mgl64.Vec2) mgl64.Vec2 {
	if v.Len() < 1e-8 {
		return mgl64.Vec2{0, 1}
	}
	return v.Normalize()
}
