package epa

import (
	"math"

	"github.com/NorhsArk/liquidfun/world/actor"
	"github.com/NorhsArk/liquidfun/world/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

// GenerateManifold builds 1-2 contact points for a 2D collision using
// reference/incident edge clipping, the 2D analogue of Sutherland-Hodgman
// polygon clipping used for 3D box manifolds.
func GenerateManifold(bodyA, bodyB *actor.RigidBody, normal mgl64.Vec2, depth float64) []constraint.ContactPoint {
	localNormalA := bodyA.Transform.InverseRotate(normal)
	localNormalB := bodyB.Transform.InverseRotate(normal.Mul(-1))

	featureA := bodyA.Shape.GetContactFeature(localNormalA)
	featureB := bodyB.Shape.GetContactFeature(localNormalB)

	worldA := transformFeature(featureA, bodyA.Transform)
	worldB := transformFeature(featureB, bodyB.Transform)

	var incident, reference []mgl64.Vec2
	if len(worldB) <= len(worldA) {
		incident, reference = worldB, worldA
	} else {
		incident, reference = worldA, worldB
	}

	if len(incident) == 1 {
		return []constraint.ContactPoint{{Position: incident[0], Penetration: depth}}
	}
	if len(reference) < 2 {
		return []constraint.ContactPoint{{Position: incident[0], Penetration: depth}}
	}

	clipped := clipSegmentToReference(incident[0], incident[1], reference[0], reference[1])

	points := make([]constraint.ContactPoint, 0, len(clipped))
	for _, p := range clipped {
		points = append(points, constraint.ContactPoint{Position: p, Penetration: depth})
	}
	if len(points) == 0 {
		points = append(points, constraint.ContactPoint{Position: bodyB.SupportWorld(normal.Mul(-1)), Penetration: depth})
	}
	return points
}

// clipSegmentToReference clips the incident segment [i1,i2] to the span of
// the reference edge [r1,r2] along its own tangent direction.
func clipSegmentToReference(i1, i2, r1, r2 mgl64.Vec2) []mgl64.Vec2 {
	tangent := r2.Sub(r1)
	length := tangent.Len()
	if length < 1e-12 {
		return []mgl64.Vec2{i1, i2}
	}
	tangent = tangent.Mul(1.0 / length)

	t1 := i1.Sub(r1).Dot(tangent)
	t2 := i2.Sub(r1).Dot(tangent)

	lo, hi := 0.0, length
	out := make([]mgl64.Vec2, 0, 2)

	clampPoint := func(t float64) mgl64.Vec2 {
		tc := math.Max(lo, math.Min(hi, t))
		return r1.Add(tangent.Mul(tc))
	}

	if t1 >= lo && t1 <= hi {
		out = append(out, i1)
	} else {
		out = append(out, clampPoint(t1))
	}
	if t2 >= lo && t2 <= hi {
		out = append(out, i2)
	} else {
		out = append(out, clampPoint(t2))
	}
	return out
}

func transformFeature(feature []mgl64.Vec2, transform actor.Transform) []mgl64.Vec2 {
	result := make([]mgl64.Vec2, len(feature))
	for i, point := range feature {
		result[i] = transform.ToWorld(point)
	}
	return result
}
