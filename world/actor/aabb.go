package actor

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box in 2D.
type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// ContainsPoint reports whether point lies inside the box, inclusive of the boundary.
func (a AABB) ContainsPoint(point mgl64.Vec2) bool {
	return point[0] >= a.Min[0] && point[0] <= a.Max[0] &&
		point[1] >= a.Min[1] && point[1] <= a.Max[1]
}

// Overlaps reports whether two boxes intersect on both axes.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max[0] >= other.Min[0] && a.Min[0] <= other.Max[0] &&
		a.Max[1] >= other.Min[1] && a.Min[1] <= other.Max[1]
}

// Union returns the smallest box containing both a and other.
func (a AABB) Union(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec2{min(a.Min[0], other.Min[0]), min(a.Min[1], other.Min[1])},
		Max: mgl64.Vec2{max(a.Max[0], other.Max[0]), max(a.Max[1], other.Max[1])},
	}
}
