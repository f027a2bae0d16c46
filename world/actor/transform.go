package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a 2D rigid transform: a position and a scalar angle.
// Box2D's 2D solver represents orientation as a single angle rather than
// a quaternion or rotation matrix; Rotation caches sin/cos of Angle so
// repeated rotations of points don't re-derive them.
type Transform struct {
	Position mgl64.Vec2
	Angle    float64
}

// NewTransform creates an identity transform.
func NewTransform() Transform {
	return Transform{Position: mgl64.Vec2{0, 0}, Angle: 0}
}

// Rotate applies this transform's rotation to a local-space vector.
func (t Transform) Rotate(v mgl64.Vec2) mgl64.Vec2 {
	s, c := math.Sin(t.Angle), math.Cos(t.Angle)
	return mgl64.Vec2{c*v[0] - s*v[1], s*v[0] + c*v[1]}
}

// InverseRotate undoes Rotate.
func (t Transform) InverseRotate(v mgl64.Vec2) mgl64.Vec2 {
	s, c := math.Sin(-t.Angle), math.Cos(-t.Angle)
	return mgl64.Vec2{c*v[0] - s*v[1], s*v[0] + c*v[1]}
}

// ToWorld maps a local-space point to world space.
func (t Transform) ToWorld(v mgl64.Vec2) mgl64.Vec2 {
	return t.Position.Add(t.Rotate(v))
}

// ToLocal maps a world-space point to local space.
func (t Transform) ToLocal(v mgl64.Vec2) mgl64.Vec2 {
	return t.InverseRotate(v.Sub(t.Position))
}

// Cross2 is the scalar 2D cross product a.x*b.y - a.y*b.x.
func Cross2(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// CrossScalarVec rotates v by 90 degrees scaled by s: s * perp(v).
func CrossScalarVec(s float64, v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-s * v[1], s * v[0]}
}
