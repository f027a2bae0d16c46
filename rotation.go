package liquidfun

import "github.com/go-gl/mathgl/mgl64"

// rotate applies the rotation whose cosine/sine are c/s to v, the Go
// equivalent of b2Mul(b2Rot, b2Vec2).
func rotate(c, s float64, v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{c*v[0] - s*v[1], s*v[0] + c*v[1]}
}

// crossScalarVec is the Go equivalent of b2Cross(float32, b2Vec2): rotating
// v by 90 degrees and scaling by s.
func crossScalarVec(s float64, v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-s * v[1], s * v[0]}
}
