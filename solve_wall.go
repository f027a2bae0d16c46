package liquidfun

import "github.com/go-gl/mathgl/mgl64"

// SolveWall zeroes the velocity of every wall-flagged particle, the last
// pass in the fixed pipeline so nothing downstream can move them again this
// sub-step (spec.md §4.10.q).
func (s *System) SolveWall() {
	for i := 0; i < s.count; i++ {
		if s.flags.Get(i)&FlagWall != 0 {
			s.velocity.Set(i, mgl64.Vec2{})
		}
	}
}
