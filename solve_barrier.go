package liquidfun

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SolveBarrier decelerates any particle about to pass between a
// barrier-flagged pair within this sub-step's look-ahead window, and
// snaps barrier-wall particles to zero velocity / barrier particles in a
// rigid group to their group's rigid-motion velocity (spec.md §4.10.n).
func (s *System) SolveBarrier(step TimeStep) {
	for i := 0; i < s.count; i++ {
		flags := s.flags.Get(i)
		if flags&FlagBarrier == 0 {
			continue
		}
		if flags&FlagWall != 0 {
			s.velocity.Set(i, mgl64.Vec2{})
			continue
		}
		g := s.group[i]
		if g != nil && g.Flags&GroupFlagRigid != 0 {
			g.updateStatistics(s)
			rel := s.position.Get(i).Sub(g.Center)
			s.velocity.Set(i, g.LinearVelocity.Add(crossScalarVec(g.AngularVelocity, rel)))
		}
	}

	diameter := s.def.Diameter()
	tmax := BarrierCollisionTime * step.Dt

	for _, pair := range s.pairs {
		if pair.Flags&FlagBarrier == 0 {
			continue
		}
		a, b := pair.IndexA, pair.IndexB
		pa, pb := s.position.Get(a), s.position.Get(b)
		lower := vecMin(pa, pb).Sub(mgl64.Vec2{diameter, diameter})
		upper := vecMax(pa, pb).Add(mgl64.Vec2{diameter, diameter})
		box := AABB{LowerBound: lower, UpperBound: upper}

		va, vb := s.velocity.Get(a), s.velocity.Get(b)
		pba := pb.Sub(pa)
		vba := vb.Sub(va)
		groupA, groupB := s.group[a], s.group[b]

		s.queryProxyRange(box, func(c int) {
			if groupA == s.group[c] || groupB == s.group[c] {
				return
			}
			pc := s.position.Get(c)
			vc := s.velocity.Get(c)
			pca := pc.Sub(pa)
			vca := vc.Sub(va)

			// Solve for (s,t) satisfying
			//   (1-s)*(pa+t*va)+s*(pb+t*vb) = pc+t*vc
			e2 := cross(vba, vca)
			e1 := cross(pba, vca) - cross(pca, vba)
			e0 := cross(pba, pca)

			var t, sVal float64
			var qba, qca mgl64.Vec2
			if e2 == 0 {
				if e1 == 0 {
					return
				}
				t = -e0 / e1
				if t < 0 || t > tmax {
					return
				}
				qba = pba.Add(vba.Mul(t))
				qca = pca.Add(vca.Mul(t))
				sVal = qba.Dot(qca) / qba.Dot(qba)
				if sVal < 0 || sVal > 1 {
					return
				}
			} else {
				det := e1*e1 - 4*e0*e2
				if det < 0 {
					return
				}
				sqrtDet := math.Sqrt(det)
				t1 := (-e1 - sqrtDet) / (2 * e2)
				t2 := (-e1 + sqrtDet) / (2 * e2)
				if t1 > t2 {
					t1, t2 = t2, t1
				}
				t = t1
				qba = pba.Add(vba.Mul(t))
				qca = pca.Add(vca.Mul(t))
				sVal = qba.Dot(qca) / qba.Dot(qba)
				if t < 0 || t > tmax || sVal < 0 || sVal > 1 {
					t = t2
					if t < 0 || t > tmax {
						return
					}
					qba = pba.Add(vba.Mul(t))
					qca = pca.Add(vca.Mul(t))
					sVal = qba.Dot(qca) / qba.Dot(qba)
					if sVal < 0 || sVal > 1 {
						return
					}
				}
			}
			s.velocity.Set(c, va.Add(vba.Mul(sVal)))
		})
	}
}

func vecMin(a, b mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{math.Min(a[0], b[0]), math.Min(a[1], b[1])}
}

func vecMax(a, b mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{math.Max(a[0], b[0]), math.Max(a[1], b[1])}
}
