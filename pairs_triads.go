package liquidfun

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/NorhsArk/liquidfun/voronoi"
)

// formPairs scans current particle contacts and promotes any whose
// endpoints satisfy the crossing condition against groupA/groupB into a
// durable Pair (spec.md §4.6).
func (s *System) formPairs(groupA, groupB *ParticleGroup) {
	if unionParticleFlags(s, groupA, groupB)&pairFlags == 0 {
		return
	}
	for _, c := range s.contacts {
		a, b := c.IndexA, c.IndexB
		if !((groupA.contains(a) || groupB.contains(b)) &&
			(groupA.contains(b) || groupB.contains(a))) {
			continue
		}
		s.pairs = append(s.pairs, Pair{
			IndexA:       a,
			IndexB:       b,
			Flags:        c.Flags,
			Strength:     min(groupA.Strength, groupB.Strength),
			RestDistance: s.position.Get(a).Sub(s.position.Get(b)).Len(),
		})
	}
}

// formTriads hands every live particle in groupA ∪ groupB to the Voronoi
// builder and accepts reported triples whose vertices cross the two groups,
// all carry a triad flag, and whose edges are within max-triad-distance
// (spec.md §4.6).
func (s *System) formTriads(groupA, groupB *ParticleGroup) {
	if unionParticleFlags(s, groupA, groupB)&triadFlags == 0 {
		return
	}

	first, last := min(groupA.First, groupB.First), max(groupA.Last, groupB.Last)
	diagram := voronoi.New(last - first)
	for i := first; i < last; i++ {
		if s.flags.Get(i)&FlagZombie != 0 {
			continue
		}
		if groupA.contains(i) || groupB.contains(i) {
			diagram.Add(s.position.Get(i), i)
		}
	}
	diagram.Generate(s.def.Stride() / 2)

	diameter := s.def.Diameter()
	maxDistSq := MaxTriadDistanceSquared * diameter * diameter

	diagram.VisitTriangles(func(a, b, c int) {
		if !((groupA.contains(a) || groupA.contains(b) || groupA.contains(c)) &&
			(groupB.contains(a) || groupB.contains(b) || groupB.contains(c))) {
			return
		}
		af, bf, cf := s.flags.Get(a), s.flags.Get(b), s.flags.Get(c)
		if af&bf&cf&triadFlags == 0 {
			return
		}

		pa, pb, pc := s.position.Get(a), s.position.Get(b), s.position.Get(c)
		dab := pa.Sub(pb)
		dbc := pb.Sub(pc)
		dca := pc.Sub(pa)
		if dab.Dot(dab) >= maxDistSq || dbc.Dot(dbc) >= maxDistSq || dca.Dot(dca) >= maxDistSq {
			return
		}

		mid := pa.Add(pb).Add(pc).Mul(1.0 / 3.0)
		oa, ob, oc := pa.Sub(mid), pb.Sub(mid), pc.Sub(mid)
		s.triads = append(s.triads, Triad{
			IndexA:   a,
			IndexB:   b,
			IndexC:   c,
			Flags:    af | bf | cf,
			Strength: min(groupA.Strength, groupB.Strength),
			PA:       oa,
			PB:       ob,
			PC:       oc,
			KA:       -dca.Dot(dab),
			KB:       -dab.Dot(dbc),
			KC:       -dbc.Dot(dca),
			S:        cross(pa, pb) + cross(pb, pc) + cross(pc, pa),
		})
	})
}

func (g *ParticleGroup) contains(index int) bool {
	return index >= g.First && index < g.Last
}

func unionParticleFlags(s *System, groupA, groupB *ParticleGroup) ParticleFlags {
	first, last := min(groupA.First, groupB.First), max(groupA.Last, groupB.Last)
	var flags ParticleFlags
	for i := first; i < last; i++ {
		flags |= s.flags.Get(i)
	}
	return flags
}

func cross(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}
