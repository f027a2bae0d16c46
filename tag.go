package liquidfun

import (
	"sort"
)

// Tag bit layout: cells are quantized to the particle diameter, with y
// major and x minor so that ascending tag order sweeps rows top-to-bottom,
// left-to-right within a row.
const (
	tagYTrunc = 12
	tagXTrunc = 12
	tagYShift = 20
	tagXShift = 8
	tagXScale = 1 << 8
	tagYOff   = uint32(1) << (tagYTrunc - 1)
	tagXOff   = uint32(1) << (tagXTrunc - 1)
)

// computeTag quantizes a world position into the spatial hash tag described
// in spec.md §4.1: y major, x minor, with small signed neighbor offsets
// addable via computeRelativeTag.
func computeTag(invDiameter float64, x, y float64) uint32 {
	yCell := int32(invDiameter*y) + int32(tagYOff)
	xCell := int32(invDiameter*x*tagXScale) + int32(tagXOff)
	return (uint32(yCell) << tagYShift) + uint32(xCell)
}

// computeRelativeTag adds a signed (dx,dy) cell displacement to an existing tag.
func computeRelativeTag(tag uint32, dx, dy int32) uint32 {
	return tag + (uint32(dy) << tagYShift) + (uint32(dx) << tagXShift)
}

// buildProxies recomputes one proxy per live particle and sorts them
// ascending by tag, establishing the neighbor-scan order.
func (s *System) buildProxies() {
	invDiameter := 1.0 / s.def.Diameter()
	s.proxies = s.proxies[:0]
	for i := 0; i < s.count; i++ {
		if s.flags.Get(i)&FlagZombie != 0 {
			continue
		}
		pos := s.position.Get(i)
		s.proxies = append(s.proxies, proxy{
			tag:   computeTag(invDiameter, pos[0], pos[1]),
			index: i,
		})
	}
	sort.Sort(proxySlice(s.proxies))
}

// proxyTagRange returns [lo, hi) such that s.proxies[lo:hi] all have
// tag in [loTag, hiTag), via binary search on the sorted proxy array.
func (s *System) proxyTagRange(loTag, hiTag uint32) (int, int) {
	lo := sort.Search(len(s.proxies), func(i int) bool { return s.proxies[i].tag >= loTag })
	hi := sort.Search(len(s.proxies), func(i int) bool { return s.proxies[i].tag >= hiTag })
	return lo, hi
}

// aabbTagBounds computes the [loTag,hiTag) proxy tag range that covers box.
func (s *System) aabbTagBounds(box AABB) (uint32, uint32) {
	invDiameter := 1.0 / s.def.Diameter()
	lo := computeTag(invDiameter, box.LowerBound[0], box.LowerBound[1])
	hi := computeTag(invDiameter, box.UpperBound[0], box.UpperBound[1])
	hi = computeRelativeTag(hi, 1, 1)
	return lo, hi
}

// queryProxyRange visits every proxy whose tag falls in the range covering
// box, filtering by exact point containment of the particle position.
func (s *System) queryProxyRange(box AABB, visit func(index int)) {
	loTag, hiTag := s.aabbTagBounds(box)
	lo, hi := s.proxyTagRange(loTag, hiTag)
	for i := lo; i < hi; i++ {
		idx := s.proxies[i].index
		p := s.position.Get(idx)
		if p[0] >= box.LowerBound[0] && p[0] <= box.UpperBound[0] &&
			p[1] >= box.LowerBound[1] && p[1] <= box.UpperBound[1] {
			visit(idx)
		}
	}
}

// forEachNeighborCandidate performs the linear tag-sweep of spec.md §4.1:
// for each proxy a, scan same-row neighbors forward while their tag is at
// most tag(a,+1,0), and separately scan the next-row window forward while
// their tag is at most tag(a,+1,+1), starting from a "bottom-left" pointer
// that tracks the first proxy with tag at least tag(a,-1,+1). That pointer
// only ever advances as a walks forward (aTag is non-decreasing), so it is
// never rescanned from the start; the whole sweep is O(N + contacts).
func (s *System) forEachNeighborCandidate(visit func(a, b int)) {
	n := len(s.proxies)
	c := 0
	for i := 0; i < n; i++ {
		aTag := s.proxies[i].tag
		aIndex := s.proxies[i].index

		rightTag := computeRelativeTag(aTag, 1, 0)
		for j := i + 1; j < n && s.proxies[j].tag <= rightTag; j++ {
			visit(aIndex, s.proxies[j].index)
		}

		bottomLeftTag := computeRelativeTag(aTag, -1, 1)
		for c < n && s.proxies[c].tag < bottomLeftTag {
			c++
		}

		bottomRightTag := computeRelativeTag(aTag, 1, 1)
		for j := c; j < n && s.proxies[j].tag <= bottomRightTag; j++ {
			visit(aIndex, s.proxies[j].index)
		}
	}
}
