package liquidfun

import "math"

// ComputeWeight sets each particle's weight to the sum of its contact
// weights, the local-density proxy of spec.md §4.5. Body and particle
// contacts contribute symmetrically to both endpoints of a particle
// contact.
func (s *System) ComputeWeight() {
	for i := 0; i < s.count; i++ {
		s.weight[i] = 0
	}
	for _, bc := range s.bodyContacts {
		s.weight[bc.Index] += bc.Weight
	}
	for _, c := range s.contacts {
		s.weight[c.IndexA] += c.Weight
		s.weight[c.IndexB] += c.Weight
	}
}

// ComputeDepth approximates graph-geodesic distance (in diameters) from
// each solid-group particle to its group's surface, via bounded Jacobi
// relaxation over intra-group contacts (spec.md §4.5).
func (s *System) ComputeDepth() {
	contactGroups := make([]Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		ga, gb := s.group[c.IndexA], s.group[c.IndexB]
		if ga == nil || gb == nil || ga != gb {
			continue
		}
		if ga.Flags&GroupFlagNeedsUpdateDepth == 0 {
			continue
		}
		contactGroups = append(contactGroups, c)
	}
	if len(contactGroups) == 0 {
		return
	}

	depth := s.requestDepthBuffer()
	touched := make(map[int]bool)
	for _, c := range contactGroups {
		touched[c.IndexA] = true
		touched[c.IndexB] = true
	}
	for idx := range touched {
		if s.weight[idx] < 0.8 {
			depth[idx] = 0
		} else {
			depth[idx] = math.Inf(1)
		}
	}

	maxIterations := squareRootCeil(s.count)
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for _, c := range contactGroups {
			r := 1 - c.Weight
			if depth[c.IndexA] > depth[c.IndexB]+r {
				depth[c.IndexA] = depth[c.IndexB] + r
				changed = true
			}
			if depth[c.IndexB] > depth[c.IndexA]+r {
				depth[c.IndexB] = depth[c.IndexA] + r
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	diameter := s.def.Diameter()
	for idx := range touched {
		if math.IsInf(depth[idx], 1) {
			depth[idx] = 0
		} else {
			depth[idx] *= diameter
		}
	}

	for g := s.groupList; g != nil; g = g.next {
		g.Flags &^= GroupFlagNeedsUpdateDepth
	}
}

// Depth returns the current depth field; zero for particles whose group
// never requested it.
func (s *System) Depth() []float64 {
	if !s.hasDepth {
		return nil
	}
	return s.depth[:s.count]
}
