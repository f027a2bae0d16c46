package liquidfun

// SolveZombie compacts out every zombie-flagged particle, notifying the
// destruction listener for those that requested it, and rewrites every
// index stored in the five structural arrays and every group range
// (spec.md §4.9).
func (s *System) SolveZombie() {
	newIndex := make([]int, s.count)
	newCount := 0
	var allFlags ParticleFlags

	for i := 0; i < s.count; i++ {
		flags := s.flags.Get(i)
		if flags&FlagZombie != 0 {
			if flags&FlagDestructionListener != 0 {
				s.notifyGoodbyeParticle(i)
			}
			newIndex[i] = InvalidParticleIndex
			continue
		}

		newIndex[i] = newCount
		if i != newCount {
			s.flags.Set(newCount, flags)
			s.position.Set(newCount, s.position.Get(i))
			s.velocity.Set(newCount, s.velocity.Get(i))
			s.group[newCount] = s.group[i]
			s.weight[newCount] = s.weight[i]
			if s.hasStaticPressure {
				s.staticPressureBuf[newCount] = s.staticPressureBuf[i]
			}
			if s.hasDepth {
				s.depth[newCount] = s.depth[i]
			}
			if s.color.Len() > 0 {
				s.color.Set(newCount, s.color.Get(i))
			}
			if s.userData.Len() > 0 {
				s.userData.Set(newCount, s.userData.Get(i))
			}
		}
		newCount++
		allFlags |= flags
	}

	n := 0
	for _, p := range s.proxies {
		idx := newIndex[p.index]
		if idx == InvalidParticleIndex {
			continue
		}
		p.index = idx
		s.proxies[n] = p
		n++
	}
	s.proxies = s.proxies[:n]

	n = 0
	for _, c := range s.contacts {
		a, b := newIndex[c.IndexA], newIndex[c.IndexB]
		if a == InvalidParticleIndex || b == InvalidParticleIndex {
			continue
		}
		c.IndexA, c.IndexB = a, b
		s.contacts[n] = c
		n++
	}
	s.contacts = s.contacts[:n]

	n = 0
	for _, bc := range s.bodyContacts {
		idx := newIndex[bc.Index]
		if idx == InvalidParticleIndex {
			continue
		}
		bc.Index = idx
		s.bodyContacts[n] = bc
		n++
	}
	s.bodyContacts = s.bodyContacts[:n]

	n = 0
	for _, p := range s.pairs {
		a, b := newIndex[p.IndexA], newIndex[p.IndexB]
		if a == InvalidParticleIndex || b == InvalidParticleIndex {
			continue
		}
		p.IndexA, p.IndexB = a, b
		s.pairs[n] = p
		n++
	}
	s.pairs = s.pairs[:n]

	n = 0
	for _, t := range s.triads {
		a, b, c := newIndex[t.IndexA], newIndex[t.IndexB], newIndex[t.IndexC]
		if a == InvalidParticleIndex || b == InvalidParticleIndex || c == InvalidParticleIndex {
			continue
		}
		t.IndexA, t.IndexB, t.IndexC = a, b, c
		s.triads[n] = t
		n++
	}
	s.triads = s.triads[:n]

	var toDestroy []*ParticleGroup
	for g := s.groupList; g != nil; g = g.next {
		first, last := newCount, 0
		modified := false
		for i := g.First; i < g.Last; i++ {
			j := newIndex[i]
			if j != InvalidParticleIndex {
				if j < first {
					first = j
				}
				if j+1 > last {
					last = j + 1
				}
			} else {
				modified = true
			}
		}
		if first < last {
			g.First, g.Last = first, last
			if modified && g.Flags&GroupFlagSolid != 0 {
				g.Flags |= GroupFlagNeedsUpdateDepth
			}
		} else {
			g.First, g.Last = 0, 0
			if g.Flags&GroupFlagCanBeEmpty == 0 {
				g.Flags |= GroupFlagWillBeDestroyed
				toDestroy = append(toDestroy, g)
			}
		}
	}

	s.count = newCount
	s.allParticleFlags = allFlags
	s.staleFlags = false

	for _, g := range toDestroy {
		s.DestroyParticleGroup(g)
	}
}
