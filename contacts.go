package liquidfun

import "math"

// UpdateContacts rebuilds the proxy index and the particle-particle contact
// list from current positions (spec.md §4.1, §4.2). If exceptZombie, any
// contact touching a zombie-flagged particle is dropped before returning.
func (s *System) UpdateContacts(exceptZombie bool) {
	s.buildProxies()

	diameter := s.def.Diameter()
	diameterSq := diameter * diameter

	s.contacts = s.contacts[:0]
	s.forEachNeighborCandidate(func(a, b int) {
		s.addContact(a, b, diameterSq)
	})

	if exceptZombie {
		s.compactZombieContacts()
	}
}

// addContact appends (a,b) as a contact if the particles are alive and
// strictly closer than one diameter, normalizing indexA < indexB.
func (s *System) addContact(a, b int, diameterSq float64) {
	if a == b {
		return
	}
	if a > b {
		a, b = b, a
	}

	flagsA := s.flags.Get(a)
	flagsB := s.flags.Get(b)
	if flagsA&FlagZombie != 0 || flagsB&FlagZombie != 0 {
		return
	}

	delta := s.position.Get(b).Sub(s.position.Get(a))
	distSq := delta.LenSqr()
	if distSq >= diameterSq || distSq <= 0 {
		return
	}

	dist := math.Sqrt(distSq)
	diameter := math.Sqrt(diameterSq)
	normal := delta.Mul(1.0 / dist)

	s.contacts = append(s.contacts, Contact{
		IndexA: a,
		IndexB: b,
		Flags:  flagsA | flagsB,
		Weight: 1 - dist/diameter,
		Normal: normal,
	})
}

func (s *System) compactZombieContacts() {
	n := 0
	for _, c := range s.contacts {
		if s.flags.Get(c.IndexA)&FlagZombie != 0 || s.flags.Get(c.IndexB)&FlagZombie != 0 {
			continue
		}
		s.contacts[n] = c
		n++
	}
	s.contacts = s.contacts[:n]
}
