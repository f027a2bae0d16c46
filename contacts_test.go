package liquidfun

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestSystem(radius float64) *System {
	return NewSystem(Def{Radius: radius, Density: 1}, nil)
}

// spec.md §8 scenario 1: two particles of diameter 1 at (0,0) and (0.5,0).
func TestUpdateContacts_SingleContactWeight(t *testing.T) {
	s := newTestSystem(0.5)
	a := s.CreateParticle(ParticleDef{Position: mgl64.Vec2{0, 0}})
	b := s.CreateParticle(ParticleDef{Position: mgl64.Vec2{0.5, 0}})

	s.UpdateContacts(true)

	if len(s.contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(s.contacts))
	}
	c := s.contacts[0]
	if c.IndexA != a || c.IndexB != b {
		t.Fatalf("expected contact (%d,%d), got (%d,%d)", a, b, c.IndexA, c.IndexB)
	}
	if math.Abs(c.Weight-0.5) > 1e-9 {
		t.Fatalf("expected weight 0.5, got %v", c.Weight)
	}
	if math.Abs(c.Normal[0]-1) > 1e-9 || math.Abs(c.Normal[1]) > 1e-9 {
		t.Fatalf("expected normal (1,0), got %v", c.Normal)
	}
}

// Neighbor completeness law (§8): every pair of live particles within one
// diameter yields exactly one contact, indexA < indexB.
func TestUpdateContacts_NeighborCompleteness(t *testing.T) {
	s := newTestSystem(0.5)
	positions := []mgl64.Vec2{
		{0, 0}, {0.3, 0}, {0, 0.3}, {2, 2}, {2.3, 2}, {5, 5}, {0.2, 0.2},
	}
	for _, p := range positions {
		s.CreateParticle(ParticleDef{Position: p})
	}
	s.UpdateContacts(true)

	diameter := s.def.Diameter()
	expected := map[[2]int]bool{}
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			if positions[i].Sub(positions[j]).Len() < diameter {
				expected[[2]int{i, j}] = true
			}
		}
	}
	if len(s.contacts) != len(expected) {
		t.Fatalf("expected %d contacts, got %d", len(expected), len(s.contacts))
	}
	for _, c := range s.contacts {
		if c.IndexA >= c.IndexB {
			t.Fatalf("contact not ordered: (%d,%d)", c.IndexA, c.IndexB)
		}
		if !expected[[2]int{c.IndexA, c.IndexB}] {
			t.Fatalf("unexpected contact (%d,%d)", c.IndexA, c.IndexB)
		}
		if c.Normal.LenSqr() < 1-1e-6 || c.Normal.LenSqr() > 1+1e-6 {
			t.Fatalf("normal not unit length: %v", c.Normal)
		}
		if c.Weight <= 0 || c.Weight > 1 {
			t.Fatalf("weight out of (0,1]: %v", c.Weight)
		}
	}
}

// Tag monotonicity law (§8): after sort, proxy[i].tag < proxy[j].tag implies i < j.
func TestBuildProxies_TagMonotonicity(t *testing.T) {
	s := newTestSystem(0.5)
	for i := 0; i < 30; i++ {
		x := float64(i%7) * 0.37
		y := float64(i/7) * 0.53
		s.CreateParticle(ParticleDef{Position: mgl64.Vec2{x, y}})
	}
	s.buildProxies()
	if len(s.proxies) != s.count {
		t.Fatalf("expected %d proxies, got %d", s.count, len(s.proxies))
	}
	for i := 1; i < len(s.proxies); i++ {
		if s.proxies[i-1].tag > s.proxies[i].tag {
			t.Fatalf("proxies not sorted ascending at %d: %d > %d", i, s.proxies[i-1].tag, s.proxies[i].tag)
		}
	}
}

// UpdateContacts with exceptZombie must drop contacts touching zombie particles.
func TestUpdateContacts_DropsZombieContacts(t *testing.T) {
	s := newTestSystem(0.5)
	a := s.CreateParticle(ParticleDef{Position: mgl64.Vec2{0, 0}})
	b := s.CreateParticle(ParticleDef{Position: mgl64.Vec2{0.3, 0}})
	s.DestroyParticle(b)

	s.UpdateContacts(true)
	for _, c := range s.contacts {
		if c.IndexA == a || c.IndexB == a {
			if c.IndexA == b || c.IndexB == b {
				t.Fatalf("expected no contact touching zombie particle %d", b)
			}
		}
	}
	if len(s.contacts) != 0 {
		t.Fatalf("expected 0 contacts once the only neighbor is a zombie, got %d", len(s.contacts))
	}
}
