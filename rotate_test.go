package liquidfun

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// spec.md §8 scenario 4: particles 0..9 in one group [0,10). rotate(2,5,8)
// reorders the first 8 to the old [0,1,5,6,7,2,3,4]; [8,9] is unchanged.
func TestRotate_Correctness(t *testing.T) {
	s := newTestSystem(0.5)
	positions := make([]mgl64.Vec2, 10)
	for i := range positions {
		positions[i] = mgl64.Vec2{float64(i), 0}
	}
	g := s.CreateParticleGroup(GroupDef{Positions: positions})
	if g == nil {
		t.Fatal("group creation failed")
	}

	s.contacts = []Contact{{IndexA: 3, IndexB: 6}}

	s.Rotate(2, 5, 8)

	expected := []float64{0, 1, 5, 6, 7, 2, 3, 4, 8, 9}
	for i, want := range expected {
		if got := s.position.Get(i)[0]; got != want {
			t.Fatalf("index %d: expected identity %v, got %v", i, want, got)
		}
	}

	if g.First != 0 || g.Last != 10 {
		t.Fatalf("expected group range unchanged at [0,10), got [%d,%d)", g.First, g.Last)
	}

	c := s.contacts[0]
	idA, idB := s.position.Get(c.IndexA)[0], s.position.Get(c.IndexB)[0]
	if !((idA == 3 && idB == 6) || (idA == 6 && idB == 3)) {
		t.Fatalf("contact identities not preserved: got positions (%v,%v), want {3,6}", idA, idB)
	}
}

// Rotate is a permutation law (§8): for random (start,mid,end), the
// multiset of particle identities (carried here as position.x) is
// preserved, and every rewritten contact still names the same identities.
func TestRotate_IsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		s := newTestSystem(0.5)
		n := 12
		for i := 0; i < n; i++ {
			s.CreateParticle(ParticleDef{Position: mgl64.Vec2{float64(i), 0}})
		}

		start := rng.Intn(n)
		mid := start + rng.Intn(n-start)
		end := mid + rng.Intn(n-mid+1)
		if end > n {
			end = n
		}

		type identPair struct{ a, b float64 }
		var pairs []identPair
		for i := 0; i+1 < n; i += 3 {
			pairs = append(pairs, identPair{float64(i), float64(i + 1)})
			s.contacts = append(s.contacts, Contact{IndexA: i, IndexB: i + 1})
		}

		before := map[float64]bool{}
		for i := 0; i < n; i++ {
			before[s.position.Get(i)[0]] = true
		}

		s.Rotate(start, mid, end)

		after := map[float64]bool{}
		for i := 0; i < n; i++ {
			after[s.position.Get(i)[0]] = true
		}
		if len(before) != len(after) {
			t.Fatalf("trial %d: identity set size changed", trial)
		}
		for id := range before {
			if !after[id] {
				t.Fatalf("trial %d: identity %v lost by rotate(%d,%d,%d)", trial, id, start, mid, end)
			}
		}

		for i, c := range s.contacts {
			idA := s.position.Get(c.IndexA)[0]
			idB := s.position.Get(c.IndexB)[0]
			want := pairs[i]
			if !((idA == want.a && idB == want.b) || (idA == want.b && idB == want.a)) {
				t.Fatalf("trial %d: contact %d identities changed: got (%v,%v), want {%v,%v}", trial, i, idA, idB, want.a, want.b)
			}
		}
	}
}
