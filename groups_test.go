package liquidfun

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// spec.md §8 scenario 5: two rigid groups with distinct angular velocities
// join into one contiguous range; SolveRigid then drives every one of the
// 8 particles under a single shared rigid motion.
func TestJoinParticleGroups_Rigid(t *testing.T) {
	s := newTestSystem(0.5)

	const wA, wB = 1.0, 3.0
	centerA := mgl64.Vec2{0, 0}
	centerB := mgl64.Vec2{5, 0}

	posA := []mgl64.Vec2{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	posB := []mgl64.Vec2{{6, 0}, {4, 0}, {5, 1}, {5, -1}}

	a := s.CreateParticleGroup(GroupDef{
		Flags:         GroupFlagRigid,
		ParticleFlags: 0,
		Positions:     posA,
	})
	b := s.CreateParticleGroup(GroupDef{
		Flags:         GroupFlagRigid | GroupFlagCanBeEmpty,
		ParticleFlags: 0,
		Positions:     posB,
	})
	if a == nil || b == nil {
		t.Fatal("group creation failed")
	}

	for i := a.First; i < a.Last; i++ {
		r := s.position.Get(i).Sub(centerA)
		s.velocity.Set(i, crossScalarVec(wA, r))
	}
	for i := b.First; i < b.Last; i++ {
		r := s.position.Get(i).Sub(centerB)
		s.velocity.Set(i, crossScalarVec(wB, r))
	}

	s.JoinParticleGroups(a, b)

	if s.groupCount != 1 {
		t.Fatalf("expected 1 group after join, got %d", s.groupCount)
	}
	if a.First != 0 || a.Last != 8 {
		t.Fatalf("expected group a to occupy [0,8), got [%d,%d)", a.First, a.Last)
	}
	if a.Flags&GroupFlagCanBeEmpty == 0 {
		t.Fatalf("expected group a's flags to absorb group b's via OR")
	}
	for i := 0; i < 8; i++ {
		if s.GetGroup(i) != a {
			t.Fatalf("particle %d does not belong to group a after join", i)
		}
	}

	// Force a fresh rigid-statistics computation rather than relying on
	// the group's cached timestamp.
	s.timestamp = 1
	step := TimeStep{Dt: 0.1, InvDt: 10, ParticleIterations: 1}
	s.SolveRigid(step)

	center, linVel, w := a.Center, a.LinearVelocity, a.AngularVelocity
	if w == wA || w == wB {
		t.Fatalf("expected the combined group's angular velocity to be a genuine blend, got %v (inputs were %v, %v)", w, wA, wB)
	}

	rotAngle := step.Dt * w
	c, sn := math.Cos(rotAngle), math.Sin(rotAngle)
	deltaPos := center.Add(linVel.Mul(step.Dt)).Sub(rotate(c, sn, center))
	velQc, velQs := step.InvDt*(c-1), step.InvDt*sn
	velP := deltaPos.Mul(step.InvDt)

	for i := 0; i < 8; i++ {
		p := s.position.Get(i)
		want := rotate(velQc, velQs, p).Add(velP)
		got := s.velocity.Get(i)
		if math.Abs(got[0]-want[0]) > 1e-9 || math.Abs(got[1]-want[1]) > 1e-9 {
			t.Fatalf("particle %d not driven by the unified rigid motion: got %v, want %v", i, got, want)
		}
	}
}
