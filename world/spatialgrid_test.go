package world

import (
	"testing"

	"github.com/NorhsArk/liquidfun/world/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func newDynamicCircle(position mgl64.Vec2, radius float64) *actor.RigidBody {
	return actor.NewRigidBody(
		actor.Transform{Position: position},
		&actor.Circle{Radius: radius},
		actor.BodyTypeDynamic,
		1.0,
	)
}

func TestSpatialGrid_FindPairs_OverlappingBodies(t *testing.T) {
	grid := NewSpatialGrid(4.0, 16)
	bodies := []*actor.RigidBody{
		newDynamicCircle(mgl64.Vec2{0, 0}, 1),
		newDynamicCircle(mgl64.Vec2{1.5, 0}, 1),
	}

	for i, b := range bodies {
		grid.Insert(i, b)
	}
	grid.SortCells()

	pairs := grid.FindPairs(bodies)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 candidate pair, got %d", len(pairs))
	}
}

func TestSpatialGrid_FindPairs_SeparatedBodies(t *testing.T) {
	grid := NewSpatialGrid(4.0, 16)
	bodies := []*actor.RigidBody{
		newDynamicCircle(mgl64.Vec2{0, 0}, 1),
		newDynamicCircle(mgl64.Vec2{100, 0}, 1),
	}

	for i, b := range bodies {
		grid.Insert(i, b)
	}
	grid.SortCells()

	pairs := grid.FindPairs(bodies)
	if len(pairs) != 0 {
		t.Fatalf("expected no candidate pairs for far apart bodies, got %d", len(pairs))
	}
}

func TestSpatialGrid_FindPairs_SkipsTwoSleepingBodies(t *testing.T) {
	grid := NewSpatialGrid(4.0, 16)
	bodies := []*actor.RigidBody{
		newDynamicCircle(mgl64.Vec2{0, 0}, 1),
		newDynamicCircle(mgl64.Vec2{1.5, 0}, 1),
	}
	bodies[0].IsSleeping = true
	bodies[1].IsSleeping = true

	for i, b := range bodies {
		grid.Insert(i, b)
	}
	grid.SortCells()

	pairs := grid.FindPairs(bodies)
	if len(pairs) != 0 {
		t.Errorf("expected sleeping pair to be skipped, got %d pairs", len(pairs))
	}
}

func TestSpatialGrid_FindPairsParallel_MatchesSequential(t *testing.T) {
	grid := NewSpatialGrid(4.0, 16)
	bodies := []*actor.RigidBody{
		newDynamicCircle(mgl64.Vec2{0, 0}, 1),
		newDynamicCircle(mgl64.Vec2{1.5, 0}, 1),
		newDynamicCircle(mgl64.Vec2{50, 50}, 1),
		newDynamicCircle(mgl64.Vec2{3, 0}, 1),
	}

	for i, b := range bodies {
		grid.Insert(i, b)
	}
	grid.SortCells()

	sequential := grid.FindPairs(bodies)

	grid.Clear()
	for i, b := range bodies {
		grid.Insert(i, b)
	}
	grid.SortCells()

	var parallel []Pair
	for p := range grid.FindPairsParallel(bodies, 2) {
		parallel = append(parallel, p)
	}

	if len(parallel) != len(sequential) {
		t.Errorf("parallel found %d pairs, sequential found %d", len(parallel), len(sequential))
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 16: 16, 17: 32}
	for in, want := range tests {
		if got := nextPowerOfTwo(in); got != want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}
