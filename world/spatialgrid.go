package world

import (
	"math"
	"sort"
	"sync"

	"github.com/NorhsArk/liquidfun/world/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// CellKey is the 2D coordinate of a grid cell.
type CellKey struct {
	X, Y int
}

// Cell holds the indices of bodies whose AABB overlaps it.
type Cell struct {
	bodyIndices []int
}

// Pair is a potentially-colliding pair of bodies found by the broad phase.
type Pair struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

// SpatialGrid is a uniform hashed grid used for broad-phase overlap queries.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

func (sg *SpatialGrid) Insert(bodyIndex int, body *actor.RigidBody) {
	aabb := body.Shape.ComputeAABB(body.Transform)
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})
			sg.cells[cellIdx].bodyIndices = append(sg.cells[cellIdx].bodyIndices, bodyIndex)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// FindPairs is the sequential broad-phase query, kept for tests and small worlds.
func (sg *SpatialGrid) FindPairs(bodies []*actor.RigidBody) []Pair {
	pairs := make([]Pair, 0, len(bodies)/2)

	seen := make([]bool, len(bodies))
	for bodyIdx := 0; bodyIdx < len(bodies); bodyIdx++ {
		clear(seen)
		bodyA := bodies[bodyIdx]
		aabbA := bodyA.Shape.ComputeAABB(bodyA.Transform)
		minCell := sg.worldToCell(aabbA.Min)
		maxCell := sg.worldToCell(aabbA.Max)

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				cellIdx := sg.hashCell(CellKey{x, y})

				for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
					if otherIdx <= bodyIdx || seen[otherIdx] {
						continue
					}
					seen[otherIdx] = true

					bodyB := bodies[otherIdx]
					if bodyA.BodyType == actor.BodyTypeStatic && bodyB.BodyType == actor.BodyTypeStatic {
						continue
					}
					if bodyA.IsSleeping && bodyB.IsSleeping {
						continue
					}

					if bodyA.Shape.Type() == actor.ShapeTypeEdge || bodyB.Shape.Type() == actor.ShapeTypeEdge {
						pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
						continue
					}
					if aabbA.Overlaps(bodyB.Shape.ComputeAABB(bodyB.Transform)) {
						pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
					}
				}
			}
		}
	}

	return pairs
}

// FindPairsParallel shards bodies across workers and streams discovered pairs.
func (sg *SpatialGrid) FindPairsParallel(bodies []*actor.RigidBody, numWorkers int) <-chan Pair {
	var wg sync.WaitGroup
	pairsChan := make(chan Pair, numWorkers*10)

	bodiesPerWorker := len(bodies) / numWorkers
	if bodiesPerWorker == 0 {
		bodiesPerWorker = 1
	}

	clearSeen := make([]bool, len(bodies))
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)

		startIdx := w * bodiesPerWorker
		endIdx := startIdx + bodiesPerWorker
		if w == numWorkers-1 {
			endIdx = len(bodies)
		}

		go func(start, end int) {
			defer wg.Done()

			seen := make([]bool, len(bodies))
			for bodyIdx := start; bodyIdx < end; bodyIdx++ {
				copy(seen, clearSeen)

				bodyA := bodies[bodyIdx]
				aabbA := bodyA.Shape.ComputeAABB(bodyA.Transform)
				minCell := sg.worldToCell(aabbA.Min)
				maxCell := sg.worldToCell(aabbA.Max)

				for x := minCell.X; x <= maxCell.X; x++ {
					for y := minCell.Y; y <= maxCell.Y; y++ {
						cellIdx := sg.hashCell(CellKey{x, y})

						for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
							if otherIdx <= bodyIdx || seen[otherIdx] {
								continue
							}
							seen[otherIdx] = true

							bodyB := bodies[otherIdx]
							if bodyA.BodyType == actor.BodyTypeStatic && bodyB.BodyType == actor.BodyTypeStatic {
								continue
							}
							if bodyA.IsSleeping && bodyB.IsSleeping {
								continue
							}

							if bodyA.Shape.Type() == actor.ShapeTypeEdge || bodyB.Shape.Type() == actor.ShapeTypeEdge {
								pairsChan <- Pair{BodyA: bodyA, BodyB: bodyB}
								continue
							}

							if aabbA.Overlaps(bodyB.Shape.ComputeAABB(bodyB.Transform)) {
								pairsChan <- Pair{BodyA: bodyA, BodyB: bodyB}
							}
						}
					}
				}
			}
		}(startIdx, endIdx)
	}

	go func() {
		wg.Wait()
		close(pairsChan)
	}()

	return pairsChan
}

func (sg *SpatialGrid) worldToCell(pos mgl64.Vec2) CellKey {
	return CellKey{
		X: int(math.Floor(pos[0] / sg.cellSize)),
		Y: int(math.Floor(pos[1] / sg.cellSize)),
	}
}

func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663)
	return h & sg.cellMask
}
