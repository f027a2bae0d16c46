// Package voronoi builds an approximate discrete Voronoi diagram over a
// small set of generator points, used by the particle system's triad
// formation (spec.md §4.6, §9's external contract: New/Add/Generate/
// VisitTriangles). The core treats this package as an opaque collaborator;
// no example in the retrieval pack grounds a Voronoi/Delaunay
// implementation, so the grid flood-fill below follows the well-known
// LiquidFun b2VoronoiDiagram algorithm from first principles: generators
// seed a regular grid, a breadth-first expansion assigns every cell to its
// nearest generator, and triangles are read off wherever three distinct
// generators meet across a cell's diagonal.
package voronoi

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Generator is one seed point of the diagram, carrying the caller's opaque
// id (a particle index) forward into VisitTriangles.
type Generator struct {
	Center mgl64.Vec2
	Tag    int
}

// Diagram accumulates generators and, after Generate, a discrete nearest-
// generator grid.
type Diagram struct {
	generators []Generator

	countX, countY int
	lower          mgl64.Vec2
	invRadius      float64
	cells          []int // index into generators, or -1 if unassigned
}

// New allocates a diagram with room for up to maxGenerators seeds.
func New(maxGenerators int) *Diagram {
	return &Diagram{generators: make([]Generator, 0, maxGenerators)}
}

// Add registers one generator point with its caller id.
func (d *Diagram) Add(center mgl64.Vec2, tag int) {
	d.generators = append(d.generators, Generator{Center: center, Tag: tag})
}

type queueEntry struct {
	cell      int
	generator int
}

// Generate builds the nearest-generator grid at cell size margin over the
// bounding box of every added generator, expanded by margin on each side.
// Cells are assigned by breadth-first expansion from each generator's own
// cell, so ties resolve in seed order rather than by exact distance -- an
// approximation the original accepts for triad formation.
func (d *Diagram) Generate(margin float64) {
	if len(d.generators) == 0 || margin <= 0 {
		return
	}

	lower := mgl64.Vec2{d.generators[0].Center[0], d.generators[0].Center[1]}
	upper := lower
	for _, g := range d.generators[1:] {
		if g.Center[0] < lower[0] {
			lower[0] = g.Center[0]
		}
		if g.Center[1] < lower[1] {
			lower[1] = g.Center[1]
		}
		if g.Center[0] > upper[0] {
			upper[0] = g.Center[0]
		}
		if g.Center[1] > upper[1] {
			upper[1] = g.Center[1]
		}
	}
	lower[0] -= margin
	lower[1] -= margin
	upper[0] += margin
	upper[1] += margin

	invRadius := 1.0 / margin
	countX := int(invRadius*(upper[0]-lower[0])) + 1
	countY := int(invRadius*(upper[1]-lower[1])) + 1
	if countX < 1 {
		countX = 1
	}
	if countY < 1 {
		countY = 1
	}

	d.lower = lower
	d.invRadius = invRadius
	d.countX, d.countY = countX, countY
	d.cells = make([]int, countX*countY)
	for i := range d.cells {
		d.cells[i] = -1
	}

	queue := make([]queueEntry, 0, len(d.generators))
	for gi, g := range d.generators {
		cx := clampInt(int(invRadius*(g.Center[0]-lower[0])), 0, countX-1)
		cy := clampInt(int(invRadius*(g.Center[1]-lower[1])), 0, countY-1)
		cell := cx + cy*countX
		if d.cells[cell] == -1 {
			d.cells[cell] = gi
			queue = append(queue, queueEntry{cell: cell, generator: gi})
		}
	}

	for head := 0; head < len(queue); head++ {
		e := queue[head]
		x, y := e.cell%countX, e.cell/countX
		for _, delta := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+delta[0], y+delta[1]
			if nx < 0 || nx >= countX || ny < 0 || ny >= countY {
				continue
			}
			nc := nx + ny*countX
			if d.cells[nc] != -1 {
				continue
			}
			d.cells[nc] = e.generator
			queue = append(queue, queueEntry{cell: nc, generator: e.generator})
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// VisitTriangles calls visit(tagA, tagB, tagC) once for every unordered
// triple of generator tags that meet across a grid cell's diagonal,
// following the original's diagonal test: for each 2x2 cell block, if the
// two diagonal-adjacent cells disagree, the two triangles straddling that
// diagonal are reported whenever all three corners differ. A triple already
// reported (from the same block or an earlier one) is skipped.
func (d *Diagram) VisitTriangles(visit func(a, b, c int)) {
	if d.cells == nil {
		return
	}
	seen := make(map[[3]int]bool)
	report := func(p, q, r int) {
		key := [3]int{p, q, r}
		slices.Sort(key[:])
		if !seen[key] {
			seen[key] = true
			visit(d.generators[p].Tag, d.generators[q].Tag, d.generators[r].Tag)
		}
	}
	for y := 0; y < d.countY-1; y++ {
		for x := 0; x < d.countX-1; x++ {
			i := x + y*d.countX
			a := d.cells[i]
			b := d.cells[i+1]
			c := d.cells[i+d.countX]
			e := d.cells[i+1+d.countX]
			if a < 0 || b < 0 || c < 0 || e < 0 {
				continue
			}
			if b != c {
				if a != b && a != c {
					report(a, b, c)
				}
				if e != b && e != c {
					report(e, b, c)
				}
			}
		}
	}
}
