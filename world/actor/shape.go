package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType identifies a concrete Shape implementation for type switches
// in the collision dispatcher.
type ShapeType int

const (
	ShapeTypeCircle ShapeType = iota
	ShapeTypePolygon
	ShapeTypeEdge
)

// ShapeInterface is implemented by every collision shape the world supports.
// Support and GetContactFeature drive GJK/EPA; TestPoint, RayCast, ComputeDistance
// and IsSensor are exercised by the particle core through the Fixture contract.
type ShapeInterface interface {
	Type() ShapeType
	ComputeAABB(transform Transform) AABB
	ComputeMass(density float64) float64
	ComputeInertia(mass float64) float64
	Support(direction mgl64.Vec2) mgl64.Vec2
	GetContactFeature(direction mgl64.Vec2) []mgl64.Vec2
	TestPoint(transform Transform, point mgl64.Vec2) bool
	RayCast(transform Transform, p1, p2 mgl64.Vec2) (hit bool, fraction float64, normal mgl64.Vec2)
}

// Circle is a disc of the given radius centered on the body origin.
type Circle struct {
	Radius float64
}

func (c *Circle) Type() ShapeType { return ShapeTypeCircle }

func (c *Circle) ComputeAABB(transform Transform) AABB {
	r := mgl64.Vec2{c.Radius, c.Radius}
	return AABB{Min: transform.Position.Sub(r), Max: transform.Position.Add(r)}
}

func (c *Circle) ComputeMass(density float64) float64 {
	return density * math.Pi * c.Radius * c.Radius
}

func (c *Circle) ComputeInertia(mass float64) float64 {
	return 0.5 * mass * c.Radius * c.Radius
}

func (c *Circle) Support(direction mgl64.Vec2) mgl64.Vec2 {
	if direction.Len() < 1e-12 {
		return mgl64.Vec2{c.Radius, 0}
	}
	return direction.Normalize().Mul(c.Radius)
}

func (c *Circle) GetContactFeature(direction mgl64.Vec2) []mgl64.Vec2 {
	return []mgl64.Vec2{c.Support(direction)}
}

func (c *Circle) TestPoint(transform Transform, point mgl64.Vec2) bool {
	local := transform.ToLocal(point)
	return local.Dot(local) <= c.Radius*c.Radius
}

func (c *Circle) RayCast(transform Transform, p1, p2 mgl64.Vec2) (bool, float64, mgl64.Vec2) {
	center := transform.Position
	d := p2.Sub(p1)
	s := p1.Sub(center)
	b := s.Dot(s) - c.Radius*c.Radius
	rr := d.Dot(d)
	if rr < 1e-12 {
		return false, 0, mgl64.Vec2{}
	}
	c1 := s.Dot(d)
	sigma := c1*c1 - rr*b
	if sigma < 0 || rr < 1e-12 {
		return false, 0, mgl64.Vec2{}
	}
	t := -(c1 + math.Sqrt(sigma)) / rr
	if t < 0 || t > 1 {
		return false, 0, mgl64.Vec2{}
	}
	hitPoint := p1.Add(d.Mul(t))
	normal := hitPoint.Sub(center).Normalize()
	return true, t, normal
}

// Polygon is a convex polygon given by CCW-ordered local-space vertices.
// A box is a Polygon with four vertices; NewBoxPolygon builds one.
type Polygon struct {
	Vertices []mgl64.Vec2
	Normals  []mgl64.Vec2
}

// NewBoxPolygon builds an axis-aligned box polygon from half-extents.
func NewBoxPolygon(halfWidth, halfHeight float64) *Polygon {
	verts := []mgl64.Vec2{
		{-halfWidth, -halfHeight},
		{halfWidth, -halfHeight},
		{halfWidth, halfHeight},
		{-halfWidth, halfHeight},
	}
	return NewPolygon(verts)
}

// NewPolygon computes outward edge normals for a CCW vertex loop.
func NewPolygon(vertices []mgl64.Vec2) *Polygon {
	n := len(vertices)
	normals := make([]mgl64.Vec2, n)
	for i := 0; i < n; i++ {
		edge := vertices[(i+1)%n].Sub(vertices[i])
		normals[i] = mgl64.Vec2{edge[1], -edge[0]}.Normalize()
	}
	return &Polygon{Vertices: vertices, Normals: normals}
}

func (p *Polygon) Type() ShapeType { return ShapeTypePolygon }

func (p *Polygon) ComputeAABB(transform Transform) AABB {
	world := transform.ToWorld(p.Vertices[0])
	lo, hi := world, world
	for i := 1; i < len(p.Vertices); i++ {
		world = transform.ToWorld(p.Vertices[i])
		lo = mgl64.Vec2{math.Min(lo[0], world[0]), math.Min(lo[1], world[1])}
		hi = mgl64.Vec2{math.Max(hi[0], world[0]), math.Max(hi[1], world[1])}
	}
	return AABB{Min: lo, Max: hi}
}

// ComputeMass uses the shoelace formula for a simple polygon's area.
func (p *Polygon) ComputeMass(density float64) float64 {
	area := 0.0
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += Cross2(p.Vertices[i], p.Vertices[j])
	}
	return density * math.Abs(area) * 0.5
}

// ComputeInertia integrates the polygon's second moment of area about its centroid,
// following the standard triangle-fan decomposition used for convex polygon inertia.
func (p *Polygon) ComputeInertia(mass float64) float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	var area, numerator float64
	origin := p.Vertices[0]
	for i := 1; i < n-1; i++ {
		e1 := p.Vertices[i].Sub(origin)
		e2 := p.Vertices[i+1].Sub(origin)
		d := Cross2(e1, e2)
		triArea := 0.5 * d
		intx2 := e1[0]*e1[0] + e1[0]*e2[0] + e2[0]*e2[0]
		inty2 := e1[1]*e1[1] + e1[1]*e2[1] + e2[1]*e2[1]
		area += triArea
		numerator += (0.25 / 6.0) * d * (intx2 + inty2)
	}
	if area < 1e-12 {
		return 0
	}
	density := mass / area
	return density * numerator
}

func (p *Polygon) Support(direction mgl64.Vec2) mgl64.Vec2 {
	best := p.Vertices[0]
	bestDot := best.Dot(direction)
	for _, v := range p.Vertices[1:] {
		d := v.Dot(direction)
		if d > bestDot {
			bestDot = d
			best = v
		}
	}
	return best
}

// GetContactFeature returns the edge (2 points) whose normal is most aligned
// with direction, matching a Box2D-style reference-edge selection.
func (p *Polygon) GetContactFeature(direction mgl64.Vec2) []mgl64.Vec2 {
	best := 0
	bestDot := p.Normals[0].Dot(direction)
	for i := 1; i < len(p.Normals); i++ {
		d := p.Normals[i].Dot(direction)
		if d > bestDot {
			bestDot = d
			best = i
		}
	}
	n := len(p.Vertices)
	return []mgl64.Vec2{p.Vertices[best], p.Vertices[(best+1)%n]}
}

func (p *Polygon) TestPoint(transform Transform, point mgl64.Vec2) bool {
	local := transform.ToLocal(point)
	for i := range p.Vertices {
		if p.Normals[i].Dot(local.Sub(p.Vertices[i])) > 0 {
			return false
		}
	}
	return true
}

func (p *Polygon) RayCast(transform Transform, p1, p2 mgl64.Vec2) (bool, float64, mgl64.Vec2) {
	l1 := transform.ToLocal(p1)
	l2 := transform.ToLocal(p2)
	d := l2.Sub(l1)

	lower, upper := 0.0, 1.0
	index := -1

	for i := range p.Vertices {
		numerator := p.Normals[i].Dot(p.Vertices[i].Sub(l1))
		denominator := p.Normals[i].Dot(d)
		if denominator == 0 {
			if numerator < 0 {
				return false, 0, mgl64.Vec2{}
			}
			continue
		}
		t := numerator / denominator
		if denominator < 0 && t > lower {
			lower = t
			index = i
		} else if denominator > 0 && t < upper {
			upper = t
		}
		if upper < lower {
			return false, 0, mgl64.Vec2{}
		}
	}

	if index < 0 {
		return false, 0, mgl64.Vec2{}
	}
	return true, lower, transform.Rotate(p.Normals[index])
}

// Edge is a finite line segment, used for ground/wall bodies (the teacher's
// infinite Plane reduced to a 2D segment rather than a half-space, since
// particle stroke-shape emission needs endpoints).
type Edge struct {
	V1, V2 mgl64.Vec2
	// Thickness is the one-sided slab half-width used for AABB/TestPoint,
	// mirroring the teacher's thickness-padded Plane AABB.
	Thickness float64
}

func (e *Edge) Type() ShapeType { return ShapeTypeEdge }

func (e *Edge) normal() mgl64.Vec2 {
	d := e.V2.Sub(e.V1)
	return mgl64.Vec2{d[1], -d[0]}.Normalize()
}

func (e *Edge) ComputeAABB(transform Transform) AABB {
	w1 := transform.ToWorld(e.V1)
	w2 := transform.ToWorld(e.V2)
	n := transform.Rotate(e.normal()).Mul(e.Thickness)
	lo := mgl64.Vec2{math.Min(w1[0], w2[0]), math.Min(w1[1], w2[1])}
	hi := mgl64.Vec2{math.Max(w1[0], w2[0]), math.Max(w1[1], w2[1])}
	pad := mgl64.Vec2{math.Abs(n[0]), math.Abs(n[1])}
	return AABB{Min: lo.Sub(pad), Max: hi.Add(pad)}
}

func (e *Edge) ComputeMass(density float64) float64 {
	return math.Inf(1)
}

func (e *Edge) ComputeInertia(mass float64) float64 {
	return 0
}

func (e *Edge) Support(direction mgl64.Vec2) mgl64.Vec2 {
	if e.V1.Dot(direction) > e.V2.Dot(direction) {
		return e.V1
	}
	return e.V2
}

func (e *Edge) GetContactFeature(direction mgl64.Vec2) []mgl64.Vec2 {
	return []mgl64.Vec2{e.V1, e.V2}
}

func (e *Edge) TestPoint(transform Transform, point mgl64.Vec2) bool {
	local := transform.ToLocal(point)
	d := e.V2.Sub(e.V1)
	len2 := d.Dot(d)
	if len2 < 1e-12 {
		return local.Sub(e.V1).Len() <= e.Thickness
	}
	t := math.Max(0, math.Min(1, local.Sub(e.V1).Dot(d)/len2))
	closest := e.V1.Add(d.Mul(t))
	return local.Sub(closest).Len() <= e.Thickness
}

func (e *Edge) RayCast(transform Transform, p1, p2 mgl64.Vec2) (bool, float64, mgl64.Vec2) {
	l1 := transform.ToLocal(p1)
	l2 := transform.ToLocal(p2)
	n := e.normal()

	d := l2.Sub(l1)
	denom := n.Dot(d)
	if math.Abs(denom) < 1e-12 {
		return false, 0, mgl64.Vec2{}
	}
	t := n.Dot(e.V1.Sub(l1)) / denom
	if t < 0 || t > 1 {
		return false, 0, mgl64.Vec2{}
	}
	hit := l1.Add(d.Mul(t))
	edgeDir := e.V2.Sub(e.V1)
	edgeLen2 := edgeDir.Dot(edgeDir)
	if edgeLen2 > 1e-12 {
		s := hit.Sub(e.V1).Dot(edgeDir) / edgeLen2
		if s < 0 || s > 1 {
			return false, 0, mgl64.Vec2{}
		}
	}
	worldNormal := transform.Rotate(n)
	if worldNormal.Dot(d) > 0 {
		worldNormal = worldNormal.Mul(-1)
	}
	return true, t, worldNormal
}
