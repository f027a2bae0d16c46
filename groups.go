package liquidfun

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// GroupDef describes a particle group at creation time (spec.md §4.7).
type GroupDef struct {
	Flags           GroupFlags
	ParticleFlags   ParticleFlags
	Strength        float64
	Position        mgl64.Vec2
	Angle           float64
	LinearVelocity  mgl64.Vec2
	AngularVelocity float64
	Color           mgl64.Vec4
	UserData        interface{}

	// Shape, if set, is filled (polygon/circle) or stroked at stride
	// intervals (edge/chain) to emit particles.
	Shape Shape

	// Positions, if set, are emitted directly (local to Position/Angle).
	Positions []mgl64.Vec2
}

// ParticleGroup is a contiguous [First,Last) particle index range treated
// as a logical unit, linked into the system's group list.
type ParticleGroup struct {
	system *System

	First, Last int
	Strength    float64
	Flags       GroupFlags
	Transform   Transform

	LinearVelocity  mgl64.Vec2
	AngularVelocity float64
	UserData        interface{}

	// Center/Mass/Inertia cache the rigid-group statistics consumed by
	// SolveRigid, recomputed lazily once per system timestamp.
	Center    mgl64.Vec2
	Mass      float64
	Inertia   float64
	timestamp int64

	prev, next *ParticleGroup
}

func (g *ParticleGroup) Count() int { return g.Last - g.First }

// SetFlags replaces g's group flags wholesale, scheduling a depth update if
// the solid flag changed and refreshing allGroupFlags, mirroring
// `b2ParticleSystem::SetParticleGroupFlags`.
func (g *ParticleGroup) SetFlags(s *System, newFlags GroupFlags) {
	oldFlags := g.Flags
	if (oldFlags^newFlags)&GroupFlagSolid != 0 {
		newFlags |= GroupFlagNeedsUpdateDepth
	}
	g.Flags = newFlags
	s.recomputeAllGroupFlags()
}

// CreateParticleGroup emits particles from def's shape/positions, links a
// new group at the head of the list, and forms pairs/triads for the new
// range against itself (spec.md §4.7 Create).
func (s *System) CreateParticleGroup(def GroupDef) *ParticleGroup {
	if s.locked {
		return nil
	}

	transform := Transform{Position: def.Position, Angle: def.Angle}
	first := s.count

	if def.Shape != nil {
		s.emitFromShape(def.Shape, transform, def.ParticleFlags, def.Color, def.UserData)
	}
	for _, p := range def.Positions {
		s.CreateParticle(ParticleDef{
			Flags:    def.ParticleFlags,
			Position: transformPoint(transform, p),
			Color:    def.Color,
			UserData: def.UserData,
		})
	}

	last := s.count
	if last == first && def.Flags&GroupFlagCanBeEmpty == 0 {
		return nil
	}

	group := &ParticleGroup{
		system:          s,
		First:           first,
		Last:            last,
		Strength:        def.Strength,
		Flags:           def.Flags,
		Transform:       transform,
		LinearVelocity:  def.LinearVelocity,
		AngularVelocity: def.AngularVelocity,
		UserData:        def.UserData,
	}
	if group.Strength == 0 {
		group.Strength = 1
	}

	s.linkGroup(group)
	for i := first; i < last; i++ {
		s.group[i] = group
	}
	s.allGroupFlags |= def.Flags

	s.UpdateContacts(true)
	s.formPairsAndTriads(group, group)

	return group
}

func transformPoint(xf Transform, p mgl64.Vec2) mgl64.Vec2 {
	c, sn := math.Cos(xf.Angle), math.Sin(xf.Angle)
	rotated := mgl64.Vec2{c*p[0] - sn*p[1], sn*p[0] + c*p[1]}
	return xf.Position.Add(rotated)
}

// emitFromShape fills polygon/circle shapes by AABB raster at stride,
// keeping raster points inside the shape, and strokes edge/chain shapes at
// stride intervals accumulated across child edges (spec.md §4.7).
func (s *System) emitFromShape(shape Shape, xf Transform, flags ParticleFlags, color mgl64.Vec4, userData interface{}) {
	stride := s.def.Stride()

	switch shape.GetType() {
	case ShapeTypeEdge, ShapeTypeChain:
		var carry float64
		for child := 0; child < shape.GetChildCount(); child++ {
			v1, v2, ok := shape.GetChildEdge(child)
			if !ok {
				continue
			}
			carry = s.strokeEdge(v1, v2, xf, stride, carry, flags, color, userData)
		}
	default:
		s.fillShape(shape, xf, stride, flags, color, userData)
	}
}

func (s *System) strokeEdge(v1, v2 mgl64.Vec2, xf Transform, stride, carry float64, flags ParticleFlags, color mgl64.Vec4, userData interface{}) float64 {
	segment := v2.Sub(v1)
	length := segment.Len()
	if length < 1e-12 {
		return carry
	}
	direction := segment.Mul(1 / length)

	t := stride - carry
	for t <= length {
		local := v1.Add(direction.Mul(t))
		s.CreateParticle(ParticleDef{
			Flags:    flags,
			Position: transformPoint(xf, local),
			Color:    color,
			UserData: userData,
		})
		t += stride
	}
	return t - length
}

func (s *System) fillShape(shape Shape, xf Transform, stride float64, flags ParticleFlags, color mgl64.Vec4, userData interface{}) {
	box := shape.ComputeAABB(xf, 0)
	for y := box.LowerBound[1]; y <= box.UpperBound[1]; y += stride {
		for x := box.LowerBound[0]; x <= box.UpperBound[0]; x += stride {
			p := mgl64.Vec2{x, y}
			if !shape.TestPoint(xf, p) {
				continue
			}
			s.CreateParticle(ParticleDef{
				Flags:    flags,
				Position: p,
				Color:    color,
				UserData: userData,
			})
		}
	}
}

func (s *System) linkGroup(g *ParticleGroup) {
	g.next = s.groupList
	if s.groupList != nil {
		s.groupList.prev = g
	}
	s.groupList = g
	s.groupCount++
}

func (s *System) unlinkGroup(g *ParticleGroup) {
	if g.prev != nil {
		g.prev.next = g.next
	} else {
		s.groupList = g.next
	}
	if g.next != nil {
		g.next.prev = g.prev
	}
	g.prev, g.next = nil, nil
	s.groupCount--
}

// JoinParticleGroups merges b into a: rotates b's range to the end of the
// arena, then rotates a's range to abut it, so the two ranges become
// contiguous regardless of their original order; reassigns group
// ownership, ORs the group flags, and destroys b (spec.md §4.7 Join).
func (s *System) JoinParticleGroups(a, b *ParticleGroup) {
	Assert(a != nil && b != nil, "cannot join a nil group")
	Assert(a != b, "cannot join a group to itself")
	Assert(a.system == s && b.system == s, "groups must belong to this system")

	s.Rotate(b.First, b.Last, s.count)
	Assert(b.Last == s.count, "group b must end at the arena end after rotation")
	s.Rotate(a.First, a.Last, b.First)
	Assert(a.Last == b.First, "group a must abut group b after rotation")

	s.UpdateContacts(true)
	s.formPairsAndTriads(a, b)

	for i := b.First; i < b.Last; i++ {
		s.group[i] = a
	}
	a.Flags |= b.Flags
	s.allGroupFlags |= a.Flags
	a.Last = b.Last
	b.First = b.Last

	s.DestroyParticleGroup(b)
}

// DestroyParticleGroup notifies the destruction listener, unbinds the
// group's range (without deleting its particles), unlinks it from the
// list, and frees it (spec.md §4.7 Destroy).
func (s *System) DestroyParticleGroup(g *ParticleGroup) {
	Assert(g != nil, "cannot destroy a nil group")
	s.notifyGoodbyeGroup(g)

	for i := g.First; i < g.Last; i++ {
		s.group[i] = nil
	}
	s.unlinkGroup(g)
	s.recomputeAllGroupFlags()
}

func (s *System) recomputeAllGroupFlags() {
	var all GroupFlags
	for g := s.groupList; g != nil; g = g.next {
		all |= g.Flags
	}
	s.allGroupFlags = all
}

// formPairsAndTriads scans current contacts in [groupA.First,groupB.Last)
// and promotes crossing contacts to durable pairs, and hands live positions
// to the Voronoi builder for triad formation (spec.md §4.6).
func (s *System) formPairsAndTriads(groupA, groupB *ParticleGroup) {
	s.formPairs(groupA, groupB)
	s.formTriads(groupA, groupB)
}
