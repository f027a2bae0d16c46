package liquidfun

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ParticleDef describes a single particle at creation time.
type ParticleDef struct {
	Flags    ParticleFlags
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Color    mgl64.Vec4
	UserData interface{}
	Group    *ParticleGroup
}

// System is the particle arena: a structure-of-arrays keyed by dense index
// in [0,count), plus the transient and durable structural lists built from
// it each step.
type System struct {
	def                 Def
	world               Query
	destructionListener DestructionListener

	count int

	// The five user-exposed arrays (§6): flags, position, velocity, color,
	// user data. Any of these may be swapped for caller-supplied storage.
	flags    *ParticleBuffer[ParticleFlags]
	position *ParticleBuffer[mgl64.Vec2]
	velocity *ParticleBuffer[mgl64.Vec2]
	color    *ParticleBuffer[mgl64.Vec4]
	userData *ParticleBuffer[interface{}]

	group []*ParticleGroup

	// Scratch and optional arrays. weight and the two accumulation arrays grow
	// with every other arena array; depth and staticPressureBuf are
	// materialized on first demand (requestDepthBuffer and
	// requestStaticPressureBuffer).
	weight        []float64
	accumulation  []float64
	accumulation2 []mgl64.Vec2
	depth         []float64
	staticPressureBuf []float64

	hasDepth          bool
	hasStaticPressure bool

	proxies []proxy

	contacts     []Contact
	bodyContacts []BodyContact
	pairs        []Pair
	triads       []Triad

	groupList  *ParticleGroup
	groupCount int

	allParticleFlags ParticleFlags
	allGroupFlags    GroupFlags
	staleFlags       bool

	timestamp      int64
	iterationIndex int
	locked         bool
}

// NewSystem constructs an empty particle system against the given world
// collaborator (query_aabb / fixture / body contract, §6).
func NewSystem(def Def, world Query) *System {
	return &System{
		def:      def,
		world:    world,
		flags:    NewOwnedBuffer[ParticleFlags](0),
		position: NewOwnedBuffer[mgl64.Vec2](0),
		velocity: NewOwnedBuffer[mgl64.Vec2](0),
		color:    NewOwnedBuffer[mgl64.Vec4](0),
		userData: NewOwnedBuffer[interface{}](0),
	}
}

// SetDestructionListener installs the capability notified just before a
// particle or group is physically removed.
func (s *System) SetDestructionListener(l DestructionListener) {
	s.destructionListener = l
}

func (s *System) notifyGoodbyeParticle(index int) {
	if s.destructionListener != nil {
		s.destructionListener.SayGoodbyeParticle(index)
	}
}

func (s *System) notifyGoodbyeGroup(g *ParticleGroup) {
	if s.destructionListener != nil {
		s.destructionListener.SayGoodbyeParticleGroup(g)
	}
}

// Count returns the number of live particles.
func (s *System) Count() int { return s.count }

// SetParticleMaxCount caps CreateParticle allocation. A zero value means
// unbounded (besides the underlying buffer capacities).
func (s *System) SetParticleMaxCount(max int) {
	Assert(max == 0 || s.count <= max, "cannot shrink below the current live particle count")
	s.def.MaxCount = max
}

func (s *System) GetParticleMaxCount() int { return s.def.MaxCount }

// SetFlagsBuffer / SetPositionBuffer / SetVelocityBuffer / SetColorBuffer /
// SetUserDataBuffer install caller-owned storage for the corresponding
// user-exposed array (§6): the core will never reallocate or free it.
func (s *System) SetFlagsBuffer(buf []ParticleFlags)       { s.flags.SetUserBuffer(buf) }
func (s *System) SetPositionBuffer(buf []mgl64.Vec2)        { s.position.SetUserBuffer(buf) }
func (s *System) SetVelocityBuffer(buf []mgl64.Vec2)        { s.velocity.SetUserBuffer(buf) }
func (s *System) SetColorBuffer(buf []mgl64.Vec4)           { s.color.SetUserBuffer(buf) }
func (s *System) SetUserDataBuffer(buf []interface{})       { s.userData.SetUserBuffer(buf) }

// Flags/Positions/Velocities/Colors/UserDataSlice give read/write access to
// the live prefix of each user-exposed array.
func (s *System) Flags() []ParticleFlags      { return s.flags.Slice()[:s.count] }
func (s *System) Positions() []mgl64.Vec2     { return s.position.Slice()[:s.count] }
func (s *System) Velocities() []mgl64.Vec2    { return s.velocity.Slice()[:s.count] }
func (s *System) Colors() []mgl64.Vec4        { return s.color.Slice()[:s.count] }
func (s *System) UserDataSlice() []interface{} { return s.userData.Slice()[:s.count] }

func (s *System) GetFlags(i int) ParticleFlags { return s.flags.Get(i) }

// SetFlags replaces particle i's flags wholesale, marking allParticleFlags
// stale if any flag might have been removed, mirroring
// `b2ParticleSystem::SetParticleFlags`.
func (s *System) SetFlags(i int, newFlags ParticleFlags) {
	oldFlags := s.flags.Get(i)
	if oldFlags&^newFlags != 0 {
		s.staleFlags = true
	}
	s.allParticleFlags |= newFlags
	s.flags.Set(i, newFlags)
}

func (s *System) GetPosition(i int) mgl64.Vec2   { return s.position.Get(i) }
func (s *System) GetVelocity(i int) mgl64.Vec2   { return s.velocity.Get(i) }
func (s *System) SetVelocity(i int, v mgl64.Vec2) { s.velocity.Set(i, v) }
func (s *System) GetGroup(i int) *ParticleGroup  { return s.group[i] }

// CreateParticle creates one particle, returning its index or
// InvalidParticleIndex if the system is locked or at capacity (§7).
func (s *System) CreateParticle(def ParticleDef) int {
	if s.locked {
		return InvalidParticleIndex
	}
	if s.def.MaxCount != 0 && s.count >= s.def.MaxCount {
		return InvalidParticleIndex
	}

	index := s.count
	if !s.growTo(index + 1) {
		return InvalidParticleIndex
	}

	s.flags.Set(index, def.Flags)
	s.position.Set(index, def.Position)
	s.velocity.Set(index, def.Velocity)
	s.color.Set(index, def.Color)
	s.userData.Set(index, def.UserData)
	s.group[index] = def.Group
	s.weight[index] = 0
	s.accumulation[index] = 0
	s.accumulation2[index] = mgl64.Vec2{}
	if s.hasDepth {
		s.depth[index] = 0
	}
	if s.hasStaticPressure {
		s.staticPressureBuf[index] = 0
	}

	s.allParticleFlags |= def.Flags
	s.count = index + 1
	return index
}

// growTo ensures every arena array can address index count-1, honoring any
// user-supplied capacity ceiling (§3, §7).
func (s *System) growTo(count int) bool {
	if !s.flags.EnsureCapacity(count) || !s.position.EnsureCapacity(count) ||
		!s.velocity.EnsureCapacity(count) || !s.color.EnsureCapacity(count) ||
		!s.userData.EnsureCapacity(count) {
		return false
	}
	s.group = growSlice(s.group, count)
	s.weight = growSlice(s.weight, count)
	s.accumulation = growSlice(s.accumulation, count)
	s.accumulation2 = growSlice(s.accumulation2, count)
	if s.hasDepth {
		s.depth = growSlice(s.depth, count)
	}
	if s.hasStaticPressure {
		s.staticPressureBuf = growSlice(s.staticPressureBuf, count)
	}
	return true
}

func growSlice[T any](s []T, count int) []T {
	if len(s) >= count {
		return s
	}
	newCap := len(s)
	if newCap == 0 {
		newCap = MinParticleBufferCapacity
	}
	for newCap < count {
		newCap *= 2
	}
	grown := make([]T, newCap)
	copy(grown, s)
	return grown
}

// requestDepthBuffer / requestStaticPressureBuffer lazily materialize the
// corresponding optional array on first demand (§5 shared-resource policy).
func (s *System) requestDepthBuffer() []float64 {
	if !s.hasDepth {
		s.depth = make([]float64, len(s.weight))
		s.hasDepth = true
	}
	return s.depth
}

func (s *System) requestStaticPressureBuffer() []float64 {
	if !s.hasStaticPressure {
		s.staticPressureBuf = make([]float64, len(s.weight))
		s.hasStaticPressure = true
	}
	return s.staticPressureBuf
}

// DestroyParticle marks a particle zombie; physical removal happens at the
// next SolveZombie compaction (§3 lifecycle).
func (s *System) DestroyParticle(index int) {
	if s.locked {
		return
	}
	flags := s.flags.Get(index) | FlagZombie
	s.flags.Set(index, flags)
	s.allParticleFlags |= FlagZombie
}

// DestroyParticlesInShape marks every live particle inside shape as zombie,
// returning the number destroyed. Supplements the distilled spec per
// `b2ParticleSystem::DestroyParticlesInShape`.
func (s *System) DestroyParticlesInShape(shape Shape, xf Transform) int {
	if s.locked {
		return 0
	}
	destroyed := 0
	for i := 0; i < s.count; i++ {
		if s.flags.Get(i)&FlagZombie != 0 {
			continue
		}
		if shape.TestPoint(xf, s.position.Get(i)) {
			s.DestroyParticle(i)
			destroyed++
		}
	}
	return destroyed
}

// InGroup reports whether index belongs to g's current [First,Last) range.
func (s *System) InGroup(index int, g *ParticleGroup) bool {
	return g != nil && index >= g.First && index < g.Last
}

// ApplyForce adds force divided by one particle's mass to a particle's
// velocity; no time step is applied, and nothing happens when that mass is
// not positive.
func (s *System) ApplyForce(index int, force mgl64.Vec2) {
	mass := s.def.ParticleMass()
	if mass <= 0 {
		return
	}
	v := s.velocity.Get(index)
	s.velocity.Set(index, v.Add(force.Mul(1.0/mass)))
}

// ApplyLinearImpulse sets a particle's velocity delta directly from an
// impulse, mirroring `b2ParticleSystem::ParticleApplyLinearImpulse`.
func (s *System) ApplyLinearImpulse(index int, impulse mgl64.Vec2) {
	invMass := s.def.ParticleInvMass()
	v := s.velocity.Get(index)
	s.velocity.Set(index, v.Add(impulse.Mul(invMass)))
}

// ComputeBodyCollisionEnergy sums kinetic energy contributed by
// particle-body normal-velocity components. Supplements the distilled spec
// alongside ComputeParticleCollisionEnergy (query.go), the original's
// particle-contact witness for the §8 energy-non-increase property.
func (s *System) ComputeBodyCollisionEnergy() float64 {
	sum := 0.0
	for _, bc := range s.bodyContacts {
		v := s.velocity.Get(bc.Index)
		vn := v.Dot(bc.Normal)
		if vn < 0 {
			sum += vn * vn
		}
	}
	return 0.5 * s.def.ParticleMass() * sum
}

func (s *System) kineticEnergy() float64 {
	total := 0.0
	mass := s.def.ParticleMass()
	for i := 0; i < s.count; i++ {
		if s.flags.Get(i)&FlagZombie != 0 {
			continue
		}
		v := s.velocity.Get(i)
		total += 0.5 * mass * v.LenSqr()
	}
	return total
}

func (s *System) recomputeAllParticleFlags() {
	var all ParticleFlags
	for i := 0; i < s.count; i++ {
		all |= s.flags.Get(i)
	}
	s.allParticleFlags = all
	s.staleFlags = false
}

func (s *System) AllParticleFlags() ParticleFlags {
	if s.staleFlags {
		s.recomputeAllParticleFlags()
	}
	return s.allParticleFlags
}
