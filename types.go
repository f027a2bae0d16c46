package liquidfun

import "github.com/go-gl/mathgl/mgl64"

// ParticleFlags requests per-particle solver behavior and pair/triad formation.
type ParticleFlags uint32

const (
	FlagZombie ParticleFlags = 1 << iota
	FlagWall
	FlagSpring
	FlagElastic
	FlagViscous
	FlagPowder
	FlagTensile
	FlagColorMixing
	FlagDestructionListener
	FlagBarrier
	FlagStaticPressure
	FlagReactive
	FlagRepulsive
)

// Flag groups used by structural formation and the solver pipeline
// (spec.md §4.6, §4.10): which flags request pair/triad formation, which
// disable ambient pressure, and which request a second damping pass.
const (
	pairFlags         = FlagSpring | FlagBarrier
	triadFlags        = FlagElastic
	noPressureFlags   = FlagPowder | FlagTensile
	extraDampingFlags = FlagStaticPressure
)

// GroupFlags requests per-group structural behavior.
type GroupFlags uint32

const (
	GroupFlagSolid GroupFlags = 1 << iota
	GroupFlagRigid
	GroupFlagCanBeEmpty
	GroupFlagWillBeDestroyed
	GroupFlagNeedsUpdateDepth
)

// Contact is a transient particle-particle proximity record rebuilt every
// sub-step.
type Contact struct {
	IndexA, IndexB int
	Flags          ParticleFlags
	Weight         float64
	Normal         mgl64.Vec2
}

// BodyContact is a transient particle-fixture proximity record.
type BodyContact struct {
	Index   int
	Body    Body
	Fixture Fixture
	Weight  float64
	Normal  mgl64.Vec2
	Mass    float64
}

// Pair is a durable 2-particle bond created at group formation.
type Pair struct {
	IndexA, IndexB int
	Flags          ParticleFlags
	Strength       float64
	RestDistance   float64
}

// Triad is a durable 3-particle element used by the elastic solver.
type Triad struct {
	IndexA, IndexB, IndexC int
	Flags                  ParticleFlags
	Strength               float64
	PA, PB, PC             mgl64.Vec2
	KA, KB, KC, S          float64
}

// proxy is one (tag, particle index) entry in the spatial index.
type proxy struct {
	tag   uint32
	index int
}

type proxySlice []proxy

func (p proxySlice) Len() int           { return len(p) }
func (p proxySlice) Less(i, j int) bool { return p[i].tag < p[j].tag }
func (p proxySlice) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
