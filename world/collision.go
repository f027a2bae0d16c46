package world

import (
	"sync"

	"github.com/NorhsArk/liquidfun/world/actor"
	"github.com/NorhsArk/liquidfun/world/constraint"
	"github.com/NorhsArk/liquidfun/world/epa"
	"github.com/NorhsArk/liquidfun/world/gjk"
)

const STIFF_COMPLIANCE = CONCRETE_COMPLIANCE

const (
	CONCRETE_COMPLIANCE = 0.04e-9
	WOOD_COMPLIANCE     = 0.16e-9
	LEATHER_COMPLIANCE  = 14e-8
	TENDON_COMPLIANCE   = 0.2e-7
	RUBBER_COMPLIANCE   = 1e-6
	MUSCLE_COMPLIANCE   = 0.2e-3
	FAT_COMPLIANCE      = 1e-3
)

// CollisionPair is a pair that passed GJK and carries the simplex EPA needs.
type CollisionPair struct {
	BodyA   *actor.RigidBody
	BodyB   *actor.RigidBody
	simplex *gjk.Simplex
}

// BroadPhase rebuilds the spatial grid and streams AABB-overlapping pairs.
func BroadPhase(spatialGrid *SpatialGrid, bodies []*actor.RigidBody, workersCount int) <-chan Pair {
	spatialGrid.Clear()
	for i, body := range bodies {
		spatialGrid.Insert(i, body)
	}
	spatialGrid.SortCells()

	return spatialGrid.FindPairsParallel(bodies, workersCount)
}

// NarrowPhase runs GJK/EPA over every candidate pair, producing contact constraints.
// Edge shapes are not special-cased at this stage (unlike the teacher's analytic
// plane path): a finite Edge is just another convex feature GJK/EPA can support.
func NarrowPhase(pairs <-chan Pair, workersCount int) []*constraint.ContactConstraint {
	collisionPairs := GJK(pairs, workersCount)
	contactsChan := EPA(collisionPairs, workersCount)

	contacts := make([]*constraint.ContactConstraint, 0)
	for c := range contactsChan {
		contacts = append(contacts, c)
	}
	return contacts
}

func GJK(pairChan <-chan Pair, workersCount int) <-chan CollisionPair {
	collisionChan := make(chan CollisionPair, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(collisionChan)

		for range workersCount {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for p := range pairChan {
					simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
					simplex.Reset()

					if collision := gjk.GJK(p.BodyA, p.BodyB, simplex); collision {
						collisionChan <- CollisionPair{BodyA: p.BodyA, BodyB: p.BodyB, simplex: simplex}
					} else {
						gjk.SimplexPool.Put(simplex)
					}
				}
			}()
		}
		wg.Wait()
	}()

	return collisionChan
}

func EPA(p <-chan CollisionPair, workersCount int) <-chan *constraint.ContactConstraint {
	ch := make(chan *constraint.ContactConstraint, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(ch)

		for range workersCount {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for pair := range p {
					contact, err := epa.EPA(pair.BodyA, pair.BodyB, pair.simplex)
					gjk.SimplexPool.Put(pair.simplex)
					if err != nil {
						continue
					}
					ch <- &contact
				}
			}()
		}
		wg.Wait()
	}()

	return ch
}
