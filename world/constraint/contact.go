package constraint

import (
	"math"

	"github.com/NorhsArk/liquidfun/world/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultCompliance controls soft constraint stiffness for contact resolution.
	// Lower values = stiffer contacts, higher = softer. Typical range 1e-10 to 1e-6.
	DefaultCompliance = 1e-7
)

type ContactPoint struct {
	Position    mgl64.Vec2
	Penetration float64
}

type ContactConstraint struct {
	BodyA  *actor.RigidBody
	BodyB  *actor.RigidBody
	Points []ContactPoint
	Normal mgl64.Vec2
}

// SolvePosition resolves penetration with a single combined XPBD correction
// per body rather than one correction per contact point.
func (c *ContactConstraint) SolvePosition(dt float64) {
	if len(c.Points) == 0 {
		return
	}
	if c.BodyA.IsSleeping && c.BodyB.IsSleeping {
		return
	}

	bodyA := c.BodyA
	bodyB := c.BodyB

	bodyA.Mutex.Lock()
	bodyB.Mutex.Lock()
	defer bodyA.Mutex.Unlock()
	defer bodyB.Mutex.Unlock()

	invMassA := 1.0 / bodyA.Material.GetMass()
	invMassB := 1.0 / bodyB.Material.GetMass()
	iInvA := bodyA.GetInverseInertiaWorld()
	iInvB := bodyB.GetInverseInertiaWorld()

	var totalWeight, totalPenetration float64

	for _, point := range c.Points {
		if point.Penetration <= 1e-8 {
			continue
		}

		rA := point.Position.Sub(bodyA.Transform.Position)
		rB := point.Position.Sub(bodyB.Transform.Position)

		rACrossN := actor.Cross2(rA, c.Normal)
		rBCrossN := actor.Cross2(rB, c.Normal)

		wA := invMassA + iInvA*rACrossN*rACrossN
		wB := invMassB + iInvB*rBCrossN*rBCrossN
		totalWeight += wA + wB
		totalPenetration += point.Penetration
	}

	if totalWeight <= 1e-8 {
		return
	}

	alphaTilde := DefaultCompliance / (dt * dt)
	deltaLambda := -totalPenetration / (totalWeight + alphaTilde)

	totalImpulse := c.Normal.Mul(deltaLambda)

	if bodyA.BodyType != actor.BodyTypeStatic {
		bodyA.Transform.Position = bodyA.Transform.Position.Add(totalImpulse.Mul(invMassA))
	}
	if bodyB.BodyType != actor.BodyTypeStatic {
		bodyB.Transform.Position = bodyB.Transform.Position.Sub(totalImpulse.Mul(invMassB))
	}

	var totalTorqueA, totalTorqueB float64
	for _, point := range c.Points {
		if point.Penetration <= 1e-8 {
			continue
		}
		rA := point.Position.Sub(bodyA.Transform.Position)
		rB := point.Position.Sub(bodyB.Transform.Position)

		totalTorqueA += actor.Cross2(rA, totalImpulse)
		totalTorqueB += actor.Cross2(rB, totalImpulse.Mul(-1))
	}

	if bodyA.BodyType != actor.BodyTypeStatic {
		bodyA.Transform.Angle += iInvA * totalTorqueA
	}
	if bodyB.BodyType != actor.BodyTypeStatic {
		bodyB.Transform.Angle += iInvB * totalTorqueB
	}
}

// SolveVelocity applies restitution and Coulomb friction impulses.
func (c *ContactConstraint) SolveVelocity(dt float64) {
	if len(c.Points) == 0 {
		return
	}
	if c.BodyA.IsSleeping && c.BodyB.IsSleeping {
		return
	}

	bodyA := c.BodyA
	bodyB := c.BodyB

	bodyA.Mutex.Lock()
	bodyB.Mutex.Lock()
	defer bodyA.Mutex.Unlock()
	defer bodyB.Mutex.Unlock()

	invMassA := 1.0 / bodyA.Material.GetMass()
	invMassB := 1.0 / bodyB.Material.GetMass()
	iInvA := bodyA.GetInverseInertiaWorld()
	iInvB := bodyB.GetInverseInertiaWorld()

	restitution := ComputeRestitution(bodyA.Material, bodyB.Material)
	staticFriction := ComputeStaticFriction(bodyA.Material, bodyB.Material)
	dynamicFriction := ComputeDynamicFriction(bodyA.Material, bodyB.Material)

	var totalLinearImpulseA, totalLinearImpulseB mgl64.Vec2
	var totalAngularImpulseA, totalAngularImpulseB float64

	for _, point := range c.Points {
		rA := point.Position.Sub(bodyA.Transform.Position)
		rB := point.Position.Sub(bodyB.Transform.Position)

		vA := bodyA.Velocity.Add(actor.CrossScalarVec(bodyA.AngularVelocity, rA))
		vB := bodyB.Velocity.Add(actor.CrossScalarVec(bodyB.AngularVelocity, rB))
		relativeVel := vB.Sub(vA)
		normalVel := relativeVel.Dot(c.Normal)

		vAPrev := bodyA.PresolveVelocity.Add(actor.CrossScalarVec(bodyA.PresolveAngularVelocity, rA))
		vBPrev := bodyB.PresolveVelocity.Add(actor.CrossScalarVec(bodyB.PresolveAngularVelocity, rB))
		normalVelPrev := vBPrev.Sub(vAPrev).Dot(c.Normal)

		rACrossN := actor.Cross2(rA, c.Normal)
		rBCrossN := actor.Cross2(rB, c.Normal)
		effectiveMassNormal := invMassA + invMassB + iInvA*rACrossN*rACrossN + iInvB*rBCrossN*rBCrossN
		if effectiveMassNormal < 1e-10 {
			continue
		}

		targetVel := -restitution * normalVelPrev
		lambdaNormal := (targetVel - normalVel) / effectiveMassNormal
		if lambdaNormal < 0 {
			lambdaNormal = 0
		}

		normalImpulse := c.Normal.Mul(lambdaNormal)
		totalLinearImpulseA = totalLinearImpulseA.Sub(normalImpulse.Mul(invMassA))
		totalLinearImpulseB = totalLinearImpulseB.Add(normalImpulse.Mul(invMassB))
		totalAngularImpulseA += iInvA * actor.Cross2(rA, normalImpulse.Mul(-1))
		totalAngularImpulseB += iInvB * actor.Cross2(rB, normalImpulse)

		if lambdaNormal > 0 {
			tangentVel := relativeVel.Sub(c.Normal.Mul(normalVel))
			tangentSpeed := tangentVel.Len()

			if tangentSpeed > 1e-6 {
				tangentDir := tangentVel.Mul(1.0 / tangentSpeed)

				rACrossT := actor.Cross2(rA, tangentDir)
				rBCrossT := actor.Cross2(rB, tangentDir)
				effectiveMassTangent := invMassA + invMassB + iInvA*rACrossT*rACrossT + iInvB*rBCrossT*rBCrossT
				if effectiveMassTangent < 1e-10 {
					continue
				}

				lambdaTangent := -tangentSpeed / effectiveMassTangent
				maxStaticFriction := staticFriction * math.Abs(lambdaNormal)

				var frictionImpulse mgl64.Vec2
				if math.Abs(lambdaTangent) <= maxStaticFriction {
					frictionImpulse = tangentDir.Mul(lambdaTangent)
				} else {
					maxDynamicFriction := dynamicFriction * math.Abs(lambdaNormal)
					frictionImpulse = tangentDir.Mul(-math.Copysign(maxDynamicFriction, tangentSpeed))
				}

				totalLinearImpulseA = totalLinearImpulseA.Sub(frictionImpulse.Mul(invMassA))
				totalLinearImpulseB = totalLinearImpulseB.Add(frictionImpulse.Mul(invMassB))
				totalAngularImpulseA += iInvA * actor.Cross2(rA, frictionImpulse.Mul(-1))
				totalAngularImpulseB += iInvB * actor.Cross2(rB, frictionImpulse)
			}
		}
	}

	bodyA.Velocity = bodyA.Velocity.Add(totalLinearImpulseA)
	bodyB.Velocity = bodyB.Velocity.Add(totalLinearImpulseB)
	bodyA.AngularVelocity += totalAngularImpulseA
	bodyB.AngularVelocity += totalAngularImpulseB

	clampSmallVelocities(bodyA)
	clampSmallVelocities(bodyB)
}
