package gjk

import (
	"testing"

	"github.com/NorhsArk/liquidfun/world/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func createCircleBody(position mgl64.Vec2, radius float64) *actor.RigidBody {
	return actor.NewRigidBody(
		actor.Transform{Position: position},
		&actor.Circle{Radius: radius},
		actor.BodyTypeDynamic,
		1.0,
	)
}

func createBoxBody(position mgl64.Vec2, halfWidth, halfHeight float64) *actor.RigidBody {
	return actor.NewRigidBody(
		actor.Transform{Position: position},
		actor.NewBoxPolygon(halfWidth, halfHeight),
		actor.BodyTypeDynamic,
		1.0,
	)
}

func TestMinkowskiSupport(t *testing.T) {
	t.Run("separated circles along x-axis", func(t *testing.T) {
		a := createCircleBody(mgl64.Vec2{0, 0}, 1.0)
		b := createCircleBody(mgl64.Vec2{3, 0}, 1.0)

		support := MinkowskiSupport(a, b, mgl64.Vec2{1, 0})
		if support[0] >= 0 {
			t.Errorf("support.x = %v, want < 0 for separated shapes", support[0])
		}
	})

	t.Run("overlapping circles", func(t *testing.T) {
		a := createCircleBody(mgl64.Vec2{0, 0}, 1.0)
		b := createCircleBody(mgl64.Vec2{1.5, 0}, 1.0)

		support := MinkowskiSupport(a, b, mgl64.Vec2{1, 0})
		if support[0] <= 0 {
			t.Errorf("support.x = %v, want > 0 for overlapping shapes", support[0])
		}
	})
}

func TestGJK_Circles_Intersecting(t *testing.T) {
	cases := []struct {
		name string
		posB mgl64.Vec2
	}{
		{"overlapping", mgl64.Vec2{1.5, 0}},
		{"touching", mgl64.Vec2{2.0, 0}},
		{"identical position", mgl64.Vec2{0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := createCircleBody(mgl64.Vec2{0, 0}, 1.0)
			b := createCircleBody(tc.posB, 1.0)
			simplex := &Simplex{}

			if !GJK(a, b, simplex) {
				t.Errorf("expected collision for %s", tc.name)
			}
		})
	}
}

func TestGJK_Circles_Separated(t *testing.T) {
	cases := []struct {
		name string
		posB mgl64.Vec2
	}{
		{"far apart", mgl64.Vec2{10, 0}},
		{"barely separated", mgl64.Vec2{2.1, 0}},
		{"separated on y", mgl64.Vec2{0, 5}},
		{"separated diagonally", mgl64.Vec2{3, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := createCircleBody(mgl64.Vec2{0, 0}, 1.0)
			b := createCircleBody(tc.posB, 1.0)
			simplex := &Simplex{}

			if GJK(a, b, simplex) {
				t.Errorf("expected no collision for %s", tc.name)
			}
		})
	}
}

func TestGJK_Boxes_Intersecting(t *testing.T) {
	t.Run("overlapping boxes", func(t *testing.T) {
		a := createBoxBody(mgl64.Vec2{0, 0}, 1, 1)
		b := createBoxBody(mgl64.Vec2{1.5, 0}, 1, 1)
		simplex := &Simplex{}

		if !GJK(a, b, simplex) {
			t.Error("expected collision between overlapping boxes")
		}
	})

	t.Run("touching boxes", func(t *testing.T) {
		a := createBoxBody(mgl64.Vec2{0, 0}, 1, 1)
		b := createBoxBody(mgl64.Vec2{2.0, 0}, 1, 1)
		simplex := &Simplex{}

		if !GJK(a, b, simplex) {
			t.Error("expected collision for touching boxes")
		}
	})

	t.Run("box completely inside another", func(t *testing.T) {
		a := createBoxBody(mgl64.Vec2{0, 0}, 2, 2)
		b := createBoxBody(mgl64.Vec2{0, 0.5}, 0.5, 0.5)
		simplex := &Simplex{}

		if !GJK(a, b, simplex) {
			t.Error("expected collision for box inside another box")
		}
	})
}

func TestGJK_Boxes_Separated(t *testing.T) {
	a := createBoxBody(mgl64.Vec2{0, 0}, 1, 1)
	b := createBoxBody(mgl64.Vec2{10, 0}, 1, 1)
	simplex := &Simplex{}

	if GJK(a, b, simplex) {
		t.Error("expected no collision between separated boxes")
	}
}

func TestGJK_MixedShapes(t *testing.T) {
	t.Run("circle inside box", func(t *testing.T) {
		box := createBoxBody(mgl64.Vec2{0, 0}, 2, 2)
		circle := createCircleBody(mgl64.Vec2{0, 0}, 0.5)
		simplex := &Simplex{}

		if !GJK(box, circle, simplex) {
			t.Error("expected collision for circle inside box")
		}
	})

	t.Run("circle outside box", func(t *testing.T) {
		box := createBoxBody(mgl64.Vec2{0, 0}, 1, 1)
		circle := createCircleBody(mgl64.Vec2{5, 0}, 1.0)
		simplex := &Simplex{}

		if GJK(box, circle, simplex) {
			t.Error("expected no collision for circle outside box")
		}
	})

	t.Run("circle overlapping box corner", func(t *testing.T) {
		box := createBoxBody(mgl64.Vec2{0, 0}, 1, 1)
		circle := createCircleBody(mgl64.Vec2{1.5, 1.5}, 1.0)
		simplex := &Simplex{}

		if !GJK(box, circle, simplex) {
			t.Error("expected collision for circle overlapping box corner")
		}
	})
}

func TestGJK_ZeroVectorDirection(t *testing.T) {
	a := createCircleBody(mgl64.Vec2{0, 0}, 1.0)
	b := createCircleBody(mgl64.Vec2{1e-15, 0}, 1.0)
	simplex := &Simplex{}

	if !GJK(a, b, simplex) {
		t.Error("expected collision for circles at near-identical positions using the fallback direction")
	}
}

func TestGJK_ZeroRadiusCircles(t *testing.T) {
	a := createCircleBody(mgl64.Vec2{0, 0}, 0.0)
	b := createCircleBody(mgl64.Vec2{0, 0}, 0.0)
	simplex := &Simplex{}

	if !GJK(a, b, simplex) {
		t.Error("expected collision for two zero-radius circles at the same position")
	}
}

func TestLine(t *testing.T) {
	t.Run("origin not on segment", func(t *testing.T) {
		simplex := Simplex{
			Points: [3]mgl64.Vec2{{-1, 1}, {1, 1}, {0, 0}},
			Count:  2,
		}
		direction := mgl64.Vec2{0, 1}

		if line(&simplex, &direction) {
			t.Error("line not passing through origin should not report collision")
		}
	})

	t.Run("origin on segment through middle", func(t *testing.T) {
		simplex := Simplex{
			Points: [3]mgl64.Vec2{{-1, 0}, {1, 0}, {0, 0}},
			Count:  2,
		}
		direction := mgl64.Vec2{0, 1}

		if !line(&simplex, &direction) {
			t.Error("line passing through origin should report collision")
		}
	})

	t.Run("origin behind point A reduces simplex", func(t *testing.T) {
		simplex := Simplex{
			Points: [3]mgl64.Vec2{{3, 0}, {1, 0}, {0, 0}},
			Count:  2,
		}
		direction := mgl64.Vec2{-1, 0}

		if line(&simplex, &direction) {
			t.Error("expected no collision")
		}
		if simplex.Count != 1 {
			t.Errorf("expected simplex reduced to 1 point, got %d", simplex.Count)
		}
	})
}

func TestTriangle(t *testing.T) {
	t.Run("origin inside triangle", func(t *testing.T) {
		simplex := Simplex{
			Points: [3]mgl64.Vec2{{-1, -1}, {1, -1}, {0, 1}},
			Count:  3,
		}
		direction := mgl64.Vec2{0, 1}

		if !triangle(&simplex, &direction) {
			t.Error("expected origin inside triangle to report collision")
		}
	})

	t.Run("origin in AB edge region reduces simplex", func(t *testing.T) {
		simplex := Simplex{
			Points: [3]mgl64.Vec2{{3, 3}, {0, 2}, {2, 0}},
			Count:  3,
		}
		direction := mgl64.Vec2{0, 1}

		if triangle(&simplex, &direction) {
			t.Error("origin outside triangle should not report collision")
		}
		if simplex.Count != 2 {
			t.Errorf("expected simplex reduced to edge (2 points), got %d", simplex.Count)
		}
	})
}

func BenchmarkGJK_Circles_Intersecting(b *testing.B) {
	a := createCircleBody(mgl64.Vec2{0, 0}, 1.0)
	body := createCircleBody(mgl64.Vec2{1.5, 0}, 1.0)
	simplex := &Simplex{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GJK(a, body, simplex)
	}
}

func BenchmarkGJK_MixedShapes(b *testing.B) {
	box := createBoxBody(mgl64.Vec2{0, 0}, 1, 1)
	circle := createCircleBody(mgl64.Vec2{1.5, 1.5}, 1.0)
	simplex := &Simplex{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GJK(box, circle, simplex)
	}
}
