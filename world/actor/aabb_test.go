package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAABBOverlaps_Separated(t *testing.T) {
	tests := []struct {
		name  string
		aabb1 AABB
		aabb2 AABB
	}{
		{"separated on X", AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}}, AABB{Min: mgl64.Vec2{2, 0}, Max: mgl64.Vec2{3, 1}}},
		{"separated on Y", AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}}, AABB{Min: mgl64.Vec2{0, 2}, Max: mgl64.Vec2{1, 3}}},
		{"separated diagonally", AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}}, AABB{Min: mgl64.Vec2{2, 2}, Max: mgl64.Vec2{3, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.aabb1.Overlaps(tt.aabb2) {
				t.Errorf("expected no overlap")
			}
			if tt.aabb2.Overlaps(tt.aabb1) {
				t.Errorf("expected no overlap (symmetry)")
			}
		})
	}
}

func TestAABBOverlaps_Touching(t *testing.T) {
	aabb1 := AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}}
	aabb2 := AABB{Min: mgl64.Vec2{1, 0}, Max: mgl64.Vec2{2, 1}}

	if !aabb1.Overlaps(aabb2) {
		t.Error("edge-touching AABBs should overlap")
	}
}

func TestAABBOverlaps_Containment(t *testing.T) {
	outer := AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{10, 10}}
	inner := AABB{Min: mgl64.Vec2{2, 2}, Max: mgl64.Vec2{3, 3}}

	if !outer.Overlaps(inner) || !inner.Overlaps(outer) {
		t.Error("nested AABBs should overlap")
	}
}

func TestAABBContainsPoint(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{2, 2}}

	tests := []struct {
		name     string
		point    mgl64.Vec2
		expected bool
	}{
		{"center", mgl64.Vec2{1, 1}, true},
		{"min corner", mgl64.Vec2{0, 0}, true},
		{"max corner", mgl64.Vec2{2, 2}, true},
		{"outside X", mgl64.Vec2{3, 1}, false},
		{"outside Y", mgl64.Vec2{1, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := aabb.ContainsPoint(tt.point); got != tt.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestAABBUnion(t *testing.T) {
	a := AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}}
	b := AABB{Min: mgl64.Vec2{2, -1}, Max: mgl64.Vec2{3, 0.5}}

	got := a.Union(b)
	want := AABB{Min: mgl64.Vec2{0, -1}, Max: mgl64.Vec2{3, 1}}

	if got != want {
		t.Errorf("Union() = %v, want %v", got, want)
	}
}

func TestAABBOverlaps_Reflexivity(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec2{-5, -5}, Max: mgl64.Vec2{5, 5}}
	if !aabb.Overlaps(aabb) {
		t.Error("AABB should always overlap itself")
	}
}
