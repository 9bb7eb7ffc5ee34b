package math

import (
	"testing"
)

func TestV3(t *testing.T) {
	got := V3(1.5, -2, 0.25)
	want := Vec3{1.5, -2, 0.25}
	if got != want {
		t.Errorf("V3() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	if got := v.Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Vec3{}.Normalize() = %v, want zero", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -3}
	b := Vec3{2, -1, 0}

	if got, want := a.Min(b), (Vec3{1, -1, -3}); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{2, 5, 0}); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
}

func TestVec3Mul(t *testing.T) {
	got := Vec3{1, 2, 3}.Mul(Vec3{4, 4, 4})
	want := Vec3{4, 8, 12}
	if got != want {
		t.Errorf("Mul() = %v, want %v", got, want)
	}
}
