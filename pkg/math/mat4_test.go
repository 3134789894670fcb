package math

import "testing"

func TestIdentityTransform(t *testing.T) {
	m := Identity()
	p := Vec3{1, 2, 3}
	got := m.TransformPoint(p)
	if got != p {
		t.Errorf("Identity().TransformPoint(%v) = %v", p, got)
	}
}

func TestMulIdentity(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	got := m.Mul(Identity())
	if got != m {
		t.Errorf("m.Mul(Identity()) = %v, want %v", got, m)
	}
}

func TestLookAtOrigin(t *testing.T) {
	// Camera on +Z looking at origin maps the origin to -distance on Z.
	m := LookAt(Vec3{0, 0, 10}, Vec3{}, Vec3{0, 1, 0})
	got := m.TransformPoint(Vec3{})
	if got.Z > -9.999 || got.Z < -10.001 {
		t.Errorf("origin transformed to %v, want Z ~ -10", got)
	}
}

func TestPerspectiveW(t *testing.T) {
	m := Perspective(1.0, 16.0/9.0, 0.1, 100)
	// A point on the near plane should not collapse to zero.
	got := m.TransformPoint(Vec3{0, 0, -0.1})
	if got.Z > -0.999 || got.Z < -1.001 {
		t.Errorf("near-plane point transformed to %v, want Z ~ -1", got)
	}
}
