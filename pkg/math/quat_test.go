package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	if math.Abs(float64(n.Length()-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", n.Length())
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// Endpoints
	result0 := q1.Slerp(q2, 0)
	if math.Abs(float64(result0.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1")
	}
	result1 := q1.Slerp(q2, 1)
	if math.Abs(float64(result1.W-q2.W)) > 0.001 || math.Abs(float64(result1.Y-q2.Y)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2, got %v", result1)
	}

	// For a 90 degree rotation, halfway is 45 degrees
	result5 := q1.Slerp(q2, 0.5)
	expectedW := float32(math.Cos(math.Pi / 8))
	if math.Abs(float64(result5.W-expectedW)) > 0.001 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func TestQuatSlerpUnitNorm(t *testing.T) {
	axes := []Vec3{
		{X: 1}, {Y: 1}, {Z: 1},
		Vec3{X: 1, Y: 1, Z: 0}.Normalize(),
		Vec3{X: -0.3, Y: 0.8, Z: 0.5}.Normalize(),
	}
	angles := []float32{0.01, 0.5, 1.5, 3, 5.5}

	for _, a := range axes {
		for _, b := range axes {
			for _, angA := range angles {
				for _, angB := range angles {
					qa := QuatFromAxisAngle(a, angA)
					qb := QuatFromAxisAngle(b, angB)
					for u := float32(0); u <= 1; u += 0.125 {
						r := qa.Slerp(qb, u)
						if math.Abs(float64(r.Length()-1)) > 1e-4 {
							t.Fatalf("Slerp(%v, %v, %v) norm = %v, want 1", qa, qb, u, r.Length())
						}
					}
				}
			}
		}
	}
}

func TestQuatSlerpDegenerate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 1}, 0.7)
	neg := Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}

	tests := []struct {
		name string
		a, b Quat
		u    float32
		want Quat
	}{
		{"parallel start", q, q, 0.25, q},
		{"parallel end", q, q, 0.75, q},
		{"antiparallel near start", q, neg, 0.49, q},
		{"antiparallel near end", q, neg, 0.5, neg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Slerp(tt.b, tt.u)
			if got != tt.want {
				t.Errorf("Slerp = %v, want %v", got, tt.want)
			}
			if math.IsNaN(float64(got.W)) {
				t.Error("Slerp produced NaN")
			}
		})
	}
}

func TestQuatToMat4(t *testing.T) {
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatFromSlice(t *testing.T) {
	q := QuatFromSlice([]float32{1, 2, 3, 4, 99})
	if q != (Quat{X: 1, Y: 2, Z: 3, W: 4}) {
		t.Errorf("QuatFromSlice should read x, y, z, w, got %+v", q)
	}
}
