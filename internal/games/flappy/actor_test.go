package flappy

import (
	"math"
	"testing"
)

const eps = 1e-9

var testGeometry = Geometry{Width: 800, Height: 600, Ground: 64}

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestActorFreeFall(t *testing.T) {
	p := DefaultParams()
	a := NewActor(p, testGeometry)
	startY := a.Y

	for range 10 {
		a.Step(p.Gravity)
	}

	if !approx(a.Velocity, 10*p.Gravity) {
		t.Errorf("velocity after 10 ticks = %f, expected %f", a.Velocity, 10*p.Gravity)
	}
	expectedY := startY + p.Gravity*55
	if !approx(a.Y, expectedY) {
		t.Errorf("y after 10 ticks = %f, expected %f", a.Y, expectedY)
	}
}

func TestActorImpulseOverwritesVelocity(t *testing.T) {
	p := DefaultParams()
	for _, v := range []float64{-30, 0, 7.5, 100} {
		a := Actor{Velocity: v, Size: 40}
		a.ApplyImpulse(p.JumpForce)
		if a.Velocity != p.JumpForce {
			t.Errorf("velocity %f after impulse = %f, expected %f", v, a.Velocity, p.JumpForce)
		}
	}
}

func TestActorSpawnPosition(t *testing.T) {
	p := DefaultParams()
	a := NewActor(p, testGeometry)

	if a.X != 100 || a.Y != 300 || a.Velocity != 0 || a.Size != 40 {
		t.Errorf("NewActor() = %+v, expected x=100 y=300 v=0 size=40", a)
	}
}

func TestActorOutOfBounds(t *testing.T) {
	tests := []struct {
		name     string
		y        float64
		expected bool
	}{
		{"above the sky", -0.1, true},
		{"at the top", 0, false},
		{"middle", 300, false},
		{"resting on ground", 496, false},
		{"into the ground", 496.01, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Actor{X: 100, Y: tc.y, Size: 40}
			if got := a.OutOfBounds(testGeometry); got != tc.expected {
				t.Errorf("OutOfBounds(y=%f) = %v, expected %v", tc.y, got, tc.expected)
			}
		})
	}
}
