package flappy

import "testing"

func TestCollides(t *testing.T) {
	actor := Actor{X: 100, Y: 100, Size: 40} // occupies [100,140) x [100,140)
	const width = 80

	tests := []struct {
		name     string
		obstacle Obstacle
		expected bool
	}{
		{"far away", Obstacle{X: 400, GapTopY: 200, GapBottomY: 400}, false},
		{"touching left edge of top section", Obstacle{X: 140, GapTopY: 200, GapBottomY: 400}, false},
		{"overlapping top section", Obstacle{X: 139.99, GapTopY: 200, GapBottomY: 400}, true},
		{"touching right edge", Obstacle{X: 20, GapTopY: 200, GapBottomY: 400}, false},
		{"top section ends at actor top", Obstacle{X: 100, GapTopY: 100, GapBottomY: 140}, false},
		{"top section reaches into actor", Obstacle{X: 100, GapTopY: 100.01, GapBottomY: 300.01}, true},
		{"bottom section starts at actor bottom", Obstacle{X: 100, GapTopY: 0, GapBottomY: 140}, false},
		{"bottom section reaches into actor", Obstacle{X: 100, GapTopY: 0, GapBottomY: 139.99}, true},
		{"actor inside gap", Obstacle{X: 90, GapTopY: 50, GapBottomY: 250}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Collides(actor, []Obstacle{tc.obstacle}, width, testGeometry); got != tc.expected {
				t.Errorf("Collides() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCollidesScansAllObstacles(t *testing.T) {
	actor := Actor{X: 100, Y: 100, Size: 40}
	obstacles := []Obstacle{
		{X: 500, GapTopY: 0, GapBottomY: 200},
		{X: 600, GapTopY: 0, GapBottomY: 200},
		{X: 110, GapTopY: 300, GapBottomY: 500},
	}

	if !Collides(actor, obstacles, 80, testGeometry) {
		t.Error("collision with the last obstacle was missed")
	}
	if Collides(actor, nil, 80, testGeometry) {
		t.Error("empty obstacle list should never collide")
	}
}
