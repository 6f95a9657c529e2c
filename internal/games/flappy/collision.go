package flappy

// Collides reports whether the actor overlaps any obstacle section.
// Touching edges do not count.
func Collides(a Actor, obstacles []Obstacle, width float64, g Geometry) bool {
	box := a.Rect()
	for _, o := range obstacles {
		if box.Intersects(o.TopRect(width)) || box.Intersects(o.BottomRect(width, g)) {
			return true
		}
	}
	return false
}
