package timeline

// DefaultTransitionFrames is half a second at 30fps.
const DefaultTransitionFrames = 15

// Dissolve centers a transition of duration frames on boundary. An odd
// duration puts the extra frame after the boundary. It never moves the cursor.
func Dissolve(boundary, duration int) Transition {
	start := boundary - duration/2
	return Transition{
		Boundary: boundary,
		Start:    start,
		End:      start + duration,
	}
}
