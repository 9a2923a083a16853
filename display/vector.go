package display

// Vector is an integer 2D position or offset in pixels.
type Vector struct {
	X, Y int32
}

// V is shorthand for Vector{x, y}.
func V(x, y int32) Vector { return Vector{X: x, Y: y} }

func (a Vector) Add(b Vector) Vector { return Vector{a.X + b.X, a.Y + b.Y} }
func (a Vector) Sub(b Vector) Vector { return Vector{a.X - b.X, a.Y - b.Y} }
func (a Vector) Neg() Vector         { return Vector{-a.X, -a.Y} }

// Scale multiplies both components by s.
func (a Vector) Scale(s int32) Vector { return Vector{a.X * s, a.Y * s} }

// Div divides both components by s, truncating toward zero.
func (a Vector) Div(s int32) Vector { return Vector{a.X / s, a.Y / s} }

func (a Vector) transpose() Vector { return Vector{a.Y, a.X} }

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
