package display

// drawLine is the integer midpoint algorithm. Lines steeper than 45 degrees
// are walked with x and y transposed; descending lines flip the y step. The
// walk goes from the lower-x endpoint to the higher and stops at the first
// pixel the frame rejects.
func drawLine(f *Frame, start, end, offset Vector, c Color) error {
	steep := abs32(end.Y-start.Y) > abs32(end.X-start.X)
	if steep {
		start, end = start.transpose(), end.transpose()
	}

	left, right := end, start
	if start.X < end.X {
		left, right = start, end
	}

	descending := left.Y >= right.Y
	dx := right.X - left.X
	dy := right.Y - left.Y
	stepY := int32(1)
	if descending {
		dy = -dy
		stepY = -1
	}

	decision := 2*dy - dx
	incrX := 2 * dy
	incrXY := 2 * (dy - dx)

	for p := left; p.X <= right.X; p.X++ {
		pixel := p
		if steep {
			pixel = p.transpose()
		}
		if err := f.SetPixel(pixel.Add(offset), c); err != nil {
			return err
		}
		if decision > 0 {
			decision += incrXY
			p.Y += stepY
		} else {
			decision += incrX
		}
	}
	return nil
}

// drawCircle is the midpoint circle algorithm with 8-way symmetry. The
// diagonal octant pair is skipped when x == y so no pixel is plotted twice.
// A rejected pixel finishes the current step and then stops the walk.
func drawCircle(f *Frame, center Vector, radius int32, offset Vector, c Color) error {
	origin := center.Add(offset)
	x, y := radius, int32(0)
	decision := 1 - x

	var first error
	for x >= y && first == nil {
		pts := [8]Vector{
			{x, y}, {-x, y}, {x, -y}, {-x, -y},
			{y, x}, {-y, x}, {y, -x}, {-y, -x},
		}
		n := 4
		if x != y {
			n = 8
		}
		for _, d := range pts[:n] {
			if err := f.SetPixel(origin.Add(d), c); err != nil && first == nil {
				first = err
			}
		}

		y++
		if decision <= 0 {
			decision += 2*y + 1
		} else {
			x--
			decision += 2*y - 2*x + 1
			if x < y {
				break
			}
		}
	}
	return first
}

// drawRectangle draws the outline: both vertical edges over every row, then
// the horizontal edges without the corners. Rejected pixels do not stop it;
// the first rejection is returned.
func drawRectangle(f *Frame, topLeft, bottomRight, offset Vector, c Color) error {
	var first error
	plot := func(p Vector) {
		if err := f.SetPixel(p.Add(offset), c); err != nil && first == nil {
			first = err
		}
	}

	for y := topLeft.Y; y <= bottomRight.Y; y++ {
		plot(V(topLeft.X, y))
		plot(V(bottomRight.X, y))
	}
	for x := topLeft.X + 1; x < bottomRight.X; x++ {
		plot(V(x, topLeft.Y))
		plot(V(x, bottomRight.Y))
	}
	return first
}
