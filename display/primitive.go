package display

import "fmt"

// Kind identifies a primitive's shape.
type Kind uint8

const (
	KindPoint Kind = iota
	KindLine
	KindCircle
	KindRectangle
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Shape is the geometry of a primitive. Build one with Point, Line, Circle,
// Rectangle or Text.
type Shape struct {
	kind   Kind
	a, b   Vector
	radius uint32
	text   string
}

// Point is a single pixel.
func Point(p Vector) Shape { return Shape{kind: KindPoint, a: p} }

// Line runs from start to end, both endpoints included.
func Line(start, end Vector) Shape { return Shape{kind: KindLine, a: start, b: end} }

// Circle is an outline of the given radius.
func Circle(center Vector, radius uint32) Shape {
	return Shape{kind: KindCircle, a: center, radius: radius}
}

// Rectangle is an outline with both corners included.
func Rectangle(topLeft, bottomRight Vector) Shape {
	return Shape{kind: KindRectangle, a: topLeft, b: bottomRight}
}

// Text is a single line label whose baseline starts at origin.
func Text(origin Vector, s string) Shape { return Shape{kind: KindText, a: origin, text: s} }

func (s Shape) Kind() Kind { return s.kind }

// Anchor is the point, line start, circle centre, rectangle top-left or text origin.
func (s Shape) Anchor() Vector { return s.a }

// End is the line end or rectangle bottom-right; zero for other kinds.
func (s Shape) End() Vector { return s.b }

func (s Shape) Radius() uint32 { return s.radius }
func (s Shape) Label() string  { return s.text }

// Style carries the drawing attributes shared by every shape.
// Thickness and Filled are recorded but not rasterized.
type Style struct {
	Offset    Vector
	Color     Color
	Thickness uint32
	Filled    bool
}

// Primitive is a drawable entry in a display's scene list.
type Primitive struct {
	Shape Shape
	Style Style
}

// Draw rasterizes p into f.
func (p *Primitive) Draw(f *Frame) error {
	if p == nil || f == nil {
		return ErrInvalid
	}
	s, st := p.Shape, p.Style
	switch s.kind {
	case KindPoint:
		return f.SetPixel(s.a.Add(st.Offset), st.Color)
	case KindLine:
		return drawLine(f, s.a, s.b, st.Offset, st.Color)
	case KindCircle:
		return drawCircle(f, s.a, int32(s.radius), st.Offset, st.Color)
	case KindRectangle:
		return drawRectangle(f, s.a, s.b, st.Offset, st.Color)
	case KindText:
		return drawText(f, s.a.Add(st.Offset), s.text, st.Color)
	default:
		return fmt.Errorf("display: %s: %w", s.kind, ErrInvalid)
	}
}
