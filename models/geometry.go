package models

// Point is a tile coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the component-wise sum
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an inclusive tile region from Start to End
type Rect struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// NewRect builds a rect from two corners in any order
func NewRect(a, b Point) Rect {
	return Rect{
		Start: Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		End:   Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// Width is the inclusive column count
func (r Rect) Width() int {
	return r.End.X - r.Start.X + 1
}

// Height is the inclusive row count
func (r Rect) Height() int {
	return r.End.Y - r.Start.Y + 1
}

// Area is the inclusive cell count
func (r Rect) Area() int {
	return r.Width() * r.Height()
}

// Span is End minus Start on each axis
func (r Rect) Span() Point {
	return Point{X: r.End.X - r.Start.X, Y: r.End.Y - r.Start.Y}
}

// Valid reports whether Start is not past End
func (r Rect) Valid() bool {
	return r.Start.X <= r.End.X && r.Start.Y <= r.End.Y
}

// Contains reports whether p lies inside the rect, edges included
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Start.X && p.X <= r.End.X && p.Y >= r.Start.Y && p.Y <= r.End.Y
}

// Overlaps reports whether the two rects share at least one cell
func (r Rect) Overlaps(o Rect) bool {
	return r.Start.X <= o.End.X && o.Start.X <= r.End.X &&
		r.Start.Y <= o.End.Y && o.Start.Y <= r.End.Y
}

// Inset shrinks the rect by n on every side
func (r Rect) Inset(n int) Rect {
	return Rect{
		Start: Point{X: r.Start.X + n, Y: r.Start.Y + n},
		End:   Point{X: r.End.X - n, Y: r.End.Y - n},
	}
}
