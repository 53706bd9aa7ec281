package legtracker

import "math"

// Point is a planar coordinate in the tracking frame.
type Point struct {
	X, Y float64
}

func (p Point) sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

// dist returns the Euclidean distance between two points.
func dist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func sqDist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func sqrtSafe(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}

func norm(p Point) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

func midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// BBox is an axis-aligned bounding box in the tracking frame.
type BBox struct {
	XMin, XMax, YMin, YMax float64
}

func bboxFromPoints(pts []Point) BBox {
	b := BBox{XMin: math.Inf(1), XMax: math.Inf(-1), YMin: math.Inf(1), YMax: math.Inf(-1)}
	for _, p := range pts {
		b.XMin = math.Min(b.XMin, p.X)
		b.XMax = math.Max(b.XMax, p.X)
		b.YMin = math.Min(b.YMin, p.Y)
		b.YMax = math.Max(b.YMax, p.Y)
	}
	return b
}

func (b BBox) inflate(margin float64) BBox {
	return BBox{b.XMin - margin, b.XMax + margin, b.YMin - margin, b.YMax + margin}
}

func (b BBox) contains(p Point) bool {
	return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
}

func (b BBox) area() float64 {
	w, h := b.XMax-b.XMin, b.YMax-b.YMin
	if w < 0 || h < 0 {
		return 0
	}
	return w * h
}

// clip restricts b to lie within the static bounds.
func (b BBox) clip(static BBox) BBox {
	return BBox{
		XMin: math.Max(b.XMin, static.XMin),
		XMax: math.Min(b.XMax, static.XMax),
		YMin: math.Max(b.YMin, static.YMin),
		YMax: math.Min(b.YMax, static.YMax),
	}
}

func twoPointBBox(a, b Point, margin float64) BBox {
	return bboxFromPoints([]Point{a, b}).inflate(margin)
}

// nearBoundary reports whether p lies within tol of any edge of roi.
func nearBoundary(p Point, roi BBox, tol float64) bool {
	return math.Abs(p.X-roi.XMin) < tol || math.Abs(p.X-roi.XMax) < tol ||
		math.Abs(p.Y-roi.YMin) < tol || math.Abs(p.Y-roi.YMax) < tol
}
