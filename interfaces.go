package legtracker

import (
	"context"
	"math"
)

// LaserScan is a planar range scan as delivered by the inbound transport.
// Construction of this value and its delivery are out of scope (§1); the
// tracking core only consumes it.
type LaserScan struct {
	Frame        string
	TimestampSec float64
	AngleMin     float64
	AngleMax     float64
	AngleInc     float64
	Ranges       []float64
}

// ToPoints projects the polar ranges into planar points in the scan's own
// frame. NaN/Inf and non-positive ranges are dropped; no upper range
// limit is applied.
func (s *LaserScan) ToPoints() []Point {
	pts := make([]Point, 0, len(s.Ranges))
	angle := s.AngleMin
	for _, r := range s.Ranges {
		if r > 0 && !isInfOrNaN(r) {
			pts = append(pts, Point{X: r * math.Cos(angle), Y: r * math.Sin(angle)})
		}
		angle += s.AngleInc
	}
	return pts
}

// Transform is a rigid 2-D transform (rotation + translation) resolved by
// the transform provider between two frames.
type Transform struct {
	TranslationX, TranslationY float64
	CosTheta, SinTheta         float64
}

// Apply maps a point from the source frame into the target frame.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.CosTheta*p.X - t.SinTheta*p.Y + t.TranslationX,
		Y: t.SinTheta*p.X + t.CosTheta*p.Y + t.TranslationY,
	}
}

// TransformProvider resolves (target_frame, source_frame) -> rigid
// transform at a query time. Out of scope (§1); modeled only as an
// interface so the tracking core never depends on a concrete transform
// library.
type TransformProvider interface {
	Lookup(ctx context.Context, targetFrame, sourceFrame string, atSec float64) (Transform, error)
}

// OccupancyGrid is a row-major free-space map in [0,100], negative
// meaning unknown, as published by the occupancy-grid provider.
type OccupancyGrid struct {
	Frame       string
	Resolution  float64
	OriginX     float64
	OriginY     float64
	Width       int
	Height      int
	Data        []int8
}

// At returns the occupancy value at grid cell (i, j), indexed i + j*width
// (not i + j*height — see §9 REDESIGN FLAGS for why this matters on
// non-square maps).
func (g *OccupancyGrid) At(i, j int) int8 {
	idx := i + j*g.Width
	if idx < 0 || idx >= len(g.Data) {
		return -1
	}
	return g.Data[idx]
}

// WorldToGrid converts a point in the map frame to grid indices.
func (g *OccupancyGrid) WorldToGrid(p Point) (i, j int) {
	i = int((p.X - g.OriginX) / g.Resolution)
	j = int((p.Y - g.OriginY) / g.Resolution)
	return i, j
}

// OccupancyGridProvider supplies the latest occupancy grid snapshot.
// Optional (§6); reads during a scan see a single consistent snapshot by
// copy-on-assignment, so the provider need not be safe for concurrent
// mutation during a Get call.
type OccupancyGridProvider interface {
	Get(ctx context.Context) (*OccupancyGrid, bool)
}

// LegRecord is the flat 9-value per-leg output record: pos, vel, acc,
// leg_id, people_id, confidence.
type LegRecord struct {
	PosX, PosY         float64
	VelX, VelY         float64
	AccX, AccY         float64
	LegID              int
	PeopleID           int
	Confidence         float64
}

// PersonMarker is an ellipse primitive describing one paired person.
type PersonMarker struct {
	PeopleID int
	Centroid Point
	LeftLegID, RightLegID int
}

// PathPoint is one sample of a people-id's trimmed path polyline.
type PathPoint struct {
	PeopleID int
	Point    Point
}

// MarkerSink receives visualization primitives for emission. Out of
// scope (§1); the tracking core only calls it, never depends on what it
// does with the data.
type MarkerSink interface {
	PublishLegVelocity(ctx context.Context, rec LegRecord)
	PublishPersonEllipse(ctx context.Context, m PersonMarker)
	PublishROI(ctx context.Context, roi BBox)
	PublishZone(ctx context.Context, z BBox)
	PublishPath(ctx context.Context, pts []PathPoint)
}

func isInfOrNaN(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// identityTransformProvider resolves every lookup to the identity
// transform. It is the default when no TransformProvider is configured,
// matching a deployment where scans already arrive in the tracking
// frame.
type identityTransformProvider struct{}

func (identityTransformProvider) Lookup(ctx context.Context, targetFrame, sourceFrame string, atSec float64) (Transform, error) {
	return Transform{CosTheta: 1}, nil
}

// noopMarkerSink discards every published primitive. Default when no
// MarkerSink is configured.
type noopMarkerSink struct{}

func (noopMarkerSink) PublishLegVelocity(ctx context.Context, rec LegRecord)    {}
func (noopMarkerSink) PublishPersonEllipse(ctx context.Context, m PersonMarker) {}
func (noopMarkerSink) PublishROI(ctx context.Context, roi BBox)                {}
func (noopMarkerSink) PublishZone(ctx context.Context, z BBox)                  {}
func (noopMarkerSink) PublishPath(ctx context.Context, pts []PathPoint)         {}
