package legtracker

import (
	"context"
	"testing"
)

func TestLegRecordConfidenceDecaysWithOccludedAge(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTestTracker(cfg)
	leg := newTrack(0, Point{0, 0}, cfg)
	leg.HasPair = true
	leg.OccludedAge = 3

	rec := tr.legRecord(leg)
	want := 1 - confidenceDecay*3
	if rec.Confidence != want {
		t.Errorf("expected confidence %.4f, got %.4f", want, rec.Confidence)
	}
}

func TestLegRecordUnpairedHasZeroConfidence(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTestTracker(cfg)
	leg := newTrack(0, Point{0, 0}, cfg)

	rec := tr.legRecord(leg)
	if rec.Confidence != 0 {
		t.Errorf("expected zero confidence for an unpaired leg, got %.4f", rec.Confidence)
	}
}

func TestLegRecordConfidenceFloorsAtZero(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTestTracker(cfg)
	leg := newTrack(0, Point{0, 0}, cfg)
	leg.HasPair = true
	leg.OccludedAge = 100

	rec := tr.legRecord(leg)
	if rec.Confidence != 0 {
		t.Errorf("expected confidence floored at 0, got %.4f", rec.Confidence)
	}
}

func TestPersonMarkersGroupsPairedTracksOnly(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTestTracker(cfg)
	a := pairedTrack(cfg, 0, 1, Point{0, 1})
	b := pairedTrack(cfg, 1, 1, Point{0, -1})
	solo := newTrack(2, Point{9, 9}, cfg) // unpaired, should be excluded
	tr.tracks = []*Track{a, b, solo}

	markers := tr.personMarkers()
	if len(markers) != 1 {
		t.Fatalf("expected 1 person marker, got %d", len(markers))
	}
	if markers[0].PeopleID != 1 {
		t.Errorf("expected people_id 1, got %d", markers[0].PeopleID)
	}
	if markers[0].Centroid != (Point{0, 0}) {
		t.Errorf("expected centroid at midpoint, got %+v", markers[0].Centroid)
	}
}

func TestPersonMarkersUsesLeftRightLabels(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTestTracker(cfg)
	a := pairedTrack(cfg, 0, 1, Point{0, 1})
	b := pairedTrack(cfg, 1, 1, Point{0, -1})
	tr.tracks = []*Track{a, b}
	tr.leftRight.set = true
	tr.leftRight.leftLegID = b.LegID
	tr.leftRight.rightLegID = a.LegID

	markers := tr.personMarkers()
	if markers[0].LeftLegID != b.LegID || markers[0].RightLegID != a.LegID {
		t.Errorf("expected labels to follow left/right state, got left=%d right=%d",
			markers[0].LeftLegID, markers[0].RightLegID)
	}
}

func TestAppendPathTrimsToMaxPoints(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTestTracker(cfg)
	tr.paths = make(map[int][]Point)

	for i := 0; i < maxPathPoints+10; i++ {
		tr.appendPath(1, Point{float64(i), 0})
	}

	if len(tr.paths[1]) != maxPathPoints {
		t.Fatalf("expected path trimmed to %d points, got %d", maxPathPoints, len(tr.paths[1]))
	}
	last := tr.paths[1][len(tr.paths[1])-1]
	if last.X != float64(maxPathPoints+9) {
		t.Errorf("expected most recent sample retained, got %+v", last)
	}
}

func TestEmitPublishesLegRecordsAndPeople(t *testing.T) {
	cfg := testTrackerConfig()
	sink := &captureMarkerSink{}
	cfg.Markers = sink
	tr := newTestTracker(cfg)
	tr.paths = make(map[int][]Point)
	a := pairedTrack(cfg, 0, 1, Point{0, 1})
	b := pairedTrack(cfg, 1, 1, Point{0, -1})
	tr.tracks = []*Track{a, b}

	res := tr.emit(context.Background())

	if len(res.LegRecords) != 2 {
		t.Errorf("expected 2 leg records, got %d", len(res.LegRecords))
	}
	if len(res.People) != 1 {
		t.Errorf("expected 1 person marker, got %d", len(res.People))
	}
	if sink.legs != 2 || sink.people != 1 || sink.rois != 1 {
		t.Errorf("expected sink to observe 2 legs, 1 person, 1 roi; got legs=%d people=%d rois=%d",
			sink.legs, sink.people, sink.rois)
	}
}

type captureMarkerSink struct {
	legs, people, rois, zones, paths int
}

func (c *captureMarkerSink) PublishLegVelocity(ctx context.Context, rec LegRecord)    { c.legs++ }
func (c *captureMarkerSink) PublishPersonEllipse(ctx context.Context, m PersonMarker) { c.people++ }
func (c *captureMarkerSink) PublishROI(ctx context.Context, roi BBox)                 { c.rois++ }
func (c *captureMarkerSink) PublishZone(ctx context.Context, z BBox)                  { c.zones++ }
func (c *captureMarkerSink) PublishPath(ctx context.Context, pts []PathPoint)         { c.paths++ }
