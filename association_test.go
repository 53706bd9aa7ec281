package legtracker

import "testing"

func TestWithinWindow(t *testing.T) {
	if !withinWindow(0.1, 0.2, 1.0, 0) {
		t.Error("expected a close new track to pass the looser no-observation gate")
	}
	if withinWindow(0.1, 0.5, 1.0, 0) {
		t.Error("expected a new track beyond 0.45m euclidean to fail the gate")
	}
	if !withinWindow(0.1, 0.3, 1.0, 3) {
		t.Error("expected an observed track within 0.35m to pass the stricter gate")
	}
}

func TestGnnCellExactMatchIsFree(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTrack(0, Point{0, 0}, cfg)
	got := gnnCell(tr, Point{0.001, 0}, 1.0, 999999)
	if got != 0 {
		t.Errorf("expected near-exact match to cost 0, got %.4f", got)
	}
}

func TestGnnCellFarApartUsesSentinel(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTrack(0, Point{0, 0}, cfg)
	got := gnnCell(tr, Point{50, 50}, 1.0, 999999)
	if got != 999999 {
		t.Errorf("expected sentinel cost for an out-of-gate candidate, got %.4f", got)
	}
}

func TestAssociateGNNSubsetSeedsTracksWhenNoneExist(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTestTracker(cfg)
	clusters := []Cluster{{Centroid: Point{1, 1}}, {Centroid: Point{5, 5}}}

	tr.associateGNNSubset(nil, clusters)

	if len(tr.tracks) != 2 {
		t.Fatalf("expected 2 seeded tracks, got %d", len(tr.tracks))
	}
}

func TestAssociateGNNSubsetMissesAllWhenNoClusters(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTestTracker(cfg)
	leg := newTrack(0, Point{0, 0}, cfg)
	tracks := []*Track{leg}

	tr.associateGNNSubset(tracks, nil)

	if leg.OccludedAge != 1 {
		t.Errorf("expected missed track to have occluded_age 1, got %d", leg.OccludedAge)
	}
}

func TestAssociateGNNSubsetMatchesCloseCluster(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTestTracker(cfg)
	leg := newTrack(0, Point{0, 0}, cfg)
	tracks := []*Track{leg}
	clusters := []Cluster{{Centroid: Point{0.01, 0}}}

	tr.associateGNNSubset(tracks, clusters)

	if leg.Observations != 1 {
		t.Errorf("expected track to be updated by the matching cluster, got observations=%d", leg.Observations)
	}
}

func TestRestrictedTwoTrackMatchSingleCentroidPicksCloserTrack(t *testing.T) {
	cfg := testTrackerConfig()
	t0 := newTrack(0, Point{0, 0}, cfg)
	t1 := newTrack(1, Point{10, 10}, cfg)

	restrictedTwoTrackMatch(t0, t1, []Point{{0.01, 0}}, 1.0, 1.0, 0.02)

	if t0.Observations != 1 {
		t.Errorf("expected closer track to be updated, got observations=%d", t0.Observations)
	}
	if t1.Observations != 0 {
		t.Errorf("expected farther track to be missed, got observations=%d", t1.Observations)
	}
}

func TestRestrictedTwoTrackMatchNoCentroidsMissesBoth(t *testing.T) {
	cfg := testTrackerConfig()
	t0 := newTrack(0, Point{0, 0}, cfg)
	t1 := newTrack(1, Point{1, 1}, cfg)

	restrictedTwoTrackMatch(t0, t1, nil, 1.0, 1.0, 0.02)

	if t0.OccludedAge != 1 || t1.OccludedAge != 1 {
		t.Error("expected both tracks to be marked missed with no centroids")
	}
}

func TestNearestPointWithin(t *testing.T) {
	pts := []Point{{5, 5}, {0.01, 0}}
	ok, idx := nearestPointWithin(pts, Point{0, 0}, 0.1)
	if !ok || idx != 1 {
		t.Errorf("expected to find the nearby point at index 1, got ok=%v idx=%d", ok, idx)
	}

	ok, _ = nearestPointWithin(pts, Point{100, 100}, 0.1)
	if ok {
		t.Error("expected no match beyond radius")
	}
}
