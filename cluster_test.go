package legtracker

import "testing"

func TestEuclideanClusterGroupsByTolerance(t *testing.T) {
	pts := []Point{
		{0, 0}, {0.02, 0}, {0.04, 0}, // cluster A
		{5, 5}, {5.02, 5}, {5.04, 5}, // cluster B
	}

	clusters := euclideanCluster(pts, 0.05, 2, 10)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
}

func TestEuclideanClusterRejectsOutOfSizeRange(t *testing.T) {
	pts := []Point{{0, 0}, {0.01, 0}}
	clusters := euclideanCluster(pts, 0.05, 3, 10)
	if len(clusters) != 0 {
		t.Errorf("expected no clusters below min size, got %d", len(clusters))
	}
}

func TestCentroidOf(t *testing.T) {
	got := centroidOf([]Point{{0, 0}, {2, 0}, {1, 3}})
	want := Point{1, 1}
	if got != want {
		t.Errorf("expected centroid %+v, got %+v", want, got)
	}
}

func TestSnapCentroidSnapsToNearbyPairedTrack(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTrack(1, Point{1, 1}, cfg)
	tr.PeopleID = 0

	got := snapCentroid(Point{1.01, 1.01}, []*Track{tr})
	if got != tr.Position() {
		t.Errorf("expected snap to track position %+v, got %+v", tr.Position(), got)
	}
}

func TestSnapCentroidIgnoresUnpairedTracks(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTrack(1, Point{1, 1}, cfg)

	centroid := Point{1.01, 1.01}
	got := snapCentroid(centroid, []*Track{tr})
	if got != centroid {
		t.Errorf("expected centroid unchanged for unpaired track, got %+v", got)
	}
}

func TestSplitBlobSplitsWellSeparatedHalves(t *testing.T) {
	var pts []Point
	for i := 0; i < 5; i++ {
		pts = append(pts, Point{-1, float64(i) * 0.01})
	}
	for i := 0; i < 5; i++ {
		pts = append(pts, Point{1, float64(i) * 0.01})
	}
	centroid := centroidOf(pts)

	a, b, ok := splitBlob(pts, centroid, 3, 0.1)
	if !ok {
		t.Fatal("expected split to succeed for well-separated halves")
	}
	if dist(a, b) <= 0.1 {
		t.Errorf("expected split halves farther apart than legRadius, got dist=%.4f", dist(a, b))
	}
}

func TestSplitBlobRejectsTooSmallHalves(t *testing.T) {
	pts := []Point{{-1, 0}, {1, 0}}
	centroid := centroidOf(pts)

	_, _, ok := splitBlob(pts, centroid, 3, 0.1)
	if ok {
		t.Error("expected split to fail when halves are below min size")
	}
}

func TestBuildClustersProducesOneClusterPerBlob(t *testing.T) {
	cfg := testTrackerConfig()
	cfg.MinClusterSize = 2
	cfg.ClusterTolerance = 0.05

	pts := []Point{
		{0, 0}, {0.01, 0}, {0.02, 0},
		{2, 2}, {2.01, 2}, {2.02, 2},
	}

	clusters := buildClusters(pts, cfg, nil, nil)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
}

func TestFindEnclosingPair(t *testing.T) {
	box := BBox{XMin: 0, XMax: 2, YMin: 0, YMax: 2}
	pairs := [][2]Point{{{0.5, 0.5}, {1.5, 1.5}}, {{5, 5}, {6, 6}}}

	pair, ok := findEnclosingPair(box, pairs)
	if !ok {
		t.Fatal("expected to find an enclosing pair")
	}
	if pair[0] != (Point{0.5, 0.5}) {
		t.Errorf("unexpected pair found: %+v", pair)
	}
}
