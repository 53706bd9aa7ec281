package legtracker

import "testing"

func TestPassthroughROI(t *testing.T) {
	roi := BBox{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	pts := []Point{{0.5, 0.5}, {2, 2}, {0, 0}, {-1, -1}}

	got := passthroughROI(pts, roi)
	if len(got) != 2 {
		t.Fatalf("expected 2 points inside ROI, got %d: %+v", len(got), got)
	}
}

func TestRemoveRadiusOutliers(t *testing.T) {
	pts := []Point{
		{0, 0}, {0.01, 0}, {0.02, 0}, // dense cluster
		{5, 5}, // isolated
	}

	got := removeRadiusOutliers(pts, 0.1, 2)
	if len(got) != 3 {
		t.Fatalf("expected 3 surviving points, got %d", len(got))
	}
	for _, p := range got {
		if p == (Point{5, 5}) {
			t.Error("expected isolated outlier to be removed")
		}
	}
}

func TestMaskByOccupancyNilGridPassesThrough(t *testing.T) {
	pts := []Point{{0, 0}, {1, 1}}
	got := maskByOccupancy(pts, nil, nil, 1, 0.5)
	if len(got) != len(pts) {
		t.Errorf("expected nil grid to pass all points through, got %d", len(got))
	}
}

func TestMaskByOccupancyKeepsFreeSpace(t *testing.T) {
	grid := &OccupancyGrid{
		Resolution: 1.0,
		Width:      3,
		Height:     3,
		Data:       []int8{0, 0, 0, 0, 100, 0, 0, 0, 0},
	}
	free := Point{0, 0}
	occupied := Point{1, 1}

	got := maskByOccupancy([]Point{free, occupied}, grid, nil, 0, 0.5)
	if len(got) != 1 || got[0] != free {
		t.Errorf("expected only the free-space point to survive, got %+v", got)
	}
}

func TestFilterScanReturnsSkipScanBelowMinClusterSize(t *testing.T) {
	cfg := testTrackerConfig()
	cfg.MinClusterSize = 5
	tr := &Tracker{cfg: cfg}

	roi := BBox{XMin: cfg.XLowerLimit, XMax: cfg.XUpperLimit, YMin: cfg.YLowerLimit, YMax: cfg.YUpperLimit}
	_, err := tr.filterScan([]Point{{0, 0}, {0, 0.01}}, roi, nil, nil)
	if err != errSkipScan {
		t.Fatalf("expected errSkipScan, got %v", err)
	}
}

func TestFilterScanPassesEnoughPoints(t *testing.T) {
	cfg := testTrackerConfig()
	cfg.MinClusterSize = 2
	cfg.OutlierRemovalRadius = 1.0
	cfg.MaxNeighborsForOutlierRem = 1
	tr := &Tracker{cfg: cfg}

	roi := BBox{XMin: cfg.XLowerLimit, XMax: cfg.XUpperLimit, YMin: cfg.YLowerLimit, YMax: cfg.YUpperLimit}
	pts := []Point{{0, 0}, {0.05, 0}, {0.1, 0}}
	got, err := tr.filterScan(pts, roi, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Error("expected surviving points")
	}
}
