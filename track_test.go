package legtracker

import "testing"

func testTrackerConfig() *TrackerConfig {
	cfg := DefaultConfig()
	cfg.applyDefaults()
	return cfg
}

func TestNewTrackStartsTentative(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTrack(1, Point{1, 2}, cfg)

	if tr.Confirmed() {
		t.Error("expected a freshly created track to not be confirmed")
	}
	if tr.PeopleID != -1 {
		t.Errorf("expected PeopleID=-1 for an unpaired track, got %d", tr.PeopleID)
	}
	pos := tr.Position()
	if pos != (Point{1, 2}) {
		t.Errorf("expected seeded position (1,2), got %+v", pos)
	}
}

func TestTrackConfirmsAfterMinObservations(t *testing.T) {
	cfg := testTrackerConfig()
	cfg.MinObservations = 3
	tr := newTrack(1, Point{0, 0}, cfg)

	for i := 0; i < 2; i++ {
		tr.predict()
		tr.update(Point{0.01 * float64(i), 0})
		if tr.Confirmed() {
			t.Fatalf("expected track to remain tentative before reaching min observations, observation %d", i+1)
		}
	}

	tr.predict()
	tr.update(Point{0.03, 0})
	if !tr.Confirmed() {
		t.Error("expected track to confirm once min observations reached")
	}
}

func TestTrackUpdateResetsOccludedAge(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTrack(1, Point{0, 0}, cfg)

	tr.predict()
	tr.missed()
	tr.missed()
	if tr.OccludedAge != 3 {
		t.Fatalf("expected occluded age 3 after predict+2 misses, got %d", tr.OccludedAge)
	}

	tr.update(Point{0, 0})
	if tr.OccludedAge != 0 {
		t.Errorf("expected occluded age reset to 0 after update, got %d", tr.OccludedAge)
	}
}

func TestTrackIsDeadOnExcessiveOccludedAge(t *testing.T) {
	cfg := testTrackerConfig()
	cfg.OccludedDeadAge = 3
	tr := newTrack(1, Point{0, 0}, cfg)
	tr.status = statusConfirmed

	for i := 0; i < 4; i++ {
		tr.predict()
	}
	if !tr.isDead() {
		t.Error("expected track to be dead after exceeding occluded_dead_age")
	}
}

func TestTrackIsDeadOnExcessiveCovariance(t *testing.T) {
	cfg := testTrackerConfig()
	cfg.MaxCov = 1e-6
	tr := newTrack(1, Point{0, 0}, cfg)
	if !tr.isDead() {
		t.Error("expected a freshly seeded track with tiny max_cov to already exceed the threshold")
	}
}

func TestTrackMahalanobisUsesPositionalCovariance(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTrack(1, Point{0, 0}, cfg)

	close := tr.mahalanobis(Point{0.001, 0})
	far := tr.mahalanobis(Point{5, 5})
	if !(far > close) {
		t.Errorf("expected mahalanobis distance to grow with measurement distance: close=%.4f far=%.4f", close, far)
	}
}

func TestTrackResetForImminentStepGrowsCovariance(t *testing.T) {
	cfg := testTrackerConfig()
	tr := newTrack(1, Point{0, 0}, cfg)

	for i := 0; i < 5; i++ {
		tr.predict()
		tr.update(Point{float64(i) * 0.01, 0})
	}
	before := tr.filter.CovarianceTrace()
	tr.resetForImminentStep()
	after := tr.filter.CovarianceTrace()

	if after <= before {
		t.Errorf("expected covariance trace to grow after reset: before=%.4f after=%.4f", before, after)
	}
}
