package legtracker

import (
	"gonum.org/v1/gonum/mat"

	"github.com/nmichlo/legtracker/internal/kalman"
)

type trackStatus int

const (
	statusTentative trackStatus = iota
	statusConfirmed
	statusDead
)

// Track is a Kalman-filter-backed estimate of one human leg. Exactly one
// Tracker owns it; cross-references to a pair or zone are id lookups,
// never pointers, per the cyclic-reference design note.
type Track struct {
	LegID             int
	PeopleID          int // -1 when absent
	HasPair           bool
	Observations      int
	OccludedAge       int
	DistanceTravelled float64

	status  trackStatus
	filter  *kalman.Filter
	history []Point // bounded ring of pre-update snapshots, length <= minObservations

	minObservations int
	occludedDeadAge int
	maxCov          float64
	varObservation  float64
}

func newTrack(id int, seed Point, cfg *TrackerConfig) *Track {
	f := kalman.NewConstantAcceleration2D(cfg.Frequency, cfg.VarianceObservation)
	f.SetPosition(seed.X, seed.Y)
	return &Track{
		LegID:           id,
		PeopleID:        -1,
		status:          statusTentative,
		filter:          f,
		minObservations: cfg.MinObservations,
		occludedDeadAge: cfg.OccludedDeadAge,
		maxCov:          cfg.MaxCov,
		varObservation:  cfg.VarianceObservation,
	}
}

// Confirmed reports whether the track has accumulated enough measurement
// updates to participate in pairing.
func (t *Track) Confirmed() bool { return t.status == statusConfirmed }

// Position returns the track's current (x, y) estimate.
func (t *Track) Position() Point {
	x, y := t.filter.Position()
	return Point{x, y}
}

// Velocity returns the track's current (vx, vy) estimate.
func (t *Track) Velocity() (vx, vy float64) { return t.filter.Velocity() }

// Speed returns the magnitude of the velocity estimate.
func (t *Track) Speed() float64 {
	vx, vy := t.filter.Velocity()
	return norm(Point{vx, vy})
}

// Acceleration returns the track's current (ax, ay) estimate.
func (t *Track) Acceleration() (ax, ay float64) { return t.filter.Acceleration() }

// predict advances state and covariance by one scan period and increments
// occluded_age; covariance only ever grows here, never in missed().
func (t *Track) predict() {
	t.filter.Predict()
	t.OccludedAge++
}

// update incorporates a matched measurement: resets occluded_age,
// increments observations, accumulates distance_travelled, records a
// pre-update history snapshot, and promotes tentative tracks to
// confirmed once minObservations is reached.
func (t *Track) update(z Point) {
	prev := t.Position()
	t.pushHistory(prev)

	meas := mat.NewDense(2, 1, []float64{z.X, z.Y})
	t.filter.Update(meas)

	t.OccludedAge = 0
	t.Observations++
	t.DistanceTravelled += dist(prev, t.Position())

	if t.status == statusTentative && t.Observations >= t.minObservations {
		t.status = statusConfirmed
	}
}

// missed increments occluded_age only; it does not touch covariance,
// which grows solely via predict().
func (t *Track) missed() {
	t.OccludedAge++
}

func (t *Track) pushHistory(p Point) {
	t.history = append(t.history, p)
	if len(t.history) > t.minObservations {
		t.history = t.history[len(t.history)-t.minObservations:]
	}
}

// measurementToTrackMatchingCov is the scalar surrogate used for
// Mahalanobis distance: the positional block of the predicted covariance
// reduced to a single scalar.
func (t *Track) measurementToTrackMatchingCov() float64 {
	return t.filter.MeasurementCovarianceScalar()
}

// mahalanobis returns sqrt((dx^2+dy^2) / sigma^2) against a candidate
// measurement, where sigma^2 is measurementToTrackMatchingCov.
func (t *Track) mahalanobis(z Point) float64 {
	sigma2 := t.measurementToTrackMatchingCov()
	if sigma2 <= 0 {
		sigma2 = 1e-9
	}
	return sqrtSafe(sqDist(t.Position(), z) / sigma2)
}

// isDead reports whether lifecycle thresholds have been reached: the
// covariance trace exceeds max_cov, occluded_age exceeds
// occluded_dead_age, or confirmed status was never reached within
// occluded_dead_age scans of being created.
func (t *Track) isDead() bool {
	if t.filter.CovarianceTrace() > t.maxCov {
		return true
	}
	if t.OccludedAge > t.occludedDeadAge {
		return true
	}
	if t.status == statusTentative && t.OccludedAge+t.Observations > t.occludedDeadAge {
		return true
	}
	return false
}

// resetForImminentStep resets the covariance to its initial form, used by
// the GNN policy's adaptive reset rule ahead of a pair approaching
// max_dist_btw_legs at speed. The state estimate is not changed.
func (t *Track) resetForImminentStep() {
	t.filter.ResetCovariance(t.varObservation)
}
