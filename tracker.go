package legtracker

import (
	"context"
	"errors"
	"fmt"
)

// Tracker owns all per-pipeline mutable state: live tracks, zones,
// short-term memory, dynamic ROI, left/right assignment, and the id
// factory. It is driven exclusively by Update; there is no background
// goroutine and no state outside this object; the id factory it owns
// guards its counters with its own mutex (§5).
type Tracker struct {
	cfg *TrackerConfig

	tracks []*Track
	zones  []*zone
	memory *shortTermMemory

	roiStatic  BBox
	roiDynamic BBox
	leftRight  *leftRightState

	ids *idFactory

	paths            map[int][]Point
	retiredPeopleIDs []int
}

// Result is everything a scan produces: per-leg records, person markers,
// and trimmed path polylines, matching §6's output surface.
type Result struct {
	LegRecords []LegRecord
	People     []PersonMarker
	Paths      map[int][]Point
}

const maxPathPoints = 80

// NewTracker validates cfg, fills in defaults, and returns a ready
// Tracker. Misconfiguration (§7 Fatal) is returned as a plain error; the
// library never panics or exits for it.
func NewTracker(cfg *TrackerConfig) (*Tracker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("legtracker: config cannot be nil")
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	roi := BBox{XMin: cfg.XLowerLimit, XMax: cfg.XUpperLimit, YMin: cfg.YLowerLimit, YMax: cfg.YUpperLimit}
	return &Tracker{
		cfg:        cfg,
		memory:     newShortTermMemory(),
		roiStatic:  roi,
		roiDynamic: roi,
		leftRight:  newLeftRightState(),
		ids:        newIDFactory(),
		paths:      make(map[int][]Point),
	}, nil
}

// currentROI returns the dynamic ROI in single-person mode, the static
// ROI otherwise.
func (t *Tracker) currentROI() BBox {
	if t.cfg.Policy == PolicySinglePerson {
		return t.roiDynamic
	}
	return t.roiStatic
}

// Update runs the full per-scan pipeline (§2) and returns the emitted
// records. A cancelled context or unavailable transform degrades the
// scan to predict-and-miss, returning a (possibly empty) Result and no
// error, per the Recoverable-skip category of §7.
func (t *Tracker) Update(ctx context.Context, scan *LaserScan) (*Result, error) {
	if err := ctx.Err(); err != nil {
		t.predictAndMissAll()
		return t.emit(ctx), nil
	}

	xform, err := t.cfg.Transform.Lookup(ctx, t.cfg.TransformLink, scan.Frame, scan.TimestampSec)
	if err != nil {
		t.cfg.Logger.Debug().Err(fmt.Errorf("%w: %v", errTransformUnavailable, err)).
			Msg("transform unavailable, degrading scan to predict-only")
		t.predictAndMissAll()
		return t.emit(ctx), nil
	}

	rawPoints := scan.ToPoints()
	trackingFramePoints := make([]Point, len(rawPoints))
	for i, p := range rawPoints {
		trackingFramePoints[i] = xform.Apply(p)
	}

	var grid *OccupancyGrid
	if t.cfg.WithMap && t.cfg.OccGrid != nil {
		grid, _ = t.cfg.OccGrid.Get(ctx)
	}

	pts, err := t.filterScan(trackingFramePoints, t.currentROI(), grid, func(p Point) Point { return p })
	if err != nil {
		if errors.Is(err, errSkipScan) {
			t.cfg.Logger.Debug().Msg("too few points survived filtering, degrading scan to predict-only")
			t.predictAndMissAll()
			return t.emit(ctx), nil
		}
		return nil, err
	}

	clusters := buildClusters(pts, t.cfg, t.tracks, t.pairedPositions())

	t.associate(clusters)
	t.retireDeadTracks()
	t.pruneDeadZones()
	t.runPairing()
	t.updateLeftRight()

	dropped := t.memory.age(t.cfg.Frequency, t.roiStatic, 0.10)
	for _, id := range dropped {
		delete(t.paths, id)
	}

	result := t.emit(ctx)
	return result, nil
}

// predictAndMissAll degrades a scan to "predict only": every track is
// predicted and marked missed, no matching occurs, no people computation
// runs.
func (t *Tracker) predictAndMissAll() {
	for _, tr := range t.tracks {
		tr.predict()
		tr.missed()
	}
}

// pairedPositions returns the position pairs of every currently-paired
// people, used by the blob-splitting step to decide which clusters to
// split.
func (t *Tracker) pairedPositions() [][2]Point {
	byPeople := map[int][]Point{}
	for _, tr := range t.tracks {
		if tr.HasPair {
			byPeople[tr.PeopleID] = append(byPeople[tr.PeopleID], tr.Position())
		}
	}
	var out [][2]Point
	for _, pts := range byPeople {
		if len(pts) == 2 {
			out = append(out, [2]Point{pts[0], pts[1]})
		}
	}
	return out
}

// retireDeadTracks removes any track that has reached a lifecycle dead
// condition. A dying confirmed track that had a pair contributes its
// last position to short-term memory, drops its zone, and clears
// has_pair/people_id on a surviving partner so the partner never reports
// a stale pairing. When both legs of a pair die in the same scan, only
// the lower leg_id records the memory entry, since partnerOf still
// resolves the other (also-dying) leg and would otherwise double it.
func (t *Tracker) retireDeadTracks() {
	var dead, survivors []*Track
	for _, tr := range t.tracks {
		if tr.isDead() {
			dead = append(dead, tr)
		} else {
			survivors = append(survivors, tr)
		}
	}

	for _, tr := range dead {
		if !tr.Confirmed() || !tr.HasPair {
			continue
		}
		partner, ok := t.partnerOf(tr)
		partnerAlsoDying := ok && partner.isDead()
		if partnerAlsoDying && tr.LegID > partner.LegID {
			continue
		}

		var mid Point
		if ok {
			mid = midpoint(tr.Position(), partner.Position())
		} else {
			mid = tr.Position()
		}
		t.memory.record(tr.PeopleID, mid)
		t.removeZoneForLeg(tr.LegID)

		if ok && !partnerAlsoDying {
			partner.HasPair = false
			partner.PeopleID = -1
		}
	}
	t.tracks = survivors
}

// pruneDeadZones drops any zone that has gone more than zoneDeadAfterScans
// scans without either member leg being updated.
func (t *Tracker) pruneDeadZones() {
	out := t.zones[:0]
	for _, z := range t.zones {
		if !z.dead() {
			out = append(out, z)
		}
	}
	t.zones = out
}

// removeZoneForLeg drops any zone referencing legID, used on retirement
// where we only know one member's id (the partner may already be gone by
// the time this runs).
func (t *Tracker) removeZoneForLeg(legID int) {
	out := t.zones[:0]
	for _, z := range t.zones {
		if z.FstLegID == legID || z.SndLegID == legID {
			continue
		}
		out = append(out, z)
	}
	t.zones = out
}
