package legtracker

import "context"

// confidenceDecay is the per-occluded-scan confidence penalty (§6): a leg
// that has just been updated has confidence 1 (if paired), decaying
// linearly to 0 over roughly nine consecutive misses.
const confidenceDecay = 0.11

// emit builds the per-scan Result and publishes every primitive through
// the configured MarkerSink. It reads the current tracks/zones/memory
// after the pipeline has already run; the only state it changes is the
// per-person path map, to which each person's centroid is appended.
func (t *Tracker) emit(ctx context.Context) *Result {
	res := &Result{Paths: t.paths}

	for _, tr := range t.tracks {
		rec := t.legRecord(tr)
		res.LegRecords = append(res.LegRecords, rec)
		t.cfg.Markers.PublishLegVelocity(ctx, rec)
	}

	t.cfg.Markers.PublishROI(ctx, t.currentROI())
	for _, z := range t.zones {
		t.cfg.Markers.PublishZone(ctx, z.Box)
	}

	for _, pm := range t.personMarkers() {
		res.People = append(res.People, pm)
		t.cfg.Markers.PublishPersonEllipse(ctx, pm)
		t.appendPath(pm.PeopleID, pm.Centroid)
	}

	for id, pts := range t.paths {
		path := make([]PathPoint, len(pts))
		for i, p := range pts {
			path[i] = PathPoint{PeopleID: id, Point: p}
		}
		t.cfg.Markers.PublishPath(ctx, path)
	}

	return res
}

// legRecord builds the flat per-leg output record for one track. Records
// are emitted in track order; the left/right labels of a pair are carried
// by PersonMarker.LeftLegID/RightLegID, not by the record order.
func (t *Tracker) legRecord(tr *Track) LegRecord {
	vx, vy := tr.Velocity()
	ax, ay := tr.Acceleration()
	pos := tr.Position()

	conf := 0.0
	if tr.HasPair {
		conf = 1 - confidenceDecay*float64(tr.OccludedAge)
		if conf < 0 {
			conf = 0
		}
	}

	return LegRecord{
		PosX: pos.X, PosY: pos.Y,
		VelX: vx, VelY: vy,
		AccX: ax, AccY: ay,
		LegID:      tr.LegID,
		PeopleID:   tr.PeopleID,
		Confidence: conf,
	}
}

// personMarkers groups currently-paired tracks into one ellipse marker
// per people_id, resolving left/right leg ids from the tracker's
// left/right state when it applies to that pair.
func (t *Tracker) personMarkers() []PersonMarker {
	byPeople := map[int][]*Track{}
	var order []int
	for _, tr := range t.tracks {
		if !tr.HasPair {
			continue
		}
		if _, seen := byPeople[tr.PeopleID]; !seen {
			order = append(order, tr.PeopleID)
		}
		byPeople[tr.PeopleID] = append(byPeople[tr.PeopleID], tr)
	}

	var markers []PersonMarker
	for _, id := range order {
		legs := byPeople[id]
		if len(legs) != 2 {
			continue
		}
		a, b := legs[0], legs[1]
		centroid := midpoint(a.Position(), b.Position())

		left, right := a.LegID, b.LegID
		if t.leftRight.set && (a.LegID == t.leftRight.leftLegID || a.LegID == t.leftRight.rightLegID) {
			left, right = t.leftRight.leftLegID, t.leftRight.rightLegID
		}

		markers = append(markers, PersonMarker{
			PeopleID:  id,
			Centroid:  centroid,
			LeftLegID: left, RightLegID: right,
		})
	}
	return markers
}

// appendPath appends one sample to a people_id's path, trimming to the
// most recent maxPathPoints samples.
func (t *Tracker) appendPath(peopleID int, p Point) {
	pts := append(t.paths[peopleID], p)
	if len(pts) > maxPathPoints {
		pts = pts[len(pts)-maxPathPoints:]
	}
	t.paths[peopleID] = pts
}
