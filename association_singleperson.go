package legtracker

import "math"

const (
	singlePersonBootstrapRadius = 0.3
	singlePersonCloseRadius     = 0.05
	singlePersonOneTrackGate    = 0.3
	singlePersonTwoTrackGate    = 0.25
)

// associateSinglePerson tracks exactly one person with a dynamic ROI
// (§4.4.2): bootstrap up to two tracks from the reference point, predict
// only lightly-occluded tracks, reset on departure, then match the
// remaining centroids against one or two tracks depending on how many of
// each are present.
func (t *Tracker) associateSinglePerson(clusters []Cluster) {
	remaining := append([]Cluster(nil), clusters...)

	// Bootstrap: greedily adopt centroids closest to the reference point
	// until two tracks exist.
	for len(t.tracks) < 2 {
		idx, ok := closestToRef(remaining, t.cfg.RefPointX, t.cfg.RefPointY, singlePersonBootstrapRadius)
		if !ok {
			break
		}
		t.seedTrack(remaining[idx].Centroid)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	for _, tr := range t.tracks {
		if tr.OccludedAge < 3 {
			tr.predict()
		}
	}

	if t.singlePersonShouldReset() {
		t.resetSinglePerson()
		return
	}

	switch len(t.tracks) {
	case 0:
		// nothing to match against; next scan may bootstrap.
	case 1:
		t.matchOneTrack(remaining)
	default:
		centroids := make([]Point, len(remaining))
		for i, c := range remaining {
			centroids[i] = c.Centroid
		}
		restrictedTwoTrackMatch(t.tracks[0], t.tracks[1], centroids,
			singlePersonOneTrackGate, singlePersonTwoTrackGate, singlePersonCloseRadius)
	}

	t.updateDynamicROI()
}

func closestToRef(clusters []Cluster, refX, refY, maxDist float64) (int, bool) {
	ref := Point{refX, refY}
	best := -1
	bestD := math.Inf(1)
	for i, c := range clusters {
		d := dist(c.Centroid, ref)
		if d < maxDist && d < bestD {
			bestD = d
			best = i
		}
	}
	return best, best >= 0
}

// matchOneTrack implements "k centroids, 1 track": pick the centroid
// whose Mahalanobis distance is smallest among those within 0.3 m; any
// centroid within 5 cm of the track is picked unconditionally.
func (t *Tracker) matchOneTrack(clusters []Cluster) {
	tr := t.tracks[0]
	if len(clusters) == 0 {
		tr.missed()
		return
	}

	for _, c := range clusters {
		if dist(tr.Position(), c.Centroid) < singlePersonCloseRadius {
			tr.update(c.Centroid)
			return
		}
	}

	best := -1
	bestM := math.Inf(1)
	for i, c := range clusters {
		if dist(tr.Position(), c.Centroid) >= singlePersonOneTrackGate {
			continue
		}
		m := tr.mahalanobis(c.Centroid)
		if m < bestM {
			bestM = m
			best = i
		}
	}
	if best >= 0 {
		tr.update(clusters[best].Centroid)
		return
	}
	tr.missed()
}

// singlePersonShouldReset reports the Integrator-reset condition: any
// track has left the static ROI, or the two tracks exceed
// max_dist_btw_legs apart.
func (t *Tracker) singlePersonShouldReset() bool {
	for _, tr := range t.tracks {
		if !t.roiStatic.contains(tr.Position()) {
			return true
		}
	}
	if len(t.tracks) == 2 {
		if dist(t.tracks[0].Position(), t.tracks[1].Position()) > t.cfg.MaxDistBtwLegs {
			return true
		}
	}
	return false
}

// resetSinglePerson implements the Integrator-reset error category: clear
// all tracks and zones, reset the dynamic ROI to the static ROI, and
// clear left/right state. Not logged as an error — this is the nominal
// "person departed" path.
func (t *Tracker) resetSinglePerson() {
	t.tracks = nil
	t.zones = nil
	t.roiDynamic = t.roiStatic
	t.leftRight = newLeftRightState()
	t.cfg.Logger.Info().AnErr("reason", errIntegratorReset).
		Msg("single-person integrator reset: person departed ROI or pair separated")
}

// updateDynamicROI recomputes the dynamic ROI from the current two
// tracks' bounding box, inflated by 0.2 m and clipped to the static ROI;
// if the resulting area is too small to be useful it collapses back to
// the static ROI.
func (t *Tracker) updateDynamicROI() {
	if len(t.tracks) != 2 {
		return
	}
	box := twoPointBBox(t.tracks[0].Position(), t.tracks[1].Position(), 0.2).clip(t.roiStatic)
	if box.area() < 0.17 {
		t.roiDynamic = t.roiStatic
		return
	}
	t.roiDynamic = box
}
