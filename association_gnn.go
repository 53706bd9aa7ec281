package legtracker

import "github.com/nmichlo/legtracker/internal/assign"

// associateGNN is the default global-nearest-neighbor policy (§4.4.1):
// every (track, centroid) pair is scored, the whole problem is solved
// once via Hungarian assignment, and each resulting match is filtered
// through an acceptance window before being applied.
func (t *Tracker) associateGNN(clusters []Cluster) {
	t.applyAdaptiveReset()
	t.associateGNNSubset(t.tracks, clusters)
}

// associateGNNSubset runs the GNN matcher restricted to tracks, used both
// by the full GNN policy and by the zone-tracking policy's second pass
// over tracks that currently have no people_id (§4.4.3).
func (t *Tracker) associateGNNSubset(tracks []*Track, clusters []Cluster) {
	if len(tracks) == 0 {
		for _, c := range clusters {
			t.seedTrack(c.Centroid)
		}
		return
	}
	if len(clusters) == 0 {
		for _, tr := range tracks {
			tr.missed()
		}
		return
	}

	cost := make([][]float64, len(tracks))
	for i, tr := range tracks {
		cost[i] = make([]float64, len(clusters))
		for j, c := range clusters {
			cost[i][j] = gnnCell(tr, c.Centroid, t.cfg.MahalanobisDistGate, t.cfg.MaxCost)
		}
	}

	assignments, unmatchedRows, unmatchedCols := assign.Solve(cost, t.cfg.MaxCost)

	matchedTrackIdx := make(map[int]bool, len(assignments))
	for _, a := range assignments {
		tr := tracks[a.Row]
		c := clusters[a.Col].Centroid
		matchedTrackIdx[a.Row] = true

		euclid := dist(tr.Position(), c)
		m := tr.mahalanobis(c)

		if euclid <= 0.03 || withinWindow(m, euclid, t.cfg.MahalanobisDistGate, tr.Observations) {
			tr.update(c)
		} else {
			// Large jump: probably two different things.
			tr.missed()
			t.seedTrack(c)
		}
	}

	for _, row := range unmatchedRows {
		if !matchedTrackIdx[row] {
			tracks[row].missed()
		}
	}
	for _, col := range unmatchedCols {
		t.seedTrack(clusters[col].Centroid)
	}
}

// gnnCell computes one cost-matrix cell for the GNN policy: 0 for an
// essentially exact match, the Mahalanobis surrogate when both gates
// pass, otherwise the configured sentinel.
func gnnCell(tr *Track, c Point, gate, maxCost float64) float64 {
	euclid := dist(tr.Position(), c)
	if euclid <= 0.03 {
		return 0
	}
	m := tr.mahalanobis(c)
	if m < gate && euclid < 0.6 {
		return m
	}
	return maxCost
}

// applyAdaptiveReset resets the covariance of any confirmed track that
// has a confirmed partner, is itself moving (speed > 0.2 m/s) and whose
// inter-leg distance has approached max_dist_btw_legs within 0.1 m, so
// the filter tolerates the imminent step change rather than fighting it.
// The state vector (position, velocity, acceleration) is left unchanged.
func (t *Tracker) applyAdaptiveReset() {
	for _, tr := range t.tracks {
		if !tr.Confirmed() || !tr.HasPair {
			continue
		}
		partner, ok := t.partnerOf(tr)
		if !ok || !partner.Confirmed() {
			continue
		}
		if tr.Speed() <= 0.2 {
			continue
		}
		d := dist(tr.Position(), partner.Position())
		if t.cfg.MaxDistBtwLegs-d <= 0.1 {
			tr.resetForImminentStep()
		}
	}
}

// partnerOf returns the other live track sharing tr's people_id, if any.
func (t *Tracker) partnerOf(tr *Track) (*Track, bool) {
	if !tr.HasPair || tr.PeopleID < 0 {
		return nil, false
	}
	for _, other := range t.tracks {
		if other.LegID != tr.LegID && other.PeopleID == tr.PeopleID && other.HasPair {
			return other, true
		}
	}
	return nil, false
}
