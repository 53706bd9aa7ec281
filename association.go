package legtracker

// associate dispatches to exactly one of the three matchers selected by
// configuration, predicting every live track first. Each matcher is
// responsible for calling update/missed on every track it is given and
// for reporting which cluster centroids were left unmatched (those seed
// new tracks).
//
// Expressed as a sum type dispatched once per scan, not as runtime
// polymorphism invoked per-measurement, per the design notes: the three
// matchers share no state and differ only by precondition.
func (t *Tracker) associate(clusters []Cluster) {
	switch t.cfg.Policy {
	case PolicySinglePerson:
		// Predict is conditional on occluded_age (§4.4.2); the policy
		// drives it itself rather than an unconditional predict-all.
		t.associateSinglePerson(clusters)
	case PolicyBoundingBoxZone:
		for _, tr := range t.tracks {
			tr.predict()
		}
		t.associateBoundingBoxZone(clusters)
	default:
		for _, tr := range t.tracks {
			tr.predict()
		}
		t.associateGNN(clusters)
	}
}

// seedTrack creates and appends a new tentative track from an unmatched
// cluster centroid.
func (t *Tracker) seedTrack(centroid Point) *Track {
	tr := newTrack(t.ids.nextLegID(), centroid, t.cfg)
	t.tracks = append(t.tracks, tr)
	return tr
}

// withinWindow implements the GNN acceptance window: a looser Euclidean
// gate (0.45 m) for brand-new tracks (no observations yet) than for
// tracks with at least one prior observation (0.35 m).
func withinWindow(m, d float64, gate float64, observations int) bool {
	if observations == 0 {
		return m < gate && d < 0.45
	}
	return m < gate && d < 0.35
}

// restrictedTwoTrackMatch implements the "k centroids, 2 tracks" matcher
// shared by the single-person policy (§4.4.2) and the bounding-box zone
// policy (§4.4.3): jointly minimize the sum of Mahalanobis distances over
// the i != j Cartesian product of candidate centroids gated at
// oneTrackGate Euclidean distance each; a centroid within closeRadius of
// a track is recorded as a fallback in case no joint optimum exists. When
// exactly one centroid is offered it degenerates to the "1 centroid, 2
// tracks" rule: assign to whichever track has the lower Mahalanobis
// distance, gated at twoTrackGate, refusing the assignment if the
// centroid also sits within closeRadius of the other track.
func restrictedTwoTrackMatch(t0, t1 *Track, centroids []Point, oneTrackGate, twoTrackGate, closeRadius float64) {
	switch len(centroids) {
	case 0:
		t0.missed()
		t1.missed()
		return
	case 1:
		c := centroids[0]
		var chosen, other *Track
		if t0.mahalanobis(c) <= t1.mahalanobis(c) {
			chosen, other = t0, t1
		} else {
			chosen, other = t1, t0
		}
		if dist(chosen.Position(), c) > twoTrackGate || dist(other.Position(), c) < closeRadius {
			t0.missed()
			t1.missed()
			return
		}
		chosen.update(c)
		other.missed()
		return
	}

	bestI, bestJ := -1, -1
	bestSum := 1e18
	for i, ci := range centroids {
		if dist(t0.Position(), ci) >= oneTrackGate {
			continue
		}
		for j, cj := range centroids {
			if i == j {
				continue
			}
			if dist(t1.Position(), cj) >= oneTrackGate {
				continue
			}
			sum := t0.mahalanobis(ci) + t1.mahalanobis(cj)
			if sum < bestSum {
				bestSum, bestI, bestJ = sum, i, j
			}
		}
	}
	if bestI >= 0 {
		t0.update(centroids[bestI])
		t1.update(centroids[bestJ])
		return
	}

	matched0, idx0 := nearestPointWithin(centroids, t0.Position(), closeRadius)
	matched1, idx1 := nearestPointWithin(centroids, t1.Position(), closeRadius)
	if matched0 {
		t0.update(centroids[idx0])
	} else {
		t0.missed()
	}
	if matched1 {
		t1.update(centroids[idx1])
	} else {
		t1.missed()
	}
}

func nearestPointWithin(points []Point, p Point, radius float64) (bool, int) {
	for i, q := range points {
		if dist(p, q) < radius {
			return true, i
		}
	}
	return false, -1
}
