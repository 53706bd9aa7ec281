package legtracker

// associateBoundingBoxZone implements bounding-box zone tracking
// (§4.4.3): each persistent zone consumes the centroids lying inside it
// via the restricted two-track matcher (same rule as the single-person
// policy's "k centroids, 2 tracks", but with no dynamic-ROI clip — zone
// tracking has no dynamic ROI at all), then whatever centroids remain
// run through global nearest-neighbor against tracks that currently have
// no people_id. Pre-existing paired tracks are never reshuffled by the
// second pass.
func (t *Tracker) associateBoundingBoxZone(clusters []Cluster) {
	remaining := append([]Cluster(nil), clusters...)

	for _, z := range t.zones {
		fst := t.trackByID(z.FstLegID)
		snd := t.trackByID(z.SndLegID)
		if fst == nil || snd == nil {
			continue
		}

		var inside []int
		for i, c := range remaining {
			if z.Box.contains(c.Centroid) {
				inside = append(inside, i)
			}
		}
		centroids := make([]Point, len(inside))
		for k, idx := range inside {
			centroids[k] = remaining[idx].Centroid
		}

		beforeObs := fst.Observations + snd.Observations
		restrictedTwoTrackMatch(fst, snd, centroids,
			singlePersonOneTrackGate, singlePersonTwoTrackGate, singlePersonCloseRadius)
		afterObs := fst.Observations + snd.Observations

		if afterObs > beforeObs {
			z.ScansWithoutUpdate = 0
		} else {
			z.ScansWithoutUpdate++
		}

		remaining = removeIndices(remaining, inside)
	}

	var noPeople []*Track
	for _, tr := range t.tracks {
		if tr.PeopleID < 0 {
			noPeople = append(noPeople, tr)
		}
	}
	t.associateGNNSubset(noPeople, remaining)
}

func (t *Tracker) trackByID(legID int) *Track {
	for _, tr := range t.tracks {
		if tr.LegID == legID {
			return tr
		}
	}
	return nil
}

func removeIndices(clusters []Cluster, idx []int) []Cluster {
	if len(idx) == 0 {
		return clusters
	}
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	out := make([]Cluster, 0, len(clusters)-len(idx))
	for i, c := range clusters {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}
