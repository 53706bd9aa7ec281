package legtracker

import "math"

// pairCandidate is a candidate association between two confirmed, unpaired tracks
// considered during the pairing pass.
type pairCandidate struct {
	j    int
	gain float64
}

// runPairing implements §4.5: dissolve pairs that have drifted too far
// apart, then pair up remaining unpaired confirmed tracks, assigning or
// reusing a people_id for each new pair.
func (t *Tracker) runPairing() {
	t.dissolveBrokenPairs()

	if err := t.formNewPairs(); err != nil {
		t.cfg.Logger.Warn().Err(err).Msg("pairing pass aborted")
	}
}

// dissolveBrokenPairs clears has_pair/people_id on both legs of any pair
// whose distance now exceeds max_dist_btw_legs, and removes the
// corresponding zone.
func (t *Tracker) dissolveBrokenPairs() {
	for _, tr := range t.tracks {
		if !tr.HasPair {
			continue
		}
		partner, ok := t.partnerOf(tr)
		if !ok {
			continue
		}
		if dist(tr.Position(), partner.Position()) <= t.cfg.MaxDistBtwLegs {
			continue
		}
		if tr.LegID < partner.LegID {
			t.removeZoneFor(tr.LegID, partner.LegID)
		}
		tr.HasPair, partner.HasPair = false, false
		tr.PeopleID, partner.PeopleID = -1, -1
	}
}

func (t *Tracker) removeZoneFor(legA, legB int) {
	out := t.zones[:0]
	for _, z := range t.zones {
		if (z.FstLegID == legA && z.SndLegID == legB) || (z.FstLegID == legB && z.SndLegID == legA) {
			continue
		}
		out = append(out, z)
	}
	t.zones = out
}

// formNewPairs pairs every unpaired confirmed track with its best
// surviving candidate, per the gain rule. Returns errInvariantViolation
// (without mutating further pairs) if a gain computation finds the two
// tracks' histories at inconsistent lengths — a condition that should
// never arise from normal operation.
func (t *Tracker) formNewPairs() error {
	H := t.cfg.MinObservations
	for i := 0; i < len(t.tracks); i++ {
		ti := t.tracks[i]
		if ti.HasPair || !ti.Confirmed() {
			continue
		}

		var candidates []pairCandidate
		for j := i + 1; j < len(t.tracks); j++ {
			tj := t.tracks[j]
			if tj.HasPair || !tj.Confirmed() {
				continue
			}
			d := dist(ti.Position(), tj.Position())
			if d < t.cfg.LegRadius || d > t.cfg.MaxDistBtwLegs {
				continue
			}
			candidates = append(candidates, pairCandidate{j: j})
		}

		switch len(candidates) {
		case 0:
			continue
		case 1:
			t.commitPair(ti, t.tracks[candidates[0].j])
		default:
			best := -1
			bestGain := math.Inf(-1)
			for _, cand := range candidates {
				gain, ok, err := pairGain(ti, t.tracks[cand.j], H, t.cfg.MaxDistBtwLegs)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				if gain > bestGain {
					bestGain, best = gain, cand.j
				}
			}
			if best >= 0 {
				t.commitPair(ti, t.tracks[best])
			}
		}
	}
	return nil
}

// pairGain computes the mean exponentially-weighted historical-distance
// gain between two candidate tracks over history slots h=0..H-2 (the
// most recent slot, H-1, is excluded from both the gain sum and the
// max-dist rejection check), rejecting (ok=false) any candidate whose
// historical distance ever exceeded maxDist. Returns
// errInvariantViolation if the two tracks' retained history lengths
// differ, since the gain sums are only meaningful over aligned history
// slots.
func pairGain(a, b *Track, H int, maxDist float64) (gain float64, ok bool, err error) {
	if len(a.history) != len(b.history) {
		return 0, false, errInvariantViolation
	}
	n := len(a.history)
	if n == 0 {
		return 0, true, nil
	}

	sum := 0.0
	for h := 0; h < n-1; h++ {
		d := dist(a.history[h], b.history[h])
		if d > maxDist {
			return 0, false, nil
		}
		weight := math.Pow(0.5, float64(H-1-h))
		sum += weight * (1 - d/math.Sqrt(200))
	}
	return sum / float64(n), true, nil
}

// commitPair assigns people_id to a new pair following the preferred
// source order of §4.5 step 3: short-term memory, then an id already
// carried by one leg, then the smaller of two disagreeing ids, then a
// fresh allocation.
func (t *Tracker) commitPair(a, b *Track) {
	mid := midpoint(a.Position(), b.Position())

	var peopleID int
	if id, found := t.memory.matchAndEvict(mid, t.cfg.MaxDistBtwLegs); found {
		peopleID = id
	} else if a.PeopleID >= 0 && (b.PeopleID < 0 || b.PeopleID == a.PeopleID) {
		peopleID = a.PeopleID
	} else if b.PeopleID >= 0 && a.PeopleID < 0 {
		peopleID = b.PeopleID
	} else if a.PeopleID >= 0 && b.PeopleID >= 0 && a.PeopleID != b.PeopleID {
		if a.PeopleID < b.PeopleID {
			peopleID = a.PeopleID
			t.retiredPeopleIDs = append(t.retiredPeopleIDs, b.PeopleID)
		} else {
			peopleID = b.PeopleID
			t.retiredPeopleIDs = append(t.retiredPeopleIDs, a.PeopleID)
		}
	} else {
		peopleID = t.ids.nextPeopleID()
	}

	a.PeopleID, b.PeopleID = peopleID, peopleID
	a.HasPair, b.HasPair = true, true

	if t.cfg.IsBoundingBoxTracking {
		box := twoPointBBox(a.Position(), b.Position(), t.cfg.TrackingBoundingBoxUncert)
		t.zones = append(t.zones, newZone(peopleID, a.LegID, b.LegID, box))
	}
}
