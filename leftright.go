package legtracker

const movingSpeedThreshold = 0.2

// leftRightState tracks the confidence-weighted left/right label for the
// single paired person it applies to (§4.6): unset until a pair exists,
// then maintained by spatial-order tallying and velocity-asymmetry
// reinforcement.
type leftRightState struct {
	set             bool
	leftLegID       int
	rightLegID      int
	tallyRightMinusLeft int // positive: leg on the right more often historically
	confidence      float64
}

func newLeftRightState() *leftRightState {
	return &leftRightState{}
}

// updateLeftRight runs the left/right heuristic when exactly one paired
// person is present; it is a no-op (and the state resets) otherwise.
func (t *Tracker) updateLeftRight() {
	a, b, ok := t.onlyPair()
	if !ok {
		t.leftRight = newLeftRightState()
		return
	}
	lr := t.leftRight

	posA, posB := a.Position(), b.Position()
	if posA.Y-posB.Y > 0 {
		lr.tallyRightMinusLeft++
	} else if posA.Y-posB.Y < 0 {
		lr.tallyRightMinusLeft--
	}

	if !lr.set {
		if posA.Y >= posB.Y {
			lr.leftLegID, lr.rightLegID = b.LegID, a.LegID
		} else {
			lr.leftLegID, lr.rightLegID = a.LegID, b.LegID
		}
		lr.set = true
		lr.confidence = 0
		return
	}

	aMoving := a.Speed() > movingSpeedThreshold
	bMoving := b.Speed() > movingSpeedThreshold
	if aMoving == bMoving {
		return // either both moving or both static: no clean asymmetry signal
	}

	mover, moverPos, moverVx, moverVy := a, posA, 0.0, 0.0
	if bMoving {
		mover, moverPos = b, posB
	}
	moverVx, moverVy = mover.Velocity()

	A := moverPos
	Bp := Point{A.X + moverVx, A.Y + moverVy}
	swingingBack := norm(A) > norm(Bp)
	if !swingingBack {
		return
	}

	moverIsRight := mover.LegID == lr.rightLegID
	habituallyRight := lr.tallyRightMinusLeft > 0
	habituallyLeft := lr.tallyRightMinusLeft < 0

	if moverIsRight {
		if habituallyRight {
			lr.confidence = minF(1, lr.confidence+0.1)
		} else if habituallyLeft {
			lr.leftLegID, lr.rightLegID = lr.rightLegID, lr.leftLegID
			lr.confidence = 0.1
		}
	} else {
		if habituallyLeft {
			lr.confidence = minF(1, lr.confidence+0.1)
		} else if habituallyRight {
			lr.leftLegID, lr.rightLegID = lr.rightLegID, lr.leftLegID
			lr.confidence = 0.1
		}
	}
}

// onlyPair returns the two legs of the sole paired person, if exactly
// one pair currently exists among live tracks.
func (t *Tracker) onlyPair() (a, b *Track, ok bool) {
	seen := map[int][]*Track{}
	for _, tr := range t.tracks {
		if tr.HasPair {
			seen[tr.PeopleID] = append(seen[tr.PeopleID], tr)
		}
	}
	if len(seen) != 1 {
		return nil, nil, false
	}
	for _, pair := range seen {
		if len(pair) != 2 {
			return nil, nil, false
		}
		return pair[0], pair[1], true
	}
	return nil, nil, false
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
