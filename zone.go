package legtracker

// zone is a persistent axis-aligned rectangle bracketing a known pair,
// used to scope per-scan association when bounding-box zone tracking is
// active (§4.4.3).
type zone struct {
	PeopleID           int
	FstLegID           int
	SndLegID           int
	Box                BBox
	ScansWithoutUpdate int
}

const zoneDeadAfterScans = 5

func newZone(peopleID, fstLeg, sndLeg int, box BBox) *zone {
	return &zone{PeopleID: peopleID, FstLegID: fstLeg, SndLegID: sndLeg, Box: box}
}

func (z *zone) dead() bool {
	return z.ScansWithoutUpdate > zoneDeadAfterScans
}
