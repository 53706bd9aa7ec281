package legtracker

import "math"

// lastSeenEntry records, for a recently lost pair, the midpoint of the
// two legs at the moment of loss, so a reconstituted pair can reuse the
// same people_id after a brief occlusion.
type lastSeenEntry struct {
	AgeScans int
	PeopleID int
	Centroid Point
}

// shortTermMemory ages and evicts lastSeenEntry records each scan.
type shortTermMemory struct {
	entries []lastSeenEntry
}

func newShortTermMemory() *shortTermMemory {
	return &shortTermMemory{}
}

func (m *shortTermMemory) record(peopleID int, centroid Point) {
	m.entries = append(m.entries, lastSeenEntry{AgeScans: 0, PeopleID: peopleID, Centroid: centroid})
}

// age increments every entry's age and evicts entries older than 5s, or
// older than 1s and within tol of the ROI boundary (near-boundary loss is
// almost certainly departure, not occlusion). Returns the dropped
// people_ids so callers can retire any associated path marker.
func (m *shortTermMemory) age(scanPeriod float64, roi BBox, tol float64) []int {
	maxAgeScans := int(math.Ceil(5.0 / scanPeriod))
	nearBoundaryAgeScans := int(math.Ceil(1.0 / scanPeriod))

	var dropped []int
	kept := m.entries[:0]
	for _, e := range m.entries {
		e.AgeScans++
		if e.AgeScans > maxAgeScans {
			dropped = append(dropped, e.PeopleID)
			continue
		}
		if e.AgeScans > nearBoundaryAgeScans && nearBoundary(e.Centroid, roi, tol) {
			dropped = append(dropped, e.PeopleID)
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return dropped
}

// matchAndEvict returns the people_id of the closest entry within
// maxDist of centroid, if any, and removes it from memory.
func (m *shortTermMemory) matchAndEvict(centroid Point, maxDist float64) (peopleID int, ok bool) {
	bestIdx := -1
	bestDist := math.Inf(1)
	for i, e := range m.entries {
		d := dist(e.Centroid, centroid)
		if d <= maxDist && d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0, false
	}
	peopleID = m.entries[bestIdx].PeopleID
	m.entries = append(m.entries[:bestIdx], m.entries[bestIdx+1:]...)
	return peopleID, true
}
