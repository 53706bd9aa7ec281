package legtracker

import "sync"

// idFactory hands out monotonically increasing leg_id and people_id
// values. Each Tracker owns its own factory, so ids are monotonic per
// Tracker; the counters are guarded by their own mutex, grounded on the
// teacher's TrackedObjectFactory/global-counter pattern.
type idFactory struct {
	mu        sync.Mutex
	nextLeg   int
	nextPeople int
}

func newIDFactory() *idFactory {
	return &idFactory{}
}

func (f *idFactory) nextLegID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextLeg
	f.nextLeg++
	return id
}

func (f *idFactory) nextPeopleID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextPeople
	f.nextPeople++
	return id
}
