package legtracker

import "testing"

func TestZoneDeadAfterScansWithoutUpdate(t *testing.T) {
	z := newZone(1, 2, 3, BBox{XMin: 0, XMax: 1, YMin: 0, YMax: 1})

	if z.dead() {
		t.Error("expected a freshly created zone to not be dead")
	}

	z.ScansWithoutUpdate = zoneDeadAfterScans + 1
	if !z.dead() {
		t.Error("expected zone to be dead after exceeding zoneDeadAfterScans")
	}
}

func TestIDFactoryMonotonicAllocation(t *testing.T) {
	f := newIDFactory()

	if got := f.nextLegID(); got != 0 {
		t.Errorf("expected first leg id 0, got %d", got)
	}
	if got := f.nextLegID(); got != 1 {
		t.Errorf("expected second leg id 1, got %d", got)
	}
	if got := f.nextPeopleID(); got != 0 {
		t.Errorf("expected first people id 0, got %d", got)
	}
	if got := f.nextPeopleID(); got != 1 {
		t.Errorf("expected second people id 1, got %d", got)
	}
}
