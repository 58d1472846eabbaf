package availability

import (
	"reflect"
	"testing"
	"time"
)

func day(t *testing.T) (time.Time, *time.Location) {
	t.Helper()
	loc := time.UTC
	return time.Date(2026, 3, 9, 0, 0, 0, 0, loc), loc
}

func at(d time.Time, hour, min int) time.Time {
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func TestSlots_FullOpenDay(t *testing.T) {
	d, _ := day(t)
	slots := Slots(at(d, 8, 0), at(d, 18, 0), nil, 30*time.Minute, d)
	if len(slots) != 20 {
		t.Fatalf("expected 20 slots, got %d: %v", len(slots), slots)
	}
	if slots[0] != "08:00" {
		t.Errorf("expected first slot 08:00, got %s", slots[0])
	}
	if slots[len(slots)-1] != "17:30" {
		t.Errorf("expected last slot 17:30, got %s", slots[len(slots)-1])
	}
}

func TestSlots_BusyIntervalExcluded(t *testing.T) {
	d, _ := day(t)
	busy := []Interval{{Start: at(d, 9, 0), End: at(d, 10, 0)}}
	slots := Slots(at(d, 8, 0), at(d, 18, 0), busy, 30*time.Minute, d)

	got := map[string]bool{}
	for _, s := range slots {
		got[s] = true
	}
	for _, absent := range []string{"09:00", "09:30"} {
		if got[absent] {
			t.Errorf("slot %s overlaps the busy interval but was returned", absent)
		}
	}
	// Boundary touches: 08:30 ends exactly at 09:00, 10:00 starts exactly at
	// the busy end. Neither intersects the half-open busy interval.
	for _, present := range []string{"08:30", "10:00"} {
		if !got[present] {
			t.Errorf("slot %s touches the busy interval boundary and should be returned", present)
		}
	}
}

func TestSlots_PastSlotsExcluded(t *testing.T) {
	d, _ := day(t)
	now := at(d, 8, 15)
	slots := Slots(at(d, 8, 0), at(d, 9, 0), nil, 30*time.Minute, now)
	if !reflect.DeepEqual(slots, []string{"08:30"}) {
		t.Fatalf("expected only 08:30, got %v", slots)
	}
}

func TestSlots_SlotAtNowExcluded(t *testing.T) {
	d, _ := day(t)
	// A slot starting exactly at now is not strictly after it.
	slots := Slots(at(d, 8, 0), at(d, 9, 0), nil, 30*time.Minute, at(d, 8, 30))
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}

func TestSlots_EmptyWindow(t *testing.T) {
	d, _ := day(t)
	busy := []Interval{{Start: at(d, 9, 0), End: at(d, 10, 0)}}
	if slots := Slots(at(d, 9, 0), at(d, 9, 0), busy, 30*time.Minute, d); len(slots) != 0 {
		t.Errorf("fromTime == tillTime: expected empty, got %v", slots)
	}
	if slots := Slots(at(d, 18, 0), at(d, 8, 0), nil, 30*time.Minute, d); len(slots) != 0 {
		t.Errorf("inverted window: expected empty, got %v", slots)
	}
}

func TestSlots_TrailingSlotMayOverrunWindow(t *testing.T) {
	d, _ := day(t)
	// 08:30 starts before the 08:45 window end even though it runs until
	// 09:00. Generation checks the start only; no clipping happens.
	slots := Slots(at(d, 8, 0), at(d, 8, 45), nil, 30*time.Minute, d)
	if !reflect.DeepEqual(slots, []string{"08:00", "08:30"}) {
		t.Fatalf("expected [08:00 08:30], got %v", slots)
	}
}

func TestSlots_UnsortedOverlappingBusy(t *testing.T) {
	d, _ := day(t)
	busy := []Interval{
		{Start: at(d, 11, 0), End: at(d, 12, 0)},
		{Start: at(d, 8, 45), End: at(d, 9, 15)},
		{Start: at(d, 9, 0), End: at(d, 9, 30)},
	}
	slots := Slots(at(d, 8, 0), at(d, 12, 0), busy, 30*time.Minute, d)
	want := []string{"08:00", "09:30", "10:00", "10:30"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestSlots_InvertedBusyIntervalExcludesNothing(t *testing.T) {
	d, _ := day(t)
	// Start after End: the intersection formula never holds, so the interval
	// is inert rather than rejected.
	busy := []Interval{{Start: at(d, 10, 0), End: at(d, 9, 0)}}
	slots := Slots(at(d, 8, 0), at(d, 12, 0), busy, 30*time.Minute, d)
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %d: %v", len(slots), slots)
	}
}

func TestSlots_NonPositiveDuration(t *testing.T) {
	d, _ := day(t)
	if slots := Slots(at(d, 8, 0), at(d, 18, 0), nil, 0, d); len(slots) != 0 {
		t.Fatalf("expected empty for zero duration, got %v", slots)
	}
}

func TestSlots_Idempotent(t *testing.T) {
	d, _ := day(t)
	busy := []Interval{{Start: at(d, 9, 0), End: at(d, 10, 0)}}
	now := at(d, 7, 0)
	first := Slots(at(d, 8, 0), at(d, 18, 0), busy, 30*time.Minute, now)
	second := Slots(at(d, 8, 0), at(d, 18, 0), busy, 30*time.Minute, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced %v then %v", first, second)
	}
}

func TestSlots_NoReturnedSlotOverlapsBusy(t *testing.T) {
	d, loc := day(t)
	busy := []Interval{
		{Start: at(d, 8, 10), End: at(d, 8, 50)},
		{Start: at(d, 13, 0), End: at(d, 14, 30)},
		{Start: at(d, 17, 45), End: at(d, 18, 30)},
	}
	duration := 30 * time.Minute
	slots := Slots(at(d, 8, 0), at(d, 18, 0), busy, duration, d)
	for _, s := range slots {
		start, err := time.ParseInLocation("2006-01-02 15:04", "2026-03-09 "+s, loc)
		if err != nil {
			t.Fatalf("returned slot %q is not HH:mm: %v", s, err)
		}
		if overlapsAny(start, start.Add(duration), busy) {
			t.Errorf("returned slot %s overlaps a busy interval", s)
		}
	}
}

func TestComputeAvailableSlots(t *testing.T) {
	d, loc := day(t)
	w := Window{Date: "2026-03-09", FromTime: "08:00", TillTime: "18:00"}
	busy := []Interval{{Start: at(d, 9, 0), End: at(d, 10, 0)}}

	slots, err := ComputeAvailableSlots(w, busy, 30, at(d, 7, 0), loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 18 {
		t.Fatalf("expected 18 slots, got %d: %v", len(slots), slots)
	}
}

func TestComputeAvailableSlots_MalformedWindow(t *testing.T) {
	_, loc := day(t)
	w := Window{Date: "2026-03-09", FromTime: "8 o'clock", TillTime: "18:00"}
	if _, err := ComputeAvailableSlots(w, nil, 30, time.Now(), loc); err == nil {
		t.Fatal("expected parse error for malformed fromTime")
	}
}

func TestParseWindow_LocationIsExplicit(t *testing.T) {
	loc := time.FixedZone("CalSync-Test", -5*60*60)
	w := Window{Date: "2026-03-09", FromTime: "08:00", TillTime: "18:00"}
	from, till, err := ParseWindow(w, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from.Location() != loc || till.Location() != loc {
		t.Error("window bounds must keep the caller's location; no UTC conversion")
	}
	if from.Hour() != 8 || till.Hour() != 18 {
		t.Errorf("wall-clock hours changed: from=%d till=%d", from.Hour(), till.Hour())
	}
}
