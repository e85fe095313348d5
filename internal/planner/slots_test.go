package planner

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, h int, mins ...int) time.Time {
	min := 0
	if len(mins) > 0 {
		min = mins[0]
	}
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func morningOnly() []Bucket {
	return []Bucket{{Name: "morning", StartHour: 6, EndHour: 12}}
}

func TestFindAvailableSlots_EmptyCalendarOneMorning(t *testing.T) {
	// One day, morning bucket, 60 minute slots: every hour 06:00..11:00 is free.
	slots, err := FindAvailableSlots(nil, day(2025, time.June, 2), day(2025, time.June, 2), time.Hour, morningOnly())
	if err != nil {
		t.Fatalf("FindAvailableSlots failed: %v", err)
	}

	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	for i, slot := range slots {
		wantStart := at(2025, time.June, 2, 6+i)
		if !slot.Start.Equal(wantStart) {
			t.Errorf("slot %d: expected start %v, got %v", i, wantStart, slot.Start)
		}
		if !slot.End.Equal(wantStart.Add(time.Hour)) {
			t.Errorf("slot %d: expected end %v, got %v", i, wantStart.Add(time.Hour), slot.End)
		}
		if slot.Bucket != "morning" {
			t.Errorf("slot %d: expected bucket morning, got %q", i, slot.Bucket)
		}
	}
}

func TestFindAvailableSlots_ExistingEventExcluded(t *testing.T) {
	// A 09:00-10:00 event removes exactly the 09:00 candidate.
	existing := []Interval{{Start: at(2025, time.June, 2, 9), End: at(2025, time.June, 2, 10)}}

	slots, err := FindAvailableSlots(existing, day(2025, time.June, 2), day(2025, time.June, 2), time.Hour, morningOnly())
	if err != nil {
		t.Fatalf("FindAvailableSlots failed: %v", err)
	}

	wantHours := []int{6, 7, 8, 10, 11}
	if len(slots) != len(wantHours) {
		t.Fatalf("expected %d slots, got %d", len(wantHours), len(slots))
	}
	for i, slot := range slots {
		if slot.Start.Hour() != wantHours[i] {
			t.Errorf("slot %d: expected hour %d, got %d", i, wantHours[i], slot.Start.Hour())
		}
	}
}

func TestFindAvailableSlots_TouchingEndpointsDoNotConflict(t *testing.T) {
	// Event 09:00-10:00: the 08:00-09:00 and 10:00-11:00 candidates touch it
	// but must survive.
	existing := []Interval{{Start: at(2025, time.June, 2, 9), End: at(2025, time.June, 2, 10)}}

	slots, err := FindAvailableSlots(existing, day(2025, time.June, 2), day(2025, time.June, 2), time.Hour, morningOnly())
	if err != nil {
		t.Fatalf("FindAvailableSlots failed: %v", err)
	}

	has := func(h int) bool {
		for _, s := range slots {
			if s.Start.Hour() == h {
				return true
			}
		}
		return false
	}
	if !has(8) {
		t.Errorf("expected the 08:00 slot ending at the event start to survive")
	}
	if !has(10) {
		t.Errorf("expected the 10:00 slot starting at the event end to survive")
	}
	if has(9) {
		t.Errorf("expected the 09:00 slot to be excluded")
	}
}

func TestFindAvailableSlots_NoOverlapProperty(t *testing.T) {
	existing := []Interval{
		{Start: at(2025, time.June, 2, 7), End: at(2025, time.June, 2, 8, 30)},
		{Start: at(2025, time.June, 3, 10, 15), End: at(2025, time.June, 3, 11)},
		{Start: at(2025, time.June, 4, 18), End: at(2025, time.June, 4, 20)},
	}

	slots, err := FindAvailableSlots(existing, day(2025, time.June, 2), day(2025, time.June, 5), 90*time.Minute, DefaultBuckets)
	if err != nil {
		t.Fatalf("FindAvailableSlots failed: %v", err)
	}

	for _, slot := range slots {
		for _, ev := range existing {
			if slot.Start.Before(ev.End) && slot.End.After(ev.Start) {
				t.Errorf("slot %v-%v overlaps existing event %v-%v", slot.Start, slot.End, ev.Start, ev.End)
			}
		}
	}
}

func TestFindAvailableSlots_LongSlotBlocksTrailingHours(t *testing.T) {
	// A 2h slot starting at 11:00 runs into a 12:30 event even though 11:00
	// itself is free.
	existing := []Interval{{Start: at(2025, time.June, 2, 12, 30), End: at(2025, time.June, 2, 13)}}

	slots, err := FindAvailableSlots(existing, day(2025, time.June, 2), day(2025, time.June, 2), 2*time.Hour, morningOnly())
	if err != nil {
		t.Fatalf("FindAvailableSlots failed: %v", err)
	}

	for _, slot := range slots {
		if slot.Start.Hour() == 11 {
			t.Errorf("expected the 11:00 slot to be excluded, got slot %v-%v", slot.Start, slot.End)
		}
	}
}

func TestFindAvailableSlots_BucketOrderDeterminesTieBreak(t *testing.T) {
	buckets := []Bucket{
		{Name: "evening", StartHour: 18, EndHour: 22},
		{Name: "morning", StartHour: 6, EndHour: 12},
	}

	slots, err := FindAvailableSlots(nil, day(2025, time.June, 2), day(2025, time.June, 2), time.Hour, buckets)
	if err != nil {
		t.Fatalf("FindAvailableSlots failed: %v", err)
	}

	if len(slots) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(slots))
	}
	// Caller order wins within a date: evening hours come before morning.
	if slots[0].Bucket != "evening" || slots[0].Start.Hour() != 18 {
		t.Errorf("expected first slot 18:00/evening, got %d:00/%s", slots[0].Start.Hour(), slots[0].Bucket)
	}
	if slots[4].Bucket != "morning" || slots[4].Start.Hour() != 6 {
		t.Errorf("expected fifth slot 06:00/morning, got %d:00/%s", slots[4].Start.Hour(), slots[4].Bucket)
	}
}

func TestFindAvailableSlots_DateOrderBeforeBucketOrder(t *testing.T) {
	slots, err := FindAvailableSlots(nil, day(2025, time.June, 2), day(2025, time.June, 3), time.Hour, morningOnly())
	if err != nil {
		t.Fatalf("FindAvailableSlots failed: %v", err)
	}

	if len(slots) != 12 {
		t.Fatalf("expected 12 slots over two days, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Before(slots[i-1].Start) {
			t.Errorf("slots out of chronological order at index %d", i)
		}
	}
}

func TestFindAvailableSlots_InvertedWindowYieldsNoSlots(t *testing.T) {
	slots, err := FindAvailableSlots(nil, day(2025, time.June, 10), day(2025, time.June, 2), time.Hour, morningOnly())
	if err != nil {
		t.Fatalf("inverted window must not be an error, got: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots for inverted window, got %d", len(slots))
	}
}

func TestFindAvailableSlots_NonPositiveDuration(t *testing.T) {
	for _, dur := range []time.Duration{0, -time.Hour} {
		_, err := FindAvailableSlots(nil, day(2025, time.June, 2), day(2025, time.June, 2), dur, morningOnly())
		if !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %v: expected ErrInvalidDuration, got %v", dur, err)
		}
	}
}

func TestFindAvailableSlots_CorruptIntervalRejected(t *testing.T) {
	existing := []Interval{{Start: at(2025, time.June, 2, 10), End: at(2025, time.June, 2, 9)}}

	_, err := FindAvailableSlots(existing, day(2025, time.June, 2), day(2025, time.June, 2), time.Hour, morningOnly())
	if !errors.Is(err, ErrCorruptInterval) {
		t.Errorf("expected ErrCorruptInterval, got %v", err)
	}
}

func TestFindAvailableSlots_NormalizesZones(t *testing.T) {
	// The window is in UTC; an existing event expressed in UTC+2 at local
	// 11:00 is 09:00 UTC and must knock out the 09:00 UTC candidate.
	plus2 := time.FixedZone("UTC+2", 2*3600)
	existing := []Interval{{
		Start: time.Date(2025, time.June, 2, 11, 0, 0, 0, plus2),
		End:   time.Date(2025, time.June, 2, 12, 0, 0, 0, plus2),
	}}

	slots, err := FindAvailableSlots(existing, day(2025, time.June, 2), day(2025, time.June, 2), time.Hour, morningOnly())
	if err != nil {
		t.Fatalf("FindAvailableSlots failed: %v", err)
	}

	if len(slots) != 5 {
		t.Fatalf("expected 5 slots, got %d", len(slots))
	}
	for _, slot := range slots {
		if slot.Start.Hour() == 9 {
			t.Errorf("expected the 09:00 UTC slot to be excluded by the zoned event")
		}
	}
}

func TestFindAvailableSlots_AlternateBucketTable(t *testing.T) {
	// The bucket table is an input, not a hidden constant.
	buckets := []Bucket{{Name: "lunch", StartHour: 12, EndHour: 14}}

	slots, err := FindAvailableSlots(nil, day(2025, time.June, 2), day(2025, time.June, 2), time.Hour, buckets)
	if err != nil {
		t.Fatalf("FindAvailableSlots failed: %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].Start.Hour() != 12 || slots[1].Start.Hour() != 13 {
		t.Errorf("expected 12:00 and 13:00 slots, got %d:00 and %d:00", slots[0].Start.Hour(), slots[1].Start.Hour())
	}
}

func TestBucketByName(t *testing.T) {
	b, ok := BucketByName("evening")
	if !ok {
		t.Fatalf("expected evening bucket to exist")
	}
	if b.StartHour != 18 || b.EndHour != 22 {
		t.Errorf("expected evening to span [18,22), got [%d,%d)", b.StartHour, b.EndHour)
	}
	if _, ok := BucketByName("midnight"); ok {
		t.Errorf("expected lookup of unknown bucket to fail")
	}
}
