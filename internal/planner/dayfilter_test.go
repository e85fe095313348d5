package planner

import (
	"testing"
	"time"
)

// slotsForWeek builds one morning slot per day for the week starting Monday
// 2025-06-02.
func slotsForWeek(t *testing.T) []Slot {
	t.Helper()
	var slots []Slot
	for i := 0; i < 7; i++ {
		d := day(2025, time.June, 2+i)
		slots = append(slots, Slot{
			Start:  d.Add(7 * time.Hour),
			End:    d.Add(8 * time.Hour),
			Date:   d,
			Bucket: "morning",
		})
	}
	return slots
}

func TestFilterByWeekday_NoFilterWhenEmpty(t *testing.T) {
	slots := slotsForWeek(t)

	kept, ignored := FilterByWeekday(slots, nil)
	if len(kept) != len(slots) {
		t.Errorf("expected all %d slots back, got %d", len(slots), len(kept))
	}
	if len(ignored) != 0 {
		t.Errorf("expected no ignored names, got %v", ignored)
	}
}

func TestFilterByWeekday_KeepsOnlyRequestedDays(t *testing.T) {
	// Window spans Mon 2025-06-02 .. Sun 2025-06-08 plus the next Monday.
	slots := slotsForWeek(t)
	nextMonday := day(2025, time.June, 9)
	slots = append(slots, Slot{
		Start:  nextMonday.Add(7 * time.Hour),
		End:    nextMonday.Add(8 * time.Hour),
		Date:   nextMonday,
		Bucket: "morning",
	})

	kept, ignored := FilterByWeekday(slots, []string{"monday"})
	if len(ignored) != 0 {
		t.Fatalf("expected no ignored names, got %v", ignored)
	}
	if len(kept) != 2 {
		t.Fatalf("expected exactly the two Monday slots, got %d", len(kept))
	}
	for _, slot := range kept {
		if slot.Date.Weekday() != time.Monday {
			t.Errorf("expected only Mondays, got %v", slot.Date.Weekday())
		}
	}
}

func TestFilterByWeekday_CaseInsensitive(t *testing.T) {
	slots := slotsForWeek(t)

	kept, _ := FilterByWeekday(slots, []string{"MONDAY", "Friday"})
	if len(kept) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(kept))
	}
	if kept[0].Date.Weekday() != time.Monday || kept[1].Date.Weekday() != time.Friday {
		t.Errorf("expected Monday then Friday, got %v then %v", kept[0].Date.Weekday(), kept[1].Date.Weekday())
	}
}

func TestFilterByWeekday_UnrecognizedNamesIgnoredButReported(t *testing.T) {
	slots := slotsForWeek(t)

	kept, ignored := FilterByWeekday(slots, []string{"tuesday", "funday", "someday"})
	if len(kept) != 1 || kept[0].Date.Weekday() != time.Tuesday {
		t.Fatalf("expected the single Tuesday slot, got %d slots", len(kept))
	}
	if len(ignored) != 2 || ignored[0] != "funday" || ignored[1] != "someday" {
		t.Errorf("expected ignored [funday someday], got %v", ignored)
	}
}

func TestFilterByWeekday_Idempotent(t *testing.T) {
	slots := slotsForWeek(t)
	days := []string{"wednesday", "saturday"}

	once, _ := FilterByWeekday(slots, days)
	twice, _ := FilterByWeekday(once, days)

	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d then %d slots", len(once), len(twice))
	}
	for i := range once {
		if !once[i].Start.Equal(twice[i].Start) {
			t.Errorf("slot %d changed between passes", i)
		}
	}
}

func TestFilterByWeekday_PreservesOrder(t *testing.T) {
	slots := slotsForWeek(t)

	kept, _ := FilterByWeekday(slots, []string{"sunday", "monday"})
	// Request order does not matter; slot order does.
	if len(kept) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(kept))
	}
	if !kept[0].Start.Before(kept[1].Start) {
		t.Errorf("expected survivors in original chronological order")
	}
}
