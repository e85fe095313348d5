// Package planner contains the scheduling core of the training planner: pure
// slot discovery over a user's existing calendar, with no persistence or
// transport concerns. The service layer feeds it intervals and turns its
// slots into events.
package planner

import (
	"errors"
	"fmt"
	"time"
)

// --- Error Definitions ---
var (
	ErrInvalidDuration = errors.New("slot duration must be positive")
	ErrCorruptInterval = errors.New("existing event has non-positive duration")
)

// Interval is a span of time with Start strictly before End.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Bucket is a named part of the day mapped to a whole-hour range
// [StartHour, EndHour).
type Bucket struct {
	Name      string
	StartHour int
	EndHour   int
}

// DefaultBuckets is the standard time-of-day table. It is passed explicitly
// into FindAvailableSlots rather than read as a hidden global, so tests can
// substitute alternate tables.
var DefaultBuckets = []Bucket{
	{Name: "morning", StartHour: 6, EndHour: 12},
	{Name: "afternoon", StartHour: 12, EndHour: 18},
	{Name: "evening", StartHour: 18, EndHour: 22},
}

// BucketByName looks up a bucket in DefaultBuckets.
func BucketByName(name string) (Bucket, bool) {
	for _, b := range DefaultBuckets {
		if b.Name == name {
			return b, true
		}
	}
	return Bucket{}, false
}

// Slot is a candidate time span for one workout session (including its prep
// and cooldown padding). Slots are ephemeral; they are never persisted.
type Slot struct {
	Start  time.Time
	End    time.Time
	Date   time.Time // midnight of the slot's calendar date
	Bucket string
}

// FindAvailableSlots enumerates every candidate slot of slotDuration inside
// the requested buckets between windowStart and windowEnd (dates inclusive)
// that does not conflict with any existing interval.
//
// Enumeration order is deterministic: date ascending, then bucket in the
// caller-supplied order, then whole hour ascending within the bucket. This is
// a first-fit enumeration, not an optimality search. A candidate conflicts
// with an existing interval under half-open semantics: shared endpoints do
// not conflict.
//
// All instants are normalized to windowStart's location before any
// comparison. An inverted window yields an empty result, not an error.
func FindAvailableSlots(existing []Interval, windowStart, windowEnd time.Time, slotDuration time.Duration, buckets []Bucket) ([]Slot, error) {
	if slotDuration <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidDuration, slotDuration)
	}

	loc := windowStart.Location()
	windowEnd = windowEnd.In(loc)

	// Inconsistent interval data from the store is data corruption, not a
	// scheduling condition; refuse to plan around it.
	normalized := make([]Interval, len(existing))
	for i, ev := range existing {
		if !ev.End.After(ev.Start) {
			return nil, fmt.Errorf("%w: start=%s end=%s", ErrCorruptInterval, ev.Start, ev.End)
		}
		normalized[i] = Interval{Start: ev.Start.In(loc), End: ev.End.In(loc)}
	}

	startDate := startOfDay(windowStart)
	endDate := startOfDay(windowEnd)

	var slots []Slot
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		for _, bucket := range buckets {
			for h := bucket.StartHour; h < bucket.EndHour; h++ {
				candStart := time.Date(d.Year(), d.Month(), d.Day(), h, 0, 0, 0, loc)
				candEnd := candStart.Add(slotDuration)
				if conflicts(candStart, candEnd, normalized) {
					continue
				}
				slots = append(slots, Slot{
					Start:  candStart,
					End:    candEnd,
					Date:   d,
					Bucket: bucket.Name,
				})
			}
		}
	}
	return slots, nil
}

// conflicts reports whether [start, end) overlaps any existing interval.
func conflicts(start, end time.Time, existing []Interval) bool {
	for _, ev := range existing {
		if start.Before(ev.End) && end.After(ev.Start) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
