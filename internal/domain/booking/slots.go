package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// The fixed daily slot grid. A booking may only start on one of these
// hour-aligned times; the business day ends one hour after the last slot.
var AvailableTimes = []string{
	"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00",
}

const slotStepMin = 60

// DayEndMin is the last permissible end of any booking, in minutes from
// midnight (17:00).
var DayEndMin = mustMinutes(AvailableTimes[len(AvailableTimes)-1]) + slotStepMin

// Occupied is the slice of an existing booking that matters for slot math.
type Occupied struct {
	Time        string
	DurationMin int
}

func TimeToMinutes(t string) (int, error) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", t)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", t)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", t)
	}
	return h*60 + m, nil
}

func MinutesToTime(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

func mustMinutes(t string) int {
	m, err := TimeToMinutes(t)
	if err != nil {
		panic(err)
	}
	return m
}

var slotSet = func() map[string]bool {
	s := make(map[string]bool, len(AvailableTimes))
	for _, t := range AvailableTimes {
		s[t] = true
	}
	return s
}()

func IsSlotTime(t string) bool {
	return slotSet[t]
}

// BlockedTimes computes the set of slot times consumed by the given
// bookings. Each booking occupies [start, start+duration); every hourly
// boundary inside that interval that is also a grid slot is blocked.
// Pure function of its input.
func BlockedTimes(occupied []Occupied) map[string]bool {
	blocked := make(map[string]bool)
	for _, o := range occupied {
		start, err := TimeToMinutes(o.Time)
		if err != nil {
			continue
		}
		dur := o.DurationMin
		if dur <= 0 {
			dur = defaultDurationMin
		}
		for t := start; t < start+dur; t += slotStepMin {
			ts := MinutesToTime(t)
			if slotSet[ts] {
				blocked[ts] = true
			}
		}
	}
	return blocked
}

// FitsBusinessDay reports whether a booking starting at startMin with the
// given duration ends by the close of business.
func FitsBusinessDay(startMin, durationMin int) bool {
	return startMin+durationMin <= DayEndMin
}

// CandidateConflict classifies why a candidate start time cannot be booked.
type CandidateConflict int

const (
	ConflictNone CandidateConflict = iota
	// ConflictBlocked: the start slot itself is already taken.
	ConflictBlocked
	// ConflictOverlap: a later hourly step of the candidate's interval is taken.
	ConflictOverlap
	// ConflictDayEnd: the candidate would run past close of business.
	ConflictDayEnd
)

// CheckCandidate tests a start time against the blocked set for a candidate
// of the given total duration.
func CheckCandidate(blocked map[string]bool, startTime string, durationMin int) CandidateConflict {
	start, err := TimeToMinutes(startTime)
	if err != nil {
		return ConflictBlocked
	}
	if !FitsBusinessDay(start, durationMin) {
		return ConflictDayEnd
	}
	if blocked[startTime] {
		return ConflictBlocked
	}
	for t := start + slotStepMin; t < start+durationMin; t += slotStepMin {
		if blocked[MinutesToTime(t)] {
			return ConflictOverlap
		}
	}
	return ConflictNone
}

// AvailableStartTimes lists the grid slots on which a candidate of the
// given total duration can start, given the day's existing bookings.
func AvailableStartTimes(occupied []Occupied, durationMin int) []string {
	blocked := BlockedTimes(occupied)
	out := make([]string, 0, len(AvailableTimes))
	for _, t := range AvailableTimes {
		if CheckCandidate(blocked, t, durationMin) == ConflictNone {
			out = append(out, t)
		}
	}
	return out
}

// DateSelectable is the coarse calendar filter: a date stays selectable
// while it has at least enough free slots for the shortest catalog
// duration, independent of which service is eventually chosen.
func DateSelectable(occupied []Occupied) bool {
	free := len(AvailableTimes) - len(BlockedTimes(occupied))
	return free >= MinSelectableSlots
}
