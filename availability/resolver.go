// Package availability derives the bookable time slots for a provider's day
// from three inputs: the recurring weekly schedule, date-specific blocked
// intervals, and existing appointments. It is a pure computation with no
// database and no framework types, so the booking handlers and the schedule
// screens can all share one slot definition.
package availability

import "time"

// WeeklyRule is one weekday's recurring availability window.
type WeeklyRule struct {
	DayOfWeek       int    `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime       string `json:"start_time"`  // "HH:MM", 24-hour
	EndTime         string `json:"end_time"`
	IsAvailable     bool   `json:"is_available"`
	IntervalMinutes int    `json:"interval_minutes"`
}

// BlockedInterval removes availability from an otherwise open day,
// e.g. a lunch break or a one-off errand.
type BlockedInterval struct {
	Date      string `json:"date"` // "YYYY-MM-DD"
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// AppointmentWindow is the occupancy footprint of an existing appointment.
type AppointmentWindow struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// TimeSlot is one bookable (or taken) interval of a provider's day.
type TimeSlot struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
	Status      string `json:"status,omitempty"`
}

const statusCanceled = "canceled"

// window is an interval pre-parsed to minute-of-day, carrying the occupying
// appointment's status when it came from one.
type window struct {
	start, end int
	status     string
}

// ResolveDay computes the ordered slot sequence for one calendar date.
//
// The weekday rule is looked up first; a missing rule, IsAvailable=false, or
// malformed rule times all yield an empty day; the render path must never
// see a parse error for a closed shop. Slots tile [StartTime, EndTime) in
// IntervalMinutes steps; when the remaining span is shorter than the
// interval the final slot is still emitted at full width, ending past
// EndTime (generation runs while the slot start is before EndTime).
//
// Each slot is then annotated: overlap with a blocked interval on the same
// date clears IsAvailable; otherwise overlap with a non-canceled appointment
// clears IsAvailable and copies that appointment's status (first match
// wins). Overlap is half-open: [a,b) and [c,d) collide iff a < d && c < b.
//
// Nil input slices mean "not loaded yet" and are treated as empty.
func ResolveDay(date time.Time, rules []WeeklyRule, blocked []BlockedInterval, appointments []AppointmentWindow) []TimeSlot {
	rule, ok := ruleFor(rules, int(date.Weekday()))
	if !ok || !rule.IsAvailable {
		return nil
	}

	start, okStart := parseClock(rule.StartTime)
	end, okEnd := parseClock(rule.EndTime)
	if !okStart || !okEnd || start >= end || rule.IntervalMinutes <= 0 {
		// Fail closed: a broken rule reads as a closed day.
		return nil
	}

	day := date.Format("2006-01-02")
	blocks := blockWindows(blocked, day)
	taken := appointmentWindows(appointments, day)

	var slots []TimeSlot
	for cur := start; cur < end; cur += rule.IntervalMinutes {
		slot := TimeSlot{
			StartTime:   formatClock(cur),
			EndTime:     formatClock(cur + rule.IntervalMinutes),
			IsAvailable: true,
		}
		slotEnd := cur + rule.IntervalMinutes

		for _, b := range blocks {
			if overlaps(cur, slotEnd, b.start, b.end) {
				slot.IsAvailable = false
				break
			}
		}
		if slot.IsAvailable {
			for _, a := range taken {
				if overlaps(cur, slotEnd, a.start, a.end) {
					slot.IsAvailable = false
					slot.Status = a.status
					break
				}
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

func ruleFor(rules []WeeklyRule, dayOfWeek int) (WeeklyRule, bool) {
	for _, r := range rules {
		if r.DayOfWeek == dayOfWeek {
			return r, true
		}
	}
	return WeeklyRule{}, false
}

// blockWindows keeps the blocked intervals for one date, dropping rows whose
// times do not parse: a broken exception record should not close the day.
func blockWindows(blocked []BlockedInterval, day string) []window {
	var out []window
	for _, b := range blocked {
		if b.Date != day {
			continue
		}
		start, okStart := parseClock(b.StartTime)
		end, okEnd := parseClock(b.EndTime)
		if !okStart || !okEnd {
			continue
		}
		out = append(out, window{start: start, end: end})
	}
	return out
}

// appointmentWindows keeps the non-canceled appointments for one date.
// Canceled appointments free their slot; malformed rows are skipped.
func appointmentWindows(appointments []AppointmentWindow, day string) []window {
	var out []window
	for _, a := range appointments {
		if a.Date != day || a.Status == statusCanceled {
			continue
		}
		start, okStart := parseClock(a.StartTime)
		end, okEnd := parseClock(a.EndTime)
		if !okStart || !okEnd {
			continue
		}
		out = append(out, window{start: start, end: end, status: a.Status})
	}
	return out
}
