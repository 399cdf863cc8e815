package availability

import (
	"reflect"
	"testing"
	"time"
)

// 2025-06-02 is a Monday, 2025-06-01 a Sunday.
var (
	monday = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
)

func mondayRule() []WeeklyRule {
	return []WeeklyRule{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00", IsAvailable: true, IntervalMinutes: 30},
	}
}

func free(start, end string) TimeSlot {
	return TimeSlot{StartTime: start, EndTime: end, IsAvailable: true}
}

func TestResolveDay_OpenDayTilesTheWindow(t *testing.T) {
	got := ResolveDay(monday, mondayRule(), nil, nil)

	want := []TimeSlot{
		free("09:00", "09:30"),
		free("09:30", "10:00"),
		free("10:00", "10:30"),
		free("10:30", "11:00"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %+v, want %+v", got, want)
	}
}

func TestResolveDay_SlotsAreContiguous(t *testing.T) {
	rules := []WeeklyRule{
		{DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00", IsAvailable: true, IntervalMinutes: 45},
	}
	slots := ResolveDay(monday, rules, nil, nil)
	if len(slots) == 0 {
		t.Fatal("expected slots for an open day")
	}
	if slots[0].StartTime != "08:00" {
		t.Errorf("first slot starts at %s, want 08:00", slots[0].StartTime)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].StartTime != slots[i-1].EndTime {
			t.Errorf("gap between slot %d (%s) and slot %d (%s)",
				i-1, slots[i-1].EndTime, i, slots[i].StartTime)
		}
	}
}

func TestResolveDay_MinuteOverflowAcrossHour(t *testing.T) {
	rules := []WeeklyRule{
		{DayOfWeek: 1, StartTime: "09:45", EndTime: "10:45", IsAvailable: true, IntervalMinutes: 30},
	}
	got := ResolveDay(monday, rules, nil, nil)
	want := []TimeSlot{
		free("09:45", "10:15"),
		free("10:15", "10:45"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %+v, want %+v", got, want)
	}
}

// The generation loop runs while the slot start is before the window end, so
// a remainder shorter than the interval still yields one full-width slot.
func TestResolveDay_TrailingOversizedSlot(t *testing.T) {
	rules := []WeeklyRule{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:15", IsAvailable: true, IntervalMinutes: 30},
	}
	got := ResolveDay(monday, rules, nil, nil)
	want := []TimeSlot{
		free("09:00", "09:30"),
		free("09:30", "10:00"),
		free("10:00", "10:30"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %+v, want %+v", got, want)
	}
}

func TestResolveDay_ClosedWeekday(t *testing.T) {
	rules := []WeeklyRule{
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00", IsAvailable: false, IntervalMinutes: 30},
	}
	blocked := []BlockedInterval{{Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00"}}
	appts := []AppointmentWindow{{Date: "2025-06-01", StartTime: "12:00", EndTime: "13:00", Status: "confirmed"}}

	if got := ResolveDay(sunday, rules, blocked, appts); len(got) != 0 {
		t.Fatalf("closed day produced %d slots", len(got))
	}
}

func TestResolveDay_NoRuleForWeekday(t *testing.T) {
	rules := []WeeklyRule{
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsAvailable: true, IntervalMinutes: 30},
	}
	if got := ResolveDay(monday, rules, nil, nil); len(got) != 0 {
		t.Fatalf("day without a rule produced %d slots", len(got))
	}
}

func TestResolveDay_BlockedIntervalClearsSlot(t *testing.T) {
	blocked := []BlockedInterval{
		{Date: "2025-06-02", StartTime: "10:00", EndTime: "10:30", Reason: "lunch"},
	}
	got := ResolveDay(monday, mondayRule(), blocked, nil)

	want := []TimeSlot{
		free("09:00", "09:30"),
		free("09:30", "10:00"),
		{StartTime: "10:00", EndTime: "10:30", IsAvailable: false},
		free("10:30", "11:00"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %+v, want %+v", got, want)
	}
}

func TestResolveDay_AppointmentOverlapCarriesStatus(t *testing.T) {
	appts := []AppointmentWindow{
		{Date: "2025-06-02", StartTime: "09:15", EndTime: "09:45", Status: "confirmed"},
	}
	got := ResolveDay(monday, mondayRule(), nil, appts)

	// 09:15-09:45 straddles the first two slots under half-open overlap.
	want := []TimeSlot{
		{StartTime: "09:00", EndTime: "09:30", IsAvailable: false, Status: "confirmed"},
		{StartTime: "09:30", EndTime: "10:00", IsAvailable: false, Status: "confirmed"},
		free("10:00", "10:30"),
		free("10:30", "11:00"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %+v, want %+v", got, want)
	}
}

func TestResolveDay_CanceledAppointmentFreesSlot(t *testing.T) {
	appts := []AppointmentWindow{
		{Date: "2025-06-02", StartTime: "09:00", EndTime: "09:30", Status: "canceled"},
	}
	got := ResolveDay(monday, mondayRule(), nil, appts)
	for _, s := range got {
		if !s.IsAvailable {
			t.Fatalf("slot %s-%s unavailable despite only a canceled appointment", s.StartTime, s.EndTime)
		}
	}
}

func TestResolveDay_ExecutingAndNoShowStatuses(t *testing.T) {
	appts := []AppointmentWindow{
		{Date: "2025-06-02", StartTime: "09:00", EndTime: "09:30", Status: "executing"},
		{Date: "2025-06-02", StartTime: "10:30", EndTime: "11:00", Status: "no_show"},
	}
	got := ResolveDay(monday, mondayRule(), nil, appts)
	if got[0].Status != "executing" || got[0].IsAvailable {
		t.Errorf("first slot = %+v, want occupied by executing", got[0])
	}
	if got[3].Status != "no_show" || got[3].IsAvailable {
		t.Errorf("last slot = %+v, want occupied by no_show", got[3])
	}
}

func TestResolveDay_BlockWinsOverAppointment(t *testing.T) {
	blocked := []BlockedInterval{{Date: "2025-06-02", StartTime: "09:00", EndTime: "09:30"}}
	appts := []AppointmentWindow{{Date: "2025-06-02", StartTime: "09:00", EndTime: "09:30", Status: "confirmed"}}

	got := ResolveDay(monday, mondayRule(), blocked, appts)
	if got[0].IsAvailable {
		t.Fatal("blocked slot reported available")
	}
	if got[0].Status != "" {
		t.Fatalf("blocked slot carries appointment status %q", got[0].Status)
	}
}

func TestResolveDay_FirstMatchingAppointmentWins(t *testing.T) {
	appts := []AppointmentWindow{
		{Date: "2025-06-02", StartTime: "09:00", EndTime: "09:30", Status: "pending"},
		{Date: "2025-06-02", StartTime: "09:00", EndTime: "09:30", Status: "confirmed"},
	}
	got := ResolveDay(monday, mondayRule(), nil, appts)
	if got[0].Status != "pending" {
		t.Fatalf("slot status = %q, want first match %q", got[0].Status, "pending")
	}
}

func TestResolveDay_OtherDatesIgnored(t *testing.T) {
	blocked := []BlockedInterval{{Date: "2025-06-09", StartTime: "09:00", EndTime: "11:00"}}
	appts := []AppointmentWindow{{Date: "2025-06-09", StartTime: "09:00", EndTime: "11:00", Status: "confirmed"}}

	got := ResolveDay(monday, mondayRule(), blocked, appts)
	for _, s := range got {
		if !s.IsAvailable {
			t.Fatalf("slot %s-%s blocked by another date's records", s.StartTime, s.EndTime)
		}
	}
}

func TestResolveDay_MalformedRuleFailsClosed(t *testing.T) {
	cases := []struct {
		name string
		rule WeeklyRule
	}{
		{"bad start", WeeklyRule{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00", IsAvailable: true, IntervalMinutes: 30}},
		{"bad end", WeeklyRule{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:61", IsAvailable: true, IntervalMinutes: 30}},
		{"start after end", WeeklyRule{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00", IsAvailable: true, IntervalMinutes: 30}},
		{"start equals end", WeeklyRule{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00", IsAvailable: true, IntervalMinutes: 30}},
		{"zero interval", WeeklyRule{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true, IntervalMinutes: 0}},
		{"negative interval", WeeklyRule{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true, IntervalMinutes: -15}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveDay(monday, []WeeklyRule{tc.rule}, nil, nil); len(got) != 0 {
				t.Fatalf("got %d slots, want none", len(got))
			}
		})
	}
}

// A broken exception record must not close the day; it is simply skipped.
func TestResolveDay_MalformedExceptionRowsSkipped(t *testing.T) {
	blocked := []BlockedInterval{{Date: "2025-06-02", StartTime: "noon", EndTime: "13:00"}}
	appts := []AppointmentWindow{{Date: "2025-06-02", StartTime: "09:00", EndTime: "half past", Status: "confirmed"}}

	got := ResolveDay(monday, mondayRule(), blocked, appts)
	if len(got) != 4 {
		t.Fatalf("got %d slots, want 4", len(got))
	}
	for _, s := range got {
		if !s.IsAvailable {
			t.Fatalf("slot %s-%s blocked by a malformed record", s.StartTime, s.EndTime)
		}
	}
}

func TestResolveDay_Idempotent(t *testing.T) {
	blocked := []BlockedInterval{{Date: "2025-06-02", StartTime: "10:00", EndTime: "10:30"}}
	appts := []AppointmentWindow{{Date: "2025-06-02", StartTime: "09:15", EndTime: "09:45", Status: "pending"}}

	first := ResolveDay(monday, mondayRule(), blocked, appts)
	second := ResolveDay(monday, mondayRule(), blocked, appts)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated resolution differs: %+v vs %+v", first, second)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:45", 585, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"9:00", 0, false},
		{"09-00", 0, false},
		{"ab:cd", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseClock(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseClock(%q) = %d, %v, want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{585, "09:45"},
		{1439, "23:59"},
		{1455, "24:15"}, // oversized trailing slot end
		{-10, "00:00"},
	}
	for _, tc := range cases {
		if got := formatClock(tc.in); got != tc.want {
			t.Errorf("formatClock(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
