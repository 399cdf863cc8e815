package availability

import "fmt"

// parseClock converts an "HH:MM" 24-hour wall-clock string into minute-of-day.
// Returns false for anything that is not a well-formed clock value.
func parseClock(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// formatClock renders a minute-of-day value back to "HH:MM". An oversized
// trailing slot may end past midnight; that renders as "24:MM" rather than
// wrapping, so the sequence stays monotonic.
func formatClock(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// overlaps reports whether the half-open intervals [a,b) and [c,d) intersect.
func overlaps(a, b, c, d int) bool {
	return a < d && c < b
}
