// Package worktime holds the pure time rules of the tracker:
// HH:MM validation, elapsed-time arithmetic and the total format.
package worktime

import (
	"fmt"
	"strconv"
	"strings"
)

// Valid reports whether s is a well-formed 24-hour clock time "HH:MM".
// Invalid input is a normal outcome, never an error.
func Valid(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return hours >= 0 && hours <= 23 && minutes >= 0 && minutes <= 59
}

// Elapsed computes the worked hours and minutes between two valid
// clock times. A negative clock difference wraps around the day, and
// an end hour below the start hour additionally counts as crossing
// midnight, adding 24 hours on top of the wrapped value. This is the
// historical behavior every stored total was computed with. Days
// longer than 4 whole hours lose exactly one hour for the lunch break.
func Elapsed(start, end string) (hours, minutes int) {
	startH, startM := splitClock(start)
	endH, endM := splitClock(end)

	total := (endH*60 + endM) - (startH*60 + startM)
	if total < 0 {
		total += 24 * 60
	}
	if endH < startH {
		total += 24 * 60
	}

	hours = total / 60
	minutes = total % 60
	if hours > 4 {
		hours--
	}
	return hours, minutes
}

// FormatTotal renders hours and minutes as the historical total format:
// the hours and the minutes concatenated around a dot, e.g. 7h30m -> "7.30".
// This is not decimal hours; 7h5m renders as "7.5". The format predates
// this implementation and every stored row uses it.
func FormatTotal(hours, minutes int) string {
	return fmt.Sprintf("%d.%d", hours, minutes)
}

// ParseTotal splits a stored total back into hours and minutes.
// The fractional digits are literal minutes, matching FormatTotal.
func ParseTotal(total string) (hours, minutes int, err error) {
	parts := strings.Split(total, ".")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed total %q", total)
	}
	hours, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed total %q", total)
	}
	minutes, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed total %q", total)
	}
	return hours, minutes, nil
}

// SumTotals adds stored totals carrying minutes into hours,
// reporting the result in the same format. Malformed entries
// are skipped rather than failing the whole summary.
func SumTotals(totals []string) string {
	var hours, minutes int
	for _, t := range totals {
		h, m, err := ParseTotal(t)
		if err != nil {
			continue
		}
		hours += h
		minutes += m
	}
	hours += minutes / 60
	minutes %= 60
	return FormatTotal(hours, minutes)
}

func splitClock(s string) (h, m int) {
	parts := strings.Split(s, ":")
	h, _ = strconv.Atoi(parts[0])
	m, _ = strconv.Atoi(parts[1])
	return h, m
}
