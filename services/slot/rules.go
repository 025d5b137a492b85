package slot

import (
	"regexp"
	"time"
)

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// validDate reports whether s is a real calendar date in "YYYY-MM-DD" form.
func validDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// validClock reports whether s is a zero-padded "HH:MM" clock time. Zero
// padding keeps lexical comparison equal to chronological comparison.
func validClock(s string) bool {
	return clockRe.MatchString(s)
}

func validMonth(s string) bool {
	if !monthRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// conflicts reports whether two [start, end) intervals on the same date
// overlap, or touch exactly at a boundary. Back-to-back slots are rejected
// on purpose: providers need a gap between consultations.
func conflicts(existingStart, existingEnd, newStart, newEnd string) bool {
	if existingStart < newEnd && existingEnd > newStart {
		return true
	}
	return existingEnd == newStart || existingStart == newEnd
}

// monthRange converts "YYYY-MM" into the [first day, first day of next
// month) date pair used for range queries.
func monthRange(month string) (string, string) {
	t, _ := time.Parse("2006-01", month)
	return t.Format("2006-01-02"), t.AddDate(0, 1, 0).Format("2006-01-02")
}
