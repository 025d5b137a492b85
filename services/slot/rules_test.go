package slot

import "testing"

func TestValidDate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2026-09-15", true},
		{"2026-02-29", false},
		{"2026-13-01", false},
		{"2026-9-5", false},
		{"15-09-2026", false},
		{"", false},
	}
	for _, c := range cases {
		if got := validDate(c.in); got != c.want {
			t.Errorf("validDate(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestValidClock(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"09:00", true},
		{"23:59", true},
		{"00:00", true},
		{"24:00", false},
		{"9:00", false},
		{"09:60", false},
		{"0900", false},
	}
	for _, c := range cases {
		if got := validClock(c.in); got != c.want {
			t.Errorf("validClock(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestConflicts(t *testing.T) {
	cases := []struct {
		name                   string
		exStart, exEnd         string
		newStart, newEnd       string
		want                   bool
	}{
		{"disjoint before", "09:00", "10:00", "11:00", "12:00", false},
		{"disjoint after", "11:00", "12:00", "09:00", "10:00", false},
		{"full overlap", "09:00", "10:00", "09:00", "10:00", true},
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"containment", "09:00", "12:00", "10:00", "11:00", true},
		{"adjacent end-start", "09:00", "10:00", "10:00", "11:00", true},
		{"adjacent start-end", "10:00", "11:00", "09:00", "10:00", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := conflicts(c.exStart, c.exEnd, c.newStart, c.newEnd); got != c.want {
				t.Errorf("conflicts(%s-%s, %s-%s) = %v, want %v",
					c.exStart, c.exEnd, c.newStart, c.newEnd, got, c.want)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	from, to := monthRange("2026-09")
	if from != "2026-09-01" || to != "2026-10-01" {
		t.Errorf("monthRange(2026-09) = %s, %s", from, to)
	}

	from, to = monthRange("2026-12")
	if from != "2026-12-01" || to != "2027-01-01" {
		t.Errorf("monthRange(2026-12) = %s, %s", from, to)
	}
}
