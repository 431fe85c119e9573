// Package calendar provides the period grid the simulation engine advances
// over: unit arithmetic with month-end semantics, step/period span values,
// and a lazy, restartable step sequence between two dates.
package calendar

import (
	"fmt"
	"iter"
	"strings"
	"time"
)

// Unit is a calendar cadence.
type Unit int

const (
	Day Unit = iota
	Week
	Biweekly
	Semimonthly
	Month
	Quarter
	Half
	Year
)

var unitNames = map[Unit]string{
	Day:         "day",
	Week:        "week",
	Biweekly:    "biweekly",
	Semimonthly: "semimonthly",
	Month:       "month",
	Quarter:     "quarter",
	Half:        "half",
	Year:        "year",
}

func (u Unit) String() string {
	if s, ok := unitNames[u]; ok {
		return s
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit resolves a cadence name. Unknown names are configuration errors.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily":
		return Day, nil
	case "week", "weekly":
		return Week, nil
	case "biweekly":
		return Biweekly, nil
	case "semimonthly":
		return Semimonthly, nil
	case "month", "monthly", "":
		return Month, nil
	case "quarter", "quarterly":
		return Quarter, nil
	case "half", "semiannual":
		return Half, nil
	case "year", "annual", "yearly":
		return Year, nil
	}
	return 0, fmt.Errorf("unknown calendar unit %q", s)
}

// PerYear returns how many periods of u fit in a year.
func (u Unit) PerYear() int {
	switch u {
	case Day:
		return 365
	case Week:
		return 52
	case Biweekly:
		return 26
	case Semimonthly:
		return 24
	case Month:
		return 12
	case Quarter:
		return 4
	case Half:
		return 2
	case Year:
		return 1
	}
	return 12
}

// Step is one tick of the period grid.
type Step struct {
	N     int       // zero-based index within the run
	Start time.Time // inclusive
	End   time.Time // exclusive, start of the next step
	Days  int       // calendar days covered
}

// Period is an arbitrary date span, start inclusive, end exclusive.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Add advances t by n units. Month-based units anchor the result to day 1 and
// carry month overflow into the year; adding 0 months leaves month and year
// untouched (still anchored to day 1). Semimonthly alternates between the 1st
// and the 15th depending on the parity of n.
func Add(t time.Time, u Unit, n int) (time.Time, error) {
	switch u {
	case Day:
		return t.AddDate(0, 0, n), nil
	case Week:
		return t.AddDate(0, 0, 7*n), nil
	case Biweekly:
		return t.AddDate(0, 0, 14*n), nil
	case Semimonthly:
		// Floor division so negative counts step backward through the same
		// 1st/15th alternation instead of landing after t.
		months := n / 2
		day := 1
		if n%2 != 0 {
			day = 15
			if n < 0 {
				months--
			}
		}
		y, m := carryMonths(t.Year(), int(t.Month())-1+months)
		return date(y, time.Month(m+1), day), nil
	case Month, Quarter, Half, Year:
		months := n
		switch u {
		case Quarter:
			months = 3 * n
		case Half:
			months = 6 * n
		case Year:
			months = 12 * n
		}
		y, m := carryMonths(t.Year(), int(t.Month())-1+months)
		return date(y, time.Month(m+1), 1), nil
	}
	return time.Time{}, fmt.Errorf("unknown calendar unit %v", u)
}

// carryMonths normalizes a zero-based month index into (year, month) with the
// overflow carried via integer division by 12.
func carryMonths(year, month0 int) (int, int) {
	year += month0 / 12
	month0 %= 12
	if month0 < 0 {
		month0 += 12
		year--
	}
	return year, month0
}

// Truncate returns the start of the unit containing t. Truncating to the
// start of a week is not supported.
func Truncate(t time.Time, u Unit) (time.Time, error) {
	switch u {
	case Day:
		return date(t.Year(), t.Month(), t.Day()), nil
	case Month, Semimonthly, Biweekly:
		return date(t.Year(), t.Month(), 1), nil
	case Quarter:
		q := (int(t.Month()) - 1) / 3
		return date(t.Year(), time.Month(q*3+1), 1), nil
	case Half:
		h := (int(t.Month()) - 1) / 6
		return date(t.Year(), time.Month(h*6+1), 1), nil
	case Year:
		return date(t.Year(), time.January, 1), nil
	case Week:
		return time.Time{}, fmt.Errorf("cannot truncate to start of week")
	}
	return time.Time{}, fmt.Errorf("unknown calendar unit %v", u)
}

// Steps produces the lazy sequence of calendar steps from start until end is
// reached or passed, advancing count units of u at a time. The sequence is
// finite and restartable: each range statement iterates from the beginning.
// An invalid unit surfaces as a panic from Add, which validated callers never
// hit because units are parsed up front.
func Steps(start, end time.Time, u Unit, count int) iter.Seq[Step] {
	if count <= 0 {
		count = 1
	}
	return func(yield func(Step) bool) {
		cur, err := Truncate(start, u)
		if err != nil {
			cur = start
		}
		for n := 0; !cur.After(end); n++ {
			next, err := Add(cur, u, count)
			if err != nil {
				panic(err)
			}
			s := Step{
				N:     n,
				Start: cur,
				End:   next,
				Days:  int(next.Sub(cur).Hours() / 24),
			}
			if !yield(s) {
				return
			}
			cur = next
		}
	}
}

// YearFraction returns the fraction of the given calendar year covered by p,
// as a continuous value in [0,1]. Actual day counts are used throughout, so a
// leap year divides by 366.
func YearFraction(p Period, year int) float64 {
	yearStart := date(year, time.January, 1)
	yearEnd := date(year+1, time.January, 1)
	start := p.Start
	if start.Before(yearStart) {
		start = yearStart
	}
	end := p.End
	if end.IsZero() || end.After(yearEnd) {
		end = yearEnd
	}
	if !end.After(start) {
		return 0
	}
	days := end.Sub(start).Hours() / 24
	total := yearEnd.Sub(yearStart).Hours() / 24
	return days / total
}
