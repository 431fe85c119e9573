// Package actuary supplies mortality lookups for person state evolution:
// interpolated per-age death probabilities, surviving cohort counts, and
// remaining life expectancy.
package actuary

import (
	"fmt"
	"time"

	"github.com/wealthpath/finsim/internal/tagged"
)

// Sex selects which life table applies.
type Sex int

const (
	Male Sex = iota
	Female
)

// ParseSex resolves a sex name from model rows.
func ParseSex(s string) (Sex, error) {
	switch s {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	}
	return 0, fmt.Errorf("unknown sex %q", s)
}

func (s Sex) String() string {
	if s == Female {
		return "female"
	}
	return "male"
}

// Row is one integer-age entry of a life table.
type Row struct {
	Q float64 // probability of death before the next birthday
	L int     // survivors per 100,000 births
	E float64 // remaining life expectancy in years
}

// Point is an actuarial lookup result, possibly interpolated between rows.
type Point struct {
	Q float64 // probability of death before the next birthday
	N float64 // survivors per 100,000 cohort at this exact age
	E float64 // remaining life expectancy in years
}

// nearFloor is the fractional-age slack under which no interpolation is
// applied; near-exact ages snap to the floor row to avoid interpolation
// noise.
const nearFloor = 0.003

func table(sex Sex) []Row {
	if sex == Female {
		return femaleTable
	}
	return maleTable
}

// Lookup returns the actuarial point for a possibly fractional age. Ages
// beyond the end of the table are an error; there is no extrapolation, and
// whether that error is fatal is the caller's decision.
func Lookup(age float64, sex Sex) (Point, error) {
	a, err := tagged.NewAge(age)
	if err != nil {
		return Point{}, fmt.Errorf("actuary: %w", err)
	}
	rows := table(sex)
	lo := int(a)
	frac := float64(a) - float64(lo)
	if lo >= len(rows) {
		return Point{}, fmt.Errorf("actuary: age %.2f beyond %s table maximum %d", age, sex, len(rows)-1)
	}
	if frac <= nearFloor || lo == len(rows)-1 {
		r := rows[lo]
		return Point{Q: r.Q, N: float64(r.L), E: r.E}, nil
	}
	r0, r1 := rows[lo], rows[lo+1]
	return Point{
		Q: lerp(r0.Q, r1.Q, frac),
		N: lerp(float64(r0.L), float64(r1.L), frac),
		E: lerp(r0.E, r1.E, frac),
	}, nil
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// MaxAge returns the highest integer age the table for sex covers.
func MaxAge(sex Sex) int { return len(table(sex)) - 1 }

// AgeAt returns the fractional age in years at a given date.
func AgeAt(birth, at time.Time) float64 {
	return at.Sub(birth).Hours() / 24 / 365.25
}

// SurvivalPoint is one step of a cumulative survival series.
type SurvivalPoint struct {
	P tagged.Probability // cumulative probability of death by this step
	N float64            // expected survivors per 100,000 cohort
}

// EndOfLife is the sentinel emitted once a series runs past the table: death
// is certain and the cohort is exhausted.
var EndOfLife = SurvivalPoint{P: 1, N: 0}

// Done reports whether the point is the end-of-life sentinel.
func (sp SurvivalPoint) Done() bool { return sp.N == 0 && sp.P == 1 }

// SurvivalSeries builds the cumulative survival series for a person born on
// birth, starting at from, one entry per monthly period. Unlike Lookup, ages
// past the table end are tolerated here: the series is padded with the
// end-of-life sentinel rather than failing, so a long projection simply shows
// the cohort running out.
func SurvivalSeries(birth, from time.Time, sex Sex, periods int) []SurvivalPoint {
	series := make([]SurvivalPoint, 0, periods)
	baseAge := AgeAt(birth, from)
	base, err := Lookup(baseAge, sex)
	if err != nil || base.N <= 0 {
		for i := 0; i < periods; i++ {
			series = append(series, EndOfLife)
		}
		return series
	}
	for i := 0; i < periods; i++ {
		age := baseAge + float64(i)/12
		pt, err := Lookup(age, sex)
		if err != nil || pt.N <= 0 {
			series = append(series, EndOfLife)
			continue
		}
		// Survival relative to the cohort alive at the series start.
		raw := 1 - pt.N/base.N
		if raw < 0 {
			raw = 0
		}
		p, perr := tagged.NewProbability(raw)
		if perr != nil {
			series = append(series, EndOfLife)
			continue
		}
		series = append(series, SurvivalPoint{P: p, N: pt.N})
	}
	return series
}
