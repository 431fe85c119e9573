package actuary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthpath/finsim/internal/tagged"
)

func TestLookupIntegerAgeMatchesTable(t *testing.T) {
	for _, age := range []int{0, 1, 40, 65, 100, 119} {
		row := maleTable[age]
		pt, err := Lookup(float64(age), Male)
		require.NoError(t, err)
		assert.Equal(t, row.Q, pt.Q, "age %d", age)
		assert.Equal(t, float64(row.L), pt.N, "age %d", age)
		assert.Equal(t, row.E, pt.E, "age %d", age)
	}
}

func TestLookupNearFloorSnaps(t *testing.T) {
	row := femaleTable[40]
	pt, err := Lookup(40.002, Female)
	require.NoError(t, err)
	assert.Equal(t, row.Q, pt.Q, "fractional part within slack snaps to the floor row")
	assert.Equal(t, row.E, pt.E)
}

func TestLookupMidpointInterpolation(t *testing.T) {
	a, b := maleTable[60], maleTable[61]
	pt, err := Lookup(60.5, Male)
	require.NoError(t, err)
	assert.InDelta(t, (a.Q+b.Q)/2, pt.Q, 1e-12)
	assert.InDelta(t, (float64(a.L)+float64(b.L))/2, pt.N, 1e-9)
	assert.InDelta(t, (a.E+b.E)/2, pt.E, 1e-12)
}

func TestLookupBeyondTableFatal(t *testing.T) {
	_, err := Lookup(124, Male)
	assert.Error(t, err, "no extrapolation beyond the table maximum")
	_, err = Lookup(130, Male)
	assert.Error(t, err, "outside the representable age range")
	_, err = Lookup(-1, Female)
	assert.Error(t, err)
}

func TestSurvivalSeriesToleratesTableEnd(t *testing.T) {
	birth := time.Date(1920, time.January, 1, 0, 0, 0, 0, time.UTC)
	from := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC) // age 110
	series := SurvivalSeries(birth, from, Female, 200)
	require.Len(t, series, 200)

	// Early entries are live, the tail is padded with the end-of-life
	// sentinel instead of failing.
	assert.False(t, series[0].Done())
	last := series[len(series)-1]
	assert.True(t, last.Done())
	assert.Equal(t, tagged.Probability(1), last.P)
	assert.Equal(t, 0.0, last.N)

	// Cumulative death probability never decreases and stays a probability.
	for i := 1; i < len(series); i++ {
		assert.GreaterOrEqual(t, series[i].P, series[i-1].P, "step %d", i)
		assert.LessOrEqual(t, series[i].P, tagged.Probability(1), "step %d", i)
	}
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(1967, time.January, 1, 0, 0, 0, 0, time.UTC)
	at := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 60.0, AgeAt(birth, at), 0.02)
}

func TestParseSex(t *testing.T) {
	s, err := ParseSex("female")
	require.NoError(t, err)
	assert.Equal(t, Female, s)
	_, err = ParseSex("x")
	assert.Error(t, err)
}
