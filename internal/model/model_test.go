package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScenarioRoundTrip(t *testing.T) {
	start := date(2025, time.January, 1)
	rows := []Row{
		{Type: "person", Name: "spouse1", Start: start, Birth: date(1967, time.January, 1), Sex: "female"},
		{Type: "asset", Name: "House", Start: start, Value: 400000},
		{Type: "expense", Name: "Groceries", Start: start, Value: 800, Frequency: "monthly"},
	}
	sc, err := BuildScenario("base", rows, 2040)
	require.NoError(t, err)

	// Constructing an item then locating it by id returns the identical
	// object.
	require.Len(t, sc.Assets, 1)
	house := sc.Assets[0]
	assert.Same(t, house, sc.Item("asset:House"))
	assert.Same(t, house, sc.Lookup(TypeAsset, "House"))
	assert.Same(t, sc, house.Scenario())
	assert.Same(t, house.Temporal(), sc.Temporal("asset:House"))

	assert.Equal(t, sc.Spouse1, sc.Persons[0])
	assert.Nil(t, sc.Spouse2)
	assert.Equal(t, start, sc.Range.Start)
	assert.Equal(t, date(2041, time.January, 1), sc.Range.End)
}

func TestBuildScenarioRequiresPerson(t *testing.T) {
	rows := []Row{
		{Type: "asset", Name: "House", Start: date(2025, time.January, 1), Value: 1},
	}
	_, err := BuildScenario("base", rows, 2040)
	assert.Error(t, err)
}

func TestBuildScenarioScenarioMembership(t *testing.T) {
	start := date(2025, time.January, 1)
	rows := []Row{
		{Type: "person", Name: "spouse1", Start: start, Birth: date(1967, time.January, 1), Sex: "female"},
		{Type: "asset", Name: "Everywhere", Start: start, Value: 1},
		{Type: "asset", Name: "OnlyOther", Start: start, Value: 1, Scenarios: []string{"other"}},
	}
	sc, err := BuildScenario("base", rows, 2040)
	require.NoError(t, err)
	assert.NotNil(t, sc.Lookup(TypeAsset, "Everywhere"), "no membership list means every scenario")
	assert.Nil(t, sc.Lookup(TypeAsset, "OnlyOther"))
}

func TestBuildScenarioDanglingExpenseSource(t *testing.T) {
	start := date(2025, time.January, 1)
	rows := []Row{
		{Type: "person", Name: "spouse1", Start: start, Birth: date(1967, time.January, 1), Sex: "female"},
		{Type: "expense", Name: "Rent", Start: start, Value: 2000, Frequency: "monthly", From: "Ghost"},
	}
	_, err := BuildScenario("base", rows, 2040)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rent")
	assert.Contains(t, err.Error(), "Ghost")
}

func TestBuildScenarioRejectsBadEndYear(t *testing.T) {
	rows := []Row{
		{Type: "person", Name: "spouse1", Start: date(2025, time.January, 1),
			Birth: date(1967, time.January, 1), Sex: "female"},
	}
	_, err := BuildScenario("base", rows, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endYear")

	_, err = BuildScenario("base", rows, 9999)
	assert.Error(t, err)
}

func TestBuildScenarioLiabilityRepaidLink(t *testing.T) {
	start := date(2025, time.January, 1)
	rows := []Row{
		{Type: "person", Name: "spouse1", Start: start, Birth: date(1967, time.January, 1), Sex: "female"},
		{Type: "income", Name: "Pay", Start: start, Value: 3000, Frequency: "monthly"},
		{Type: "liability", Name: "Mortgage", Start: start, Value: 185000, Payment: 1450, From: "House Payment"},
		{Type: "expense", Name: "House Payment", Start: start, Value: 1450, Frequency: "monthly", From: "Pay"},
	}
	sc, err := BuildScenario("base", rows, 2040)
	require.NoError(t, err)
	require.Len(t, sc.Liabilities, 1)
	assert.Equal(t, "House Payment", sc.Liabilities[0].Repaid)

	// The link must name an existing expense.
	rows[2].From = "Ghost Payment"
	_, err = BuildScenario("base", rows, 2040)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mortgage")
	assert.Contains(t, err.Error(), "Ghost Payment")
}

func TestZeroRateRejected(t *testing.T) {
	zero := 0.0
	_, err := newAsset(Row{Type: "asset", Name: "Bad", Start: date(2025, time.January, 1), Value: 10, Rate: &zero})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad")
}

func TestPeriodRate(t *testing.T) {
	annual := decimal.NewFromFloat(1.12)

	monthly := PeriodRate(annual, RateAnnual, 12)
	f, _ := monthly.Float64()
	assert.InDelta(t, 1.009488, f, 1e-5, "compound annual to monthly")

	simple := PeriodRate(annual, RateSimple, 12)
	f, _ = simple.Float64()
	assert.InDelta(t, 1.01, f, 1e-9, "APR divided evenly")

	asIs := PeriodRate(annual, RateMonthly, 12)
	assert.True(t, asIs.Equal(annual))
}

func TestPersonAges(t *testing.T) {
	p, err := newPerson(Row{Type: "person", Name: "spouse1", Start: date(2025, time.January, 1),
		Birth: date(1967, time.January, 1), Sex: "female"})
	require.NoError(t, err)
	assert.Equal(t, 58, p.AgeInYear(2025))
	assert.InDelta(t, 58.0, p.AgeAt(date(2025, time.January, 1)), 0.05)

	e, err := p.Expectancy(date(2025, time.January, 1))
	require.NoError(t, err)
	assert.Greater(t, e, 20.0)
}

func TestIncomeTaxCategory(t *testing.T) {
	start := date(2025, time.January, 1)
	in, err := newIncome(Row{Type: "income", Name: "SS", Start: start, Value: 2000,
		Frequency: "monthly", Categories: []string{"socialSecurity"}})
	require.NoError(t, err)
	assert.Equal(t, "socialSecurity", in.TaxCategory())

	in, err = newIncome(Row{Type: "income", Name: "Pay", Start: start, Value: 2000, Frequency: "monthly"})
	require.NoError(t, err)
	assert.Equal(t, "ordinary", in.TaxCategory())
}
