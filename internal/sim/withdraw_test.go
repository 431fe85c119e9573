package sim

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthpath/finsim/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// runOnePeriod builds the scenario and advances the runtime a single period
// so every item has a live state to withdraw against.
func runOnePeriod(t *testing.T, rows []model.Row) *Runtime {
	t.Helper()
	sc, err := model.BuildScenario("base", rows, 2040)
	require.NoError(t, err)
	rt := NewEngine().newRuntime(sc)
	start := sc.Range.Start
	require.NoError(t, rt.run(start, start, func(*Snapshot) bool { return true }))
	return rt
}

func poolRows() []model.Row {
	start := date(2025, time.January, 1)
	return []model.Row{
		{Type: "person", Name: "spouse1", Start: start, Birth: date(1967, time.January, 1), Sex: "female"},
		{Type: "income", Name: "Pay", Start: start, Value: 100, Frequency: "monthly"},
		{Type: "asset", Name: "Brokerage", Start: start, Value: 300},
		{Type: "asset", Name: "Savings", Start: start, Value: 400},
		{Type: "transfer", Name: "Ordered", Start: start, Spec: `["Pay", "Brokerage", "Savings"]`},
		{Type: "transfer", Name: "Weighted", Start: start, Spec: `{"Brokerage": 3, "Savings": 1}`},
	}
}

func transferSpec(t *testing.T, rt *Runtime, name string) *model.TransferSpec {
	t.Helper()
	tr, ok := rt.Scenario.Lookup(model.TypeTransfer, name).(*model.Transfer)
	require.True(t, ok)
	return tr.Spec
}

func TestWithdrawOrderedConservation(t *testing.T) {
	rt := runOnePeriod(t, poolRows())
	// Aggregate availability is 100 + 300 + 400 = 800.
	w, err := rt.Withdraw(decimal.NewFromInt(800), transferSpec(t, rt, "Ordered"), "test")
	require.NoError(t, err)
	assert.Equal(t, "800.00", w.Amount.StringFixed(2), "sufficient balance: withdrawn equals requested")
	assert.Equal(t, "100.00", w.Sources["income:Pay"].StringFixed(2))
	assert.Equal(t, "300.00", w.Sources["asset:Brokerage"].StringFixed(2))
	assert.Equal(t, "400.00", w.Sources["asset:Savings"].StringFixed(2))
	assert.True(t, rt.States["asset:Savings"].Value.IsZero())
}

func TestWithdrawOrderedStopsEarly(t *testing.T) {
	rt := runOnePeriod(t, poolRows())
	w, err := rt.Withdraw(decimal.NewFromInt(150), transferSpec(t, rt, "Ordered"), "test")
	require.NoError(t, err)
	assert.Equal(t, "150.00", w.Amount.StringFixed(2))
	assert.Equal(t, "50.00", w.Sources["asset:Brokerage"].StringFixed(2), "second source covers only the remainder")
	_, touched := w.Sources["asset:Savings"]
	assert.False(t, touched, "later sources untouched once satisfied")
}

func TestWithdrawOrderedUnderfunded(t *testing.T) {
	rt := runOnePeriod(t, poolRows())
	w, err := rt.Withdraw(decimal.NewFromInt(900), transferSpec(t, rt, "Ordered"), "test")
	require.NoError(t, err, "under-funding is a modeling outcome, not an error")
	assert.Equal(t, "800.00", w.Amount.StringFixed(2), "everything available, strictly less than requested")
}

func TestWithdrawWeightedShares(t *testing.T) {
	rt := runOnePeriod(t, poolRows())
	w, err := rt.Withdraw(decimal.NewFromInt(400), transferSpec(t, rt, "Weighted"), "test")
	require.NoError(t, err)
	assert.Equal(t, "400.00", w.Amount.StringFixed(2))
	assert.Equal(t, "300.00", w.Sources["asset:Brokerage"].StringFixed(2), "75% share")
	assert.Equal(t, "100.00", w.Sources["asset:Savings"].StringFixed(2), "25% share")
}

// A weighted entry's shortfall is not redistributed to its siblings: weights
// act as hard caps, unlike the cascading ordered list. This asymmetry is
// intentional behavior, not a bug.
func TestWithdrawWeightedNoRedistribution(t *testing.T) {
	rt := runOnePeriod(t, poolRows())
	w, err := rt.Withdraw(decimal.NewFromInt(800), transferSpec(t, rt, "Weighted"), "test")
	require.NoError(t, err)
	// Brokerage's 600 share caps at its 300 balance; Savings' 200 share is
	// requested as-is even though Savings could cover more.
	assert.Equal(t, "500.00", w.Amount.StringFixed(2))
	assert.Equal(t, "300.00", w.Sources["asset:Brokerage"].StringFixed(2))
	assert.Equal(t, "200.00", w.Sources["asset:Savings"].StringFixed(2))
}

func TestWithdrawTaxableClassification(t *testing.T) {
	start := date(2025, time.January, 1)
	rows := []model.Row{
		{Type: "person", Name: "spouse1", Start: start, Birth: date(1967, time.January, 1), Sex: "female"},
		{Type: "asset", Name: "Roth", Start: start, Value: 500, Categories: []string{"nontaxable"}},
		{Type: "asset", Name: "Traditional", Start: start, Value: 500},
		{Type: "transfer", Name: "Mix", Start: start, Spec: `["Roth", "Traditional"]`},
	}
	rt := runOnePeriod(t, rows)
	w, err := rt.Withdraw(decimal.NewFromInt(700), transferSpec(t, rt, "Mix"), "test")
	require.NoError(t, err)
	assert.Equal(t, "700.00", w.Amount.StringFixed(2))
	assert.Equal(t, "200.00", w.Taxable.StringFixed(2), "only the non-Roth slice is taxable")
}

func TestWithdrawLiabilityDraw(t *testing.T) {
	start := date(2025, time.January, 1)
	r := 1.12
	rows := []model.Row{
		{Type: "person", Name: "spouse1", Start: start, Birth: date(1967, time.January, 1), Sex: "female"},
		{Type: "liability", Name: "HELOC", Start: start, Value: 1000, Rate: &r},
		{Type: "transfer", Name: "Credit", Start: start, Spec: "HELOC"},
	}
	rt := runOnePeriod(t, rows)
	before := rt.States["liability:HELOC"].Value

	w, err := rt.Withdraw(decimal.NewFromInt(50), transferSpec(t, rt, "Credit"), "test")
	require.NoError(t, err)
	assert.Equal(t, "50.00", w.Amount.StringFixed(2), "a liability supplies the full request")
	assert.True(t, rt.States["liability:HELOC"].Value.Equal(before.Add(decimal.NewFromInt(50))),
		"drawing on a liability grows the debt")
	assert.True(t, w.Deductible.IsPositive(), "the period's interest portion is deductible sourcing")
	assert.True(t, w.Taxable.IsZero())
}

func TestWithdrawInactiveSourceNonFatal(t *testing.T) {
	start := date(2025, time.January, 1)
	rows := []model.Row{
		{Type: "person", Name: "spouse1", Start: start, Birth: date(1967, time.January, 1), Sex: "female"},
		{Type: "asset", Name: "Now", Start: start, Value: 100},
		// Starts a year into the run; no live state the first period.
		{Type: "income", Name: "Later", Start: date(2026, time.January, 1), Value: 100, Frequency: "monthly"},
		{Type: "transfer", Name: "Split", Start: start, Spec: `["Later", "Now"]`},
	}
	rt := runOnePeriod(t, rows)
	w, err := rt.Withdraw(decimal.NewFromInt(60), transferSpec(t, rt, "Split"), "test")
	require.NoError(t, err, "a not-yet-active source is skipped, not fatal")
	assert.Equal(t, "60.00", w.Amount.StringFixed(2))
	assert.Equal(t, "60.00", w.Sources["asset:Now"].StringFixed(2))
}

func TestWithdrawUnknownSourceFatal(t *testing.T) {
	rt := runOnePeriod(t, poolRows())
	spec := &model.TransferSpec{Kind: model.SpecSource, Name: "Ghost", ID: "asset:Ghost"}
	_, err := rt.Withdraw(decimal.NewFromInt(10), spec, "test")
	require.Error(t, err, "a reference to a nonexistent item aborts the run")
	assert.Contains(t, err.Error(), "Ghost")
}
