package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table2025(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewRegistry().Lookup("US", 2025)
	require.NoError(t, err)
	return tbl
}

func TestLookupMissingTableFatal(t *testing.T) {
	_, err := NewRegistry().Lookup("XX", 2025)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "XX")
}

func TestLookupFallsBackToEarlierYear(t *testing.T) {
	tbl, err := NewRegistry().Lookup("US", 2031)
	require.NoError(t, err)
	assert.Equal(t, 2025, tbl.Year, "schedules persist until superseded")

	_, err = NewRegistry().Lookup("US", 2001)
	assert.Error(t, err, "no table at or before the requested year")
}

func TestCalculateZeroUnderDeduction(t *testing.T) {
	tbl := table2025(t)
	res := tbl.Calculate(Input{
		Income: map[string]decimal.Decimal{"ordinary": decimal.NewFromInt(20000)},
		Status: MarriedJoint,
	})
	assert.True(t, res.Tax.IsZero(), "income below the standard deduction owes nothing, got %s", res.Tax)
	assert.True(t, res.AGI.IsZero())
}

func TestCalculateBracketWalk(t *testing.T) {
	tbl := table2025(t)
	res := tbl.Calculate(Input{
		Income: map[string]decimal.Decimal{"ordinary": decimal.NewFromInt(130000)},
		Status: MarriedJoint,
	})
	// 130000 - 30000 deduction = 100000 taxable:
	// 23850*10% + (96950-23850)*12% + (100000-96950)*22% = 11828.00
	assert.Equal(t, "11828.00", res.Tax.StringFixed(2))
	assert.Equal(t, "100000.00", res.AGI.StringFixed(2))
}

func TestSeniorDeductionAddOn(t *testing.T) {
	tbl := table2025(t)
	in := Input{
		Income: map[string]decimal.Decimal{"ordinary": decimal.NewFromInt(80000)},
		Status: MarriedJoint,
		Ages:   []int{66, 64},
	}
	withSenior := tbl.Calculate(in)
	in.Ages = []int{64, 64}
	without := tbl.Calculate(in)
	assert.True(t, withSenior.Tax.LessThan(without.Tax))
	assert.Equal(t, "1600.00", withSenior.Deduction.Sub(without.Deduction).StringFixed(2))
}

func TestInclusionRates(t *testing.T) {
	tbl := table2025(t)
	res := tbl.Calculate(Input{
		Income: map[string]decimal.Decimal{
			"socialSecurity": decimal.NewFromInt(10000),
			"nontaxable":     decimal.NewFromInt(50000),
		},
		Status: Single,
	})
	assert.Equal(t, "8500.00", res.Gross.StringFixed(2), "85% of social security, none of nontaxable")
}

func TestTaxMonotonicInIncome(t *testing.T) {
	tbl := table2025(t)
	prev := decimal.Zero
	for income := int64(0); income <= 900000; income += 7500 {
		res := tbl.Calculate(Input{
			Income: map[string]decimal.Decimal{"ordinary": decimal.NewFromInt(income)},
			Status: Single,
		})
		if res.Tax.LessThan(prev) {
			t.Fatalf("tax decreased at income %d: %s < %s", income, res.Tax, prev)
		}
		prev = res.Tax
	}
}

func TestParseFilingStatus(t *testing.T) {
	fs, err := ParseFilingStatus("")
	require.NoError(t, err)
	assert.Equal(t, MarriedJoint, fs)

	_, err = ParseFilingStatus("quadruple")
	assert.Error(t, err)
}
