package tax

import "github.com/shopspring/decimal"

func d(v int64) decimal.Decimal      { return decimal.NewFromInt(v) }
func rate(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// thresholds builds a per-status threshold map in the order single, MFJ,
// MFS, HoH.
func thresholds(single, mfj, mfs, hoh int64) map[FilingStatus]decimal.Decimal {
	return map[FilingStatus]decimal.Decimal{
		Single:          d(single),
		MarriedJoint:    d(mfj),
		MarriedSeparate: d(mfs),
		HeadOfHousehold: d(hoh),
	}
}

// builtinTables returns the bracket schedules compiled into the engine.
// Federal 2024/2025 per IRS revenue procedures; PA flat tax as the sample
// state jurisdiction.
func builtinTables() []*Table {
	federal2024 := &Table{
		Jurisdiction: "US",
		Year:         2024,
		Brackets: []Bracket{
			{Threshold: thresholds(0, 0, 0, 0), Rate: rate(0.10)},
			{Threshold: thresholds(11600, 23200, 11600, 16550), Rate: rate(0.12)},
			{Threshold: thresholds(47150, 94300, 47150, 63100), Rate: rate(0.22)},
			{Threshold: thresholds(100525, 201050, 100525, 100500), Rate: rate(0.24)},
			{Threshold: thresholds(191950, 383900, 191950, 191950), Rate: rate(0.32)},
			{Threshold: thresholds(243725, 487450, 243725, 243700), Rate: rate(0.35)},
			{Threshold: thresholds(609350, 731200, 365600, 609350), Rate: rate(0.37)},
		},
		Deduction: Deduction{
			Base: map[FilingStatus]decimal.Decimal{
				Single:          d(14600),
				MarriedJoint:    d(29200),
				MarriedSeparate: d(14600),
				HeadOfHousehold: d(21900),
			},
			SeniorAdd:    d(1550),
			SeniorAge:    65,
			DependentAdd: d(0),
		},
		Inclusion: map[string]decimal.Decimal{
			"socialSecurity": rate(0.85),
			"capitalGains":   rate(0.50),
			"nontaxable":     rate(0),
		},
	}

	federal2025 := &Table{
		Jurisdiction: "US",
		Year:         2025,
		Brackets: []Bracket{
			{Threshold: thresholds(0, 0, 0, 0), Rate: rate(0.10)},
			{Threshold: thresholds(11925, 23850, 11925, 17000), Rate: rate(0.12)},
			{Threshold: thresholds(48475, 96950, 48475, 64850), Rate: rate(0.22)},
			{Threshold: thresholds(103350, 206700, 103350, 103350), Rate: rate(0.24)},
			{Threshold: thresholds(197300, 394600, 197300, 197300), Rate: rate(0.32)},
			{Threshold: thresholds(250525, 501050, 250525, 250500), Rate: rate(0.35)},
			{Threshold: thresholds(626350, 751600, 375800, 626350), Rate: rate(0.37)},
		},
		Deduction: Deduction{
			Base: map[FilingStatus]decimal.Decimal{
				Single:          d(15000),
				MarriedJoint:    d(30000),
				MarriedSeparate: d(15000),
				HeadOfHousehold: d(22500),
			},
			SeniorAdd:    d(1600),
			SeniorAge:    65,
			DependentAdd: d(0),
		},
		Inclusion: map[string]decimal.Decimal{
			"socialSecurity": rate(0.85),
			"capitalGains":   rate(0.50),
			"nontaxable":     rate(0),
		},
	}

	// Pennsylvania: flat 3.07%, no standard deduction, retirement income and
	// social security excluded.
	pa2024 := &Table{
		Jurisdiction: "PA",
		Year:         2024,
		Brackets: []Bracket{
			{Threshold: thresholds(0, 0, 0, 0), Rate: rate(0.0307)},
		},
		Deduction: Deduction{Base: map[FilingStatus]decimal.Decimal{
			Single: d(0), MarriedJoint: d(0), MarriedSeparate: d(0), HeadOfHousehold: d(0),
		}},
		Inclusion: map[string]decimal.Decimal{
			"socialSecurity": rate(0),
			"retirement":     rate(0),
			"nontaxable":     rate(0),
		},
	}

	return []*Table{federal2024, federal2025, pa2024}
}
