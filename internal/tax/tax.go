// Package tax implements per-jurisdiction, per-year progressive bracket
// calculators. A Table is a pure function of income composition, filing
// status, filer ages, and deductions; the Registry resolves which table
// applies and fails loudly when none does.
package tax

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// FilingStatus mirrors the federal filing statuses the tables schedule.
type FilingStatus string

const (
	Single          FilingStatus = "single"
	MarriedJoint    FilingStatus = "marriedJoint"
	MarriedSeparate FilingStatus = "marriedSeparate"
	HeadOfHousehold FilingStatus = "headOfHousehold"
)

// ParseFilingStatus resolves a filing status name from model rows.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch s {
	case "single":
		return Single, nil
	case "marriedJoint", "married_joint", "mfj", "":
		return MarriedJoint, nil
	case "marriedSeparate", "married_separate", "mfs":
		return MarriedSeparate, nil
	case "headOfHousehold", "head_of_household", "hoh":
		return HeadOfHousehold, nil
	}
	return "", fmt.Errorf("unknown filing status %q", s)
}

// Bracket is one marginal bracket: income above Threshold (for the given
// filing status) is taxed at Rate until the next bracket's threshold.
type Bracket struct {
	Threshold map[FilingStatus]decimal.Decimal
	Rate      decimal.Decimal
}

// Deduction is the standard-deduction schedule for a table.
type Deduction struct {
	Base         map[FilingStatus]decimal.Decimal
	SeniorAdd    decimal.Decimal // per filer at or above SeniorAge
	SeniorAge    int
	DependentAdd decimal.Decimal // per dependent
}

// Table holds the bracket schedule for one (jurisdiction, year).
type Table struct {
	Jurisdiction string
	Year         int
	Brackets     []Bracket // ascending by threshold
	Deduction    Deduction
	// Inclusion maps an income category to the fraction of it that counts
	// toward taxable income; categories absent from the map count in full.
	Inclusion map[string]decimal.Decimal
}

// Input is the income composition a tax item feeds the table each period.
type Input struct {
	Income     map[string]decimal.Decimal // category -> amount
	Deductions decimal.Decimal            // itemized/extra, on top of standard
	Status     FilingStatus
	Ages       []int // filer ages, for the senior add-on
	Dependents int
}

// Result is the computed liability and its intermediate figures.
type Result struct {
	Gross     decimal.Decimal // inclusion-weighted income
	Deduction decimal.Decimal
	AGI       decimal.Decimal
	Tax       decimal.Decimal
}

// Calculate computes the tax owed for the given income composition.
func (t *Table) Calculate(in Input) Result {
	gross := decimal.Zero
	for category, amount := range in.Income {
		include := decimal.NewFromInt(1)
		if f, ok := t.Inclusion[category]; ok {
			include = f
		}
		gross = gross.Add(amount.Mul(include))
	}

	ded := t.Deduction.Base[in.Status]
	for _, age := range in.Ages {
		if t.Deduction.SeniorAge > 0 && age >= t.Deduction.SeniorAge {
			ded = ded.Add(t.Deduction.SeniorAdd)
		}
	}
	ded = ded.Add(t.Deduction.DependentAdd.Mul(decimal.NewFromInt(int64(in.Dependents))))
	ded = ded.Add(in.Deductions)

	agi := gross.Sub(ded)
	if agi.IsNegative() {
		agi = decimal.Zero
	}

	return Result{
		Gross:     gross.Round(2),
		Deduction: ded.Round(2),
		AGI:       agi.Round(2),
		Tax:       t.lookupTax(agi, in.Status).Round(2),
	}
}

// lookupTax walks the brackets from the highest threshold down, accumulating
// (remaining - threshold) * rate wherever positive and reducing remaining
// each time. The classic marginal-bracket subtraction scheme, applied in
// descending threshold order.
func (t *Table) lookupTax(taxable decimal.Decimal, status FilingStatus) decimal.Decimal {
	tax := decimal.Zero
	remaining := taxable
	for i := len(t.Brackets) - 1; i >= 0; i-- {
		b := t.Brackets[i]
		threshold := b.Threshold[status]
		over := remaining.Sub(threshold)
		if over.IsPositive() {
			tax = tax.Add(over.Mul(b.Rate))
			remaining = remaining.Sub(over)
		}
	}
	return tax
}

// Registry resolves tax tables by jurisdiction and year.
type Registry struct {
	tables map[string]*Table
}

func key(jurisdiction string, year int) string {
	return fmt.Sprintf("%s/%d", jurisdiction, year)
}

// NewRegistry returns a registry seeded with the built-in tables.
func NewRegistry() *Registry {
	r := &Registry{tables: make(map[string]*Table)}
	for _, t := range builtinTables() {
		r.Register(t)
	}
	return r
}

// Register adds or replaces a table.
func (r *Registry) Register(t *Table) {
	sort.Slice(t.Brackets, func(i, j int) bool {
		return t.Brackets[i].Threshold[Single].LessThan(t.Brackets[j].Threshold[Single])
	})
	r.tables[key(t.Jurisdiction, t.Year)] = t
}

// Lookup returns the table for (jurisdiction, year). A missing table is a
// configuration error: defaulting here would silently compute a wrong tax
// bill.
func (r *Registry) Lookup(jurisdiction string, year int) (*Table, error) {
	if t, ok := r.tables[key(jurisdiction, year)]; ok {
		return t, nil
	}
	// Fall back to the most recent earlier year for the same jurisdiction;
	// bracket schedules persist until superseded.
	best := 0
	var found *Table
	for _, t := range r.tables {
		if t.Jurisdiction == jurisdiction && t.Year <= year && t.Year > best {
			best, found = t.Year, t
		}
	}
	if found != nil {
		return found, nil
	}
	return nil, fmt.Errorf("no tax table for jurisdiction %q year %d", jurisdiction, year)
}
