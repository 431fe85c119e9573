package model

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/finsim/internal/actuary"
	"github.com/wealthpath/finsim/internal/calendar"
	"github.com/wealthpath/finsim/internal/tagged"
	"github.com/wealthpath/finsim/internal/tax"
)

// Row is one validated input record, pre-converted by the ingestion layer.
// Fields not applicable to a row's type are left zero.
type Row struct {
	Type       string    `yaml:"type"`
	Name       string    `yaml:"name"`
	Start      time.Time `yaml:"start"`
	End        bool      `yaml:"end"`
	Value      float64   `yaml:"value"`
	Rate       *float64  `yaml:"rate"`
	RateType   string    `yaml:"rateType"`
	Payment    float64   `yaml:"payment"`
	Frequency  string    `yaml:"frequency"`
	From       string    `yaml:"from"`
	To         string    `yaml:"to"`
	Spec       string    `yaml:"spec"`
	Birth      time.Time `yaml:"birth"`
	Sex        string    `yaml:"sex"`
	State      string    `yaml:"state"`
	Filing     string    `yaml:"filing"`
	Body       string    `yaml:"body"`
	Categories []string  `yaml:"categories"`
	Scenarios  []string  `yaml:"scenarios"`
	Sort       int       `yaml:"sort"`
}

// RateType describes how a rate multiplier is quoted.
type RateType string

const (
	RateAnnual  RateType = "annual"  // compound annual growth multiplier
	RateMonthly RateType = "monthly" // already a per-month multiplier
	RateSimple  RateType = "simple"  // annual percentage rate, divided evenly
)

func parseRateType(s string) (RateType, error) {
	switch RateType(s) {
	case "", RateAnnual:
		return RateAnnual, nil
	case RateMonthly:
		return RateMonthly, nil
	case RateSimple:
		return RateSimple, nil
	}
	return "", fmt.Errorf("unknown rate type %q", s)
}

// PeriodRate converts a quoted rate to a per-period multiplier for the given
// number of periods per year.
func PeriodRate(rate decimal.Decimal, rt RateType, perYear int) decimal.Decimal {
	if perYear <= 1 {
		return rate
	}
	switch rt {
	case RateMonthly:
		return rate
	case RateSimple:
		apr, _ := rate.Sub(decimal.NewFromInt(1)).Float64()
		return decimal.NewFromFloat(1 + apr/float64(perYear))
	default:
		f, _ := rate.Float64()
		return decimal.NewFromFloat(math.Pow(f, 1/float64(perYear)))
	}
}

// Person is a household member; ages and survival figures derive from the
// actuarial tables.
type Person struct {
	Item
	Birth time.Time
	Sex   actuary.Sex

	survival map[time.Time][]actuary.SurvivalPoint // memoized by series start
}

func newPerson(r Row) (*Person, error) {
	it, err := newItem(r, TypePerson)
	if err != nil {
		return nil, err
	}
	if r.Birth.IsZero() {
		return nil, fmt.Errorf("person %q: birth date is required", r.Name)
	}
	sex, err := actuary.ParseSex(r.Sex)
	if err != nil {
		return nil, fmt.Errorf("person %q: %w", r.Name, err)
	}
	return &Person{Item: it, Birth: r.Birth, Sex: sex}, nil
}

// AgeAt returns the fractional age on a date.
func (p *Person) AgeAt(d time.Time) float64 { return actuary.AgeAt(p.Birth, d) }

// AgeInYear returns the integer age reached on the birthday within year.
func (p *Person) AgeInYear(year int) int { return year - p.Birth.Year() }

// Expectancy returns the remaining life expectancy at a date. A lookup past
// the table maximum is fatal here; survival series tolerate it instead.
func (p *Person) Expectancy(d time.Time) (float64, error) {
	pt, err := actuary.Lookup(p.AgeAt(d), p.Sex)
	if err != nil {
		return 0, fmt.Errorf("person %q: %w", p.Name, err)
	}
	return pt.E, nil
}

// SurvivalSeries returns the cumulative survival series from a date, one
// entry per monthly period, memoized per series start.
func (p *Person) SurvivalSeries(from time.Time, periods int) []actuary.SurvivalPoint {
	if p.survival == nil {
		p.survival = make(map[time.Time][]actuary.SurvivalPoint)
	}
	if s, ok := p.survival[from]; ok && len(s) >= periods {
		return s[:periods]
	}
	s := actuary.SurvivalSeries(p.Birth, from, p.Sex, periods)
	p.survival[from] = s
	return s
}

// Asset is a balance item growing at a rate.
type Asset struct {
	Item
	Value    decimal.Decimal
	Rate     decimal.Decimal
	RateType RateType
}

func newAsset(r Row) (*Asset, error) {
	it, err := newItem(r, TypeAsset)
	if err != nil {
		return nil, err
	}
	value, rate, rt, err := monetaryFields(r)
	if err != nil {
		return nil, fmt.Errorf("asset %q: %w", r.Name, err)
	}
	return &Asset{Item: it, Value: value, Rate: rate, RateType: rt}, nil
}

// Liability is a debt balance accruing interest, optionally repaid by a
// scheduled payment whose cash side is carried by a linked expense.
type Liability struct {
	Item
	Value    decimal.Decimal
	Rate     decimal.Decimal
	RateType RateType
	Payment  decimal.Decimal
	Repaid   string // name of the expense that repays this liability
}

func newLiability(r Row) (*Liability, error) {
	it, err := newItem(r, TypeLiability)
	if err != nil {
		return nil, err
	}
	value, rate, rt, err := monetaryFields(r)
	if err != nil {
		return nil, fmt.Errorf("liability %q: %w", r.Name, err)
	}
	payment, err := tagged.Money(r.Payment)
	if err != nil {
		return nil, fmt.Errorf("liability %q: payment: %w", r.Name, err)
	}
	return &Liability{Item: it, Value: value, Rate: rate, RateType: rt, Payment: payment, Repaid: r.From}, nil
}

// Income is a periodic cash inflow. Leftover amounts not consumed by
// expenses may be deposited into the asset named by To.
type Income struct {
	Item
	Value     decimal.Decimal
	Frequency calendar.Unit
	To        string
}

func newIncome(r Row) (*Income, error) {
	it, err := newItem(r, TypeIncome)
	if err != nil {
		return nil, err
	}
	value, err := tagged.Money(r.Value)
	if err != nil {
		return nil, fmt.Errorf("income %q: value: %w", r.Name, err)
	}
	freq, err := calendar.ParseUnit(r.Frequency)
	if err != nil {
		return nil, fmt.Errorf("income %q: %w", r.Name, err)
	}
	return &Income{Item: it, Value: value, Frequency: freq, To: r.To}, nil
}

// TaxCategory classifies an income for the tax tables based on its tags.
func (in *Income) TaxCategory() string {
	for _, c := range []string{"socialSecurity", "capitalGains", "retirement", "nontaxable"} {
		if in.HasCategory(c) {
			return c
		}
	}
	return "ordinary"
}

// Expense is a periodic cash outflow funded from the source named by From
// (an income, asset, liability, or transfer).
type Expense struct {
	Item
	Value     decimal.Decimal
	Frequency calendar.Unit
	From      string
}

func newExpense(r Row) (*Expense, error) {
	it, err := newItem(r, TypeExpense)
	if err != nil {
		return nil, err
	}
	value, err := tagged.Money(r.Value)
	if err != nil {
		return nil, fmt.Errorf("expense %q: value: %w", r.Name, err)
	}
	freq, err := calendar.ParseUnit(r.Frequency)
	if err != nil {
		return nil, fmt.Errorf("expense %q: %w", r.Name, err)
	}
	return &Expense{Item: it, Value: value, Frequency: freq, From: r.From}, nil
}

// IncomeTax computes the household's tax liability from a bracket table.
type IncomeTax struct {
	Item
	Jurisdiction string
	Filing       tax.FilingStatus
}

func newIncomeTax(r Row) (*IncomeTax, error) {
	it, err := newItem(r, TypeIncomeTax)
	if err != nil {
		return nil, err
	}
	if r.State == "" {
		return nil, fmt.Errorf("incomeTax %q: state/jurisdiction is required", r.Name)
	}
	filing, err := tax.ParseFilingStatus(r.Filing)
	if err != nil {
		return nil, fmt.Errorf("incomeTax %q: %w", r.Name, err)
	}
	return &IncomeTax{Item: it, Jurisdiction: r.State, Filing: filing}, nil
}

// Text is an annotation row; it carries no simulated state.
type Text struct {
	Item
	Body string
}

func newText(r Row) (*Text, error) {
	it, err := newItem(r, TypeText)
	if err != nil {
		return nil, err
	}
	return &Text{Item: it, Body: r.Body}, nil
}

func monetaryFields(r Row) (value, rateMul decimal.Decimal, rt RateType, err error) {
	value, err = tagged.Money(r.Value)
	if err != nil {
		return value, rateMul, rt, fmt.Errorf("value: %w", err)
	}
	if r.Rate == nil {
		rateMul = decimal.NewFromInt(1)
	} else if rateMul, err = tagged.Rate(*r.Rate); err != nil {
		return value, rateMul, rt, fmt.Errorf("rate: %w", err)
	}
	rt, err = parseRateType(r.RateType)
	return value, rateMul, rt, err
}
