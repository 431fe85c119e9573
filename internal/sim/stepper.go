package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/finsim/internal/actuary"
	"github.com/wealthpath/finsim/internal/calendar"
	"github.com/wealthpath/finsim/internal/model"
	"github.com/wealthpath/finsim/internal/tagged"
	"github.com/wealthpath/finsim/internal/tax"
)

// Stepper advances one item by exactly one period per call. It receives the
// state it previously yielded and returns the state for the new period, or
// done once the item has nothing further to simulate. Skipping periods is
// illegal; the scheduler guarantees one call per period in order.
type Stepper interface {
	Step(rt *Runtime, step calendar.Step, prev *ItemState) (next *ItemState, done bool, err error)
	// Close finalizes the stepper. Called on termination and on a mid-run
	// version swap before a fresh stepper is seeded.
	Close()
}

// newStepper creates the stepper for an item version.
func newStepper(ent model.Entity) (Stepper, error) {
	switch e := ent.(type) {
	case *model.Person:
		return &personStepper{person: e}, nil
	case *model.Asset:
		return &assetStepper{asset: e}, nil
	case *model.Liability:
		return &liabilityStepper{liability: e}, nil
	case *model.Income:
		return &incomeStepper{income: e}, nil
	case *model.Expense:
		return &expenseStepper{expense: e}, nil
	case *model.IncomeTax:
		return &taxStepper{item: e}, nil
	case *model.Transfer:
		return &transferStepper{transfer: e}, nil
	}
	return nil, fmt.Errorf("item %s: no stepper for type %s", ent.ID(), ent.Base().Type)
}

// next carries identity and period bookkeeping from the previous state into
// the new period's state.
func next(prev *ItemState, ent model.Entity, step calendar.Step) *ItemState {
	s := prev.Clone()
	s.Date = step.Start
	s.Step = step
	s.Item = ent
	s.Status = StatusActive
	return s
}

// personStepper advances age and survival probability, terminating at the
// end-of-life sentinel.
type personStepper struct {
	person *model.Person
	series []actuary.SurvivalPoint
	baseN  int
}

func (ps *personStepper) Step(rt *Runtime, step calendar.Step, prev *ItemState) (*ItemState, bool, error) {
	if ps.series == nil {
		ps.baseN = step.N
		periods := (actuary.MaxAge(ps.person.Sex)+2)*12 - int(ps.person.AgeAt(step.Start)*12)
		if periods < 1 {
			periods = 1
		}
		ps.series = ps.person.SurvivalSeries(step.Start, periods)
	}
	idx := step.N - ps.baseN
	if idx >= len(ps.series) {
		return nil, true, nil
	}
	pt := ps.series[idx]
	if pt.Done() {
		return nil, true, nil
	}
	s := next(prev, ps.person, step)
	prevAge := s.Age
	s.Age = ps.person.AgeAt(step.Start)
	s.Survival = pt
	if int(s.Age) > int(prevAge) && prevAge > 0 {
		rt.event(Event{Date: step.Start, Action: ActionAge, Type: model.TypePerson, Name: ps.person.Name,
			Amount: decimal.NewFromInt(int64(s.Age))})
	}
	return s, false, nil
}

func (ps *personStepper) Close() {}

// assetStepper applies periodic growth, rounding interest to the cent each
// period so drift cannot accumulate.
type assetStepper struct {
	asset *model.Asset
}

func (as *assetStepper) Step(rt *Runtime, step calendar.Step, prev *ItemState) (*ItemState, bool, error) {
	s := next(prev, as.asset, step)
	r := model.PeriodRate(as.asset.Rate, as.asset.RateType, 12)
	interest := tagged.Cents(s.Value.Mul(r.Sub(decimal.NewFromInt(1))))
	s.Interest = interest
	s.Value = s.Value.Add(interest)
	if !interest.IsZero() {
		rt.event(Event{Date: step.Start, Action: ActionInterest, Type: model.TypeAsset, Name: as.asset.Name, Amount: interest})
	}
	return s, false, nil
}

func (as *assetStepper) Close() {}

// liabilityStepper accrues interest and applies the scheduled payment. The
// cash side of the payment is carried by the expense that repays the
// liability; here only the balance moves.
type liabilityStepper struct {
	liability *model.Liability
}

func (ls *liabilityStepper) Step(rt *Runtime, step calendar.Step, prev *ItemState) (*ItemState, bool, error) {
	s := next(prev, ls.liability, step)
	r := model.PeriodRate(ls.liability.Rate, ls.liability.RateType, 12)
	interest := tagged.Cents(s.Value.Mul(r.Sub(decimal.NewFromInt(1))))
	s.Interest = interest
	s.Value = s.Value.Add(interest)
	if !interest.IsZero() {
		rt.event(Event{Date: step.Start, Action: ActionInterest, Type: model.TypeLiability, Name: ls.liability.Name, Amount: interest})
	}
	if ls.liability.Payment.IsPositive() && s.Value.IsPositive() {
		payment := decimal.Min(ls.liability.Payment, s.Value)
		s.Value = s.Value.Sub(payment)
		rt.event(Event{Date: step.Start, Action: ActionPay, Type: model.TypeLiability, Name: ls.liability.Name, Amount: payment})
	}
	return s, false, nil
}

func (ls *liabilityStepper) Close() {}

// monthlyAmount pro-rates a per-cadence amount onto the monthly grid.
func monthlyAmount(value decimal.Decimal, unit calendar.Unit) decimal.Decimal {
	perYear := decimal.NewFromInt(int64(unit.PerYear()))
	return tagged.Cents(value.Mul(perYear).Div(decimal.NewFromInt(12)))
}

// incomeStepper makes the period's amount available and records it as
// received income for the tax accumulators. Availability does not carry
// across periods; the lifetime used total does.
type incomeStepper struct {
	income *model.Income
}

func (is *incomeStepper) Step(rt *Runtime, step calendar.Step, prev *ItemState) (*ItemState, bool, error) {
	s := next(prev, is.income, step)
	amount := monthlyAmount(is.income.Value, is.income.Frequency)
	s.Value = amount
	s.Received = amount
	if amount.IsPositive() {
		rt.event(Event{Date: step.Start, Action: ActionReceive, Type: model.TypeIncome, Name: is.income.Name, Amount: amount})
		rt.addIncome(is.income.TaxCategory(), amount)
	}
	return s, false, nil
}

func (is *incomeStepper) Close() {}

// expenseStepper computes the amount due this period, pro-rated from the
// expense's payment cadence. Payment itself happens in the scheduler's
// resolution pass after every item has stepped.
type expenseStepper struct {
	expense *model.Expense
}

func (es *expenseStepper) Step(rt *Runtime, step calendar.Step, prev *ItemState) (*ItemState, bool, error) {
	s := next(prev, es.expense, step)
	s.Due = monthlyAmount(es.expense.Value, es.expense.Frequency)
	s.Paid = decimal.Zero
	return s, false, nil
}

func (es *expenseStepper) Close() {}

// transferStepper keeps a transfer's state record current; the spec tree it
// carries is exercised by withdrawal resolution, not by stepping.
type transferStepper struct {
	transfer *model.Transfer
}

func (ts *transferStepper) Step(rt *Runtime, step calendar.Step, prev *ItemState) (*ItemState, bool, error) {
	return next(prev, ts.transfer, step), false, nil
}

func (ts *transferStepper) Close() {}

// taxStepper consumes the previous period's income and deduction figures and
// computes the period's tax from the bracket table. A missing table is fatal:
// defaulting would silently misstate the household's tax bill.
type taxStepper struct {
	item *model.IncomeTax
}

func (ts *taxStepper) Step(rt *Runtime, step calendar.Step, prev *ItemState) (*ItemState, bool, error) {
	s := next(prev, ts.item, step)
	if step.Start.Month() == time.January {
		s.TaxYTD = decimal.Zero
	}

	table, err := rt.Taxes.Lookup(ts.item.Jurisdiction, step.Start.Year())
	if err != nil {
		return nil, false, fmt.Errorf("incomeTax %q on %s: %w", ts.item.Name, step.Start.Format("2006-01-02"), err)
	}

	// Annualize the period figures, tax at the annual schedule, then take
	// the period's share.
	annual := make(map[string]decimal.Decimal, len(rt.lastIncome))
	for category, amount := range rt.lastIncome {
		annual[category] = amount.Mul(decimal.NewFromInt(12))
	}
	res := table.Calculate(tax.Input{
		Income:     annual,
		Deductions: rt.lastDeductible.Mul(decimal.NewFromInt(12)),
		Status:     ts.item.Filing,
		Ages:       rt.filerAges(step.Start),
	})
	s.Taxable = tagged.Cents(res.AGI.Div(decimal.NewFromInt(12)))
	s.Tax = tagged.Cents(res.Tax.Div(decimal.NewFromInt(12)))
	s.TaxYTD = s.TaxYTD.Add(s.Tax)
	s.Value = s.Tax
	return s, false, nil
}

func (ts *taxStepper) Close() {}

// ageYears truncates a fractional age for deduction schedules.
func ageYears(age float64) int { return int(math.Floor(age)) }
