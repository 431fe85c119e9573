package sim

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/finsim/internal/model"
	"github.com/wealthpath/finsim/internal/tagged"
)

// Withdrawal reports how a withdrawal request was actually satisfied: the
// total obtained, the per-source breakdown, and how the dollars classify for
// tax purposes.
type Withdrawal struct {
	Amount     decimal.Decimal
	Sources    map[string]decimal.Decimal
	Taxable    decimal.Decimal
	Deductible decimal.Decimal
}

func newWithdrawal() Withdrawal {
	return Withdrawal{Sources: make(map[string]decimal.Decimal)}
}

func (w *Withdrawal) merge(o Withdrawal) {
	w.Amount = w.Amount.Add(o.Amount)
	w.Taxable = w.Taxable.Add(o.Taxable)
	w.Deductible = w.Deductible.Add(o.Deductible)
	for id, amt := range o.Sources {
		w.Sources[id] = w.Sources[id].Add(amt)
	}
}

// Withdraw satisfies a withdrawal request against a bound routing spec by
// recursive descent. Under-funding is not an error: exhausted or not-yet-
// active sources contribute zero and the shortfall is reported upward through
// Amount. A spec leaf referencing an id with no item behind it aborts the
// run; that can only mean a model authoring defect.
func (rt *Runtime) Withdraw(amount decimal.Decimal, spec *model.TransferSpec, payer string) (Withdrawal, error) {
	if !amount.IsPositive() {
		return newWithdrawal(), nil
	}
	switch spec.Kind {
	case model.SpecSource:
		return rt.withdrawLeaf(amount, spec, payer)
	case model.SpecList:
		return rt.withdrawList(amount, spec.List, payer)
	case model.SpecWeighted:
		return rt.withdrawWeighted(amount, spec.Weighted, payer)
	}
	return Withdrawal{}, fmt.Errorf("payer %s: unknown spec kind %d", payer, spec.Kind)
}

func (rt *Runtime) withdrawLeaf(amount decimal.Decimal, spec *model.TransferSpec, payer string) (Withdrawal, error) {
	w := newWithdrawal()
	ent := rt.Scenario.Item(spec.ID)
	if ent == nil {
		return w, fmt.Errorf("payer %s: source %q (%s) does not exist in scenario %q",
			payer, spec.Name, spec.ID, rt.Scenario.Name)
	}

	// Indirection: a transfer source routes through its own spec.
	if t, ok := ent.(*model.Transfer); ok {
		sub, err := rt.Withdraw(amount, t.Spec, payer)
		if err != nil {
			return w, err
		}
		w.merge(sub)
		return w, nil
	}

	state := rt.States[spec.ID]
	if state == nil || state.Status != StatusActive {
		// Not yet started or already terminated: this slice of the request
		// simply goes unfulfilled.
		rt.Log.Debugf("withdraw: source %s has no current state, %s unfulfilled for %s",
			spec.ID, amount.StringFixed(2), payer)
		return w, nil
	}

	base := ent.Base()
	nontaxable := base.HasCategory("nontaxable")

	if base.Type == model.TypeLiability {
		// Drawing on a liability pushes the balance further into debt; the
		// period's interest is deductible sourcing when the debt is taxable.
		taken := tagged.Cents(amount)
		state.Value = state.Value.Add(taken)
		state.Used = state.Used.Add(taken)
		w.Amount = taken
		w.Sources[spec.ID] = taken
		if !nontaxable {
			w.Deductible = state.Interest
		}
		rt.event(Event{Date: state.Date, Action: ActionWithdraw, Type: base.Type, Name: base.Name, Amount: taken})
		return w, nil
	}

	taken := tagged.Cents(decimal.Min(amount, state.Value))
	if !taken.IsPositive() {
		return w, nil
	}
	state.Value = state.Value.Sub(taken)
	state.Used = state.Used.Add(taken)
	w.Amount = taken
	w.Sources[spec.ID] = taken
	if !nontaxable {
		w.Taxable = taken
		if base.Type == model.TypeAsset {
			// Asset draws are realized income this period; income sources
			// were already counted when received.
			rt.addIncome(assetTaxCategory(base), taken)
		}
	}
	rt.event(Event{Date: state.Date, Action: ActionWithdraw, Type: base.Type, Name: base.Name, Amount: taken})
	return w, nil
}

func assetTaxCategory(base *model.Item) string {
	if base.HasCategory("capitalGains") {
		return "capitalGains"
	}
	if base.HasCategory("retirement") {
		return "retirement"
	}
	return "ordinary"
}

// withdrawList tries sources in order, carrying the unmet remainder to the
// next source and stopping early once the request is satisfied.
func (rt *Runtime) withdrawList(amount decimal.Decimal, list []*model.TransferSpec, payer string) (Withdrawal, error) {
	w := newWithdrawal()
	remaining := amount
	for _, sub := range list {
		if !remaining.IsPositive() {
			break
		}
		got, err := rt.Withdraw(remaining, sub, payer)
		if err != nil {
			return w, err
		}
		w.merge(got)
		remaining = remaining.Sub(got.Amount)
	}
	return w, nil
}

// withdrawWeighted requests each entry's normalized share of the amount.
// A source's shortfall is deliberately not redistributed to its siblings:
// weights act as hard caps, unlike the cascading ordered list.
func (rt *Runtime) withdrawWeighted(amount decimal.Decimal, entries []model.WeightedSpec, payer string) (Withdrawal, error) {
	w := newWithdrawal()
	for _, entry := range entries {
		share := tagged.Cents(amount.Mul(entry.Weight))
		got, err := rt.Withdraw(share, entry.Spec, payer)
		if err != nil {
			return w, err
		}
		w.merge(got)
	}
	return w, nil
}
