package sim

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/finsim/internal/calendar"
	"github.com/wealthpath/finsim/internal/model"
)

// Snapshot is the frozen state of a scenario at one simulated period: the
// same shape as the scenario, with every monetary item replaced by its
// stateful counterpart holding that period's computed values. Snapshots form
// an append-only sequence; each holds independent clones of the engine's
// live states and is never mutated after creation.
type Snapshot struct {
	Date     time.Time
	Step     calendar.Step
	Scenario *model.Scenario

	byID   map[string]*ItemState
	byType map[model.Type][]*ItemState
}

func newSnapshot(sc *model.Scenario, step calendar.Step, states []*ItemState) *Snapshot {
	snap := &Snapshot{
		Date:     step.Start,
		Step:     step,
		Scenario: sc,
		byID:     make(map[string]*ItemState, len(states)),
		byType:   make(map[model.Type][]*ItemState),
	}
	for _, st := range states {
		c := st.Clone()
		snap.byID[c.ID] = c
		snap.byType[c.Type] = append(snap.byType[c.Type], c)
	}
	return snap
}

// State returns the period state for an item id, or nil if the item was not
// live this period.
func (s *Snapshot) State(id string) *ItemState { return s.byID[id] }

// States returns the period states for one item type, in the scheduler's
// deterministic item order.
func (s *Snapshot) States(typ model.Type) []*ItemState { return s.byType[typ] }

// NetAssets is total asset value minus total liability balance.
func (s *Snapshot) NetAssets() decimal.Decimal {
	total := decimal.Zero
	for _, st := range s.byType[model.TypeAsset] {
		total = total.Add(st.Value)
	}
	for _, st := range s.byType[model.TypeLiability] {
		total = total.Sub(st.Value)
	}
	return total
}

// TotalExpenses is the running total paid across all expenses.
func (s *Snapshot) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, st := range s.byType[model.TypeExpense] {
		total = total.Add(st.PaidTotal)
	}
	return total
}

// TotalIncome is the income received this period across all income items.
func (s *Snapshot) TotalIncome() decimal.Decimal {
	total := decimal.Zero
	for _, st := range s.byType[model.TypeIncome] {
		total = total.Add(st.Received)
	}
	return total
}

// TotalRetirementIncome is the period income from items tagged retirement or
// socialSecurity.
func (s *Snapshot) TotalRetirementIncome() decimal.Decimal {
	total := decimal.Zero
	for _, st := range s.byType[model.TypeIncome] {
		base := st.Item.Base()
		if base.HasCategory("retirement") || base.HasCategory("socialSecurity") {
			total = total.Add(st.Received)
		}
	}
	return total
}

// TotalTax is the tax computed this period across all tax items.
func (s *Snapshot) TotalTax() decimal.Decimal {
	total := decimal.Zero
	for _, st := range s.byType[model.TypeIncomeTax] {
		total = total.Add(st.Tax)
	}
	return total
}
