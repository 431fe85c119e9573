package sim

import (
	"fmt"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/finsim/internal/calendar"
	"github.com/wealthpath/finsim/internal/model"
	"github.com/wealthpath/finsim/internal/tax"
)

// Engine drives scenarios through monthly periods. A single engine is
// reusable across runs; each run gets its own runtime and state map.
type Engine struct {
	Taxes *tax.Registry
	Log   Logger
}

// NewEngine returns an engine with the built-in tax tables and no-op logging.
func NewEngine() *Engine {
	return &Engine{Taxes: tax.NewRegistry(), Log: nopLogger{}}
}

// Result is the materialized output of one run.
type Result struct {
	Snapshots []*Snapshot
	Timeline  []Event
}

// Run simulates the scenario from start through end and materializes every
// snapshot plus the ordered timeline.
func (e *Engine) Run(sc *model.Scenario, start, end time.Time) (*Result, error) {
	rt := e.newRuntime(sc)
	res := &Result{}
	err := rt.run(start, end, func(s *Snapshot) bool {
		res.Snapshots = append(res.Snapshots, s)
		return true
	})
	if err != nil {
		return nil, err
	}
	res.Timeline = rt.Timeline.Drain()
	return res, nil
}

// Snapshots returns the lazy snapshot sequence for a run. The sequence is
// finite and restartable by re-invocation: each fresh call recomputes from
// the pre-roll start, never by resuming a half-consumed iterator.
func (e *Engine) Snapshots(sc *model.Scenario, start, end time.Time) iter.Seq2[*Snapshot, error] {
	return func(yield func(*Snapshot, error) bool) {
		rt := e.newRuntime(sc)
		err := rt.run(start, end, func(s *Snapshot) bool {
			return yield(s, nil)
		})
		if err != nil {
			yield(nil, err)
		}
	}
}

// itemRun tracks one logical item through a run: its temporal, the version
// currently in effect, the live stepper, and the lifecycle status.
type itemRun struct {
	id       string
	temporal *model.Temporal
	current  model.Entity
	stepper  Stepper
	state    *ItemState
	status   Status
}

// Runtime is the per-run context: the live state map (exclusively owned by
// the engine during the run), the event timeline, and the tax accumulators
// that flow from one period into the next.
type Runtime struct {
	Scenario *model.Scenario
	States   map[string]*ItemState
	Timeline *Timeline
	Taxes    *tax.Registry
	Log      Logger

	items []*itemRun

	// Income/deduction figures accumulate during a period and are read by
	// tax steppers in the following period.
	curIncome      map[string]decimal.Decimal
	lastIncome     map[string]decimal.Decimal
	curDeductible  decimal.Decimal
	lastDeductible decimal.Decimal
}

func (e *Engine) newRuntime(sc *model.Scenario) *Runtime {
	rt := &Runtime{
		Scenario:   sc,
		States:     make(map[string]*ItemState),
		Timeline:   NewTimeline(),
		Taxes:      e.Taxes,
		Log:        e.Log,
		curIncome:  make(map[string]decimal.Decimal),
		lastIncome: make(map[string]decimal.Decimal),
	}
	for _, t := range sc.Temporals() {
		if t.First().Base().Type == model.TypeText {
			continue // annotations carry no simulated state
		}
		rt.items = append(rt.items, &itemRun{id: t.ID(), temporal: t, status: StatusInit})
	}
	return rt
}

func (rt *Runtime) event(e Event) { rt.Timeline.Push(e) }

func (rt *Runtime) addIncome(category string, amount decimal.Decimal) {
	rt.curIncome[category] = rt.curIncome[category].Add(amount)
}

// filerAges returns the spouse ages for deduction schedules.
func (rt *Runtime) filerAges(d time.Time) []int {
	var ages []int
	if p := rt.Scenario.Spouse1; p != nil {
		ages = append(ages, ageYears(p.AgeAt(d)))
	}
	if p := rt.Scenario.Spouse2; p != nil {
		ages = append(ages, ageYears(p.AgeAt(d)))
	}
	return ages
}

// run executes the period loop. Periods before the requested start are
// computed silently for state warm-up (items beginning before the window
// still initialize correctly); snapshots are emitted from the requested
// start onward.
func (rt *Runtime) run(start, end time.Time, yield func(*Snapshot) bool) error {
	preroll := rt.Scenario.Range.Start
	if preroll.IsZero() || start.Before(preroll) {
		preroll = start
	}
	emitFrom, err := calendar.Truncate(start, calendar.Month)
	if err != nil {
		return err
	}

	for step := range calendar.Steps(preroll, end, calendar.Month, 1) {
		// 1. Advance every item round-robin.
		for _, ir := range rt.items {
			if err := rt.advance(ir, step); err != nil {
				return err
			}
		}
		// 2. Resolve expense payments against this period's updated states.
		if err := rt.payExpenses(step); err != nil {
			return err
		}
		// 3. Sweep unconsumed income into deposit targets.
		if err := rt.depositLeftovers(step); err != nil {
			return err
		}
		// 4. This period's figures become next period's tax inputs.
		rt.rotateTaxFigures()

		if !step.Start.Before(emitFrom) {
			if !yield(rt.snapshot(step)) {
				return nil
			}
		}
	}
	return nil
}

func (rt *Runtime) rotateTaxFigures() {
	rt.lastIncome = rt.curIncome
	rt.curIncome = make(map[string]decimal.Decimal)
	rt.lastDeductible = rt.curDeductible
	rt.curDeductible = decimal.Zero
}

// advance applies the item's state transitions for one period and, when
// active, resumes its stepper with the current state.
func (rt *Runtime) advance(ir *itemRun, step calendar.Step) error {
	if ir.status == StatusTerminated {
		return nil
	}
	date := step.Start
	cur := ir.temporal.OnDate(date)

	if cur == nil {
		switch ir.status {
		case StatusActive:
			// No active row-version remains: the item ended.
			rt.terminate(ir, date, ActionEnd)
		case StatusInit:
			// Versions exist but the item is already flagged ended before it
			// ever activated.
			if !ir.temporal.First().Base().StartDate().After(date) {
				ir.status = StatusTerminated
			}
		}
		return nil
	}

	if ir.status == StatusInit {
		stepper, err := newStepper(cur)
		if err != nil {
			return err
		}
		ir.stepper = stepper
		ir.current = cur
		ir.state = initialState(cur, step)
		ir.status = StatusActive
		base := cur.Base()
		rt.event(Event{Date: date, Action: ActionBegin, Type: base.Type, Name: base.Name})
	} else if cur != ir.current {
		// A later row-version took effect mid-timeline: discard the old
		// stepper and seed a fresh one, re-synchronized to the current step.
		// Running balances and lifetime totals carry over; parameters (rate,
		// amounts) come from the new version.
		ir.stepper.Close()
		stepper, err := newStepper(cur)
		if err != nil {
			return err
		}
		ir.stepper = stepper
		ir.current = cur
		base := cur.Base()
		rt.event(Event{Date: date, Action: ActionStep, Type: base.Type, Name: base.Name})
	}

	state, done, err := ir.stepper.Step(rt, step, ir.state)
	if err != nil {
		return err
	}
	if done {
		rt.terminate(ir, date, ActionTerminate)
		return nil
	}
	ir.state = state
	rt.States[ir.id] = state
	return nil
}

func (rt *Runtime) terminate(ir *itemRun, date time.Time, action Action) {
	if ir.stepper != nil {
		ir.stepper.Close()
	}
	var typ model.Type
	var name string
	if ir.current != nil {
		typ, name = ir.current.Base().Type, ir.current.Base().Name
	} else {
		typ, name = ir.temporal.First().Base().Type, ir.temporal.First().Base().Name
	}
	rt.event(Event{Date: date, Action: action, Type: typ, Name: name})
	delete(rt.States, ir.id)
	ir.state = nil
	ir.status = StatusTerminated
}

// initialState seeds an item's first state from its active version.
func initialState(ent model.Entity, step calendar.Step) *ItemState {
	base := ent.Base()
	s := &ItemState{
		Date:   step.Start,
		Step:   step,
		ID:     ent.ID(),
		Name:   base.Name,
		Type:   base.Type,
		Item:   ent,
		Status: StatusActive,
	}
	switch e := ent.(type) {
	case *model.Asset:
		s.Value = e.Value
	case *model.Liability:
		s.Value = e.Value
	case *model.Person:
		s.Age = e.AgeAt(step.Start)
	}
	return s
}

// payExpenses resolves every active expense's due amount against its funding
// source. A funding reference that no longer resolves is fatal; a shortfall
// is not — the unpaid remainder is a modeling outcome, not a bug.
func (rt *Runtime) payExpenses(step calendar.Step) error {
	for _, ir := range rt.items {
		if ir.status != StatusActive || ir.state == nil || ir.state.Type != model.TypeExpense {
			continue
		}
		exp, ok := ir.current.(*model.Expense)
		if !ok || !ir.state.Due.IsPositive() {
			continue
		}
		if exp.From == "" {
			continue // standalone expense, no cash routing to resolve
		}
		src, err := rt.Scenario.ResolveSource(exp.From)
		if err != nil {
			return fmt.Errorf("expense %q on %s: %w", exp.Name, step.Start.Format("2006-01-02"), err)
		}
		spec := &model.TransferSpec{Kind: model.SpecSource, Name: exp.From, ID: src.ID()}
		w, err := rt.Withdraw(ir.state.Due, spec, ir.id)
		if err != nil {
			return err
		}
		ir.state.Paid = w.Amount
		ir.state.PaidTotal = ir.state.PaidTotal.Add(w.Amount)
		rt.curDeductible = rt.curDeductible.Add(w.Deductible)
		if w.Amount.LessThan(ir.state.Due) {
			rt.Log.Warnf("expense %q on %s: due %s, funded %s",
				exp.Name, step.Start.Format("2006-01-02"),
				ir.state.Due.StringFixed(2), w.Amount.StringFixed(2))
		}
		if w.Amount.IsPositive() {
			rt.event(Event{Date: step.Start, Action: ActionPay, Type: model.TypeExpense, Name: exp.Name, Amount: w.Amount})
		}
	}
	return nil
}

// depositLeftovers sweeps each income's unconsumed period amount into its
// deposit target asset.
func (rt *Runtime) depositLeftovers(step calendar.Step) error {
	for _, ir := range rt.items {
		if ir.status != StatusActive || ir.state == nil || ir.state.Type != model.TypeIncome {
			continue
		}
		in, ok := ir.current.(*model.Income)
		if !ok || in.To == "" || !ir.state.Value.IsPositive() {
			continue
		}
		target := rt.Scenario.Lookup(model.TypeAsset, in.To)
		if target == nil {
			return fmt.Errorf("income %q on %s: no asset named %q to deposit into",
				in.Name, step.Start.Format("2006-01-02"), in.To)
		}
		tst := rt.States[target.ID()]
		if tst == nil {
			rt.Log.Debugf("income %q: deposit target %q not active, leftover dropped", in.Name, in.To)
			ir.state.Value = decimal.Zero
			continue
		}
		amount := ir.state.Value
		tst.Value = tst.Value.Add(amount)
		ir.state.Value = decimal.Zero
		rt.event(Event{Date: step.Start, Action: ActionDeposit, Type: model.TypeAsset, Name: target.Base().Name, Amount: amount})
	}
	return nil
}

// snapshot freezes the current live states as the record for this period.
func (rt *Runtime) snapshot(step calendar.Step) *Snapshot {
	states := make([]*ItemState, 0, len(rt.States))
	for _, ir := range rt.items {
		if ir.status == StatusActive && ir.state != nil {
			states = append(states, ir.state)
		}
	}
	return newSnapshot(rt.Scenario, step, states)
}
