package model

import (
	"fmt"
	"sort"
	"time"

	"github.com/wealthpath/finsim/internal/calendar"
	"github.com/wealthpath/finsim/internal/tagged"
)

// Scenario is the aggregate root: the household members, every other item
// grouped by type and indexed by name, the temporal index per item id, and
// the aggregate data range the simulation covers.
type Scenario struct {
	Name    string
	Spouse1 *Person
	Spouse2 *Person

	Persons     []*Person
	Assets      []*Asset
	Liabilities []*Liability
	Incomes     []*Income
	Expenses    []*Expense
	Taxes       []*IncomeTax
	Transfers   []*Transfer
	Texts       []*Text

	Range calendar.Period

	temporals map[string]*Temporal
	byName    map[Type]map[string]Entity // name -> first version
}

// sourceOrder is the resolution order for bare source names in transfer
// specs and expense funding references.
var sourceOrder = []Type{TypeIncome, TypeAsset, TypeLiability, TypeTransfer}

func newScenario(name string) *Scenario {
	return &Scenario{
		Name:      name,
		temporals: make(map[string]*Temporal),
		byName:    make(map[Type]map[string]Entity),
	}
}

// Temporal returns the version index for an item id, or nil.
func (sc *Scenario) Temporal(id string) *Temporal { return sc.temporals[id] }

// Temporals returns every temporal in deterministic (type, sort, name)
// order — the scheduler's registration order.
func (sc *Scenario) Temporals() []*Temporal {
	ids := make([]string, 0, len(sc.temporals))
	for id := range sc.temporals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := sc.temporals[ids[i]].First().Base(), sc.temporals[ids[j]].First().Base()
		if a.Type != b.Type {
			return typeRank(a.Type) < typeRank(b.Type)
		}
		if a.Sort != b.Sort {
			return a.Sort < b.Sort
		}
		return a.Name < b.Name
	})
	out := make([]*Temporal, len(ids))
	for i, id := range ids {
		out[i] = sc.temporals[id]
	}
	return out
}

// typeRank fixes the round-robin order items advance in within a period.
func typeRank(t Type) int {
	switch t {
	case TypePerson:
		return 0
	case TypeIncome:
		return 1
	case TypeAsset:
		return 2
	case TypeLiability:
		return 3
	case TypeExpense:
		return 4
	case TypeTransfer:
		return 5
	case TypeIncomeTax:
		return 6
	}
	return 7
}

// Item returns the first version registered under an id, or nil.
func (sc *Scenario) Item(id string) Entity {
	t := sc.temporals[id]
	if t == nil {
		return nil
	}
	return t.First()
}

// Lookup finds an item by type and name, or nil.
func (sc *Scenario) Lookup(typ Type, name string) Entity {
	return sc.byName[typ][name]
}

// ResolveSource resolves a bare source name to an item, searching incomes,
// assets, liabilities, then transfers. The "@name" form forces resolution to
// a transfer (the indirection marker). An unresolvable name is a
// configuration error.
func (sc *Scenario) ResolveSource(name string) (Entity, error) {
	if len(name) > 1 && name[0] == '@' {
		if e := sc.Lookup(TypeTransfer, name[1:]); e != nil {
			return e, nil
		}
		return nil, fmt.Errorf("scenario %q: no transfer named %q", sc.Name, name[1:])
	}
	for _, typ := range sourceOrder {
		if e := sc.byName[typ][name]; e != nil {
			return e, nil
		}
	}
	return nil, fmt.Errorf("scenario %q: no income, asset, liability or transfer named %q", sc.Name, name)
}

func (sc *Scenario) register(versions []Entity) error {
	if len(versions) == 0 {
		return nil
	}
	base := versions[0].Base()
	id := versions[0].ID()
	if _, exists := sc.temporals[id]; exists {
		return fmt.Errorf("scenario %q: duplicate item id %q", sc.Name, id)
	}
	temporal := NewTemporal(id, versions)
	sc.temporals[id] = temporal
	for _, v := range versions {
		v.Base().setScenario(sc)
		v.Base().SetTemporal(temporal)
	}
	if sc.byName[base.Type] == nil {
		sc.byName[base.Type] = make(map[string]Entity)
	}
	sc.byName[base.Type][base.Name] = temporal.First()
	return nil
}

// Construct builds all items of one type from their rows, groups same-named
// rows into a Temporal, back-links each item, and registers the group with
// the scenario. Rows not participating in the scenario are skipped.
func Construct(rows []Row, typ Type, sc *Scenario, endYear int) error {
	groups := make(map[string][]Entity)
	var names []string
	for i, r := range rows {
		if r.Type != string(typ) || !rowInScenario(r, sc.Name) {
			continue
		}
		ent, err := buildItem(r, typ)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if _, seen := groups[ent.Base().Name]; !seen {
			names = append(names, ent.Base().Name)
		}
		groups[ent.Base().Name] = append(groups[ent.Base().Name], ent)
	}
	for _, name := range names {
		versions := groups[name]
		if err := sc.register(versions); err != nil {
			return err
		}
		sc.add(versions)
	}
	return nil
}

func rowInScenario(r Row, scenario string) bool {
	if len(r.Scenarios) == 0 {
		return true
	}
	for _, s := range r.Scenarios {
		if s == scenario {
			return true
		}
	}
	return false
}

func buildItem(r Row, typ Type) (Entity, error) {
	switch typ {
	case TypePerson:
		return newPerson(r)
	case TypeAsset:
		return newAsset(r)
	case TypeLiability:
		return newLiability(r)
	case TypeIncome:
		return newIncome(r)
	case TypeExpense:
		return newExpense(r)
	case TypeIncomeTax:
		return newIncomeTax(r)
	case TypeTransfer:
		return newTransfer(r)
	case TypeText:
		return newText(r)
	}
	return nil, fmt.Errorf("unknown item type %q", typ)
}

func (sc *Scenario) add(versions []Entity) {
	for _, v := range versions {
		switch e := v.(type) {
		case *Person:
			sc.Persons = append(sc.Persons, e)
		case *Asset:
			sc.Assets = append(sc.Assets, e)
		case *Liability:
			sc.Liabilities = append(sc.Liabilities, e)
		case *Income:
			sc.Incomes = append(sc.Incomes, e)
		case *Expense:
			sc.Expenses = append(sc.Expenses, e)
		case *IncomeTax:
			sc.Taxes = append(sc.Taxes, e)
		case *Transfer:
			sc.Transfers = append(sc.Transfers, e)
		case *Text:
			sc.Texts = append(sc.Texts, e)
		}
	}
}

// BuildScenario constructs a complete scenario from validated rows: items of
// every type, the spouse slots, the data range through the end of endYear,
// and the one-time bind of every transfer spec.
func BuildScenario(name string, rows []Row, endYear int) (*Scenario, error) {
	if _, err := tagged.NewYear(endYear); err != nil {
		return nil, fmt.Errorf("scenario %q: endYear: %w", name, err)
	}
	sc := newScenario(name)
	for _, typ := range []Type{
		TypePerson, TypeIncome, TypeAsset, TypeLiability,
		TypeExpense, TypeTransfer, TypeIncomeTax, TypeText,
	} {
		if err := Construct(rows, typ, sc, endYear); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
	}

	if len(sc.Persons) == 0 {
		return nil, fmt.Errorf("scenario %q: at least one person (spouse1) is required", name)
	}
	sc.Spouse1 = sc.Persons[0]
	if len(sc.Persons) > 1 {
		sc.Spouse2 = sc.Persons[1]
	}

	for _, t := range sc.Transfers {
		if err := t.Bind(sc); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
	}
	// Validate expense funding references up front; a dangling reference at
	// payment time would abort the run anyway.
	for _, e := range sc.Expenses {
		if e.From == "" {
			continue
		}
		if _, err := sc.ResolveSource(e.From); err != nil {
			return nil, fmt.Errorf("scenario %q: expense %q: %w", name, e.Name, err)
		}
	}
	// A liability's repaying expense carries the payment's cash side, so the
	// link must resolve to an actual expense.
	for _, l := range sc.Liabilities {
		if l.Repaid == "" {
			continue
		}
		if sc.Lookup(TypeExpense, l.Repaid) == nil {
			return nil, fmt.Errorf("scenario %q: liability %q: no expense named %q repays it", name, l.Name, l.Repaid)
		}
	}

	sc.Range = calendar.Period{
		Start: sc.earliestStart(),
		End:   time.Date(endYear+1, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	return sc, nil
}

func (sc *Scenario) earliestStart() time.Time {
	var earliest time.Time
	for _, t := range sc.temporals {
		first := t.First().Base().StartDate()
		if earliest.IsZero() || first.Before(earliest) {
			earliest = first
		}
	}
	return earliest
}
