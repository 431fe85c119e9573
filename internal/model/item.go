// Package model defines the simulated entities (persons, assets, liabilities,
// incomes, expenses, taxes, transfers), the Temporal index that resolves
// which row-version of an item is active on a given date, and the Scenario
// aggregate that ties them together.
package model

import (
	"fmt"
	"time"
)

// Type tags every simulated entity.
type Type string

const (
	TypePerson    Type = "person"
	TypeAsset     Type = "asset"
	TypeLiability Type = "liability"
	TypeIncome    Type = "income"
	TypeExpense   Type = "expense"
	TypeIncomeTax Type = "incomeTax"
	TypeTransfer  Type = "transfer"
	TypeText      Type = "text"
)

// ParseType resolves a row's declared type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypePerson, TypeAsset, TypeLiability, TypeIncome, TypeExpense,
		TypeIncomeTax, TypeTransfer, TypeText:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown item type %q", s)
}

// Item is the base of every simulated entity. An item is immutable after
// construction except for the late-bound temporal back-reference, which is
// settable exactly once.
type Item struct {
	Name       string
	Type       Type
	Start      time.Time
	End        bool // this row-version marks the logical item as ended
	Categories map[string]bool
	Scenarios  map[string]bool
	Sort       int

	scenario *Scenario
	temporal *Temporal
}

// ID is the stable identity of an item within a scenario: type plus name.
// Multiple row-versions of the same logical item share an ID.
func (it *Item) ID() string { return string(it.Type) + ":" + it.Name }

// Base returns the embedded item; concrete types satisfy Entity through it.
func (it *Item) Base() *Item { return it }

// StartDate returns the date this row-version takes effect.
func (it *Item) StartDate() time.Time { return it.Start }

// Ended reports whether this version flags the logical item as ended.
func (it *Item) Ended() bool { return it.End }

// HasCategory reports membership in a category tag.
func (it *Item) HasCategory(c string) bool { return it.Categories[c] }

// InScenario reports whether the item participates in the named scenario.
// An item with no scenario memberships participates in all of them.
func (it *Item) InScenario(name string) bool {
	if len(it.Scenarios) == 0 {
		return true
	}
	return it.Scenarios[name]
}

// Scenario returns the owning scenario back-reference.
func (it *Item) Scenario() *Scenario { return it.scenario }

// Temporal returns the version index this item belongs to. Accessing it
// before binding is a programming error.
func (it *Item) Temporal() *Temporal {
	if it.temporal == nil {
		panic(fmt.Sprintf("item %s: temporal back-reference not set", it.ID()))
	}
	return it.temporal
}

// SetTemporal binds the temporal back-reference. The reference transitions
// unset -> set exactly once; resetting it is a contract violation.
func (it *Item) SetTemporal(t *Temporal) {
	if it.temporal != nil {
		panic(fmt.Sprintf("item %s: temporal back-reference already set", it.ID()))
	}
	it.temporal = t
}

func (it *Item) setScenario(sc *Scenario) {
	if it.scenario != nil && it.scenario != sc {
		panic(fmt.Sprintf("item %s: scenario back-reference already set", it.ID()))
	}
	it.scenario = sc
}

// Entity is any simulated item, addressed through its base.
type Entity interface {
	ID() string
	Base() *Item
}

func newItem(r Row, typ Type) (Item, error) {
	if r.Name == "" {
		return Item{}, fmt.Errorf("%s row: name is required", typ)
	}
	if r.Start.IsZero() {
		return Item{}, fmt.Errorf("%s %q: start date is required", typ, r.Name)
	}
	it := Item{
		Name:       r.Name,
		Type:       typ,
		Start:      r.Start,
		End:        r.End,
		Categories: toSet(r.Categories),
		Scenarios:  toSet(r.Scenarios),
		Sort:       r.Sort,
	}
	return it, nil
}

func toSet(ss []string) map[string]bool {
	if len(ss) == 0 {
		return nil
	}
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		if s != "" {
			m[s] = true
		}
	}
	return m
}
