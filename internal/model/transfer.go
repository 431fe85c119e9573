package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// SpecKind discriminates the three routing spec shapes.
type SpecKind int

const (
	SpecSource   SpecKind = iota // single source reference
	SpecList                     // ordered list, cascade on shortfall
	SpecWeighted                 // weighted map, proportional shares
)

// TransferSpec is a recursively-structured routing rule describing how a
// withdrawal request is satisfied. Leaves reference items by name at parse
// time and by resolved id after the one-time Bind step.
type TransferSpec struct {
	Kind     SpecKind
	Name     string // leaf: source name as written ("@name" forces a transfer)
	ID       string // leaf: bound item id
	List     []*TransferSpec
	Weighted []WeightedSpec

	bound bool
}

// WeightedSpec pairs a sub-spec with its weight. Weights are normalized at
// bind time so they always sum to 1 regardless of the scale the model author
// used.
type WeightedSpec struct {
	Spec   *TransferSpec
	Weight decimal.Decimal
}

// Transfer holds a routing spec under an item identity so expenses can name
// it as their funding source and other specs can reference it indirectly.
type Transfer struct {
	Item
	Spec *TransferSpec
	raw  string
}

func newTransfer(r Row) (*Transfer, error) {
	it, err := newItem(r, TypeTransfer)
	if err != nil {
		return nil, err
	}
	spec, err := ParseSpec(r.Spec)
	if err != nil {
		return nil, fmt.Errorf("transfer %q: %w", r.Name, err)
	}
	return &Transfer{Item: it, Spec: spec, raw: r.Spec}, nil
}

// curlyQuotes maps the typographic quotes spreadsheet tools substitute into
// routing specs back to plain JSON quotes.
var curlyQuotes = strings.NewReplacer(
	"“", `"`, "”", `"`,
	"‘", `'`, "’", `'`,
)

// ParseSpec parses a routing spec. A bare name (no JSON structure) is a
// single source reference; a JSON array is an ordered list; a JSON object is
// a weighted map of source name to raw weight. Malformed JSON is a fatal
// construction error.
func ParseSpec(raw string) (*TransferSpec, error) {
	s := strings.TrimSpace(curlyQuotes.Replace(raw))
	if s == "" {
		return nil, fmt.Errorf("empty transfer spec")
	}
	if !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, `"`) {
		return &TransferSpec{Kind: SpecSource, Name: s}, nil
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("invalid transfer spec %q: %w", raw, err)
	}
	return specFromValue(v)
}

func specFromValue(v any) (*TransferSpec, error) {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, fmt.Errorf("empty source reference")
		}
		return &TransferSpec{Kind: SpecSource, Name: strings.TrimSpace(val)}, nil
	case []any:
		if len(val) == 0 {
			return nil, fmt.Errorf("empty source list")
		}
		spec := &TransferSpec{Kind: SpecList}
		for _, elem := range val {
			sub, err := specFromValue(elem)
			if err != nil {
				return nil, err
			}
			spec.List = append(spec.List, sub)
		}
		return spec, nil
	case map[string]any:
		if len(val) == 0 {
			return nil, fmt.Errorf("empty weighted map")
		}
		// Deterministic entry order regardless of map iteration.
		names := make([]string, 0, len(val))
		for name := range val {
			names = append(names, name)
		}
		sort.Strings(names)
		spec := &TransferSpec{Kind: SpecWeighted}
		for _, name := range names {
			w, ok := val[name].(float64)
			if !ok || w <= 0 {
				return nil, fmt.Errorf("weight for %q must be a positive number, got %v", name, val[name])
			}
			spec.Weighted = append(spec.Weighted, WeightedSpec{
				Spec:   &TransferSpec{Kind: SpecSource, Name: name},
				Weight: decimal.NewFromFloat(w),
			})
		}
		return spec, nil
	}
	return nil, fmt.Errorf("unsupported spec value %v", v)
}

// Bind resolves every leaf name against the scenario's item index and
// normalizes weighted entries so the weights sum to 1. Binding is one-time;
// a reference that does not resolve fails with the owning transfer's name.
func (t *Transfer) Bind(sc *Scenario) error {
	if err := t.Spec.bind(sc); err != nil {
		return fmt.Errorf("transfer %q: %w", t.Name, err)
	}
	return nil
}

func (s *TransferSpec) bind(sc *Scenario) error {
	if s.bound {
		return nil
	}
	switch s.Kind {
	case SpecSource:
		ent, err := sc.ResolveSource(s.Name)
		if err != nil {
			return err
		}
		s.ID = ent.ID()
	case SpecList:
		for _, sub := range s.List {
			if err := sub.bind(sc); err != nil {
				return err
			}
		}
	case SpecWeighted:
		total := decimal.Zero
		for _, w := range s.Weighted {
			total = total.Add(w.Weight)
		}
		if !total.IsPositive() {
			return fmt.Errorf("weighted spec has no positive weights")
		}
		for i := range s.Weighted {
			s.Weighted[i].Weight = s.Weighted[i].Weight.Div(total)
			if err := s.Weighted[i].Spec.bind(sc); err != nil {
				return err
			}
		}
	}
	s.bound = true
	return nil
}
