package sim

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/finsim/internal/model"
)

// Action names a significant transition recorded on the timeline.
type Action string

const (
	ActionBegin     Action = "begin"
	ActionStep      Action = "step" // version swap mid-timeline
	ActionInterest  Action = "interest"
	ActionReceive   Action = "receive"
	ActionWithdraw  Action = "withdraw"
	ActionDeposit   Action = "deposit"
	ActionPay       Action = "pay"
	ActionEnd       Action = "end"
	ActionAge       Action = "age"
	ActionTerminate Action = "terminate"
)

// actionRank fixes the tie-break order for same-day events.
var actionRank = map[Action]int{
	ActionBegin:     0,
	ActionStep:      1,
	ActionInterest:  2,
	ActionReceive:   3,
	ActionWithdraw:  4,
	ActionDeposit:   5,
	ActionPay:       6,
	ActionEnd:       7,
	ActionAge:       8,
	ActionTerminate: 9,
}

// Event is one ordered timeline entry.
type Event struct {
	Date   time.Time
	Action Action
	Type   model.Type
	Name   string
	Amount decimal.Decimal
	Note   string

	seq int // insertion order, final tie-break for identical keys
}

func (e Event) String() string {
	if e.Amount.IsZero() {
		return fmt.Sprintf("%s %-9s %s %q", e.Date.Format("2006-01-02"), e.Action, e.Type, e.Name)
	}
	return fmt.Sprintf("%s %-9s %s %q %s", e.Date.Format("2006-01-02"), e.Action, e.Type, e.Name, e.Amount.StringFixed(2))
}

// before is the composite ordering: date, then action priority, then item
// type, then item name. Deterministic for any set of same-day events.
func (e Event) before(o Event) bool {
	if !e.Date.Equal(o.Date) {
		return e.Date.Before(o.Date)
	}
	if actionRank[e.Action] != actionRank[o.Action] {
		return actionRank[e.Action] < actionRank[o.Action]
	}
	if e.Type != o.Type {
		return e.Type < o.Type
	}
	if e.Name != o.Name {
		return e.Name < o.Name
	}
	return e.seq < o.seq
}

// Timeline is the globally ordered event log for a run, held as a priority
// heap keyed by the composite sort key.
type Timeline struct {
	h   eventHeap
	seq int
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline { return &Timeline{} }

// Push records an event.
func (t *Timeline) Push(e Event) {
	e.seq = t.seq
	t.seq++
	heap.Push(&t.h, e)
}

// Len reports the number of recorded events.
func (t *Timeline) Len() int { return len(t.h) }

// Drain removes and returns every event in order. The timeline is empty
// afterwards; the engine calls this once at the end of a run.
func (t *Timeline) Drain() []Event {
	out := make([]Event, 0, len(t.h))
	for t.h.Len() > 0 {
		out = append(out, heap.Pop(&t.h).(Event))
	}
	return out
}

type eventHeap []Event

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return h[i].before(h[j]) }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)         { *h = append(*h, x.(Event)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
