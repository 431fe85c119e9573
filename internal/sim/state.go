// Package sim is the simulation core: the scheduler that advances every item
// through monthly periods via per-item steppers, the transfer-resolution
// algorithm satisfying withdrawal requests across routed sources, the ordered
// event timeline, and the per-period snapshots.
package sim

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/finsim/internal/actuary"
	"github.com/wealthpath/finsim/internal/calendar"
	"github.com/wealthpath/finsim/internal/model"
)

// Status is the lifecycle position of an item within a run.
type Status int

const (
	StatusInit       Status = iota // registered, start date not yet reached
	StatusActive                   // stepper resumed every period
	StatusTerminated               // stepper done or no active row-version
)

func (s Status) String() string {
	switch s {
	case StatusInit:
		return "init"
	case StatusActive:
		return "active"
	case StatusTerminated:
		return "terminated"
	}
	return "unknown"
}

// ItemState is one item's computed state for one period. The engine's live
// state map owns these exclusively during a run; snapshots receive clones, so
// a historical snapshot is never touched by later periods.
type ItemState struct {
	Date   time.Time
	Step   calendar.Step
	ID     string
	Name   string
	Type   model.Type
	Item   model.Entity
	Status Status

	// Balance items and sources.
	Value    decimal.Decimal // current balance or period availability
	Used     decimal.Decimal // lifetime total withdrawn from this source
	Interest decimal.Decimal // interest computed this period
	Received decimal.Decimal // income made available this period

	// Expenses.
	Due       decimal.Decimal // amount due this period
	Paid      decimal.Decimal // amount actually paid this period
	PaidTotal decimal.Decimal // running payment total

	// Persons.
	Age      float64
	Survival actuary.SurvivalPoint

	// Taxes.
	Tax     decimal.Decimal // tax computed this period
	TaxYTD  decimal.Decimal // calendar-year accumulation
	Taxable decimal.Decimal // taxable income figure the tax was computed from
}

// Clone returns an independent copy for inclusion in a snapshot.
func (s *ItemState) Clone() *ItemState {
	c := *s
	return &c
}

// Logger is the minimal logging surface the engine needs. The CLI adapts the
// standard log package to it; tests leave it at the no-op default.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
