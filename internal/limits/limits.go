// Package limits implements the per-session stop-condition state machine.
// The tracker is evaluated once before the first bet and once per completed
// bet; any absent limit is satisfied-never.
package limits

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// Snapshot is the engine state a single evaluation sees.
type Snapshot struct {
	Bets       int64
	LossStreak int64
	Balance    decimal.Decimal
	Now        time.Time
}

// Tracker evaluates the session's stop conditions in a fixed priority order.
// When several conditions trip on the same bet, the first match is the one
// surfaced in the summary.
type Tracker struct {
	limits    domain.SessionLimits
	start     decimal.Decimal
	startedAt time.Time

	// stopRequested is the external cooperative stop signal, checked first.
	stopRequested func() bool
}

// NewTracker creates a tracker for one session. stopRequested may be nil.
func NewTracker(l domain.SessionLimits, startBalance decimal.Decimal, startedAt time.Time, stopRequested func() bool) *Tracker {
	return &Tracker{
		limits:        l,
		start:         startBalance,
		startedAt:     startedAt,
		stopRequested: stopRequested,
	}
}

// Evaluate decides whether the session must halt. Priority order:
// stopped, max_duration, max_bets, max_losses, stop_loss, take_profit.
func (t *Tracker) Evaluate(s Snapshot) (domain.StopReason, bool) {
	if t.stopRequested != nil && t.stopRequested() {
		return domain.StopReasonStopped, true
	}
	if t.limits.MaxRuntime != nil && s.Now.Sub(t.startedAt) >= *t.limits.MaxRuntime {
		return domain.StopReasonMaxDuration, true
	}
	if t.limits.MaxBets != nil && s.Bets >= *t.limits.MaxBets {
		return domain.StopReasonMaxBets, true
	}
	if t.limits.MaxLosses != nil && s.LossStreak >= *t.limits.MaxLosses {
		return domain.StopReasonMaxLosses, true
	}

	if t.start.IsPositive() {
		change := s.Balance.Sub(t.start).Div(t.start)
		if t.limits.StopLoss != nil && change.LessThanOrEqual(*t.limits.StopLoss) {
			return domain.StopReasonStopLoss, true
		}
		if t.limits.TakeProfit != nil && change.GreaterThanOrEqual(*t.limits.TakeProfit) {
			return domain.StopReasonTakeProfit, true
		}
	}

	return "", false
}

// ClampStake applies the optional stake cap. Capping is silent: the clamped
// amount is what gets logged and executed.
func (t *Tracker) ClampStake(amount decimal.Decimal) decimal.Decimal {
	if t.limits.MaxBet != nil && amount.GreaterThan(*t.limits.MaxBet) {
		return *t.limits.MaxBet
	}
	return amount
}
