package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StopReason enumerates why a session's control loop exited. Every session
// ends with exactly one of these; none of them is an error.
type StopReason string

const (
	StopReasonStopped         StopReason = "stopped"
	StopReasonMaxDuration     StopReason = "max_duration"
	StopReasonMaxBets         StopReason = "max_bets"
	StopReasonMaxLosses       StopReason = "max_losses"
	StopReasonStopLoss        StopReason = "stop_loss"
	StopReasonTakeProfit      StopReason = "take_profit"
	StopReasonStrategyStopped StopReason = "strategy_stopped"
	StopReasonCancelled       StopReason = "cancelled"
	StopReasonError           StopReason = "error"
)

// SessionLimits is the immutable per-session risk configuration. Nil pointer
// fields are absent limits and never trigger.
type SessionLimits struct {
	Currency   string           `json:"currency"`
	StopLoss   *decimal.Decimal `json:"stop_loss,omitempty"`   // fractional change from start, e.g. -0.02
	TakeProfit *decimal.Decimal `json:"take_profit,omitempty"` // fractional change from start, e.g. 0.05
	MaxBet     *decimal.Decimal `json:"max_bet,omitempty"`     // stake cap, clamped not rejected
	MaxBets    *int64           `json:"max_bets,omitempty"`
	MaxLosses  *int64           `json:"max_losses,omitempty"` // consecutive losses
	MaxRuntime *time.Duration   `json:"max_runtime,omitempty"`
}
