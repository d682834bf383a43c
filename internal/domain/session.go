package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionSummary is produced once per session, however the session ends.
type SessionSummary struct {
	SessionID       uuid.UUID       `json:"session_id"`
	Strategy        string          `json:"strategy"`
	TotalBets       int64           `json:"total_bets"`
	Wins            int64           `json:"wins"`
	Losses          int64           `json:"losses"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	EndingBalance   decimal.Decimal `json:"ending_balance"`
	Profit          decimal.Decimal `json:"profit"`
	Duration        time.Duration   `json:"duration"`
	StopReason      StopReason      `json:"stop_reason"`
	Simulated       bool            `json:"simulated"`
}

// BetRecord is the per-bet structured log record the engine emits, and the
// row shape the history store persists. Records are strictly ordered by
// Sequence within a session.
type BetRecord struct {
	SessionID  uuid.UUID       `json:"session_id"`
	Sequence   int64           `json:"sequence"`
	Spec       BetSpec         `json:"spec"`
	Result     BetResult       `json:"result"`
	Balance    decimal.Decimal `json:"balance"`
	LossStreak int64           `json:"loss_streak"`
	ServerSeed string          `json:"server_seed,omitempty"` // revealed seeds only
	ClientSeed string          `json:"client_seed,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ResumeState is the slice of persisted history a strategy may be seeded
// with when a session continues an earlier run.
type ResumeState struct {
	LastBetNumber  int64 `json:"last_bet_number"`
	LastLossStreak int64 `json:"last_loss_streak"`
}
