package strategy

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// Context is the shared, read-mostly handle the engine passes to every
// strategy call. The engine owns it for exactly one session; strategies must
// treat it as borrowed and must not mutate it.
type Context struct {
	Live   bool
	Faucet bool

	// RNG is the session's seeded pseudo-random source. Strategies that
	// randomize their own sizing draw from it so sessions stay reproducible.
	RNG *rand.Rand

	Logger *slog.Logger

	Limits          domain.SessionLimits
	StartingBalance decimal.Decimal

	// Pacing for the live path. Ignored by strategies; documented here so a
	// scripted strategy can surface it to users.
	BaseDelay time.Duration
	MaxJitter time.Duration

	// Resume carries the tail of a persisted history when a session
	// continues an earlier run. Nil for fresh sessions.
	Resume *domain.ResumeState
}

// ParamSpec describes one construction parameter. Presentation layers build
// configuration forms from the ordered schema; the engine never inspects it.
type ParamSpec struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "decimal", "int", "bool", "string"
	Default     string `json:"default"`
	Description string `json:"description"`
}

// Strategy is the contract every betting strategy satisfies. Instances are
// stateful and scoped to one session: NextBet and OnBetResult are called in
// strict alternation by a single goroutine, OnBetResult exactly once per
// settled bet.
type Strategy interface {
	Name() string

	// Schema returns the ordered parameter schema for configuration forms.
	Schema() []ParamSpec

	// OnSessionStart runs once before the first bet. Side effects only.
	OnSessionStart(ctx *Context)

	// NextBet produces the next wager. Returning a nil spec is the normal,
	// non-error end of the session ("strategy_stopped"). A non-nil error is
	// fatal to the session.
	NextBet(ctx *Context) (*domain.BetSpec, error)

	// OnBetResult is the only place a strategy advances its progression.
	OnBetResult(result *domain.BetResult)

	// OnSessionEnd runs once when the session's loop exits, with the stop
	// reason from the engine's taxonomy. Side effects only.
	OnSessionEnd(reason domain.StopReason)
}
