package session

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// Executor settles one wager. The live implementation talks to the remote
// site; the simulator derives outcomes locally. Exactly one bet is in
// flight at a time.
type Executor interface {
	PlaceBet(ctx context.Context, spec *domain.BetSpec) (*domain.BetResult, error)
}

// Sink receives the engine's append-only stream of bet records. Writes must
// be bounded and must preserve call order; the engine calls it from a single
// goroutine in sequence order.
type Sink interface {
	Write(rec *domain.BetRecord) error
}

// Adjuster is mutable shared state for peripheral controls (e.g. a keypress
// handler nudging stakes mid-session). The engine reads it once per
// iteration under its lock; it never affects correctness, only sizing.
type Adjuster struct {
	mu     sync.Mutex
	offset decimal.Decimal
}

// Add shifts the stake offset by delta.
func (a *Adjuster) Add(delta decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.offset = a.offset.Add(delta)
}

// Offset returns the current stake offset.
func (a *Adjuster) Offset() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}
