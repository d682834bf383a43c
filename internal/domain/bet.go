package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// GameKind discriminates the two wager shapes the site offers
type GameKind string

const (
	// GameThreshold is the binary hi/lo game: win when the outcome falls on
	// the chosen side of a threshold derived from the win chance.
	GameThreshold GameKind = "threshold"
	// GameRange is the inclusive numeric range game played on integer rolls
	// in [0, 9999].
	GameRange GameKind = "range"
)

// RollDomainMax is the highest integer roll a range game can target.
// Rolls are the outcome value scaled by 100 and truncated.
const RollDomainMax = 9999

// BetSpec is one request to wager. Kind selects which fields are meaningful:
// Chance and High (direction) for threshold games, Low/High for range games.
type BetSpec struct {
	Kind   GameKind        `json:"kind"`
	Amount decimal.Decimal `json:"amount"`

	// Threshold game fields
	Chance decimal.Decimal `json:"chance,omitempty"` // win chance in percent, (0, 100)
	High   bool            `json:"high,omitempty"`   // bet over the threshold instead of under

	// Range game fields
	Low     int64 `json:"low,omitempty"`
	RangeHi int64 `json:"range_hi,omitempty"`

	Faucet bool `json:"faucet,omitempty"`
}

// Validate checks the structural invariants for the spec's game kind.
func (b *BetSpec) Validate() error {
	if !b.Amount.IsPositive() {
		return fmt.Errorf("%w: stake %s", ErrInvalidStake, b.Amount)
	}
	switch b.Kind {
	case GameThreshold:
		if !b.Chance.IsPositive() || b.Chance.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: chance %s", ErrInvalidChance, b.Chance)
		}
	case GameRange:
		if b.Low < 0 || b.RangeHi > RollDomainMax || b.Low > b.RangeHi {
			return fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, b.Low, b.RangeHi)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownGameKind, b.Kind)
	}
	return nil
}

// WinChance returns the win probability of the spec as a percentage,
// regardless of game kind. Range occupancy maps to percent on the
// [0, 9999] roll domain.
func (b *BetSpec) WinChance() decimal.Decimal {
	if b.Kind == GameRange {
		span := decimal.NewFromInt(b.RangeHi - b.Low + 1)
		return span.Div(decimal.NewFromInt(RollDomainMax + 1)).Mul(decimal.NewFromInt(100))
	}
	return b.Chance
}

// BetResult is one settled wager.
type BetResult struct {
	Win       bool            `json:"win"`
	Profit    decimal.Decimal `json:"profit"`
	Balance   decimal.Decimal `json:"balance"`
	Outcome   float64         `json:"outcome"` // 0.000-99.999
	Payout    decimal.Decimal `json:"payout"`  // multiplier applied to the stake on a win
	Chance    decimal.Decimal `json:"chance"`
	Low       int64           `json:"low,omitempty"`
	RangeHi   int64           `json:"range_hi,omitempty"`
	Nonce     int64           `json:"nonce"`
	Simulated bool            `json:"simulated"`
	Timestamp time.Time       `json:"timestamp"`
	Raw       []byte          `json:"-"` // opaque transport payload, live bets only
}
