package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
	"github.com/dicemate/dicemate/internal/fairness"
)

// Simulator is the dry-run executor. It is outcome-model faithful: every
// result is derived from the provably-fair scheme with an incrementing
// nonce, so a simulated session is bit-reproducible from its seed pair and
// every simulated bet verifies with the same Verifier used on live bets.
type Simulator struct {
	serverSeed string
	clientSeed string
	nonce      int64
	balance    decimal.Decimal
}

// NewSimulator creates a simulator with explicit seeds, starting at nonce 0.
func NewSimulator(startBalance decimal.Decimal, serverSeed, clientSeed string) *Simulator {
	return &Simulator{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		balance:    startBalance,
	}
}

// NewRandomSimulator creates a simulator with a fresh random server seed,
// for unscripted dry runs.
func NewRandomSimulator(startBalance decimal.Decimal, clientSeed string) (*Simulator, error) {
	seed, err := GenerateServerSeed()
	if err != nil {
		return nil, err
	}
	return NewSimulator(startBalance, seed, clientSeed), nil
}

// GenerateServerSeed produces a 64-char hex seed from the OS entropy pool.
func GenerateServerSeed() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate server seed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Seeds exposes the pair so a finished dry run can be audited.
func (s *Simulator) Seeds() (serverSeed, clientSeed string) {
	return s.serverSeed, s.clientSeed
}

// Nonce returns the next nonce the simulator will consume.
func (s *Simulator) Nonce() int64 { return s.nonce }

// PlaceBet settles one simulated wager against the outcome model.
func (s *Simulator) PlaceBet(_ context.Context, spec *domain.BetSpec) (*domain.BetResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Amount.GreaterThan(s.balance) {
		return nil, fmt.Errorf("%w: stake %s, balance %s", domain.ErrInsufficientFunds, spec.Amount, s.balance)
	}

	milli, _, err := fairness.OutcomeMilli(s.serverSeed, s.clientSeed, s.nonce)
	if err != nil {
		return nil, err
	}
	nonce := s.nonce
	s.nonce++

	chance := spec.WinChance()
	win := wins(spec, milli)

	// Site payout approximation: 99 / chance, so a 50% bet pays 1.98x
	payout := decimal.NewFromInt(99).Div(chance)

	var profit decimal.Decimal
	if win {
		profit = spec.Amount.Mul(payout.Sub(decimal.NewFromInt(1))).Round(8)
	} else {
		profit = spec.Amount.Neg()
	}
	s.balance = s.balance.Add(profit)

	return &domain.BetResult{
		Win:       win,
		Profit:    profit,
		Balance:   s.balance,
		Outcome:   float64(milli) / 1000.0,
		Payout:    payout,
		Chance:    chance,
		Low:       spec.Low,
		RangeHi:   spec.RangeHi,
		Nonce:     nonce,
		Simulated: true,
		Timestamp: time.Now(),
	}, nil
}

// wins applies the game's win rule to an outcome in thousandths. For
// threshold games a chance of c percent covers exactly c*1000 of the
// 100000 possible outcomes on either end; range games win on the integer
// roll domain.
func wins(spec *domain.BetSpec, milli int64) bool {
	if spec.Kind == domain.GameRange {
		roll := milli / 10
		return roll >= spec.Low && roll <= spec.RangeHi
	}
	chanceMilli := spec.Chance.Mul(decimal.NewFromInt(1000)).IntPart()
	if spec.High {
		return milli >= 100000-chanceMilli
	}
	return milli < chanceMilli
}
