package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// martingale doubles (or multiplies) the stake after every loss and resets
// to the base stake on a win. The classic loss-chasing progression; the
// session's MaxBet and MaxLosses limits are the only brakes on it.
type martingale struct {
	base       decimal.Decimal
	multiplier decimal.Decimal
	chance     decimal.Decimal
	high       bool
	maxStake   decimal.Decimal // zero means uncapped

	current decimal.Decimal
}

// NewMartingale builds a martingale progression from params:
// base, multiplier, chance, high, max_stake.
func NewMartingale(params Params) (Strategy, error) {
	base, err := params.Decimal("base", "1")
	if err != nil {
		return nil, err
	}
	multiplier, err := params.Decimal("multiplier", "2")
	if err != nil {
		return nil, err
	}
	chance, err := params.Decimal("chance", "49.5")
	if err != nil {
		return nil, err
	}
	high, err := params.Bool("high", false)
	if err != nil {
		return nil, err
	}
	maxStake, err := params.Decimal("max_stake", "0")
	if err != nil {
		return nil, err
	}

	if !base.IsPositive() {
		return nil, fmt.Errorf("%w: base must be positive", domain.ErrInvalidParams)
	}
	if multiplier.LessThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: multiplier must be greater than 1", domain.ErrInvalidParams)
	}
	if maxStake.IsNegative() {
		return nil, fmt.Errorf("%w: max_stake must not be negative", domain.ErrInvalidParams)
	}

	s := &martingale{
		base:       base,
		multiplier: multiplier,
		chance:     chance,
		high:       high,
		maxStake:   maxStake,
		current:    base,
	}
	probe := &domain.BetSpec{Kind: domain.GameThreshold, Amount: base, Chance: chance, High: high}
	if err := probe.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidParams, err)
	}
	return s, nil
}

func (s *martingale) Name() string { return "martingale" }

func (s *martingale) Schema() []ParamSpec {
	return []ParamSpec{
		{Name: "base", Type: "decimal", Default: "1", Description: "stake after a win"},
		{Name: "multiplier", Type: "decimal", Default: "2", Description: "stake multiplier after a loss"},
		{Name: "chance", Type: "decimal", Default: "49.5", Description: "win chance in percent"},
		{Name: "high", Type: "bool", Default: "false", Description: "bet over the threshold"},
		{Name: "max_stake", Type: "decimal", Default: "0", Description: "progression ceiling, 0 for none"},
	}
}

func (s *martingale) OnSessionStart(ctx *Context) {
	ctx.Logger.Info("martingale progression armed",
		"base", s.base, "multiplier", s.multiplier, "max_stake", s.maxStake)
}

func (s *martingale) NextBet(_ *Context) (*domain.BetSpec, error) {
	return &domain.BetSpec{
		Kind:   domain.GameThreshold,
		Amount: s.current,
		Chance: s.chance,
		High:   s.high,
	}, nil
}

func (s *martingale) OnBetResult(result *domain.BetResult) {
	if result.Win {
		s.current = s.base
		return
	}
	s.current = s.current.Mul(s.multiplier)
	if !s.maxStake.IsZero() && s.current.GreaterThan(s.maxStake) {
		s.current = s.maxStake
	}
}

func (s *martingale) OnSessionEnd(_ domain.StopReason) {}
