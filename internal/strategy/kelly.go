package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// kelly sizes each stake as a fraction of the Kelly-optimal bet for an
// assumed edge over the quoted chance. With no real edge the Kelly fraction
// is negative and the strategy falls back to the minimum stake, which makes
// the assumption visible instead of hiding it.
type kelly struct {
	edge     decimal.Decimal // assumed true-probability uplift, e.g. 0.01 for +1%
	fraction decimal.Decimal // fraction of full Kelly to actually stake
	chance   decimal.Decimal
	high     bool
	minStake decimal.Decimal

	balance decimal.Decimal
	started bool
}

// NewKelly builds a fractional-Kelly sizer from params:
// edge, fraction, chance, high, min_stake.
func NewKelly(params Params) (Strategy, error) {
	edge, err := params.Decimal("edge", "0")
	if err != nil {
		return nil, err
	}
	fraction, err := params.Decimal("fraction", "0.5")
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
	minStake, err := params.Decimal("min_stake", "0.00000001")
	if err != nil {
		return nil, err
	}

	if !fraction.IsPositive() || fraction.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: fraction must be in (0, 1]", domain.ErrInvalidParams)
	}
	if !minStake.IsPositive() {
		return nil, fmt.Errorf("%w: min_stake must be positive", domain.ErrInvalidParams)
	}
	probe := &domain.BetSpec{Kind: domain.GameThreshold, Amount: minStake, Chance: chance, High: high}
	if err := probe.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidParams, err)
	}

	return &kelly{edge: edge, fraction: fraction, chance: chance, high: high, minStake: minStake}, nil
}

func (s *kelly) Name() string { return "kelly" }

func (s *kelly) Schema() []ParamSpec {
	return []ParamSpec{
		{Name: "edge", Type: "decimal", Default: "0", Description: "assumed probability uplift over the quoted chance"},
		{Name: "fraction", Type: "decimal", Default: "0.5", Description: "fraction of full Kelly to stake"},
		{Name: "chance", Type: "decimal", Default: "49.5", Description: "win chance in percent"},
		{Name: "high", Type: "bool", Default: "false", Description: "bet over the threshold"},
		{Name: "min_stake", Type: "decimal", Default: "0.00000001", Description: "stake when Kelly is non-positive"},
	}
}

func (s *kelly) OnSessionStart(ctx *Context) {
	s.balance = ctx.StartingBalance
	s.started = true
}

func (s *kelly) NextBet(ctx *Context) (*domain.BetSpec, error) {
	if !s.started {
		s.OnSessionStart(ctx)
	}

	// b = net odds, p = assumed win probability, f* = (p(b+1) - 1) / b
	hundred := decimal.NewFromInt(100)
	b := decimal.NewFromInt(99).Sub(s.chance).Div(s.chance)
	p := s.chance.Div(hundred).Add(s.edge)
	fStar := p.Mul(b.Add(decimal.NewFromInt(1))).Sub(decimal.NewFromInt(1)).Div(b)

	stake := s.minStake
	if fStar.IsPositive() {
		stake = s.balance.Mul(fStar).Mul(s.fraction).Round(8)
		if stake.LessThan(s.minStake) {
			stake = s.minStake
		}
	}

	return &domain.BetSpec{
		Kind:   domain.GameThreshold,
		Amount: stake,
		Chance: s.chance,
		High:   s.high,
	}, nil
}

func (s *kelly) OnBetResult(result *domain.BetResult) {
	s.balance = result.Balance
}

func (s *kelly) OnSessionEnd(_ domain.StopReason) {}
