package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// target is the goal-seeking strategy: each stake is sized so that a single
// win closes the remaining gap to the profit target, then the strategy stops.
type target struct {
	goal     decimal.Decimal // fractional gain over starting balance
	chance   decimal.Decimal
	high     bool
	minStake decimal.Decimal

	balance decimal.Decimal
	goalAbs decimal.Decimal
	started bool
}

// NewTarget builds a goal-seeking strategy from params:
// goal (fraction, e.g. 0.05), chance, high, min_stake.
func NewTarget(params Params) (Strategy, error) {
	goal, err := params.Decimal("goal", "0.05")
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

	if !goal.IsPositive() {
		return nil, fmt.Errorf("%w: goal must be positive", domain.ErrInvalidParams)
	}
	if !minStake.IsPositive() {
		return nil, fmt.Errorf("%w: min_stake must be positive", domain.ErrInvalidParams)
	}
	probe := &domain.BetSpec{Kind: domain.GameThreshold, Amount: minStake, Chance: chance, High: high}
	if err := probe.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidParams, err)
	}

	return &target{goal: goal, chance: chance, high: high, minStake: minStake}, nil
}

func (s *target) Name() string { return "target" }

func (s *target) Schema() []ParamSpec {
	return []ParamSpec{
		{Name: "goal", Type: "decimal", Default: "0.05", Description: "profit target as a fraction of starting balance"},
		{Name: "chance", Type: "decimal", Default: "49.5", Description: "win chance in percent"},
		{Name: "high", Type: "bool", Default: "false", Description: "bet over the threshold"},
		{Name: "min_stake", Type: "decimal", Default: "0.00000001", Description: "floor for the computed stake"},
	}
}

func (s *target) OnSessionStart(ctx *Context) {
	s.balance = ctx.StartingBalance
	s.goalAbs = ctx.StartingBalance.Add(ctx.StartingBalance.Mul(s.goal))
	s.started = true
	ctx.Logger.Info("seeking balance target", "target", s.goalAbs)
}

func (s *target) NextBet(ctx *Context) (*domain.BetSpec, error) {
	if !s.started {
		s.OnSessionStart(ctx)
	}
	deficit := s.goalAbs.Sub(s.balance)
	if !deficit.IsPositive() {
		// Target reached
		return nil, nil
	}

	// One win at payout 99/chance closes the gap:
	// stake = deficit / (payout - 1)
	payoutLessOne := decimal.NewFromInt(99).Sub(s.chance).Div(s.chance)
	stake := deficit.Div(payoutLessOne).RoundUp(8)
	if stake.LessThan(s.minStake) {
		stake = s.minStake
	}

	return &domain.BetSpec{
		Kind:   domain.GameThreshold,
		Amount: stake,
		Chance: s.chance,
		High:   s.high,
	}, nil
}

func (s *target) OnBetResult(result *domain.BetResult) {
	s.balance = result.Balance
}

func (s *target) OnSessionEnd(_ domain.StopReason) {}
