package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// fixed is the flat-stake strategy: the same threshold bet every iteration.
// Useful as a baseline and for limit-driven sessions.
type fixed struct {
	amount decimal.Decimal
	chance decimal.Decimal
	high   bool

	wins   int64
	losses int64
}

type fixedConfig struct {
	Amount string `validate:"required"`
	Chance string `validate:"required"`
}

// NewFixed builds a flat-stake strategy from params: amount, chance, high.
func NewFixed(params Params) (Strategy, error) {
	cfg := fixedConfig{
		Amount: params.String("amount", "1"),
		Chance: params.String("chance", "49.5"),
	}
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	amount, err := params.Decimal("amount", "1")
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

	s := &fixed{amount: amount, chance: chance, high: high}
	if err := s.spec().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidParams, err)
	}
	return s, nil
}

func (s *fixed) Name() string { return "fixed" }

func (s *fixed) Schema() []ParamSpec {
	return []ParamSpec{
		{Name: "amount", Type: "decimal", Default: "1", Description: "stake per bet"},
		{Name: "chance", Type: "decimal", Default: "49.5", Description: "win chance in percent"},
		{Name: "high", Type: "bool", Default: "false", Description: "bet over the threshold"},
	}
}

func (s *fixed) spec() *domain.BetSpec {
	return &domain.BetSpec{
		Kind:   domain.GameThreshold,
		Amount: s.amount,
		Chance: s.chance,
		High:   s.high,
	}
}

func (s *fixed) OnSessionStart(ctx *Context) {
	ctx.Logger.Info("flat staking", "amount", s.amount, "chance", s.chance)
}

func (s *fixed) NextBet(_ *Context) (*domain.BetSpec, error) {
	return s.spec(), nil
}

func (s *fixed) OnBetResult(result *domain.BetResult) {
	if result.Win {
		s.wins++
	} else {
		s.losses++
	}
}

func (s *fixed) OnSessionEnd(_ domain.StopReason) {}
