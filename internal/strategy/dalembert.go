package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// dalembert steps the stake up one unit after a loss and down one unit after
// a win, never below the base unit. A gentler progression than martingale.
type dalembert struct {
	unit   decimal.Decimal
	chance decimal.Decimal
	high   bool

	units int64
}

// NewDalembert builds a d'Alembert progression from params: unit, chance, high.
func NewDalembert(params Params) (Strategy, error) {
	unit, err := params.Decimal("unit", "1")
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
	if !unit.IsPositive() {
		return nil, fmt.Errorf("%w: unit must be positive", domain.ErrInvalidParams)
	}

	s := &dalembert{unit: unit, chance: chance, high: high, units: 1}
	probe := &domain.BetSpec{Kind: domain.GameThreshold, Amount: unit, Chance: chance, High: high}
	if err := probe.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidParams, err)
	}
	return s, nil
}

func (s *dalembert) Name() string { return "dalembert" }

func (s *dalembert) Schema() []ParamSpec {
	return []ParamSpec{
		{Name: "unit", Type: "decimal", Default: "1", Description: "base staking unit"},
		{Name: "chance", Type: "decimal", Default: "49.5", Description: "win chance in percent"},
		{Name: "high", Type: "bool", Default: "false", Description: "bet over the threshold"},
	}
}

func (s *dalembert) OnSessionStart(_ *Context) {}

func (s *dalembert) NextBet(_ *Context) (*domain.BetSpec, error) {
	return &domain.BetSpec{
		Kind:   domain.GameThreshold,
		Amount: s.unit.Mul(decimal.NewFromInt(s.units)),
		Chance: s.chance,
		High:   s.high,
	}, nil
}

func (s *dalembert) OnBetResult(result *domain.BetResult) {
	if result.Win {
		if s.units > 1 {
			s.units--
		}
	} else {
		s.units++
	}
}

func (s *dalembert) OnSessionEnd(_ domain.StopReason) {}
