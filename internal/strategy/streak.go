package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// streak is a positive progression: it presses winnings by multiplying the
// stake during a win streak and drops back to base on any loss or once the
// streak reaches its configured length.
type streak struct {
	base      decimal.Decimal
	winMult   decimal.Decimal
	streakLen int64
	chance    decimal.Decimal
	high      bool

	current decimal.Decimal
	run     int64
}

// NewStreak builds a win-streak press from params:
// base, win_multiplier, streak_length, chance, high.
func NewStreak(params Params) (Strategy, error) {
	base, err := params.Decimal("base", "1")
	if err != nil {
		return nil, err
	}
	winMult, err := params.Decimal("win_multiplier", "2")
	if err != nil {
		return nil, err
	}
	streakLen, err := params.Int("streak_length", 3)
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

	if !base.IsPositive() {
		return nil, fmt.Errorf("%w: base must be positive", domain.ErrInvalidParams)
	}
	if winMult.LessThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: win_multiplier must be greater than 1", domain.ErrInvalidParams)
	}
	if streakLen < 1 {
		return nil, fmt.Errorf("%w: streak_length must be at least 1", domain.ErrInvalidParams)
	}

	s := &streak{
		base:      base,
		winMult:   winMult,
		streakLen: streakLen,
		chance:    chance,
		high:      high,
		current:   base,
	}
	probe := &domain.BetSpec{Kind: domain.GameThreshold, Amount: base, Chance: chance, High: high}
	if err := probe.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidParams, err)
	}
	return s, nil
}

func (s *streak) Name() string { return "streak" }

func (s *streak) Schema() []ParamSpec {
	return []ParamSpec{
		{Name: "base", Type: "decimal", Default: "1", Description: "stake outside a streak"},
		{Name: "win_multiplier", Type: "decimal", Default: "2", Description: "stake multiplier while a win streak runs"},
		{Name: "streak_length", Type: "int", Default: "3", Description: "wins before banking and resetting"},
		{Name: "chance", Type: "decimal", Default: "49.5", Description: "win chance in percent"},
		{Name: "high", Type: "bool", Default: "false", Description: "bet over the threshold"},
	}
}

func (s *streak) OnSessionStart(_ *Context) {}

func (s *streak) NextBet(_ *Context) (*domain.BetSpec, error) {
	return &domain.BetSpec{
		Kind:   domain.GameThreshold,
		Amount: s.current,
		Chance: s.chance,
		High:   s.high,
	}, nil
}

func (s *streak) OnBetResult(result *domain.BetResult) {
	if !result.Win {
		s.run = 0
		s.current = s.base
		return
	}
	s.run++
	if s.run >= s.streakLen {
		// Bank the press and start over
		s.run = 0
		s.current = s.base
		return
	}
	s.current = s.current.Mul(s.winMult)
}

func (s *streak) OnSessionEnd(_ domain.StopReason) {}
