package strategy

import (
	"fmt"

	"github.com/Shopify/go-lua"
	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// luaScript runs a user-supplied Lua script behind the same Strategy
// contract as the built-ins. The interpreter is restricted: only the base,
// math, string and table libraries are opened, filesystem and code-loading
// primitives are removed, and the script sees nothing but the documented
// globals below.
//
// Script contract:
//
//	next_bet()  -> {amount=, chance=, high=} or nil to stop   (required)
//	on_start()                                                 (optional)
//	on_result()                                                (optional)
//	on_end(reason)                                             (optional)
//
// Read-only globals refreshed before every call: balance, startbalance,
// profit, lossstreak, wins, losses, lastwin.
type luaScript struct {
	l    *lua.State
	path string

	balance    decimal.Decimal
	start      decimal.Decimal
	lossStreak int64
	wins       int64
	losses     int64
	lastWin    bool
}

// strippedGlobals are base-library entries that would let a script out of
// its sandbox.
var strippedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require"}

// NewLua loads a scripted strategy from params: script (file path).
func NewLua(params Params) (Strategy, error) {
	path := params.String("script", "")
	if path == "" {
		return nil, fmt.Errorf("%w: script path is required", domain.ErrInvalidParams)
	}

	l := lua.NewState()
	lua.Require(l, "_G", lua.BaseOpen, true)
	l.Pop(1)
	lua.Require(l, "math", lua.MathOpen, true)
	l.Pop(1)
	lua.Require(l, "string", lua.StringOpen, true)
	l.Pop(1)
	lua.Require(l, "table", lua.TableOpen, true)
	l.Pop(1)
	for _, name := range strippedGlobals {
		l.PushNil()
		l.SetGlobal(name)
	}

	if err := lua.LoadFile(l, path, ""); err != nil {
		return nil, fmt.Errorf("%w: load script %s: %v", domain.ErrInvalidParams, path, err)
	}
	if err := l.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("%w: run script %s: %v", domain.ErrInvalidParams, path, err)
	}

	l.Global("next_bet")
	isFn := l.IsFunction(-1)
	l.Pop(1)
	if !isFn {
		return nil, fmt.Errorf("%w: script %s must define next_bet()", domain.ErrInvalidParams, path)
	}

	return &luaScript{l: l, path: path}, nil
}

func (s *luaScript) Name() string { return "lua" }

func (s *luaScript) Schema() []ParamSpec {
	return []ParamSpec{
		{Name: "script", Type: "string", Default: "", Description: "path to the strategy script"},
	}
}

// pushState refreshes the documented read-only globals.
func (s *luaScript) pushState() {
	bal, _ := s.balance.Float64()
	start, _ := s.start.Float64()
	profit, _ := s.balance.Sub(s.start).Float64()

	s.l.PushNumber(bal)
	s.l.SetGlobal("balance")
	s.l.PushNumber(start)
	s.l.SetGlobal("startbalance")
	s.l.PushNumber(profit)
	s.l.SetGlobal("profit")
	s.l.PushNumber(float64(s.lossStreak))
	s.l.SetGlobal("lossstreak")
	s.l.PushNumber(float64(s.wins))
	s.l.SetGlobal("wins")
	s.l.PushNumber(float64(s.losses))
	s.l.SetGlobal("losses")
	s.l.PushBoolean(s.lastWin)
	s.l.SetGlobal("lastwin")
}

// callOptional invokes a no-arg script hook if the script defines it.
func (s *luaScript) callOptional(name string) {
	s.l.Global(name)
	if !s.l.IsFunction(-1) {
		s.l.Pop(1)
		return
	}
	// Hook failures are the script author's problem, not the session's
	_ = s.l.ProtectedCall(0, 0, 0)
}

func (s *luaScript) OnSessionStart(ctx *Context) {
	s.balance = ctx.StartingBalance
	s.start = ctx.StartingBalance
	s.pushState()
	s.callOptional("on_start")
}

func (s *luaScript) NextBet(_ *Context) (*domain.BetSpec, error) {
	s.pushState()

	s.l.Global("next_bet")
	if err := s.l.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("script %s: next_bet: %w", s.path, err)
	}
	if s.l.IsNil(-1) {
		s.l.Pop(1)
		return nil, nil
	}
	if !s.l.IsTable(-1) {
		s.l.Pop(1)
		return nil, fmt.Errorf("script %s: next_bet must return a table or nil", s.path)
	}

	s.l.Field(-1, "amount")
	amount, okAmount := s.l.ToNumber(-1)
	s.l.Pop(1)

	s.l.Field(-1, "chance")
	chance, okChance := s.l.ToNumber(-1)
	s.l.Pop(1)

	s.l.Field(-1, "high")
	high := s.l.ToBoolean(-1)
	s.l.Pop(1)

	s.l.Pop(1) // the bet table

	if !okAmount || !okChance {
		return nil, fmt.Errorf("script %s: next_bet table needs numeric amount and chance", s.path)
	}

	spec := &domain.BetSpec{
		Kind:   domain.GameThreshold,
		Amount: decimal.NewFromFloat(amount).Round(8),
		Chance: decimal.NewFromFloat(chance),
		High:   high,
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("script %s: %w", s.path, err)
	}
	return spec, nil
}

func (s *luaScript) OnBetResult(result *domain.BetResult) {
	s.balance = result.Balance
	s.lastWin = result.Win
	if result.Win {
		s.wins++
		s.lossStreak = 0
	} else {
		s.losses++
		s.lossStreak++
	}
	s.pushState()
	s.callOptional("on_result")
}

func (s *luaScript) OnSessionEnd(reason domain.StopReason) {
	s.l.Global("on_end")
	if !s.l.IsFunction(-1) {
		s.l.Pop(1)
		return
	}
	s.l.PushString(string(reason))
	_ = s.l.ProtectedCall(1, 0, 0)
}
