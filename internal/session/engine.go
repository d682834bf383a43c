package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
	"github.com/dicemate/dicemate/internal/limits"
	"github.com/dicemate/dicemate/internal/logger"
	"github.com/dicemate/dicemate/internal/metrics"
	"github.com/dicemate/dicemate/internal/strategy"
)

// Config is the immutable configuration for one session.
type Config struct {
	Limits          domain.SessionLimits
	StartingBalance decimal.Decimal
	Live            bool
	Faucet          bool

	// Pacing between bets on the live path. A zero BaseDelay disables
	// pacing entirely (backtests).
	BaseDelay time.Duration
	MaxJitter time.Duration

	// Seed drives the session's pseudo-random source (jitter, and any
	// strategy that randomizes). Fixed seed means reproducible session.
	Seed int64

	// StopRequested is the external cooperative stop signal, polled at
	// iteration boundaries. May be nil.
	StopRequested func() bool

	Resume *domain.ResumeState
}

// Engine owns one session end to end: it pulls bets from the strategy,
// executes them, keeps the books, evaluates limits, and emits one record
// per settled bet. The loop is single-threaded; records and OnBetResult
// calls are strictly ordered by sequence number.
type Engine struct {
	strat    strategy.Strategy
	exec     Executor
	sink     Sink
	adjuster *Adjuster
	cfg      Config
	rng      *rand.Rand
}

// NewEngine assembles an engine. sink and adjuster may be nil.
func NewEngine(strat strategy.Strategy, exec Executor, sink Sink, cfg Config) *Engine {
	return &Engine{
		strat: strat,
		exec:  exec,
		sink:  sink,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)), //nolint:gosec // session pacing and strategy randomness, not security
	}
}

// SetAdjuster attaches the peripheral stake-offset control.
func (e *Engine) SetAdjuster(a *Adjuster) { e.adjuster = a }

// Run executes the session until a stop condition, the strategy, the
// context, or a fatal error ends it. Every run produces a summary with a
// recorded stop reason; err is non-nil only for the fatal taxonomy
// (execution transport failure, invariant violation, strategy runtime
// error).
func (e *Engine) Run(ctx context.Context) (*domain.SessionSummary, error) {
	sessionID := logger.NewSessionID()
	ctx = logger.WithSessionID(ctx, sessionID)
	log := logger.FromContext(ctx)

	startedAt := time.Now()
	balance := e.cfg.StartingBalance
	var bets, wins, losses int64
	var lossStreak int64
	if e.cfg.Resume != nil {
		lossStreak = e.cfg.Resume.LastLossStreak
	}

	tracker := limits.NewTracker(e.cfg.Limits, e.cfg.StartingBalance, startedAt, e.cfg.StopRequested)

	sctx := &strategy.Context{
		Live:            e.cfg.Live,
		Faucet:          e.cfg.Faucet,
		RNG:             e.rng,
		Logger:          log,
		Limits:          e.cfg.Limits,
		StartingBalance: e.cfg.StartingBalance,
		BaseDelay:       e.cfg.BaseDelay,
		MaxJitter:       e.cfg.MaxJitter,
		Resume:          e.cfg.Resume,
	}

	var reason domain.StopReason
	var fatal error

	e.strat.OnSessionStart(sctx)
	defer func() { e.strat.OnSessionEnd(reason) }()

	log.Info("session starting",
		"strategy", e.strat.Name(),
		"live", e.cfg.Live,
		"balance", balance,
		"seed", e.cfg.Seed)

loop:
	for {
		select {
		case <-ctx.Done():
			reason = domain.StopReasonCancelled
			break loop
		default:
		}

		snap := limits.Snapshot{Bets: bets, LossStreak: lossStreak, Balance: balance, Now: time.Now()}
		if r, stop := tracker.Evaluate(snap); stop {
			reason = r
			break loop
		}

		spec, err := e.strat.NextBet(sctx)
		if err != nil {
			reason = domain.StopReasonError
			fatal = fmt.Errorf("strategy %s: %w", e.strat.Name(), err)
			break loop
		}
		if spec == nil {
			reason = domain.StopReasonStrategyStopped
			break loop
		}

		if e.cfg.Faucet {
			spec.Faucet = true
		}
		if e.adjuster != nil {
			spec.Amount = spec.Amount.Add(e.adjuster.Offset())
		}
		spec.Amount = tracker.ClampStake(spec.Amount)
		if err := spec.Validate(); err != nil {
			// Invariant violation after capping is fatal, not a stop condition
			reason = domain.StopReasonError
			fatal = err
			break loop
		}

		timer := prometheus.NewTimer(metrics.BetExecutionDuration)
		result, err := e.exec.PlaceBet(ctx, spec)
		timer.ObserveDuration()
		if err != nil {
			reason = domain.StopReasonError
			fatal = fmt.Errorf("%w: %v", domain.ErrExecutionFailed, err)
			break loop
		}

		bets++
		balance = result.Balance
		if result.Win {
			wins++
			lossStreak = 0
			metrics.BetsTotal.WithLabelValues(metrics.ResultWin).Inc()
		} else {
			losses++
			lossStreak++
			metrics.BetsTotal.WithLabelValues(metrics.ResultLoss).Inc()
		}
		metrics.SessionBalance.Set(balance.InexactFloat64())

		record := &domain.BetRecord{
			SessionID:  sessionID,
			Sequence:   bets,
			Spec:       *spec,
			Result:     *result,
			Balance:    balance,
			LossStreak: lossStreak,
			CreatedAt:  result.Timestamp,
		}
		if e.sink != nil {
			if err := e.sink.Write(record); err != nil {
				log.Error("bet record write failed", "sequence", bets, "error", err)
			}
		}
		log.Info("bet settled",
			"sequence", bets,
			"win", result.Win,
			"outcome", result.Outcome,
			"stake", spec.Amount,
			"profit", result.Profit,
			"balance", balance,
			"loss_streak", lossStreak)

		e.strat.OnBetResult(result)

		snap = limits.Snapshot{Bets: bets, LossStreak: lossStreak, Balance: balance, Now: time.Now()}
		if r, stop := tracker.Evaluate(snap); stop {
			reason = r
			break loop
		}

		if e.cfg.BaseDelay > 0 {
			if !e.pause(ctx) {
				reason = domain.StopReasonCancelled
				break loop
			}
		}
	}

	metrics.SessionStopsTotal.WithLabelValues(string(reason)).Inc()

	summary := &domain.SessionSummary{
		SessionID:       sessionID,
		Strategy:        e.strat.Name(),
		TotalBets:       bets,
		Wins:            wins,
		Losses:          losses,
		StartingBalance: e.cfg.StartingBalance,
		EndingBalance:   balance,
		Profit:          balance.Sub(e.cfg.StartingBalance),
		Duration:        time.Since(startedAt),
		StopReason:      reason,
		Simulated:       !e.cfg.Live,
	}

	log.Info("session complete",
		"stop_reason", reason,
		"total_bets", bets,
		"wins", wins,
		"losses", losses,
		"profit", summary.Profit,
		"duration", summary.Duration)

	return summary, fatal
}

// pause sleeps for the inter-bet delay plus uniform jitter. Returns false
// when the context is cancelled mid-sleep.
func (e *Engine) pause(ctx context.Context) bool {
	delay := e.cfg.BaseDelay
	if e.cfg.MaxJitter > 0 {
		delay += time.Duration(e.rng.Int63n(int64(e.cfg.MaxJitter) + 1))
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
