// Command app runs one betting session, live or simulated, with the chosen
// strategy, and serves operational endpoints while it runs.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/betlog"
	"github.com/dicemate/dicemate/internal/config"
	"github.com/dicemate/dicemate/internal/database"
	"github.com/dicemate/dicemate/internal/domain"
	"github.com/dicemate/dicemate/internal/exchange"
	"github.com/dicemate/dicemate/internal/history"
	"github.com/dicemate/dicemate/internal/logger"
	"github.com/dicemate/dicemate/internal/server"
	"github.com/dicemate/dicemate/internal/session"
	"github.com/dicemate/dicemate/internal/strategy"
)

// paramsFlag collects repeated -param key=value pairs.
type paramsFlag strategy.Params

func (p paramsFlag) String() string { return fmt.Sprintf("%v", strategy.Params(p)) }

func (p paramsFlag) Set(raw string) error {
	key, value, found := strings.Cut(raw, "=")
	if !found || key == "" {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	p[key] = value
	return nil
}

func main() {
	var (
		strategyName = flag.String("strategy", "fixed", "strategy to run, one of "+strings.Join(strategy.Names(), ", "))
		live         = flag.Bool("live", false, "execute real bets against the configured site")
		balanceFlag  = flag.String("balance", "100", "starting balance for simulated sessions")
		serverSeed   = flag.String("server-seed", "", "simulator server seed (random when empty)")
		clientSeed   = flag.String("client-seed", "dicemate", "client seed")
		rngSeed      = flag.Int64("seed", time.Now().UnixNano(), "session RNG seed")
		faucet       = flag.Bool("faucet", false, "wager the faucet balance")
		resume       = flag.Bool("resume", false, "seed the strategy with persisted resume state")
		noDelay      = flag.Bool("no-delay", false, "disable inter-bet pacing (backtests)")

		stopLoss   = flag.String("stop-loss", "", "stop when balance falls by this fraction, e.g. -0.02")
		takeProfit = flag.String("take-profit", "", "stop when balance grows by this fraction, e.g. 0.05")
		maxBet     = flag.String("max-bet", "", "clamp stakes to this amount")
		maxBets    = flag.Int64("max-bets", 0, "stop after this many bets (0 = unlimited)")
		maxLosses  = flag.Int64("max-losses", 0, "stop after this loss streak (0 = unlimited)")
		maxRuntime = flag.Duration("max-runtime", 0, "stop after this wall-clock duration (0 = unlimited)")
	)
	params := paramsFlag{}
	flag.Var(params, "param", "strategy parameter key=value (repeatable)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.NewConfig(
		cfg.LogLevel, cfg.LogFormat, logger.DefaultServiceName, server.Version, cfg.Environment, cfg.Environment == logger.EnvironmentDev,
	), os.Stdout)

	if err := run(cfg, runOptions{
		strategyName: *strategyName,
		params:       strategy.Params(params),
		live:         *live,
		balance:      *balanceFlag,
		serverSeed:   *serverSeed,
		clientSeed:   *clientSeed,
		rngSeed:      *rngSeed,
		faucet:       *faucet,
		resume:       *resume,
		noDelay:      *noDelay,
		stopLoss:     *stopLoss,
		takeProfit:   *takeProfit,
		maxBet:       *maxBet,
		maxBets:      *maxBets,
		maxLosses:    *maxLosses,
		maxRuntime:   *maxRuntime,
	}); err != nil {
		slog.Error("session failed", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	strategyName string
	params       strategy.Params
	live         bool
	balance      string
	serverSeed   string
	clientSeed   string
	rngSeed      int64
	faucet       bool
	resume       bool
	noDelay      bool
	stopLoss     string
	takeProfit   string
	maxBet       string
	maxBets      int64
	maxLosses    int64
	maxRuntime   time.Duration
}

func run(cfg *config.Config, opts runOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limits, err := buildLimits(cfg, opts)
	if err != nil {
		return err
	}

	strat, err := strategy.New(opts.strategyName, opts.params)
	if err != nil {
		return err
	}

	var (
		exec    session.Executor
		balance decimal.Decimal
		sim     *session.Simulator
	)
	if opts.live {
		if cfg.APIBaseURL == "" || cfg.APIKey == "" {
			return fmt.Errorf("live mode needs API_BASE_URL and API_KEY")
		}
		client := exchange.NewClient(cfg.APIBaseURL, cfg.APIKey, 0)
		balance, err = client.Balance(ctx)
		if err != nil {
			return fmt.Errorf("fetch balance: %w", err)
		}
		exec = client
	} else {
		balance, err = decimal.NewFromString(opts.balance)
		if err != nil {
			return fmt.Errorf("invalid -balance %q: %w", opts.balance, err)
		}
		if opts.serverSeed != "" {
			sim = session.NewSimulator(balance, opts.serverSeed, opts.clientSeed)
		} else {
			sim, err = session.NewRandomSimulator(balance, opts.clientSeed)
			if err != nil {
				return err
			}
		}
		exec = sim
	}

	sinks, closers, repo, err := buildSinks(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range closers {
			_ = c()
		}
	}()

	var resumeState *domain.ResumeState
	if opts.resume && repo != nil {
		resumeState, err = repo.ResumeState(ctx)
		if err != nil {
			return err
		}
	}

	baseDelay := cfg.BaseDelay
	jitter := cfg.MaxJitter
	if opts.noDelay || !opts.live {
		baseDelay, jitter = 0, 0
	}

	engine := session.NewEngine(strat, exec, sinks, session.Config{
		Limits:          limits,
		StartingBalance: balance,
		Live:            opts.live,
		Faucet:          opts.faucet,
		BaseDelay:       baseDelay,
		MaxJitter:       jitter,
		Seed:            opts.rngSeed,
		Resume:          resumeState,
	})

	srv := server.New(cfg.Port)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("operational server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	summary, runErr := engine.Run(ctx)

	if sim != nil {
		ss, cs := sim.Seeds()
		slog.Info("dry run seeds (verify with cmd/verify)", "server_seed", ss, "client_seed", cs)
		if repo != nil {
			// ctx may already be cancelled by the signal that ended the run
			revealCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := repo.RevealSeeds(revealCtx, summary.SessionID, ss, cs); err != nil {
				slog.Error("seed reveal failed", "error", err)
			}
		}
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
	return runErr
}

func buildLimits(cfg *config.Config, opts runOptions) (domain.SessionLimits, error) {
	limits := domain.SessionLimits{Currency: cfg.Currency}

	parse := func(name, raw string, dst **decimal.Decimal) error {
		if raw == "" {
			return nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, raw, err)
		}
		*dst = &d
		return nil
	}
	if err := parse("-stop-loss", opts.stopLoss, &limits.StopLoss); err != nil {
		return limits, err
	}
	if err := parse("-take-profit", opts.takeProfit, &limits.TakeProfit); err != nil {
		return limits, err
	}
	if err := parse("-max-bet", opts.maxBet, &limits.MaxBet); err != nil {
		return limits, err
	}
	if opts.maxBets > 0 {
		limits.MaxBets = &opts.maxBets
	}
	if opts.maxLosses > 0 {
		limits.MaxLosses = &opts.maxLosses
	}
	if opts.maxRuntime > 0 {
		limits.MaxRuntime = &opts.maxRuntime
	}
	return limits, nil
}

// buildSinks assembles the record sinks: JSONL file and/or Postgres history.
func buildSinks(ctx context.Context, cfg *config.Config) (session.Sink, []func() error, *history.Repository, error) {
	var multi betlog.MultiSink
	var closers []func() error
	var repo *history.Repository

	if cfg.BetLogPath != "" {
		w, err := betlog.NewJSONLWriter(cfg.BetLogPath)
		if err != nil {
			return nil, nil, nil, err
		}
		multi = append(multi, w)
		closers = append(closers, w.Close)
	}

	if cfg.DatabaseURL != "" {
		if err := history.Migrate(cfg.DatabaseURL); err != nil {
			return nil, nil, nil, err
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.DefaultMaxConnections, 5*time.Minute, 30*time.Minute)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect database: %w", err)
		}
		repo = history.NewRepository(pool)
		multi = append(multi, repo)
		closers = append(closers, func() error { pool.Close(); return nil })
	}

	if len(multi) == 0 {
		return nil, closers, nil, nil
	}
	return multi, closers, repo, nil
}
