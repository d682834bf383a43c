package limits

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dicemate/dicemate/internal/domain"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int64) *int64 { return &n }

func durPtr(d time.Duration) *time.Duration { return &d }

func snapshot(bets, lossStreak int64, balance string) Snapshot {
	return Snapshot{
		Bets:       bets,
		LossStreak: lossStreak,
		Balance:    decimal.RequireFromString(balance),
		Now:        time.Now(),
	}
}

func TestEvaluate_NoLimits(t *testing.T) {
	tr := NewTracker(domain.SessionLimits{}, decimal.NewFromInt(100), time.Now(), nil)

	_, stop := tr.Evaluate(snapshot(1_000_000, 500, "0.00000001"))
	assert.False(t, stop)
}

func TestEvaluate_StopRequested(t *testing.T) {
	tr := NewTracker(domain.SessionLimits{
		MaxBets: intPtr(1),
	}, decimal.NewFromInt(100), time.Now(), func() bool { return true })

	// Cooperative stop wins over any tripped limit
	reason, stop := tr.Evaluate(snapshot(5, 0, "100"))
	assert.True(t, stop)
	assert.Equal(t, domain.StopReasonStopped, reason)
}

func TestEvaluate_MaxRuntime(t *testing.T) {
	started := time.Now().Add(-2 * time.Hour)
	tr := NewTracker(domain.SessionLimits{
		MaxRuntime: durPtr(time.Hour),
	}, decimal.NewFromInt(100), started, nil)

	reason, stop := tr.Evaluate(snapshot(0, 0, "100"))
	assert.True(t, stop)
	assert.Equal(t, domain.StopReasonMaxDuration, reason)
}

func TestEvaluate_MaxBets(t *testing.T) {
	tr := NewTracker(domain.SessionLimits{
		MaxBets: intPtr(10),
	}, decimal.NewFromInt(100), time.Now(), nil)

	_, stop := tr.Evaluate(snapshot(9, 0, "100"))
	assert.False(t, stop)

	reason, stop := tr.Evaluate(snapshot(10, 0, "100"))
	assert.True(t, stop)
	assert.Equal(t, domain.StopReasonMaxBets, reason)
}

func TestEvaluate_MaxLosses(t *testing.T) {
	tr := NewTracker(domain.SessionLimits{
		MaxLosses: intPtr(3),
	}, decimal.NewFromInt(100), time.Now(), nil)

	_, stop := tr.Evaluate(snapshot(5, 2, "90"))
	assert.False(t, stop)

	reason, stop := tr.Evaluate(snapshot(6, 3, "85"))
	assert.True(t, stop)
	assert.Equal(t, domain.StopReasonMaxLosses, reason)
}

func TestEvaluate_StopLoss(t *testing.T) {
	tr := NewTracker(domain.SessionLimits{
		StopLoss: decPtr("-0.10"),
	}, decimal.NewFromInt(100), time.Now(), nil)

	_, stop := tr.Evaluate(snapshot(1, 1, "91"))
	assert.False(t, stop)

	reason, stop := tr.Evaluate(snapshot(2, 2, "90"))
	assert.True(t, stop)
	assert.Equal(t, domain.StopReasonStopLoss, reason)

	reason, stop = tr.Evaluate(snapshot(3, 3, "50"))
	assert.True(t, stop)
	assert.Equal(t, domain.StopReasonStopLoss, reason)
}

func TestEvaluate_TakeProfit(t *testing.T) {
	tr := NewTracker(domain.SessionLimits{
		TakeProfit: decPtr("0.05"),
	}, decimal.NewFromInt(100), time.Now(), nil)

	_, stop := tr.Evaluate(snapshot(1, 0, "104.99"))
	assert.False(t, stop)

	reason, stop := tr.Evaluate(snapshot(2, 0, "105"))
	assert.True(t, stop)
	assert.Equal(t, domain.StopReasonTakeProfit, reason)
}

func TestEvaluate_PriorityOrder(t *testing.T) {
	// Every limit trips at once; max_duration outranks the rest
	started := time.Now().Add(-time.Hour)
	tr := NewTracker(domain.SessionLimits{
		MaxRuntime: durPtr(time.Minute),
		MaxBets:    intPtr(1),
		MaxLosses:  intPtr(1),
		StopLoss:   decPtr("-0.01"),
		TakeProfit: decPtr("0.01"),
	}, decimal.NewFromInt(100), started, nil)

	reason, stop := tr.Evaluate(snapshot(100, 100, "1"))
	assert.True(t, stop)
	assert.Equal(t, domain.StopReasonMaxDuration, reason)
}

func TestEvaluate_MaxBetsBeatsStopLoss(t *testing.T) {
	tr := NewTracker(domain.SessionLimits{
		MaxBets:  intPtr(5),
		StopLoss: decPtr("-0.01"),
	}, decimal.NewFromInt(100), time.Now(), nil)

	reason, stop := tr.Evaluate(snapshot(5, 0, "10"))
	assert.True(t, stop)
	assert.Equal(t, domain.StopReasonMaxBets, reason)
}

func TestClampStake(t *testing.T) {
	tr := NewTracker(domain.SessionLimits{
		MaxBet: decPtr("2.5"),
	}, decimal.NewFromInt(100), time.Now(), nil)

	assert.True(t, tr.ClampStake(decimal.NewFromInt(10)).Equal(decimal.RequireFromString("2.5")))
	assert.True(t, tr.ClampStake(decimal.NewFromInt(1)).Equal(decimal.NewFromInt(1)))
}

func TestClampStake_NoCap(t *testing.T) {
	tr := NewTracker(domain.SessionLimits{}, decimal.NewFromInt(100), time.Now(), nil)
	assert.True(t, tr.ClampStake(decimal.NewFromInt(1000)).Equal(decimal.NewFromInt(1000)))
}
