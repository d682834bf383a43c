// Package history persists bet records to PostgreSQL so sessions can resume
// a progression and finished histories can be audited against revealed seeds.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// Repository stores and reads bet history.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a Repository over an existing pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Write appends one bet record. Implements the engine's Sink.
func (r *Repository) Write(rec *domain.BetRecord) error {
	return r.SaveBet(context.Background(), rec)
}

// SaveBet inserts one bet record.
func (r *Repository) SaveBet(ctx context.Context, rec *domain.BetRecord) error {
	const q = `
		INSERT INTO bets (
			session_id, sequence, game_kind, amount, chance, low, range_hi,
			win, profit, balance, outcome, payout, nonce, loss_streak,
			simulated, server_seed, client_seed, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`

	_, err := r.db.Exec(ctx, q,
		rec.SessionID,
		rec.Sequence,
		string(rec.Spec.Kind),
		rec.Spec.Amount.String(),
		rec.Result.Chance.String(),
		rec.Spec.Low,
		rec.Spec.RangeHi,
		rec.Result.Win,
		rec.Result.Profit.String(),
		rec.Balance.String(),
		rec.Result.Outcome,
		rec.Result.Payout.String(),
		rec.Result.Nonce,
		rec.LossStreak,
		rec.Result.Simulated,
		rec.ServerSeed,
		rec.ClientSeed,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}
	return nil
}

// ResumeState reads the tail of the most recent session so a strategy can
// continue its progression. Returns nil when there is no history.
func (r *Repository) ResumeState(ctx context.Context) (*domain.ResumeState, error) {
	const q = `
		SELECT sequence, loss_streak
		FROM bets
		ORDER BY created_at DESC, sequence DESC
		LIMIT 1`

	var state domain.ResumeState
	err := r.db.QueryRow(ctx, q).Scan(&state.LastBetNumber, &state.LastLossStreak)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read resume state: %w", err)
	}
	return &state, nil
}

// SessionProfit sums the recorded profit for one session.
func (r *Repository) SessionProfit(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error) {
	const q = `SELECT COALESCE(SUM(profit::numeric), 0)::text FROM bets WHERE session_id = $1`

	var raw string
	if err := r.db.QueryRow(ctx, q, sessionID).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("sum session profit: %w", err)
	}
	profit, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode profit %q: %w", raw, err)
	}
	return profit, nil
}

// VerificationInputs returns the replay inputs for every bet of a session
// whose server seed has been revealed and recorded.
func (r *Repository) VerificationInputs(ctx context.Context, sessionID uuid.UUID) ([]domain.VerificationInput, error) {
	const q = `
		SELECT server_seed, client_seed, nonce, outcome
		FROM bets
		WHERE session_id = $1 AND server_seed <> ''
		ORDER BY sequence`

	rows, err := r.db.Query(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query verification inputs: %w", err)
	}
	defer rows.Close()

	var inputs []domain.VerificationInput
	for rows.Next() {
		var in domain.VerificationInput
		if err := rows.Scan(&in.ServerSeed, &in.ClientSeed, &in.Nonce, &in.ClaimedOutcome); err != nil {
			return nil, fmt.Errorf("scan verification input: %w", err)
		}
		inputs = append(inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification inputs: %w", err)
	}
	return inputs, nil
}

// RevealSeeds backfills the revealed server seed onto a session's rows once
// the site rotates the pair.
func (r *Repository) RevealSeeds(ctx context.Context, sessionID uuid.UUID, serverSeed, clientSeed string) error {
	const q = `UPDATE bets SET server_seed = $2, client_seed = $3 WHERE session_id = $1`

	if _, err := r.db.Exec(ctx, q, sessionID, serverSeed, clientSeed); err != nil {
		return fmt.Errorf("reveal seeds: %w", err)
	}
	return nil
}
