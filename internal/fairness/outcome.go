package fairness

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/dicemate/dicemate/internal/domain"
)

// derive runs the site's published provably-fair scheme:
//
//	digest = sha256(serverSeed + clientSeed + decimal(nonce))
//	milli  = uint(digest[0:5]) mod 100000
//
// milli is the outcome in thousandths, i.e. 0..99999 maps to 0.000..99.999.
func derive(serverSeed, clientSeed string, nonce int64) (uint64, string, error) {
	if serverSeed == "" || clientSeed == "" {
		return 0, "", domain.ErrEmptySeed
	}
	if nonce < 0 {
		return 0, "", fmt.Errorf("%w: %d", domain.ErrNegativeNonce, nonce)
	}

	sum := sha256.Sum256([]byte(serverSeed + clientSeed + strconv.FormatInt(nonce, 10)))
	digest := hex.EncodeToString(sum[:])

	// First 5 hex chars of a sha256 digest always parse; max value fits in 20 bits.
	n, err := strconv.ParseUint(digest[:5], 16, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse digest prefix: %w", err)
	}
	return n % 100000, digest, nil
}

// Outcome derives a game round's result value in [0.000, 99.999] with
// exactly three decimal places, plus the full hex digest for audit display.
// The derivation is pure and must reproduce byte-identically everywhere;
// golden vectors are pinned in outcome_test.go.
func Outcome(serverSeed, clientSeed string, nonce int64) (float64, string, error) {
	milli, digest, err := derive(serverSeed, clientSeed, nonce)
	if err != nil {
		return 0, "", err
	}
	return float64(milli) / 1000.0, digest, nil
}

// OutcomeMilli is Outcome in integer thousandths (0..99999). Consumers that
// compare the outcome against thresholds use this form so no float rounding
// can leak in.
func OutcomeMilli(serverSeed, clientSeed string, nonce int64) (int64, string, error) {
	milli, digest, err := derive(serverSeed, clientSeed, nonce)
	if err != nil {
		return 0, "", err
	}
	return int64(milli), digest, nil
}

// Roll maps the same derivation onto the integer roll domain [0, 9999] used
// by range games: floor(outcome * 100).
func Roll(serverSeed, clientSeed string, nonce int64) (int64, string, error) {
	milli, digest, err := derive(serverSeed, clientSeed, nonce)
	if err != nil {
		return 0, "", err
	}
	return int64(milli / 10), digest, nil
}
