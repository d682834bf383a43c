package fairness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicemate/dicemate/internal/domain"
)

func TestOutcome_KnownVectors(t *testing.T) {
	cases := []struct {
		serverSeed string
		clientSeed string
		nonce      int64
		want       float64
		digest     string
	}{
		{"server123", "client456", 0, 81.470, "d733e5ac70a62d729981a5aefe593446574eb1dc2d562e0cc645bdb707602092"},
		{"server123", "client456", 1, 36.374, ""},
		{"server123", "client456", 2, 2.539, ""},
		{"a1b2c3d4", "lucky", 7, 45.377, ""},
		{"deadbeef", "cafe", 123, 66.443, ""},
		{"s", "c", 0, 36.068, ""},
		{"6f3c1b9e2a", "myclientseed", 42, 40.465, ""},
	}

	for _, tc := range cases {
		got, digest, err := Outcome(tc.serverSeed, tc.clientSeed, tc.nonce)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1e-9, "seeds=%s/%s nonce=%d", tc.serverSeed, tc.clientSeed, tc.nonce)
		assert.Len(t, digest, 64)
		if tc.digest != "" {
			assert.Equal(t, tc.digest, digest)
		}
	}
}

func TestOutcome_Deterministic(t *testing.T) {
	a, digestA, err := Outcome("server123", "client456", 99)
	require.NoError(t, err)
	b, digestB, err := Outcome("server123", "client456", 99)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, digestA, digestB)
}

func TestOutcome_NonceChangesResult(t *testing.T) {
	_, digestA, err := Outcome("server123", "client456", 0)
	require.NoError(t, err)
	_, digestB, err := Outcome("server123", "client456", 1)
	require.NoError(t, err)
	assert.NotEqual(t, digestA, digestB)
}

func TestOutcome_EmptyServerSeed(t *testing.T) {
	_, _, err := Outcome("", "client456", 0)
	assert.ErrorIs(t, err, domain.ErrEmptySeed)
}

func TestOutcome_EmptyClientSeed(t *testing.T) {
	_, _, err := Outcome("server123", "", 0)
	assert.ErrorIs(t, err, domain.ErrEmptySeed)
}

func TestOutcome_NegativeNonce(t *testing.T) {
	_, _, err := Outcome("server123", "client456", -1)
	assert.ErrorIs(t, err, domain.ErrNegativeNonce)
}

func TestOutcome_Range(t *testing.T) {
	for nonce := int64(0); nonce < 500; nonce++ {
		got, _, err := Outcome("rangecheck", "seed", nonce)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, OutcomeMax)
	}
}

func TestOutcomeMilli_MatchesOutcome(t *testing.T) {
	for nonce := int64(0); nonce < 100; nonce++ {
		milli, _, err := OutcomeMilli("server123", "client456", nonce)
		require.NoError(t, err)
		outcome, _, err := Outcome("server123", "client456", nonce)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, milli, int64(0))
		assert.Less(t, milli, int64(100000))
		assert.InDelta(t, outcome, float64(milli)/1000.0, 1e-9)
	}
}

func TestRoll_DerivedFromMilli(t *testing.T) {
	for nonce := int64(0); nonce < 100; nonce++ {
		milli, _, err := OutcomeMilli("server123", "client456", nonce)
		require.NoError(t, err)
		roll, _, err := Roll("server123", "client456", nonce)
		require.NoError(t, err)

		assert.Equal(t, milli/10, roll)
		assert.GreaterOrEqual(t, roll, int64(0))
		assert.LessOrEqual(t, roll, int64(domain.RollDomainMax))
	}
}
