package exchange

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicemate/dicemate/internal/domain"
)

func thresholdSpec(amount, chance string) *domain.BetSpec {
	return &domain.BetSpec{
		Kind:   domain.GameThreshold,
		Amount: decimal.RequireFromString(amount),
		Chance: decimal.RequireFromString(chance),
	}
}

func TestPlaceBet_Success(t *testing.T) {
	var gotReq betRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/bet", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(betResponse{
			Win:     true,
			Profit:  "0.98000000",
			Balance: "100.98000000",
			Outcome: 12.345,
			Payout:  "1.98",
			Nonce:   41,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	res, err := c.PlaceBet(context.Background(), thresholdSpec("1", "50"))
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "threshold", gotReq.Game)
	assert.Equal(t, "1", gotReq.Amount)
	assert.Equal(t, "50", gotReq.Chance)

	assert.True(t, res.Win)
	assert.True(t, res.Profit.Equal(decimal.RequireFromString("0.98")))
	assert.True(t, res.Balance.Equal(decimal.RequireFromString("100.98")))
	assert.Equal(t, 12.345, res.Outcome)
	assert.Equal(t, int64(41), res.Nonce)
	assert.False(t, res.Simulated)
	assert.NotEmpty(t, res.Raw)
}

func TestPlaceBet_RangeGameWireShape(t *testing.T) {
	var gotReq betRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(betResponse{Profit: "-1", Balance: "99", Payout: "1.98"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.PlaceBet(context.Background(), &domain.BetSpec{
		Kind:    domain.GameRange,
		Amount:  decimal.NewFromInt(1),
		Low:     100,
		RangeHi: 4999,
	})
	require.NoError(t, err)

	assert.Equal(t, "range", gotReq.Game)
	assert.Equal(t, int64(100), gotReq.Low)
	assert.Equal(t, int64(4999), gotReq.RangeHi)
	assert.Empty(t, gotReq.Chance)
}

func TestPlaceBet_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "insufficient funds", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.PlaceBet(context.Background(), thresholdSpec("1", "50"))
	assert.ErrorIs(t, err, domain.ErrExecutionFailed)
	assert.Contains(t, err.Error(), "402")
}

func TestPlaceBet_TransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "", 100*time.Millisecond)
	_, err := c.PlaceBet(context.Background(), thresholdSpec("1", "50"))
	assert.ErrorIs(t, err, domain.ErrExecutionFailed)
}

func TestPlaceBet_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.PlaceBet(context.Background(), thresholdSpec("1", "50"))
	assert.Error(t, err)
}

func TestBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/balance", r.URL.Path)
		w.Write([]byte(`{"balance":"42.50000000"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	balance, err := c.Balance(context.Background())
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("42.5")))
}

func TestCurrentSeeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/seeds", r.URL.Path)
		w.Write([]byte(`{"server_seed_hash":"abc123","client_seed":"mine","nonce":77}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	hash, client, nonce, err := c.CurrentSeeds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", hash)
	assert.Equal(t, "mine", client)
	assert.Equal(t, int64(77), nonce)
}
