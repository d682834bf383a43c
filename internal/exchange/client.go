// Package exchange is the live bet-execution collaborator: a thin JSON
// client for the remote dice site. Transport and HTTP failures are fatal to
// the calling session; nothing here retries.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Client talks to the site's REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a client for the given API base URL.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// betRequest is the wire shape of a wager.
type betRequest struct {
	Game    string `json:"game"`
	Amount  string `json:"amount"`
	Chance  string `json:"chance,omitempty"`
	High    bool   `json:"high,omitempty"`
	Low     int64  `json:"low,omitempty"`
	RangeHi int64  `json:"range_hi,omitempty"`
	Faucet  bool   `json:"faucet,omitempty"`
}

// betResponse is the wire shape of a settled wager.
type betResponse struct {
	Win     bool    `json:"win"`
	Profit  string  `json:"profit"`
	Balance string  `json:"balance"`
	Outcome float64 `json:"outcome"`
	Payout  string  `json:"payout"`
	Nonce   int64   `json:"nonce"`
}

// seedsResponse carries the current provably-fair state.
type seedsResponse struct {
	ServerSeedHash string `json:"server_seed_hash"`
	ClientSeed     string `json:"client_seed"`
	Nonce          int64  `json:"nonce"`
}

// PlaceBet submits one wager and parses the settled result.
func (c *Client) PlaceBet(ctx context.Context, spec *domain.BetSpec) (*domain.BetResult, error) {
	req := betRequest{
		Game:   string(spec.Kind),
		Amount: spec.Amount.String(),
		High:   spec.High,
		Faucet: spec.Faucet,
	}
	if spec.Kind == domain.GameRange {
		req.Low = spec.Low
		req.RangeHi = spec.RangeHi
	} else {
		req.Chance = spec.Chance.String()
	}

	raw, err := c.post(ctx, "/v1/bet", req)
	if err != nil {
		return nil, err
	}

	var resp betResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode bet response: %w", err)
	}

	profit, err := decimal.NewFromString(resp.Profit)
	if err != nil {
		return nil, fmt.Errorf("decode profit %q: %w", resp.Profit, err)
	}
	balance, err := decimal.NewFromString(resp.Balance)
	if err != nil {
		return nil, fmt.Errorf("decode balance %q: %w", resp.Balance, err)
	}
	payout, err := decimal.NewFromString(resp.Payout)
	if err != nil {
		return nil, fmt.Errorf("decode payout %q: %w", resp.Payout, err)
	}

	return &domain.BetResult{
		Win:       resp.Win,
		Profit:    profit,
		Balance:   balance,
		Outcome:   resp.Outcome,
		Payout:    payout,
		Chance:    spec.WinChance(),
		Low:       spec.Low,
		RangeHi:   spec.RangeHi,
		Nonce:     resp.Nonce,
		Simulated: false,
		Timestamp: time.Now(),
		Raw:       raw,
	}, nil
}

// Balance fetches the account balance for the configured currency.
func (c *Client) Balance(ctx context.Context) (decimal.Decimal, error) {
	raw, err := c.get(ctx, "/v1/balance")
	if err != nil {
		return decimal.Zero, err
	}
	var resp struct {
		Balance string `json:"balance"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("decode balance response: %w", err)
	}
	balance, err := decimal.NewFromString(resp.Balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode balance %q: %w", resp.Balance, err)
	}
	return balance, nil
}

// CurrentSeeds fetches the active seed pair state, with the server seed
// still hashed while it is in play.
func (c *Client) CurrentSeeds(ctx context.Context) (serverSeedHash, clientSeed string, nonce int64, err error) {
	raw, err := c.get(ctx, "/v1/seeds")
	if err != nil {
		return "", "", 0, err
	}
	var resp seedsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", "", 0, fmt.Errorf("decode seeds response: %w", err)
	}
	return resp.ServerSeedHash, resp.ClientSeed, resp.Nonce, nil
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExecutionFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d: %s", domain.ErrExecutionFailed, req.URL.Path, resp.StatusCode, raw)
	}
	return raw, nil
}
