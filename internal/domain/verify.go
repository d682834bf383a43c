package domain

// VerificationStatus classifies a single replayed bet.
type VerificationStatus string

const (
	VerificationValid   VerificationStatus = "valid"
	VerificationInvalid VerificationStatus = "invalid"
	VerificationError   VerificationStatus = "error"
)

// VerificationInput is one bet to replay: the revealed seed pair, the nonce,
// and the outcome the site claimed.
type VerificationInput struct {
	ServerSeed     string  `json:"server_seed"`
	ClientSeed     string  `json:"client_seed"`
	Nonce          int64   `json:"nonce"`
	ClaimedOutcome float64 `json:"claimed_outcome"`
}

// VerificationResult is the outcome of recomputing one bet's derivation.
// Err is set (and Status is VerificationError) when the inputs were
// malformed; verification itself never fails.
type VerificationResult struct {
	Input      VerificationInput  `json:"input"`
	Status     VerificationStatus `json:"status"`
	Valid      bool               `json:"valid"`
	Recomputed float64            `json:"recomputed"`
	Digest     string             `json:"digest,omitempty"` // full hex digest for audit display
	Err        string             `json:"error,omitempty"`
}

// BatchReport aggregates elementwise verification of a bet history. Partial
// failure is expected and counted, never fatal.
type BatchReport struct {
	Results []VerificationResult `json:"results"`
	Valid   int                  `json:"valid"`
	Invalid int                  `json:"invalid"`
	Errors  int                  `json:"errors"`
}

// AllValid reports whether every entry replayed cleanly.
func (r *BatchReport) AllValid() bool {
	return r.Invalid == 0 && r.Errors == 0 && len(r.Results) > 0
}
