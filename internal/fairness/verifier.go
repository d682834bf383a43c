package fairness

import (
	"fmt"
	"math"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dicemate/dicemate/internal/domain"
	"github.com/dicemate/dicemate/internal/metrics"
)

// Verifier replays provably-fair derivations and checks them against claimed
// outcomes. Verification is total over its input domain: malformed inputs
// produce an error-status result, never a Go error or panic.
type Verifier struct {
	cache *lru.Cache[string, cachedDerivation]
}

type cachedDerivation struct {
	outcome float64
	digest  string
}

// NewVerifier creates a Verifier with a bounded derivation cache.
func NewVerifier() *Verifier {
	// Only errors on non-positive size
	cache, _ := lru.New[string, cachedDerivation](digestCacheSize)
	return &Verifier{cache: cache}
}

// Verify recomputes the outcome for one bet and compares it against the
// claimed value within Tolerance. Either value outside [0, 100) forces the
// result invalid.
func (v *Verifier) Verify(serverSeed, clientSeed string, nonce int64, claimed float64) domain.VerificationResult {
	res := domain.VerificationResult{
		Input: domain.VerificationInput{
			ServerSeed:     serverSeed,
			ClientSeed:     clientSeed,
			Nonce:          nonce,
			ClaimedOutcome: claimed,
		},
	}

	defer func() { metrics.VerificationsTotal.WithLabelValues(string(res.Status)).Inc() }()

	recomputed, digest, err := v.derive(serverSeed, clientSeed, nonce)
	if err != nil {
		res.Status = domain.VerificationError
		res.Err = err.Error()
		return res
	}

	res.Recomputed = recomputed
	res.Digest = digest

	if claimed < 0 || claimed >= OutcomeMax || recomputed < 0 || recomputed >= OutcomeMax {
		res.Status = domain.VerificationInvalid
		return res
	}

	if math.Abs(recomputed-claimed) < Tolerance {
		res.Status = domain.VerificationValid
		res.Valid = true
	} else {
		res.Status = domain.VerificationInvalid
	}
	return res
}

// VerifyBatch applies Verify elementwise and aggregates counts. Individual
// failures are expected and reported; the batch never short-circuits.
func (v *Verifier) VerifyBatch(inputs []domain.VerificationInput) *domain.BatchReport {
	report := &domain.BatchReport{
		Results: make([]domain.VerificationResult, 0, len(inputs)),
	}
	for _, in := range inputs {
		res := v.Verify(in.ServerSeed, in.ClientSeed, in.Nonce, in.ClaimedOutcome)
		report.Results = append(report.Results, res)
		switch res.Status {
		case domain.VerificationValid:
			report.Valid++
		case domain.VerificationInvalid:
			report.Invalid++
		case domain.VerificationError:
			report.Errors++
		}
	}
	return report
}

func (v *Verifier) derive(serverSeed, clientSeed string, nonce int64) (float64, string, error) {
	key := fmt.Sprintf("%s|%s|%s", serverSeed, clientSeed, strconv.FormatInt(nonce, 10))
	if hit, ok := v.cache.Get(key); ok {
		return hit.outcome, hit.digest, nil
	}

	outcome, digest, err := Outcome(serverSeed, clientSeed, nonce)
	if err != nil {
		return 0, "", err
	}
	v.cache.Add(key, cachedDerivation{outcome: outcome, digest: digest})
	return outcome, digest, nil
}
