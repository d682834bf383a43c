package fairness

// Tolerance absorbs display rounding when comparing a recomputed outcome
// against the value the site reported.
const Tolerance = 0.001

// OutcomeMax is the exclusive upper bound of the outcome domain.
const OutcomeMax = 100.0

// digestCacheSize bounds the verifier's memoization of derivations. Batch
// audits over persisted histories revisit the same seed pairs often.
const digestCacheSize = 4096
