package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Bet validation errors
	ErrMsgInvalidStake    = "stake must be positive"
	ErrMsgInvalidChance   = "win chance out of range"
	ErrMsgInvalidRange    = "invalid roll range"
	ErrMsgUnknownGameKind = "unknown game kind"

	// Strategy errors
	ErrMsgUnknownStrategy = "unknown strategy"
	ErrMsgInvalidParams   = "invalid strategy parameters"

	// Fairness errors
	ErrMsgNegativeNonce = "nonce must be non-negative"
	ErrMsgEmptySeed     = "seed must not be empty"

	// Execution errors
	ErrMsgExecutionFailed   = "bet execution failed"
	ErrMsgInsufficientFunds = "insufficient funds"
)

// Common domain errors
// Wrap these with fmt.Errorf("%w: ...", domain.ErrXxx) for additional context.
var (
	ErrInvalidStake    = errors.New(ErrMsgInvalidStake)
	ErrInvalidChance   = errors.New(ErrMsgInvalidChance)
	ErrInvalidRange    = errors.New(ErrMsgInvalidRange)
	ErrUnknownGameKind = errors.New(ErrMsgUnknownGameKind)

	ErrUnknownStrategy = errors.New(ErrMsgUnknownStrategy)
	ErrInvalidParams   = errors.New(ErrMsgInvalidParams)

	ErrNegativeNonce = errors.New(ErrMsgNegativeNonce)
	ErrEmptySeed     = errors.New(ErrMsgEmptySeed)

	ErrExecutionFailed   = errors.New(ErrMsgExecutionFailed)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
)
