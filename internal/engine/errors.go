package engine

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrUnknownClient      = errors.New("client not found")
	ErrUnknownTransaction = errors.New("transaction not found")
	ErrNotDisputable      = errors.New("transaction cannot be disputed")
	ErrUnderDispute       = errors.New("transaction is already under dispute")
	ErrNotDisputed        = errors.New("transaction is not under dispute")
	ErrDisputeClosed      = errors.New("dispute has already been finalized")
	ErrAccountLocked      = errors.New("account is locked")
	ErrInsufficientFunds  = errors.New("insufficient available funds")
)
