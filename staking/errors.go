package staking

import (
	"errors"
	"fmt"
)

// Code classifies why a staking flow stopped.
type Code string

const (
	CodeNoWalletProvider       Code = "no_wallet_provider"
	CodeInvalidContractConfig  Code = "invalid_contract_config"
	CodeInvalidForecastId      Code = "invalid_forecast_id"
	CodeForecastNotOnChain     Code = "forecast_not_on_chain"
	CodeInsufficientBalance    Code = "insufficient_balance"
	CodeStakeTransactionFailed Code = "stake_transaction_failed"
	CodeFlowBusy               Code = "flow_busy"
)

// Error is returned by every failing Flow.Run. Reason carries the contract or provider
// message shown to the user.
type Error struct {
	Code   Code
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same code, so errors.Is(err, &Error{Code: c}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newError(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Reason: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the Code of err, or "" when err is not a staking error.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsCode reports whether err is a staking error with the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
