package staking

import (
	"errors"
	"regexp"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// RevertKind is the structured outcome of a failed contract call.
type RevertKind int

const (
	RevertOther RevertKind = iota
	RevertForecastMissing
)

// RevertError is produced by the adapters when a mined transaction reverted or a call
// returned a decoded revert reason.
type RevertError struct {
	Reason string
}

func (e *RevertError) Error() string {
	if e.Reason == "" {
		return "execution reverted"
	}
	return "execution reverted: " + e.Reason
}

// The contract emits no custom error for a missing forecast, only a require() string, so this
// pattern is the one place the flow matches on message text.
var forecastMissingPattern = regexp.MustCompile(`(?i)(forecast does not exist|does not exist)`)

// RevertReason extracts the most specific human readable reason from err: a RevertError,
// ABI-encoded revert data carried by an RPC error, or the error text itself.
func RevertReason(err error) string {
	if err == nil {
		return ""
	}
	var revertErr *RevertError
	if errors.As(err, &revertErr) && revertErr.Reason != "" {
		return revertErr.Reason
	}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if hexData, ok := dataErr.ErrorData().(string); ok {
			if data, decErr := hexutil.Decode(hexData); decErr == nil {
				if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
					return reason
				}
			}
		}
	}
	return err.Error()
}

// ClassifyRevert turns a contract call error into a RevertKind.
func ClassifyRevert(err error) RevertKind {
	if err == nil {
		return RevertOther
	}
	if forecastMissingPattern.MatchString(RevertReason(err)) {
		return RevertForecastMissing
	}
	return RevertOther
}
