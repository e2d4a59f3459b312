package staking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dataError struct {
	data string
}

func (e *dataError) Error() string          { return "execution reverted" }
func (e *dataError) ErrorData() interface{} { return e.data }

func encodeRevert(t *testing.T, reason string) string {
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	selector := []byte{0x08, 0xc3, 0x79, 0xa0}
	return hexutil.Encode(append(selector, packed...))
}

func TestRevertReason(t *testing.T) {
	assert.Equal(t, "", RevertReason(nil))
	assert.Equal(t, "Tier closed", RevertReason(&RevertError{Reason: "Tier closed"}))
	assert.Equal(t, "Tier closed", RevertReason(fmt.Errorf("send: %w", &RevertError{Reason: "Tier closed"})))
	assert.Equal(t, "nonce too low", RevertReason(errors.New("nonce too low")))
	assert.Equal(t, "Forecast does not exist", RevertReason(&dataError{data: encodeRevert(t, "Forecast does not exist")}))
	assert.Equal(t, "execution reverted", RevertReason(&dataError{data: "0xzz"}))
}

func TestClassifyRevert(t *testing.T) {
	assert.Equal(t, RevertOther, ClassifyRevert(nil))
	assert.Equal(t, RevertForecastMissing, ClassifyRevert(&RevertError{Reason: "Forecast does not exist"}))
	assert.Equal(t, RevertForecastMissing, ClassifyRevert(errors.New("execution reverted: forecast DOES NOT EXIST")))
	assert.Equal(t, RevertForecastMissing, ClassifyRevert(&dataError{data: encodeRevert(t, "Forecast does not exist")}))
	assert.Equal(t, RevertOther, ClassifyRevert(errors.New("insufficient funds")))
}

func TestErrorCodes(t *testing.T) {
	err := fmt.Errorf("run: %w", newError(CodeInsufficientBalance, nil, "balance %d", 3))
	assert.Equal(t, CodeInsufficientBalance, CodeOf(err))
	assert.True(t, errors.Is(err, &Error{Code: CodeInsufficientBalance}))
	assert.False(t, errors.Is(err, &Error{Code: CodeFlowBusy}))
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.Equal(t, "insufficient_balance: balance 3", errors.Unwrap(err).Error())
}
