package staking

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cfg := Config{TokenAddress: testToken, StakingAddress: testStaking}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, common.HexToAddress(testStaking), cfg.StakingContractAddress())
	assert.Equal(t, common.HexToAddress(testToken), cfg.TokenContractAddress())

	cfg.StakingAddress = "not-an-address"
	assert.True(t, IsCode(cfg.Validate(), CodeInvalidContractConfig))

	cfg = Config{StakingAddress: testStaking}
	assert.True(t, IsCode(cfg.Validate(), CodeInvalidContractConfig))
}

func TestParseReaderKind(t *testing.T) {
	kind, err := ParseReaderKind("")
	require.NoError(t, err)
	assert.Equal(t, ReaderForecasts, kind)

	kind, err = ParseReaderKind("getForecast")
	require.NoError(t, err)
	assert.Equal(t, ReaderGetForecast, kind)

	_, err = ParseReaderKind("lookup")
	assert.Error(t, err)
}

func TestNewForecastReader(t *testing.T) {
	reader, err := NewForecastReader(ReaderGetForecast, common.HexToAddress(testStaking), nil)
	require.NoError(t, err)
	assert.Equal(t, "getForecast", reader.(*recordReader).method)

	_, err = NewForecastReader("lookup", common.HexToAddress(testStaking), nil)
	assert.Error(t, err)
}

func TestEmbeddedABIs(t *testing.T) {
	for _, name := range []string{"stakeAndUnlock", "forecasts", "getForecast", "userStake"} {
		_, ok := stakingABI.Methods[name]
		assert.True(t, ok, name)
	}
	for _, name := range []string{"decimals", "symbol", "balanceOf", "approve"} {
		_, ok := erc20ABI.Methods[name]
		assert.True(t, ok, name)
	}
	assert.True(t, stakingABI.Methods["stakeAndUnlock"].IsPayable())
}

func TestIsEmptyRecord(t *testing.T) {
	assert.True(t, isEmptyRecord(nil))
	assert.True(t, isEmptyRecord([]interface{}{big.NewInt(0), "", big.NewInt(0)}))
	assert.False(t, isEmptyRecord([]interface{}{big.NewInt(7), "GDP", big.NewInt(0)}))
	assert.False(t, isEmptyRecord([]interface{}{big.NewInt(0), "GDP", big.NewInt(0)}))
	assert.False(t, isEmptyRecord([]interface{}{uint8(1)}))
}
