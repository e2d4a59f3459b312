package staking

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Stake levels, in whole tokens, that unlock gated forecast detail.
const (
	LevelBasic = 50
	LevelFull  = 100
)

const (
	TierBasic uint8 = 0
	TierFull  uint8 = 1
)

// DefaultDecimals is assumed when the token does not answer decimals().
const DefaultDecimals uint8 = 18

// TierForAmount maps a stake amount to a contract tier. Only exactly LevelBasic selects the
// basic tier; every other amount, including amounts below it, selects the full tier.
// TODO: confirm with product whether tiers should be threshold based (amount >= LevelFull).
func TierForAmount(amount int64) uint8 {
	if amount == LevelBasic {
		return TierBasic
	}
	return TierFull
}

// ParseUnits scales a whole-token amount by 10^decimals.
func ParseUnits(amount int64, decimals uint8) *big.Int {
	return decimal.NewFromInt(amount).Shift(int32(decimals)).BigInt()
}

// ToTokens converts a raw on-chain amount back to whole tokens, truncating any fraction.
func ToTokens(raw *big.Int, decimals uint8) int64 {
	if raw == nil {
		return 0
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)).IntPart()
}

// FormatUnits renders a raw amount for display, e.g. "50.5".
func FormatUnits(raw *big.Int, decimals uint8) string {
	if raw == nil {
		return "0"
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)).String()
}
