package staking

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PendingTx is a submitted transaction that can be waited on.
type PendingTx interface {
	Hash() common.Hash
	// Wait blocks until the transaction is mined. A mined but reverted transaction is an error.
	Wait(ctx context.Context) error
}

// Wallet is the signing account driving the flow.
type Wallet interface {
	Account(ctx context.Context) (common.Address, error)
}

// ForecastReader answers whether the staking contract knows a forecast. Implementations
// exist per contract shape; one is chosen when the flow is configured.
type ForecastReader interface {
	ForecastExists(ctx context.Context, forecastID *big.Int) (bool, error)
}

// StakingContract is the write side of the staking contract.
type StakingContract interface {
	// StakeAndUnlock submits the stake. A nil or zero value means the ERC-20 path.
	StakeAndUnlock(ctx context.Context, forecastID *big.Int, tier uint8, value *big.Int) (PendingTx, error)
}

// Token is the ERC-20 surface the flow needs.
type Token interface {
	Decimals(ctx context.Context) (uint8, error)
	Symbol(ctx context.Context) (string, error)
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
	Approve(ctx context.Context, spender common.Address, amount *big.Int) (PendingTx, error)
}

// StakeReader reads a user's recorded stake, used for server side verification.
type StakeReader interface {
	StakeOf(ctx context.Context, account common.Address) (*big.Int, error)
	Decimals(ctx context.Context) (uint8, error)
}
