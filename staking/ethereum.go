package staking

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is what the adapters need from a node connection; *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Dial connects to a JSON-RPC endpoint.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	return ethclient.DialContext(ctx, rpcURL)
}

var (
	stakingABI = mustParseABI(StakingABI)
	erc20ABI   = mustParseABI(ERC20ABI)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded ABI: %v", err))
	}
	return parsed
}

type ethTx struct {
	tx      *types.Transaction
	backend bind.DeployBackend
}

func (t *ethTx) Hash() common.Hash {
	return t.tx.Hash()
}

func (t *ethTx) Wait(ctx context.Context) error {
	receipt, err := bind.WaitMined(ctx, t.backend, t.tx)
	if err != nil {
		return err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return &RevertError{}
	}
	return nil
}

// KeyedWallet signs with a raw private key. It stands in for a browser wallet when the flow
// is driven from the command line.
type KeyedWallet struct {
	key     *ecdsa.PrivateKey
	chainID *big.Int
}

func NewKeyedWallet(ctx context.Context, backend Backend, hexKey string) (*KeyedWallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid staker key: %w", err)
	}
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}
	return &KeyedWallet{key: key, chainID: chainID}, nil
}

func (w *KeyedWallet) Account(context.Context) (common.Address, error) {
	return crypto.PubkeyToAddress(w.key.PublicKey), nil
}

func (w *KeyedWallet) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(w.key, w.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// EthStakingContract binds the staking contract for writes and stake reads.
type EthStakingContract struct {
	contract *bind.BoundContract
	backend  Backend
	wallet   *KeyedWallet
}

func NewEthStakingContract(address common.Address, backend Backend, wallet *KeyedWallet) *EthStakingContract {
	return &EthStakingContract{
		contract: bind.NewBoundContract(address, stakingABI, backend, backend, backend),
		backend:  backend,
		wallet:   wallet,
	}
}

func (c *EthStakingContract) StakeAndUnlock(ctx context.Context, forecastID *big.Int, tier uint8, value *big.Int) (PendingTx, error) {
	if c.wallet == nil {
		return nil, fmt.Errorf("staking contract is bound read-only")
	}
	opts, err := c.wallet.transactOpts(ctx)
	if err != nil {
		return nil, err
	}
	if value != nil && value.Sign() > 0 {
		opts.Value = value
	}
	tx, err := c.contract.Transact(opts, "stakeAndUnlock", forecastID, tier)
	if err != nil {
		return nil, err
	}
	return &ethTx{tx: tx, backend: c.backend}, nil
}

func (c *EthStakingContract) StakeOf(ctx context.Context, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "userStake", account); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return big.NewInt(0), nil
	}
	if stake, ok := out[0].(*big.Int); ok {
		return stake, nil
	}
	return big.NewInt(0), nil
}

// recordReader reads a forecast record through a single view method.
type recordReader struct {
	contract *bind.BoundContract
	method   string
}

// NewForecastReader returns the reader for the contract shape named by kind.
func NewForecastReader(kind ReaderKind, address common.Address, caller bind.ContractCaller) (ForecastReader, error) {
	switch kind {
	case ReaderForecasts, ReaderGetForecast:
		return &recordReader{
			contract: bind.NewBoundContract(address, stakingABI, caller, nil, nil),
			method:   string(kind),
		}, nil
	}
	return nil, fmt.Errorf("unknown forecast reader %q", kind)
}

func (r *recordReader) ForecastExists(ctx context.Context, forecastID *big.Int) (bool, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, r.method, forecastID); err != nil {
		return false, err
	}
	return !isEmptyRecord(out), nil
}

// isEmptyRecord reports whether every field of a decoded record holds its zero value, which
// is what a Solidity mapping returns for a key that was never written.
func isEmptyRecord(fields []interface{}) bool {
	for _, field := range fields {
		switch v := field.(type) {
		case *big.Int:
			if v != nil && v.Sign() != 0 {
				return false
			}
		case string:
			if v != "" {
				return false
			}
		case bool:
			if v {
				return false
			}
		case common.Address:
			if v != (common.Address{}) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// EthToken binds an ERC-20 token.
type EthToken struct {
	contract *bind.BoundContract
	backend  Backend
	wallet   *KeyedWallet
}

func NewEthToken(address common.Address, backend Backend, wallet *KeyedWallet) *EthToken {
	return &EthToken{
		contract: bind.NewBoundContract(address, erc20ABI, backend, backend, backend),
		backend:  backend,
		wallet:   wallet,
	}
}

func (t *EthToken) Decimals(ctx context.Context) (uint8, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "decimals"); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("decimals returned no value")
	}
	d, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unexpected decimals type %T", out[0])
	}
	return d, nil
}

func (t *EthToken) Symbol(ctx context.Context) (string, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "symbol"); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", fmt.Errorf("symbol returned no value")
	}
	s, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected symbol type %T", out[0])
	}
	return s, nil
}

func (t *EthToken) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", account); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return big.NewInt(0), nil
	}
	if balance, ok := out[0].(*big.Int); ok {
		return balance, nil
	}
	return nil, fmt.Errorf("unexpected balance type %T", out[0])
}

func (t *EthToken) Approve(ctx context.Context, spender common.Address, amount *big.Int) (PendingTx, error) {
	if t.wallet == nil {
		return nil, fmt.Errorf("token contract is bound read-only")
	}
	opts, err := t.wallet.transactOpts(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := t.contract.Transact(opts, "approve", spender, amount)
	if err != nil {
		return nil, err
	}
	return &ethTx{tx: tx, backend: t.backend}, nil
}

// chainStakeReader reads stakes from the staking contract and scales them with the token's decimals.
type chainStakeReader struct {
	staking *EthStakingContract
	token   *EthToken
}

func (r *chainStakeReader) StakeOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return r.staking.StakeOf(ctx, account)
}

func (r *chainStakeReader) Decimals(ctx context.Context) (uint8, error) {
	return r.token.Decimals(ctx)
}

// NewStakeReader binds read-only access for server side stake verification.
func NewStakeReader(cfg Config, backend Backend) (StakeReader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &chainStakeReader{
		staking: NewEthStakingContract(cfg.StakingContractAddress(), backend, nil),
		token:   NewEthToken(cfg.TokenContractAddress(), backend, nil),
	}, nil
}

// Bind builds a ready to run Flow against a live node, signing with hexKey. An empty key
// yields a flow without a wallet provider.
func Bind(ctx context.Context, cfg Config, backend Backend, hexKey string) (*Flow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kind, err := ParseReaderKind(string(cfg.Reader))
	if err != nil {
		return nil, newError(CodeInvalidContractConfig, err, "%v", err)
	}
	reader, err := NewForecastReader(kind, cfg.StakingContractAddress(), backend)
	if err != nil {
		return nil, newError(CodeInvalidContractConfig, err, "%v", err)
	}

	var wallet Wallet
	var keyed *KeyedWallet
	if hexKey != "" {
		keyed, err = NewKeyedWallet(ctx, backend, hexKey)
		if err != nil {
			return nil, err
		}
		wallet = keyed
	}

	staking := NewEthStakingContract(cfg.StakingContractAddress(), backend, keyed)
	token := NewEthToken(cfg.TokenContractAddress(), backend, keyed)
	return NewFlow(cfg, wallet, reader, staking, token), nil
}
