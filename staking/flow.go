// Package staking drives the stake-and-unlock sequence against the FutureCast staking
// contract and its ERC-20 token: precondition checks, an on-chain existence check, a
// native-payment attempt and the approve-then-stake fallback.
package staking

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/atomic"
)

// Request is one user initiated stake.
type Request struct {
	// ForecastID is the on-chain forecast id as found on the forecast record.
	ForecastID string
	// Amount is in whole tokens; it selects the tier through TierForAmount.
	Amount int64
}

// Result describes a successful unlock, or how far a failed one got.
type Result struct {
	State         State
	Path          PaymentPath
	Account       common.Address
	ForecastID    *big.Int
	Tier          uint8
	Amount        *big.Int
	Decimals      uint8
	Symbol        string
	TokenVerified bool
	Transactions  []common.Hash
}

// Flow runs one staking sequence at a time. It never retries a failed transaction.
type Flow struct {
	cfg      Config
	wallet   Wallet
	reader   ForecastReader
	contract StakingContract
	token    Token

	busy atomic.Bool

	mu      sync.Mutex
	state   State
	message string
}

// NewFlow wires a flow. A nil wallet is allowed and makes every Run fail with
// CodeNoWalletProvider.
func NewFlow(cfg Config, wallet Wallet, reader ForecastReader, contract StakingContract, token Token) *Flow {
	return &Flow{
		cfg:      cfg,
		wallet:   wallet,
		reader:   reader,
		contract: contract,
		token:    token,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

func (f *Flow) Busy() bool {
	return f.busy.Load()
}

// ResolveForecastID parses the forecast's on-chain id. It must be a finite, positive whole number.
func ResolveForecastID(raw string) (*big.Int, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v != math.Trunc(v) || v > 1<<53 {
		return nil, newError(CodeInvalidForecastId, err, "invalid forecast id %q", raw)
	}
	return big.NewInt(int64(v)), nil
}

// Run executes the flow. On failure the returned error is always a *Error and the flow
// ends in StateFailed; the partially filled Result is still returned.
func (f *Flow) Run(ctx context.Context, req Request) (*Result, error) {
	if !f.busy.CompareAndSwap(false, true) {
		return nil, newError(CodeFlowBusy, nil, "a staking flow is already in progress")
	}
	defer func() {
		f.busy.Store(false)
		f.notify()
	}()

	f.transition(StateIdle, "")
	res := &Result{State: StateIdle}
	err := f.run(ctx, req, res)
	if err != nil {
		f.transition(StateFailed, err.Error())
	}
	res.State = f.State()
	return res, err
}

func (f *Flow) run(ctx context.Context, req Request, res *Result) error {
	if f.wallet == nil {
		return newError(CodeNoWalletProvider, nil, "no wallet provider available")
	}
	f.transition(StateWalletChecked, fmt.Sprintf("Preparing to stake %d...", req.Amount))

	if err := f.cfg.Validate(); err != nil {
		return err
	}
	if f.reader == nil || f.contract == nil || f.token == nil {
		return newError(CodeInvalidContractConfig, nil, "staking flow is missing a contract binding")
	}
	forecastID, err := ResolveForecastID(req.ForecastID)
	if err != nil {
		return err
	}
	res.ForecastID = forecastID
	f.transition(StateContractValidated, fmt.Sprintf("Preparing to stake %d...", req.Amount))

	account, err := f.wallet.Account(ctx)
	if err != nil {
		return newError(CodeNoWalletProvider, err, "wallet account unavailable: %v", err)
	}
	res.Account = account

	exists, err := f.reader.ForecastExists(ctx, forecastID)
	if err != nil {
		return newError(CodeForecastNotOnChain, err, "forecast %s could not be read on-chain: %s", forecastID, RevertReason(err))
	}
	if !exists {
		return newError(CodeForecastNotOnChain, nil, "forecast %s does not exist on-chain", forecastID)
	}
	f.transition(StateForecastVerified, fmt.Sprintf("Preparing to stake %d...", req.Amount))

	res.Decimals, res.Symbol, res.TokenVerified = f.tokenMetadata(ctx)
	res.Amount = ParseUnits(req.Amount, res.Decimals)
	res.Tier = TierForAmount(req.Amount)

	f.transition(StateNativeAttempt, "Confirm in wallet (native payment)...")
	hash, nativeErr := f.submit(ctx, "Confirming native tx...", func() (PendingTx, error) {
		return f.contract.StakeAndUnlock(ctx, forecastID, res.Tier, res.Amount)
	})
	if hash != (common.Hash{}) {
		res.Transactions = append(res.Transactions, hash)
	}
	if nativeErr == nil {
		res.Path = PathNative
		f.transition(StateUnlocked, "Success! Forecast unlocked (native).")
		return nil
	}
	if ClassifyRevert(nativeErr) == RevertForecastMissing {
		return newError(CodeForecastNotOnChain, nativeErr, "staking aborted: %s", RevertReason(nativeErr))
	}
	f.transition(StateNativeFailed, "Native payment failed, switching to token approval...")
	if err := ctx.Err(); err != nil {
		return newError(CodeStakeTransactionFailed, err, "%v", err)
	}

	return f.runERC20(ctx, forecastID, res)
}

func (f *Flow) runERC20(ctx context.Context, forecastID *big.Int, res *Result) error {
	balance, err := f.token.BalanceOf(ctx, res.Account)
	if err != nil {
		return newError(CodeStakeTransactionFailed, err, "%s", RevertReason(err))
	}
	f.transition(StateERC20BalanceChecked, "Checking token balance...")
	if balance.Cmp(res.Amount) < 0 {
		return newError(CodeInsufficientBalance, nil, "token balance %s is below the required %s",
			FormatUnits(balance, res.Decimals), FormatUnits(res.Amount, res.Decimals))
	}

	f.transition(StateApprovalPending, "1/2: Approving token transfer...")
	hash, err := f.submit(ctx, "", func() (PendingTx, error) {
		return f.token.Approve(ctx, f.cfg.StakingContractAddress(), res.Amount)
	})
	if hash != (common.Hash{}) {
		res.Transactions = append(res.Transactions, hash)
	}
	if err != nil {
		return newError(CodeStakeTransactionFailed, err, "%s", RevertReason(err))
	}
	f.transition(StateApprovalConfirmed, "1/2: Approval confirmed")

	f.transition(StateStakePending, "2/2: Staking via contract (ERC20)...")
	hash, err = f.submit(ctx, "", func() (PendingTx, error) {
		return f.contract.StakeAndUnlock(ctx, forecastID, res.Tier, nil)
	})
	if hash != (common.Hash{}) {
		res.Transactions = append(res.Transactions, hash)
	}
	if err != nil {
		return newError(CodeStakeTransactionFailed, err, "%s", RevertReason(err))
	}

	res.Path = PathERC20
	f.transition(StateUnlocked, "Success! Forecast unlocked (ERC20).")
	return nil
}

// tokenMetadata never fails: an unreadable token is assumed to have DefaultDecimals and is
// flagged unverified.
func (f *Flow) tokenMetadata(ctx context.Context) (uint8, string, bool) {
	decimals := DefaultDecimals
	d, err := f.token.Decimals(ctx)
	if err != nil {
		return decimals, "", false
	}
	decimals = d
	symbol, err := f.token.Symbol(ctx)
	if err != nil {
		return decimals, "", false
	}
	return decimals, symbol, true
}

// submit sends a transaction and waits for it. waitMessage, when set, replaces the progress
// message while waiting.
func (f *Flow) submit(ctx context.Context, waitMessage string, send func() (PendingTx, error)) (common.Hash, error) {
	tx, err := send()
	if err != nil {
		return common.Hash{}, err
	}
	if waitMessage != "" {
		f.setMessage(waitMessage)
	}
	return tx.Hash(), tx.Wait(ctx)
}

func (f *Flow) transition(state State, message string) {
	f.mu.Lock()
	f.state = state
	f.message = message
	f.mu.Unlock()
	f.notify()
}

func (f *Flow) setMessage(message string) {
	f.mu.Lock()
	f.message = message
	f.mu.Unlock()
	f.notify()
}

func (f *Flow) notify() {
	if f.cfg.OnProgress == nil {
		return
	}
	f.mu.Lock()
	p := Progress{State: f.state, Message: f.message, Busy: f.busy.Load()}
	f.mu.Unlock()
	f.cfg.OnProgress(p)
}
