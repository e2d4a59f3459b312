package staking

// State is a step of the staking flow.
type State int

const (
	StateIdle State = iota
	StateWalletChecked
	StateContractValidated
	StateForecastVerified
	StateNativeAttempt
	StateNativeFailed
	StateERC20BalanceChecked
	StateApprovalPending
	StateApprovalConfirmed
	StateStakePending
	StateUnlocked
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:                "Idle",
	StateWalletChecked:       "WalletChecked",
	StateContractValidated:   "ContractValidated",
	StateForecastVerified:    "ForecastVerified",
	StateNativeAttempt:       "NativeAttempt",
	StateNativeFailed:        "NativeFailed",
	StateERC20BalanceChecked: "ERC20BalanceChecked",
	StateApprovalPending:     "ApprovalPending",
	StateApprovalConfirmed:   "ApprovalConfirmed",
	StateStakePending:        "StakePending",
	StateUnlocked:            "Unlocked",
	StateFailed:              "Failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateUnlocked || s == StateFailed
}

// Progress is emitted on every transition.
type Progress struct {
	State   State
	Message string
	Busy    bool
}

// PaymentPath says which branch unlocked the forecast.
type PaymentPath string

const (
	PathNative PaymentPath = "native"
	PathERC20  PaymentPath = "erc20"
)
